// Package missions generates per-round objectives and evaluates their
// progress against the game state.
package missions

import (
	"math/rand"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/traderoyale/engine/internal/domain"
)

// Mission pools by game phase. Early rounds stick to the basics; later
// rounds mix in crash survival and defensive plays.
var (
	earlyGamePool = []domain.MissionType{
		domain.MissionDiversify,
		domain.MissionValueInvesting,
		domain.MissionReactToNews,
	}
	midGamePool = []domain.MissionType{
		domain.MissionSurviveCrash,
		domain.MissionSectorRotation,
		domain.MissionMarketTiming,
	}
	lateGamePool = []domain.MissionType{
		domain.MissionFlightToSafety,
		domain.MissionGovernmentStimulus,
		domain.MissionShortSelling,
		domain.MissionRiskManagement,
	}
)

// template holds the static fields of a mission archetype.
type template struct {
	Title            string
	Description      string
	Reward           string
	RewardValue      float64
	Icon             string
	ProgressRequired int
}

var templates = map[domain.MissionType]template{
	domain.MissionDiversify: {
		Title:            "Build a Diversified Portfolio",
		Description:      "Own at least 3 different asset types.",
		Reward:           "+5% Cash Bonus",
		RewardValue:      0.05,
		Icon:             "Layers",
		ProgressRequired: 3,
	},
	domain.MissionSurviveCrash: {
		Title:            "Market Downturn",
		Description:      "End the round with your portfolio value no more than 3% below starting value.",
		Reward:           "+3% Portfolio Value",
		RewardValue:      0.03,
		Icon:             "Shield",
		ProgressRequired: 1,
	},
	domain.MissionReactToNews: {
		Title:            "News Trader",
		Description:      "Make at least 3 trades based on news events this round.",
		Reward:           "Early News Preview",
		RewardValue:      1,
		Icon:             "Newspaper",
		ProgressRequired: 3,
	},
	domain.MissionFlightToSafety: {
		Title:            "Flight to Safety",
		Description:      "Hold gold during a market downturn.",
		Reward:           "Reduced Volatility Next Round",
		RewardValue:      0.5,
		Icon:             "TrendingDown",
		ProgressRequired: 1,
	},
	domain.MissionGovernmentStimulus: {
		Title:            "Government Stimulus",
		Description:      "Capitalize on the stimulus by increasing tech holdings.",
		Reward:           "+7% Tech Returns",
		RewardValue:      0.07,
		Icon:             "TrendingUp",
		ProgressRequired: 1,
	},
	domain.MissionMarketTiming: {
		Title:            "Market Timer",
		Description:      "Sell any asset within 5% of its peak price.",
		Reward:           "Market Insight Bonus",
		RewardValue:      1,
		Icon:             "Timer",
		ProgressRequired: 1,
	},
	domain.MissionValueInvesting: {
		Title:            "Value Investor",
		Description:      "Buy an asset when it drops by at least 5%, then hold until round end.",
		Reward:           "+10% Returns on That Asset",
		RewardValue:      0.1,
		Icon:             "TrendingUp",
		ProgressRequired: 1,
	},
	domain.MissionShortSelling: {
		Title:            "Short Seller",
		Description:      "Profit from a short position on any asset.",
		Reward:           "Lower Short Fees Next Round",
		RewardValue:      0.5,
		Icon:             "ArrowDown",
		ProgressRequired: 1,
	},
	domain.MissionSectorRotation: {
		Title:            "Sector Rotation",
		Description:      "Sell one asset type completely and invest in another.",
		Reward:           "+5% Initial Returns on New Sector",
		RewardValue:      0.05,
		Icon:             "RefreshCw",
		ProgressRequired: 1,
	},
	domain.MissionRiskManagement: {
		Title:            "Risk Manager",
		Description:      "Keep your portfolio volatility below market average.",
		Reward:           "Reduced Risk Next Round",
		RewardValue:      0.5,
		Icon:             "Shield",
		ProgressRequired: 1,
	},
}

// Generator produces mission sets for a full game.
type Generator struct {
	rng *rand.Rand
	log zerolog.Logger
}

// NewGenerator creates a mission generator with the given random source.
func NewGenerator(rng *rand.Rand, log zerolog.Logger) *Generator {
	return &Generator{
		rng: rng,
		log: log.With().Str("component", "mission_generator").Logger(),
	}
}

// pool returns the mission archetypes available in a round.
func pool(round int) []domain.MissionType {
	switch {
	case round <= 3:
		return earlyGamePool
	case round <= 7:
		return append(append([]domain.MissionType{}, earlyGamePool...), midGamePool...)
	default:
		return append(append([]domain.MissionType{}, midGamePool...), lateGamePool...)
	}
}

// Create instantiates an active mission of the given archetype.
func (g *Generator) Create(missionType domain.MissionType, round int) domain.Mission {
	tpl := templates[missionType]
	return domain.Mission{
		ID:               uuid.New().String(),
		Type:             missionType,
		Title:            tpl.Title,
		Description:      tpl.Description,
		Round:            round,
		Status:           domain.MissionActive,
		Reward:           tpl.Reward,
		RewardValue:      tpl.RewardValue,
		Icon:             tpl.Icon,
		ProgressRequired: tpl.ProgressRequired,
	}
}

// GenerateRound produces one or two missions for a round, never repeating
// an archetype within the round.
func (g *Generator) GenerateRound(round int) []domain.Mission {
	count := g.rng.Intn(2) + 1
	used := make(map[domain.MissionType]bool, count)
	missions := make([]domain.Mission, 0, count)

	for i := 0; i < count; i++ {
		var available []domain.MissionType
		for _, missionType := range pool(round) {
			if !used[missionType] {
				available = append(available, missionType)
			}
		}
		if len(available) == 0 {
			break
		}
		missionType := available[g.rng.Intn(len(available))]
		used[missionType] = true
		missions = append(missions, g.Create(missionType, round))
	}

	return missions
}

// GenerateGame produces the mission schedule for all ten rounds.
func (g *Generator) GenerateGame(rounds int) map[int][]domain.Mission {
	collection := make(map[int][]domain.Mission, rounds)
	for round := 1; round <= rounds; round++ {
		collection[round] = g.GenerateRound(round)
	}
	g.log.Debug().Int("rounds", rounds).Msg("mission schedule generated")
	return collection
}
