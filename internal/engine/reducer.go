package engine

import (
	"math"
	"strings"
	"time"

	"github.com/traderoyale/engine/internal/config"
	"github.com/traderoyale/engine/internal/domain"
	"github.com/traderoyale/engine/internal/modules/missions"
	newsmod "github.com/traderoyale/engine/internal/modules/news"
	"github.com/traderoyale/engine/internal/modules/portfolio"
)

// significantChange is the relative net-worth move below which a trade does
// not add a history sample.
const significantChange = 0.001

// Reduce applies one command to the state and returns the next state. It
// is a pure transition: the input state is never mutated, randomness and
// clocks live in the caller, and a returned error means the command was
// rejected and the returned state equals the input.
func Reduce(state domain.GameState, cmd Command, game config.GameConfig) (domain.GameState, error) {
	switch c := cmd.(type) {
	case StartGame:
		return startGame(state, c, game), nil
	case EndGame:
		next := state.Clone()
		next.Paused = true
		next.GameOver = true
		return next, nil
	case NextRound:
		return nextRound(state, c, game), nil
	case Tick:
		return tick(state, c), nil
	case UpdatePrices:
		return updatePrices(state, c), nil
	case AddNews:
		next := state.Clone()
		item := c.Item
		item.Active = true
		next.News = append(next.News, item)
		next.ActiveNews = append(next.ActiveNews, item)
		return next, nil
	case AdvanceNews:
		return advanceNews(state), nil
	case ExpireNews:
		return expireNews(state, c), nil
	case ExecuteTrade:
		return executeTrade(state, c)
	case SetMarketHealth:
		next := state.Clone()
		next.MarketHealth = math.Min(100, math.Max(0, c.Health))
		return next, nil
	case RecordNetWorth:
		next := state.Clone()
		next.NetWorthHistory = append(next.NetWorthHistory, domain.NetWorthPoint{
			Round:     next.Round,
			Value:     portfolio.NetWorth(next.Cash, next.Holdings, next.Assets),
			Timestamp: c.Now,
		})
		return next, nil
	case EvaluateMissions:
		next := state.Clone()
		before := next.ActiveMissions
		next.ActiveMissions = missions.EvaluateAll(next.ActiveMissions, &next)
		settleMissionRewards(&next, before)
		return next, nil
	case CompleteMission:
		return completeMission(state, c), nil
	case FailMission:
		return failMission(state, c), nil
	}
	return state, nil
}

func startGame(state domain.GameState, c StartGame, game config.GameConfig) domain.GameState {
	next := state.Clone()
	next.Paused = false
	next.GameOver = false
	next.Round = 1
	next.TimeRemaining = game.RoundLength
	next.Cash = game.StartingCash
	next.Holdings = make(map[string]domain.Holding)
	next.News = nil
	next.ActiveNews = nil
	next.MarketHealth = 100
	next.NetWorthHistory = []domain.NetWorthPoint{{Round: 0, Value: game.StartingCash, Timestamp: c.Now}}
	next.LastPriceUpdate = c.Now
	next.ActiveMissions = append([]domain.Mission(nil), next.Missions[1]...)
	next.CompletedMissions = nil
	next.MissionRewards = make(map[string]float64)
	return next
}

func nextRound(state domain.GameState, c NextRound, game config.GameConfig) domain.GameState {
	next := state.Clone()
	if next.Round >= game.Rounds {
		next.Paused = true
		next.GameOver = true
		return next
	}

	// Archive the round's finished missions; anything still active when
	// the round turns is failed.
	for _, mission := range next.ActiveMissions {
		switch mission.Status {
		case domain.MissionCompleted:
			next.CompletedMissions = append(next.CompletedMissions, mission)
		case domain.MissionActive:
			mission.Status = domain.MissionFailed
			next.CompletedMissions = append(next.CompletedMissions, mission)
		case domain.MissionFailed:
			next.CompletedMissions = append(next.CompletedMissions, mission)
		}
	}

	next.Round++
	next.TimeRemaining = game.RoundLength
	next.Paused = false
	next.ActiveNews = nil
	next.LastPriceUpdate = c.Now
	next.ActiveMissions = append([]domain.Mission(nil), next.Missions[next.Round]...)
	return next
}

func tick(state domain.GameState, c Tick) domain.GameState {
	next := state.Clone()
	next.TimeRemaining -= c.Delta
	if next.TimeRemaining <= 0 {
		next.TimeRemaining = 0
		next.Paused = true
	}
	return next
}

func updatePrices(state domain.GameState, c UpdatePrices) domain.GameState {
	// Prices move at most once per second regardless of tick jitter.
	if !state.LastPriceUpdate.IsZero() && c.Now.Sub(state.LastPriceUpdate) < time.Second {
		return state
	}

	next := state.Clone()
	for i := range next.Assets {
		price, ok := c.Prices[next.Assets[i].ID]
		if !ok {
			continue
		}
		next.Assets[i].PreviousPrice = next.Assets[i].Price
		next.Assets[i].Price = price
	}
	next.LastPriceUpdate = c.Now
	return next
}

func advanceNews(state domain.GameState) domain.GameState {
	next := state.Clone()
	kept := next.ActiveNews[:0]
	for i := range next.ActiveNews {
		item := &next.ActiveNews[i]
		newsmod.AdvanceImpact(item)
		if !item.Decayed() {
			kept = append(kept, *item)
		}
	}
	next.ActiveNews = kept
	return next
}

func expireNews(state domain.GameState, c ExpireNews) domain.GameState {
	next := state.Clone()
	for i := range next.ActiveNews {
		item := &next.ActiveNews[i]
		if item.Active && item.Age(c.Now) > c.MaxAge {
			item.Active = false
			// Mirror the flag into the permanent log.
			for j := range next.News {
				if next.News[j].ID == item.ID {
					next.News[j].Active = false
				}
			}
		}
	}
	return next
}

func executeTrade(state domain.GameState, c ExecuteTrade) (domain.GameState, error) {
	if state.GameOver {
		return state, domain.ErrGameOver
	}
	asset := state.Asset(c.AssetID)
	if asset == nil {
		return state, domain.ErrAssetNotFound
	}

	cash, holding, err := portfolio.Apply(c.Side, state.Cash, state.Holding(c.AssetID), c.Units, c.Price)
	if err != nil {
		return state, err
	}

	next := state.Clone()
	next.Cash = cash
	next.Holdings[c.AssetID] = holding

	// Sample net worth only when the trade actually moved it.
	netWorth := portfolio.NetWorth(next.Cash, next.Holdings, next.Assets)
	if n := len(next.NetWorthHistory); n > 0 {
		last := next.NetWorthHistory[n-1].Value
		if last != 0 && math.Abs(netWorth-last)/last > significantChange {
			next.NetWorthHistory = append(next.NetWorthHistory, domain.NetWorthPoint{
				Round:     next.Round,
				Value:     netWorth,
				Timestamp: c.Now,
			})
		}
	}

	before := next.ActiveMissions
	next.ActiveMissions = missions.EvaluateAll(next.ActiveMissions, &next)
	settleMissionRewards(&next, before)
	return next, nil
}

// settleMissionRewards grants rewards for missions evaluation just flipped
// to completed. Rewards apply exactly once: a mission already completed in
// the before set is skipped.
func settleMissionRewards(next *domain.GameState, before []domain.Mission) {
	previous := make(map[string]domain.MissionStatus, len(before))
	for _, mission := range before {
		previous[mission.ID] = mission.Status
	}

	for _, mission := range next.ActiveMissions {
		if mission.Status != domain.MissionCompleted || previous[mission.ID] == domain.MissionCompleted {
			continue
		}
		if mission.RewardValue > 0 {
			if strings.Contains(mission.Reward, "Cash Bonus") {
				next.Cash += next.Cash * mission.RewardValue
			}
			next.MissionRewards[string(mission.Type)] = mission.RewardValue
		}
	}
}

func completeMission(state domain.GameState, c CompleteMission) domain.GameState {
	next := state.Clone()
	for i := range next.ActiveMissions {
		mission := &next.ActiveMissions[i]
		if mission.ID != c.MissionID || mission.Status.Terminal() {
			continue
		}
		mission.Status = domain.MissionCompleted

		if mission.RewardValue > 0 {
			if strings.Contains(mission.Reward, "Cash Bonus") {
				next.Cash += next.Cash * mission.RewardValue
			}
			next.MissionRewards[string(mission.Type)] = mission.RewardValue
		}
	}
	return next
}

func failMission(state domain.GameState, c FailMission) domain.GameState {
	next := state.Clone()
	for i := range next.ActiveMissions {
		mission := &next.ActiveMissions[i]
		if mission.ID == c.MissionID && !mission.Status.Terminal() {
			mission.Status = domain.MissionFailed
		}
	}
	return next
}
