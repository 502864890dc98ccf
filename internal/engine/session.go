package engine

import (
	"math/rand"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/traderoyale/engine/internal/config"
	"github.com/traderoyale/engine/internal/domain"
	"github.com/traderoyale/engine/internal/events"
	"github.com/traderoyale/engine/internal/modules/history"
	"github.com/traderoyale/engine/internal/modules/missions"
	newsmod "github.com/traderoyale/engine/internal/modules/news"
	"github.com/traderoyale/engine/internal/modules/portfolio"
	"github.com/traderoyale/engine/internal/modules/pricing"
)

const (
	// recentNewsWindow is how many recent template ids the de-dup ring
	// remembers, and maxNewsAttempts how many redraws a duplicate gets.
	recentNewsWindow = 20
	maxNewsAttempts  = 5

	// healthJitterSpan: a jitter perturbs market health by up to +-3.
	healthJitterSpan = 3.0
)

// pendingAftershock is a queued follow-up event waiting for its delay.
type pendingAftershock struct {
	item domain.NewsItem
	due  time.Time
}

// Session owns one game: the state, the generators around it, and the only
// goroutine-safe entrypoints to mutate it. All methods serialize on one
// mutex; readers get deep-copied snapshots.
type Session struct {
	mu    sync.Mutex
	state domain.GameState
	game  config.GameConfig

	rng        *rand.Rand
	model      *pricing.Model
	resolver   *newsmod.Resolver
	newsGen    *newsmod.Generator
	missionGen *missions.Generator
	history    *history.Store
	bus        *events.Bus
	log        zerolog.Logger

	ticks       int
	recentNews  []string
	aftershocks []pendingAftershock
}

// NewSession creates a session with a fresh, paused state. One random
// source feeds every generator, so a seeded session replays exactly.
func NewSession(game config.GameConfig, rng *rand.Rand, bus *events.Bus, store *history.Store, log zerolog.Logger) *Session {
	log = log.With().Str("component", "session").Logger()
	resolver := newsmod.NewResolver(rng, log)

	return &Session{
		state: domain.GameState{
			Assets:       domain.StartingAssets(),
			Cash:         game.StartingCash,
			Holdings:     make(map[string]domain.Holding),
			Paused:       true,
			MarketHealth: 100,
		},
		game:       game,
		rng:        rng,
		model:      pricing.NewModel(rng, log),
		resolver:   resolver,
		newsGen:    newsmod.NewGenerator(rng, resolver, log),
		missionGen: missions.NewGenerator(rng, log),
		history:    store,
		bus:        bus,
		log:        log,
	}
}

// Snapshot returns a deep copy of the current state.
func (s *Session) Snapshot() domain.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Restore replaces the session with a saved snapshot. The restored game
// comes back paused; the player resumes it explicitly.
func (s *Session) Restore(state domain.GameState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state.Paused = true
	s.state = state.Clone()
	s.ticks = 0
	s.recentNews = nil
	s.aftershocks = nil

	s.history.Reset()
	for _, asset := range s.state.Assets {
		s.history.Init(asset.ID, asset.Price, time.Now())
	}

	s.log.Info().Int("round", s.state.Round).Msg("session restored")
}

// Resume unpauses a restored or paused game that still has time left.
func (s *Session) Resume() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.GameOver || s.state.TimeRemaining == 0 {
		return
	}
	s.state.Paused = false
}

// Start begins a new game: a fresh mission schedule, reset balances and
// history, round 1 running.
func (s *Session) Start(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Missions = s.missionGen.GenerateGame(s.game.Rounds)
	s.state, _ = Reduce(s.state, StartGame{Now: now}, s.game)

	s.ticks = 0
	s.recentNews = nil
	s.aftershocks = nil

	s.history.Reset()
	for _, asset := range s.state.Assets {
		s.history.Init(asset.ID, asset.Price, now)
	}
	s.history.RecordNetWorth(s.game.StartingCash, now, nil)

	s.log.Info().Float64("starting_cash", s.game.StartingCash).Msg("game started")
	s.bus.Publish(&events.GameStartedData{
		StartingCash: s.game.StartingCash,
		Assets:       len(s.state.Assets),
	})
}

// End stops the game immediately.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.end()
}

func (s *Session) end() {
	s.state, _ = Reduce(s.state, EndGame{}, s.game)
	s.publishGameEnded()
}

func (s *Session) publishGameEnded() {
	finalWorth := 0.0
	if n := len(s.state.NetWorthHistory); n > 0 {
		finalWorth = s.state.NetWorthHistory[n-1].Value
	}
	s.log.Info().Float64("final_net_worth", finalWorth).Int("round", s.state.Round).Msg("game ended")
	s.bus.Publish(&events.GameEndedData{
		FinalNetWorth: finalWorth,
		Rounds:        s.state.Round,
	})
}

// AdvanceRound moves to the next round, or ends the game after the last.
func (s *Session) AdvanceRound(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.advanceRound(now)
}

func (s *Session) advanceRound(now time.Time) {
	if s.state.GameOver {
		return
	}

	before := s.state.ActiveMissions
	s.state, _ = Reduce(s.state, NextRound{Now: now}, s.game)

	if s.state.GameOver {
		s.publishGameEnded()
		return
	}

	for _, mission := range before {
		if mission.Status == domain.MissionActive {
			s.bus.Publish(&events.MissionFailedData{
				MissionID:   mission.ID,
				MissionType: string(mission.Type),
			})
		}
	}

	s.history.Annotate("round "+strconv.Itoa(s.state.Round), s.currentNetWorth(), now)
	s.log.Info().Int("round", s.state.Round).Msg("round advanced")
	s.bus.Publish(&events.RoundAdvancedData{Round: s.state.Round})
}

// SubmitTrade executes a player order at the asset's current price.
// Rejected orders leave the state untouched and return the reason.
func (s *Session) SubmitTrade(assetID string, side domain.TradeSide, units float64, now time.Time) (domain.GameState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	asset := s.state.Asset(assetID)
	if asset == nil {
		return s.state.Clone(), domain.ErrAssetNotFound
	}
	price := asset.Price

	before := s.state.ActiveMissions
	next, err := Reduce(s.state, ExecuteTrade{
		AssetID: assetID,
		Side:    side,
		Units:   units,
		Price:   price,
		Now:     now,
	}, s.game)
	if err != nil {
		s.log.Debug().Err(err).Str("asset_id", assetID).Str("side", string(side)).Msg("trade rejected")
		return s.state.Clone(), err
	}
	s.state = next

	netWorth := s.currentNetWorth()
	s.history.RecordNetWorth(netWorth, now, &history.Event{
		Type:        "trade",
		Description: string(side) + " " + assetID,
	})

	s.log.Info().
		Str("asset_id", assetID).
		Str("side", string(side)).
		Float64("units", units).
		Float64("price", price).
		Msg("trade executed")
	s.bus.Publish(&events.TradeExecutedData{
		AssetID:        assetID,
		Side:           string(side),
		Units:          units,
		Price:          price,
		NetWorth:       netWorth,
		HeldCategories: portfolio.HeldCategories(s.state.Holdings, s.state.Assets),
	})

	s.publishNewCompletions(before)
	return s.state.Clone(), nil
}

// CompleteMission manually completes an active mission and grants its
// reward.
func (s *Session) CompleteMission(missionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.state.ActiveMissions
	s.state, _ = Reduce(s.state, CompleteMission{MissionID: missionID}, s.game)
	s.publishNewCompletions(before)
}

// FailMission manually fails an active mission.
func (s *Session) FailMission(missionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, mission := range s.state.ActiveMissions {
		if mission.ID == missionID && !mission.Status.Terminal() {
			s.bus.Publish(&events.MissionFailedData{
				MissionID:   mission.ID,
				MissionType: string(mission.Type),
			})
		}
	}
	s.state, _ = Reduce(s.state, FailMission{MissionID: missionID}, s.game)
}

// OnTick is the heartbeat, called once per price interval. It moves time,
// prices, news, health, net worth and missions, each on its own cadence.
func (s *Session) OnTick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.GameOver {
		return
	}

	if s.state.Paused {
		// A round that ran out of time advances on the next heartbeat.
		if s.state.TimeRemaining == 0 && s.state.Round > 0 {
			s.advanceRound(now)
		}
		return
	}

	s.ticks++

	s.state, _ = Reduce(s.state, Tick{Delta: s.game.PriceInterval}, s.game)

	s.updatePrices(now)
	s.state, _ = Reduce(s.state, AdvanceNews{}, s.game)

	if s.every(s.game.NewsInterval) {
		s.generateNews(now)
	}
	// Expiry is a cheap scan over the active set, so it runs every tick;
	// gating it on a cadence would let items outlive their lifetime.
	s.expireNews(now)
	s.releaseAftershocks(now)

	s.jitterHealth()
	s.recordNetWorth(now)
	s.evaluateMissions()
}

// every reports whether the cadence boundary falls on the current tick.
func (s *Session) every(interval time.Duration) bool {
	period := int(interval / s.game.PriceInterval)
	if period <= 1 {
		return true
	}
	return s.ticks%period == 0
}

func (s *Session) updatePrices(now time.Time) {
	s.model.Roll()

	prices := make(map[string]float64, len(s.state.Assets))
	for _, asset := range s.state.Assets {
		prices[asset.ID] = s.model.Next(asset, s.state.ActiveNewsFor(asset.ID), s.state.MarketHealth, now)
	}

	s.state, _ = Reduce(s.state, UpdatePrices{Now: now, Prices: prices}, s.game)

	for _, asset := range s.state.Assets {
		s.history.RecordPrice(asset.ID, asset.Price, now)
	}
	s.bus.Publish(&events.PricesUpdatedData{Round: s.state.Round, Assets: len(s.state.Assets)})
}

// generateNews rolls for a black swan first, then a regular item. Regular
// items get a few redraws to avoid repeating a recently used template.
func (s *Session) generateNews(now time.Time) {
	if swan := s.newsGen.GenerateBlackSwan(s.state.Assets, s.state.Round, now); swan != nil {
		s.publishNews(*swan, now)
		return
	}

	item := s.newsGen.Generate(s.state.Assets, s.state.Round, now)
	for attempt := 1; attempt < maxNewsAttempts && s.seenRecently(item.TemplateID); attempt++ {
		item = s.newsGen.Generate(s.state.Assets, s.state.Round, now)
	}
	s.publishNews(item, now)
}

func (s *Session) seenRecently(templateID string) bool {
	if templateID == "" {
		return false
	}
	for _, id := range s.recentNews {
		if id == templateID {
			return true
		}
	}
	return false
}

func (s *Session) rememberTemplate(templateID string) {
	if templateID == "" {
		return
	}
	s.recentNews = append(s.recentNews, templateID)
	if len(s.recentNews) > recentNewsWindow {
		s.recentNews = s.recentNews[1:]
	}
}

func (s *Session) publishNews(item domain.NewsItem, now time.Time) {
	// Seed the gradual ramp from the primary asset's resolved impact.
	if len(item.ImpactedAssets) > 0 {
		tpl := newsmod.TemplateByID(item.TemplateID)
		if tpl != nil {
			primary := s.state.Asset(item.ImpactedAssets[0])
			base := s.resolver.Resolve(item.ImpactedAssets[0], tpl, primary, s.state.MarketHealth)
			newsmod.PrepareGradualImpact(&item, base)
		}
	}

	s.rememberTemplate(item.TemplateID)
	s.state, _ = Reduce(s.state, AddNews{Item: item}, s.game)

	// Shocks can chain: queue an aftershock for later with the item's
	// stated probability.
	if item.AftershockProbability > 0 && s.rng.Float64() < item.AftershockProbability {
		s.aftershocks = append(s.aftershocks, pendingAftershock{
			item: item,
			due:  now.Add(item.AftershockDelay),
		})
	}

	s.log.Info().
		Str("news_id", item.ID).
		Str("title", item.Title).
		Bool("black_swan", item.IsBlackSwan).
		Msg("news published")
	s.bus.Publish(&events.NewsPublishedData{
		NewsID:    item.ID,
		Title:     item.Title,
		Sentiment: string(item.Sentiment),
		Magnitude: item.Magnitude,
		BlackSwan: item.IsBlackSwan,
	})
}

// releaseAftershocks publishes queued aftershocks that have come due.
// Publishing can queue a further aftershock, so the pending list is split
// and reassigned before any release.
func (s *Session) releaseAftershocks(now time.Time) {
	var due []pendingAftershock
	remaining := make([]pendingAftershock, 0, len(s.aftershocks))
	for _, pending := range s.aftershocks {
		if now.Before(pending.due) {
			remaining = append(remaining, pending)
		} else {
			due = append(due, pending)
		}
	}
	s.aftershocks = remaining

	for _, pending := range due {
		shock := s.newsGen.GenerateAftershock(&pending.item, s.state.Round, now)
		s.publishNews(shock, now)
	}
}

func (s *Session) expireNews(now time.Time) {
	before := make(map[string]bool, len(s.state.ActiveNews))
	for _, item := range s.state.ActiveNews {
		before[item.ID] = item.Active
	}

	s.state, _ = Reduce(s.state, ExpireNews{Now: now, MaxAge: s.game.NewsLifetime}, s.game)

	for _, item := range s.state.ActiveNews {
		if before[item.ID] && !item.Active {
			s.bus.Publish(&events.NewsExpiredData{NewsID: item.ID})
		}
	}
}

func (s *Session) jitterHealth() {
	if s.rng.Float64() >= s.game.HealthJitterProb {
		return
	}
	delta := (s.rng.Float64()*2 - 1) * healthJitterSpan
	s.state, _ = Reduce(s.state, SetMarketHealth{Health: s.state.MarketHealth + delta}, s.game)
	s.bus.Publish(&events.HealthChangedData{Health: s.state.MarketHealth})
}

func (s *Session) recordNetWorth(now time.Time) {
	s.state, _ = Reduce(s.state, RecordNetWorth{Now: now}, s.game)

	value := s.currentNetWorth()
	s.history.RecordNetWorth(value, now, nil)
	s.bus.Publish(&events.NetWorthRecordedData{Round: s.state.Round, Value: value})
}

func (s *Session) evaluateMissions() {
	before := s.state.ActiveMissions
	s.state, _ = Reduce(s.state, EvaluateMissions{}, s.game)
	s.publishNewCompletions(before)
}

// publishNewCompletions emits MissionCompleted for every mission that
// turned completed since the before set.
func (s *Session) publishNewCompletions(before []domain.Mission) {
	previous := make(map[string]domain.MissionStatus, len(before))
	for _, mission := range before {
		previous[mission.ID] = mission.Status
	}
	for _, mission := range s.state.ActiveMissions {
		if mission.Status != domain.MissionCompleted || previous[mission.ID] == domain.MissionCompleted {
			continue
		}
		s.log.Info().Str("mission_id", mission.ID).Str("type", string(mission.Type)).Msg("mission completed")
		s.bus.Publish(&events.MissionCompletedData{
			MissionID:   mission.ID,
			MissionType: string(mission.Type),
			Reward:      mission.Reward,
			RewardValue: mission.RewardValue,
		})
	}
}

func (s *Session) currentNetWorth() float64 {
	if n := len(s.state.NetWorthHistory); n > 0 {
		return s.state.NetWorthHistory[n-1].Value
	}
	return s.state.Cash
}
