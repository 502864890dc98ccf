package main

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/traderoyale/engine/internal/config"
	"github.com/traderoyale/engine/internal/database"
	"github.com/traderoyale/engine/internal/engine"
	"github.com/traderoyale/engine/internal/events"
	"github.com/traderoyale/engine/internal/modules/achievements"
	"github.com/traderoyale/engine/internal/modules/history"
	"github.com/traderoyale/engine/internal/modules/leaderboard"
	"github.com/traderoyale/engine/internal/scheduler"
	"github.com/traderoyale/engine/internal/server"
	"github.com/traderoyale/engine/internal/session"
	"github.com/traderoyale/engine/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		basicLog := logger.New(logger.Config{Level: "info"})
		basicLog.Fatal().Err(err).Msg("Failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Pretty: cfg.DevMode,
	})
	logger.SetGlobalLogger(log)

	log.Info().Msg("Starting Trade Royale engine")

	// Databases: durable scores, expendable saved sessions.
	scoresDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "scores.db"),
		Profile: database.ProfileScores,
		Name:    "leaderboard",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open leaderboard database")
	}
	defer scoresDB.Close()

	sessionsDB, err := database.New(database.Config{
		Path:    filepath.Join(cfg.DataDir, "sessions.db"),
		Profile: database.ProfileSessions,
		Name:    "sessions",
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open sessions database")
	}
	defer sessionsDB.Close()

	if err := leaderboard.InitSchema(scoresDB.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to init leaderboard schema")
	}
	if err := session.InitSchema(sessionsDB.Conn()); err != nil {
		log.Fatal().Err(err).Msg("Failed to init sessions schema")
	}

	// Engine core: bus, history, session, clock.
	bus := events.NewBus(log)
	historyStore := history.NewStore(log)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	gameSession := engine.NewSession(cfg.Game, rng, bus, historyStore, log)

	scores := leaderboard.NewRepository(scoresDB.Conn(), log)
	sessions := session.NewStore(sessionsDB.Conn(), log)
	tracker := achievements.NewTracker(bus, cfg.Game.StartingCash, log)

	// Finished games land on the leaderboard.
	bus.Subscribe(events.GameEnded, func(event *events.Event) {
		data, ok := event.Data.(*events.GameEndedData)
		if !ok {
			return
		}
		if err := scores.SaveScore(cfg.UserID, data.FinalNetWorth, data.Rounds, event.Timestamp); err != nil {
			log.Error().Err(err).Msg("Failed to record final score")
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := engine.NewClock(gameSession, cfg.Game.PriceInterval, log)
	go clock.Run(ctx)

	// Housekeeping.
	sched := scheduler.New(log)
	if err := sched.AddJob("@every 1m", scheduler.NewWALCheckpointJob(log, scoresDB, sessionsDB)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register WAL checkpoint job")
	}
	if err := sched.AddJob("@every 1h", scheduler.NewSessionPruningJob(sessions, 0, log)); err != nil {
		log.Fatal().Err(err).Msg("Failed to register session pruning job")
	}
	sched.Start()
	defer sched.Stop()

	srv := server.New(server.Config{
		Port:         cfg.Port,
		DevMode:      cfg.DevMode,
		Log:          log,
		Session:      gameSession,
		Bus:          bus,
		History:      historyStore,
		Leaderboard:  scores,
		Achievements: tracker,
		Sessions:     sessions,
	})

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	log.Info().Int("port", cfg.Port).Msg("Server started successfully")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
