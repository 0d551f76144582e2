// Package main provides the simulation server binary: it loads the content
// catalog, assembles the world, and drives it with the fixed-timestep loop
// until the process is signalled.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"go.uber.org/zap"

	"github.com/hmelgaard/beforefall/internal/config"
	"github.com/hmelgaard/beforefall/internal/game/catalog"
	"github.com/hmelgaard/beforefall/internal/game/rng"
	"github.com/hmelgaard/beforefall/internal/game/sim"
	"github.com/hmelgaard/beforefall/internal/observability"
	"github.com/hmelgaard/beforefall/internal/server"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	contentDir := flag.String("content", "", "content directory override")
	seed := flag.Int64("seed", 0, "random seed override; 0 keeps the configured source")
	statusInterval := flag.Duration("status-interval", time.Minute, "interval between world status log lines")
	flag.Parse()

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}
	if *contentDir != "" {
		cfg.Content.Dir = *contentDir
	}
	if *seed != 0 {
		cfg.Sim.Seed = *seed
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	var src rng.Source
	if cfg.Sim.Seed != 0 {
		src = rng.NewSeeded(cfg.Sim.Seed)
		logger.Info("using seeded random source", zap.Int64("seed", cfg.Sim.Seed))
	} else {
		src = rng.NewCryptoSource()
	}
	src = rng.NewLogged(src, logger)

	catStart := time.Now()
	cat, err := catalog.Load(cfg.Content.Dir)
	if err != nil {
		logger.Fatal("loading content catalog", zap.Error(err))
	}
	logger.Info("content loaded",
		zap.String("dir", cfg.Content.Dir),
		zap.Int("activities", len(cat.Activities)),
		zap.Int("characters", len(cat.Characters)),
		zap.Int("quests", len(cat.Quests)),
		zap.Bool("crisis", cat.Crisis != nil),
		zap.Duration("elapsed", time.Since(catStart)))

	world, err := sim.New(cat, src, logger)
	if err != nil {
		logger.Fatal("assembling simulation", zap.Error(err))
	}
	world.Clock().Speed = cfg.Sim.Speed

	runLogger := observability.NewRunLogger(logger, world.RunID().String())
	runner := sim.NewRunner(world, runLogger, cfg.Loop.TargetFPS, cfg.Loop.MaxFrameMs)

	lc := server.NewLifecycle(runLogger)
	lc.Add("simulation", runner)
	lc.Add("status", statusReporter(runner, runLogger, *statusInterval))

	runLogger.Info("simulation server ready",
		zap.Float64("tick_ms", runner.TickMs()),
		zap.Duration("startup", time.Since(start)))

	if err := lc.Run(ctx); err != nil {
		runLogger.Fatal("lifecycle failed", zap.Error(err))
	}
}

// statusReporter periodically logs a compact view of the world so a headless
// run leaves a readable trace.
func statusReporter(runner *sim.Runner, logger *zap.Logger, interval time.Duration) server.Service {
	stop := make(chan struct{})
	return &server.FuncService{
		StartFn: func() error {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-stop:
					return nil
				case <-ticker.C:
					runner.Do(func(s *sim.Simulation) {
						snap := s.Snapshot()
						logger.Info("world status",
							zap.Int("day", snap.Day),
							zap.String("time", snap.Time),
							zap.String("phase", string(snap.Phase)),
							zap.Bool("paused", snap.Paused),
							zap.String("crisis", string(snap.Crisis.Phase)),
							zap.Float64("quest_progress", snap.Quests.Progress))
					})
				}
			}
		},
		StopFn: func() { close(stop) },
	}
}
