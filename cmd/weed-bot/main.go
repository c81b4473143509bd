package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cookie-is-yummy/weed/internal/bot"
	"github.com/cookie-is-yummy/weed/internal/cache"
	"github.com/cookie-is-yummy/weed/internal/config"
	"github.com/cookie-is-yummy/weed/internal/db"
	"github.com/cookie-is-yummy/weed/internal/economy"
	"github.com/cookie-is-yummy/weed/internal/jobs"
	"github.com/cookie-is-yummy/weed/internal/leaderboard"
	"github.com/cookie-is-yummy/weed/internal/notify"
)

const sortPoolSize = 4

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadBot()
	if err != nil {
		slog.Error("load config", "err", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	pool, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		logger.Error("db connect failed", "err", err)
		os.Exit(1)
	}
	defer pool.Close()

	store, err := newStore(ctx, cfg.Cache)
	if err != nil {
		logger.Error("cache connect failed", "err", err)
		os.Exit(1)
	}
	defer store.Close()

	eco := economy.NewService(pool, store, logger)

	sorter, err := leaderboard.NewSorter(sortPoolSize)
	if err != nil {
		logger.Error("sorter init failed", "err", err)
		os.Exit(1)
	}
	defer sorter.Release()

	recorder := leaderboard.NewRecorder(eco, logger)
	defer recorder.Close()

	boards := leaderboard.New(eco, sorter, recorder, logger)

	b, err := bot.New(cfg.Bot, eco, boards, logger)
	if err != nil {
		logger.Error("bot init failed", "err", err)
		os.Exit(1)
	}

	queue := notify.NewQueue(b, logger)
	sweep := jobs.NewStreakSweep(eco, queue)

	scheduler := jobs.NewScheduler(logger)
	streakJob := sweep.Job()
	streakJob.Spec = cfg.Jobs.StreakCron
	if err := scheduler.Register(streakJob); err != nil {
		logger.Error("register streak job failed", "err", err)
		os.Exit(1)
	}
	scheduler.Start()
	defer scheduler.Stop()

	logger.Info("bot starting", "prefix", cfg.Bot.Prefix)
	if err := b.Run(ctx); err != nil {
		logger.Error("bot stopped", "err", err)
		os.Exit(1)
	}
}

func newStore(ctx context.Context, cfg config.CacheConfig) (cache.Store, error) {
	if cfg.Type == "redis" {
		return cache.NewRedis(ctx, cache.RedisConfig{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
	}
	return cache.NewMemory(), nil
}
