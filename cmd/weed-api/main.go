package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cookie-is-yummy/weed/internal/api"
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

	cfg, err := config.LoadAPI()
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

	store := cache.NewMemory()
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

	// DMs are not deliverable from this binary, so sweeps triggered over
	// HTTP run with delivery disabled.
	queue := notify.NewQueue(notify.Discard{}, logger)
	sweep := jobs.NewStreakSweep(eco, queue)

	server := api.New(cfg.API, logger, boards, sweep)
	httpServer := &http.Server{
		Addr:              cfg.API.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("api listening", "addr", cfg.API.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
