// Package app wires the application dependencies together and exposes the
// operational modes: the bot loop, the health/metrics server and the
// background stats refresher.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/muradovs/insta-saver-bot/internal/config"
	"github.com/muradovs/insta-saver-bot/internal/instagram"
	"github.com/muradovs/insta-saver-bot/internal/platform/observability"
	"github.com/muradovs/insta-saver-bot/internal/platform/worker"
	db "github.com/muradovs/insta-saver-bot/internal/storage"
	"github.com/muradovs/insta-saver-bot/internal/telegrambot"
)

// App holds the application dependencies and provides methods to run the
// different modes.
type App struct {
	cfg      *config.Config
	database *db.DB
	logger   *zerolog.Logger
}

// New creates a new App instance with the given dependencies.
func New(cfg *config.Config, database *db.DB, logger *zerolog.Logger) *App {
	return &App{
		cfg:      cfg,
		database: database,
		logger:   logger,
	}
}

// StartHealthServer starts the health check and metrics server.
func (a *App) StartHealthServer(ctx context.Context) error {
	srv := observability.NewServer(a.database, a.cfg.HealthPort, a.logger)

	if err := srv.Start(ctx); err != nil {
		return fmt.Errorf("health server start: %w", err)
	}

	return nil
}

// RunBot runs the bot mode: resolver setup, the stats gauge refresher and the
// update loop.
func (a *App) RunBot(ctx context.Context) error {
	a.logger.Info().Msg("Starting bot mode")

	resolver, err := a.newResolver(ctx)
	if err != nil {
		return fmt.Errorf("resolver init: %w", err)
	}

	bot, err := telegrambot.New(a.cfg, a.database, resolver, a.logger)
	if err != nil {
		return fmt.Errorf("bot initialization failed: %w", err)
	}

	go a.runStatsRefresher(ctx)

	return bot.Run(ctx)
}

// newResolver builds the configured Instagram resolver. The session resolver
// logs in immediately; a login failure is fatal.
func (a *App) newResolver(ctx context.Context) (instagram.Resolver, error) {
	client := instagram.NewClient(a.cfg.IGRequestTimeout, a.cfg.IGRateLimitRPS, a.cfg.IGMaxRetries, a.logger)

	if !a.cfg.IGSessionEnabled {
		a.logger.Info().Msg("using anonymous Instagram resolver")

		return instagram.NewWebResolver(client), nil
	}

	resolver := instagram.NewSessionResolver(client, a.cfg.IGUsername, a.cfg.IGPassword)
	if err := resolver.Login(ctx); err != nil {
		return nil, fmt.Errorf("instagram login: %w", err)
	}

	a.logger.Info().Str("ig_username", a.cfg.IGUsername).Msg("Instagram login OK")

	return resolver, nil
}

// runStatsRefresher keeps the activity log gauge current.
func (a *App) runStatsRefresher(ctx context.Context) {
	err := worker.TickerLoop(ctx, worker.TickerConfig{
		Name:       "stats-refresher",
		Interval:   a.cfg.StatsRefreshInterval,
		RunOnStart: true,
		Logger:     a.logger,
		OnTick: func(ctx context.Context) {
			count, err := a.database.CountLogs(ctx)
			if err != nil {
				a.logger.Error().Err(err).Msg("failed to count logs")

				return
			}

			observability.LogsTotal.Set(float64(count))
		},
	})
	if err != nil && ctx.Err() == nil {
		a.logger.Error().Err(err).Msg("stats refresher stopped")
	}
}
