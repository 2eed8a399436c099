package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/99minutos/catalog-api/internal/api"
	"github.com/99minutos/catalog-api/internal/api/middleware"
	"github.com/99minutos/catalog-api/internal/core/ports"
	"github.com/99minutos/catalog-api/internal/core/service"
	"github.com/99minutos/catalog-api/internal/infrastructure/db/memory"
	httpserver "github.com/99minutos/catalog-api/internal/infrastructure/http"
	"github.com/99minutos/catalog-api/internal/infrastructure/http/handlers"
	"github.com/99minutos/catalog-api/internal/infrastructure/queue"
	"github.com/99minutos/catalog-api/internal/pkg/config"
	"github.com/99minutos/catalog-api/internal/pkg/security"
	"github.com/99minutos/catalog-api/pkg/logger"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Runs the HTTP API until interrupted. Configuration comes from the
environment; in development a .env file is read first.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cmd.Context())
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		App:     cfg.AppName,
		Version: cfg.AppVersion,
	})

	g, ctx := errgroup.WithContext(ctx)

	pool := queue.NewHashPool(cfg.Auth.HashWorkers, cfg.Auth.BcryptCost, log)
	pool.Start(ctx)

	users := memory.NewUserStore()
	items := memory.NewItemStore()
	tokens := security.NewTokenManager(cfg.Auth.JWTSecret, cfg.TokenTTL())

	authSvc := service.NewAuthService(users, pool, tokens, cfg.Users.AllowSelfElevation, log)
	userSvc := service.NewUserService(users, items, service.DeletePolicy(cfg.Users.DeletePolicy), cfg.Users.AllowSelfElevation, log)
	itemSvc := service.NewItemService(items, log)

	admin, err := service.Seed(ctx, authSvc, itemSvc, service.SeedConfig{
		AdminEmail:        cfg.Seed.AdminEmail,
		AdminUsername:     cfg.Seed.AdminUsername,
		AdminPassword:     cfg.Seed.AdminPassword,
		AdminPasswordHash: cfg.Seed.AdminPasswordHash,
		SampleItems:       cfg.Seed.SampleItems,
	})
	if err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	log.Info().Int64("user_id", admin.ID).Str("username", admin.Username).Bool("sample_items", cfg.Seed.SampleItems).Msg("seed data created")

	e := api.NewRouter(api.Config{
		AppName:            cfg.AppName,
		AppVersion:         cfg.AppVersion,
		Debug:              cfg.Debug,
		CORSAllowedOrigins: cfg.HTTP.CORSAllowedOrigins,
		RateLimitRequests:  cfg.HTTP.RateLimitRequests,
		RateLimitPeriod:    cfg.HTTP.RateLimitPeriod,
		OptionalInactive:   middleware.InactivePolicy(cfg.Auth.OptionalInactive),
	}, api.Deps{
		Auth:  authSvc,
		Users: userSvc,
		Items: itemSvc,
		Probes: map[string]handlers.Probe{
			"users":     users.Count,
			"items":     itemCount(items),
			"hash_pool": pool.Pending,
		},
		Log: log,
	})

	srv := httpserver.NewServer(e, cfg.Port, cfg.ShutdownTimeout, log)
	g.Go(func() error {
		return srv.Run(ctx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info().Msg("server stopped")
	return nil
}

func itemCount(items *memory.ItemStore) handlers.Probe {
	return func(ctx context.Context) (int64, error) {
		return items.Count(ctx, ports.ItemFilter{})
	}
}
