// Package app assembles services, stores and the HTTP router into a runnable
// server.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/api"
	"github.com/recipebox/recipe-api/internal/core/service"
	"github.com/recipebox/recipe-api/internal/pkg/config"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	Echo  *echo.Echo
	Users *service.UserService
	Auth  *service.AuthService
	Tags  *service.TagService

	cfg    *config.Config
	stores *Stores
	log    zerolog.Logger
}

// New opens the configured stores and wires the application on top of them.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	stores, err := OpenStores(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("open stores: %w", err)
	}
	return NewWithStores(cfg, stores, log, prometheus.NewRegistry()), nil
}

// NewWithStores wires the application on already opened stores.
func NewWithStores(cfg *config.Config, stores *Stores, log zerolog.Logger, registry *prometheus.Registry) *App {
	users := service.NewUserService(stores.Users, stores.Tokens, log)
	auth := service.NewAuthService(stores.Users, stores.Tokens, cfg.JWTSecret, cfg.TokenTTL, log)
	tags := service.NewTagService(stores.Tags, log)

	e := api.NewRouter(api.Deps{
		Users:    users,
		Auth:     auth,
		Tags:     tags,
		Health:   stores.Checks,
		Logger:   log,
		Registry: registry,
	})

	return &App{
		Echo:   e,
		Users:  users,
		Auth:   auth,
		Tags:   tags,
		cfg:    cfg,
		stores: stores,
		log:    log,
	}
}

// Run serves HTTP until ctx is cancelled, then drains in-flight requests.
func (a *App) Run(ctx context.Context) error {
	addr := ":" + a.cfg.Port
	errCh := make(chan error, 1)
	go func() {
		a.log.Info().Str("addr", addr).Str("driver", a.cfg.StoreDriver).Msg("http server listening")
		if err := a.Echo.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := a.Echo.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// Close releases the store connections.
func (a *App) Close(ctx context.Context) error {
	return a.stores.Close(ctx)
}
