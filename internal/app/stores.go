package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/recipebox/recipe-api/internal/api/handler"
	"github.com/recipebox/recipe-api/internal/core/ports"
	mongostore "github.com/recipebox/recipe-api/internal/infrastructure/db/mongo"
	redisstore "github.com/recipebox/recipe-api/internal/infrastructure/db/redis"
	sqlitestore "github.com/recipebox/recipe-api/internal/infrastructure/db/sqlite"
	"github.com/recipebox/recipe-api/internal/pkg/config"
)

// Stores bundles the repositories of one persistence profile with the
// readiness checks and shutdown hooks of the connections behind them.
type Stores struct {
	Users  ports.UserRepository
	Tags   ports.TagRepository
	Tokens ports.TokenStore
	Checks []handler.DependencyCheck

	closers []func(context.Context) error
}

// OpenStores connects the backend selected by cfg.StoreDriver.
func OpenStores(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		return openSQLite(ctx, cfg, log)
	case config.DriverMongo:
		return openMongo(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func openSQLite(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	db, err := sqlitestore.Open(ctx, sqlitestore.Config{Path: cfg.SQLite.Path}, log)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.SQLite.Path).Msg("sqlite store ready")
	return NewSQLiteStores(db), nil
}

// NewSQLiteStores wraps an already migrated database.
func NewSQLiteStores(db *sql.DB) *Stores {
	return &Stores{
		Users:  sqlitestore.NewUserRepository(db),
		Tags:   sqlitestore.NewTagRepository(db),
		Tokens: sqlitestore.NewTokenStore(db),
		Checks: []handler.DependencyCheck{
			{Name: "sqlite", Ping: db.PingContext},
		},
		closers: []func(context.Context) error{
			func(context.Context) error { return db.Close() },
		},
	}
}

func openMongo(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Stores, error) {
	client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return nil, err
	}
	if err := mongostore.EnsureIndexes(ctx, db); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo indexes: %w", err)
	}
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongo store ready")

	rdb, err := redisstore.Connect(ctx, redisstore.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis token store ready")

	return &Stores{
		Users:  mongostore.NewUserRepository(db),
		Tags:   mongostore.NewTagRepository(db),
		Tokens: redisstore.NewTokenStore(rdb),
		Checks: []handler.DependencyCheck{
			{Name: "mongodb", Ping: func(ctx context.Context) error { return client.Ping(ctx, nil) }},
			{Name: "redis", Ping: func(ctx context.Context) error { return rdb.Ping(ctx).Err() }},
		},
		closers: []func(context.Context) error{
			func(context.Context) error { return rdb.Close() },
			client.Disconnect,
		},
	}, nil
}

// Close releases every connection, returning all errors encountered.
func (s *Stores) Close(ctx context.Context) error {
	var errs []error
	for _, closeFn := range s.closers {
		if err := closeFn(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
