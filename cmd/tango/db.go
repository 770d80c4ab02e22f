package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"tango/internal/config"
	"tango/internal/migrations"
	"tango/internal/repository"
	"tango/internal/repository/postgres"
	"tango/internal/repository/sqlite"

	_ "github.com/lib/pq"
	"go.uber.org/zap"
)

// storeHandle bundles the repositories of one open database
type storeHandle struct {
	db    *sql.DB
	kv    repository.KVRepository
	users repository.UserRepository
}

func (s *storeHandle) close() {
	s.db.Close()
}

// openStore connects to the configured database and brings its schema up to date
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storeHandle, error) {
	db, err := connectDatabase(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	if err := migrations.Up(db, cfg.Store.Driver, logger); err != nil {
		db.Close()
		return nil, err
	}

	switch cfg.Store.Driver {
	case config.DriverPostgres:
		return &storeHandle{db: db, kv: postgres.NewKVRepo(db), users: postgres.NewUserRepo(db)}, nil
	default:
		return &storeHandle{db: db, kv: sqlite.NewKVRepo(db), users: sqlite.NewUserRepo(db)}, nil
	}
}

// connectDatabase opens the store database. PostgreSQL is retried while it starts up.
func connectDatabase(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*sql.DB, error) {
	if cfg.Store.Driver == config.DriverSQLite {
		logger.Debug("Opening sqlite store", zap.String("path", cfg.Store.SQLitePath))
		return sqlite.Open(cfg.Store.SQLitePath)
	}

	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", cfg.DSN())
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
		} else if err = db.PingContext(ctx); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
		} else {
			// Connection successful
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(5)
			db.SetConnMaxLifetime(5 * time.Minute)
			return db, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryDelay):
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}
