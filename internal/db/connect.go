package db

import (
	"context"
	"fmt"
	"time"

	"root_tycoon/internal/logger"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Connect opens the pool and pings it. Pool size comes from the DSN
// (pool_max_conns) when set.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConnIdleTime = 5 * time.Minute
	cfg.HealthCheckPeriod = 30 * time.Second

	db, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create database pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.Ping(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("database connected", "max_conns", cfg.MaxConns)
	return db, nil
}

// MustConnect is Connect for process startup.
func MustConnect(dsn string) *pgxpool.Pool {
	db, err := Connect(context.Background(), dsn)
	if err != nil {
		logger.Fatal("database unavailable", "error", err)
	}
	return db
}
