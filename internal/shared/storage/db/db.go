package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as database/sql driver

	"internship-backend/internal/shared/config"
	"internship-backend/internal/shared/telemetry"
)

// Role picks pool sizing for the process that holds the application store.
type Role string

const (
	RoleServer  Role = "server"
	RoleMigrate Role = "migrate"
)

var sqlOpen = sql.Open

// PoolFor returns the pool sizing for role with any non-zero overrides applied.
func PoolFor(role Role, overrides config.PoolConfig) config.PoolConfig {
	pool := config.PoolConfig{
		MaxOpenConns:    10,
		MaxIdleConns:    5,
		ConnMaxLifetime: time.Hour,
		ConnMaxIdleTime: 2 * time.Minute,
		PingTimeout:     5 * time.Second,
	}
	if role == RoleMigrate {
		// goose runs each migration on a single session.
		pool.MaxOpenConns = 1
		pool.MaxIdleConns = 1
	}

	if overrides.MaxOpenConns > 0 {
		pool.MaxOpenConns = overrides.MaxOpenConns
	}
	if overrides.MaxIdleConns > 0 {
		pool.MaxIdleConns = overrides.MaxIdleConns
	}
	if overrides.ConnMaxLifetime > 0 {
		pool.ConnMaxLifetime = overrides.ConnMaxLifetime
	}
	if overrides.ConnMaxIdleTime > 0 {
		pool.ConnMaxIdleTime = overrides.ConnMaxIdleTime
	}
	if overrides.PingTimeout > 0 {
		pool.PingTimeout = overrides.PingTimeout
	}
	if pool.MaxIdleConns > pool.MaxOpenConns {
		pool.MaxIdleConns = pool.MaxOpenConns
	}
	return pool
}

// Open connects to the application store named by cfg.DatabaseURL, sizes the
// pool for role and checks the connection before returning it.
func Open(ctx context.Context, cfg config.Config, role Role) (*sql.DB, error) {
	dsn := strings.TrimSpace(cfg.DatabaseURL)
	if dsn == "" {
		return nil, &config.Error{Key: "DATABASE_URL", Reason: "is empty"}
	}
	target, err := pgx.ParseConfig(dsn)
	if err != nil {
		return nil, &config.Error{Key: "DATABASE_URL", Reason: err.Error()}
	}

	store, err := sqlOpen("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open application store: %w", err)
	}

	pool := PoolFor(role, cfg.DBPool)
	store.SetMaxOpenConns(pool.MaxOpenConns)
	store.SetMaxIdleConns(pool.MaxIdleConns)
	store.SetConnMaxLifetime(pool.ConnMaxLifetime)
	store.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	pingCtx, cancel := context.WithTimeout(ctx, pool.PingTimeout)
	defer cancel()
	if err := store.PingContext(pingCtx); err != nil {
		_ = store.Close()
		return nil, fmt.Errorf("reach application store %s/%s: %w", target.Host, target.Database, err)
	}

	telemetry.Info("store.pool_ready", map[string]any{
		"role":     string(role),
		"host":     target.Host,
		"database": target.Database,
		"max_open": pool.MaxOpenConns,
		"max_idle": pool.MaxIdleConns,
	})
	return store, nil
}
