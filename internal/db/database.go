package db

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/severetsunamist/real-estate-crm/internal/config"
)

// Database holds the connection pool to the relational store.
type Database struct {
	Pool *pgxpool.Pool
}

// New connects with default retry settings.
func New(cfg *config.Config) (*Database, error) {
	return NewWithRetry(cfg, 5, time.Second)
}

// NewWithRetry creates the connection pool, retrying with exponential
// backoff so a cold-starting database does not kill the process.
func NewWithRetry(cfg *config.Config, maxRetries int, initialDelay time.Duration) (*Database, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = 20
	poolConfig.MinConns = 0
	poolConfig.MaxConnLifetime = time.Hour
	poolConfig.MaxConnIdleTime = 5 * time.Minute
	// Simple protocol keeps connection poolers happy.
	poolConfig.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeSimpleProtocol

	var pool *pgxpool.Pool
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		log.Printf("[DB] Connection attempt %d/%d to %s@%s:%d",
			attempt, maxRetries, poolConfig.ConnConfig.User, poolConfig.ConnConfig.Host, poolConfig.ConnConfig.Port)

		pool, err = pgxpool.NewWithConfig(context.Background(), poolConfig)
		if err == nil {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			err = pool.Ping(ctx)
			cancel()
			if err == nil {
				log.Printf("[DB] Connected on attempt %d", attempt)
				return &Database{Pool: pool}, nil
			}
			pool.Close()
			pool = nil
			lastErr = fmt.Errorf("failed to ping database: %w", err)
		} else {
			lastErr = fmt.Errorf("failed to create connection pool: %w", err)
		}

		if attempt < maxRetries {
			delay := initialDelay * time.Duration(1<<(attempt-1))
			log.Printf("[DB] Attempt %d failed (%v), retrying in %v", attempt, lastErr, delay)
			time.Sleep(delay)
		}
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, lastErr)
}

// Close closes the connection pool.
func (db *Database) Close() {
	if db.Pool != nil {
		db.Pool.Close()
		log.Println("[DB] Connection pool closed")
	}
}

// Health checks if the database is reachable.
func (db *Database) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
