// Package database owns the long-lived connections behind the playlist
// store. Connections are acquired once at start-up, shared by every request
// and closed by the caller on shutdown.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Backoff controls how long start-up waits for the database to answer.
type Backoff struct {
	PingTimeout time.Duration
	MaxWait     time.Duration
	Initial     time.Duration
	Max         time.Duration
}

// DefaultBackoff waits up to 30 seconds.
var DefaultBackoff = Backoff{
	PingTimeout: 5 * time.Second,
	MaxWait:     30 * time.Second,
	Initial:     500 * time.Millisecond,
	Max:         5 * time.Second,
}

// OpenPostgres opens a pgx-backed pool and retries until the instance responds.
func OpenPostgres(ctx context.Context, dsn string, backoff Backoff) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := waitForPing(ctx, db.PingContext, backoff); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// ConnectMongo creates a MongoDB client and retries until the primary responds.
func ConnectMongo(ctx context.Context, uri string, backoff Backoff) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetAppName("tracklist").
		SetMaxPoolSize(20))
	if err != nil {
		return nil, fmt.Errorf("connect mongodb: %w", err)
	}

	ping := func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
	if err := waitForPing(ctx, ping, backoff); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// waitForPing calls ping with exponential backoff until it succeeds, the
// context is cancelled or MaxWait elapses.
func waitForPing(ctx context.Context, ping func(context.Context) error, b Backoff) error {
	deadline := time.Now().Add(b.MaxWait)
	backoff := b.Initial
	var lastErr error

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, b.PingTimeout)
		lastErr = ping(pingCtx)
		cancel()

		if lastErr == nil {
			return nil
		}

		// Respect caller cancellation.
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if time.Now().Add(backoff).After(deadline) {
			return lastErr
		}

		log.Warn().Err(lastErr).Int("attempt", attempt).Dur("retry_in", backoff).Msg("Database not ready")

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}

		backoff *= 2
		if backoff > b.Max {
			backoff = b.Max
		}
	}
}
