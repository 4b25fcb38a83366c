package main

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const (
	dbPingTimeout  = 5 * time.Second
	dbConnectWait  = 30 * time.Second
	dbInitialDelay = 500 * time.Millisecond
	dbMaxDelay     = 5 * time.Second
)

// openDatabase opens the Postgres pool and pings until the instance answers,
// backing off between attempts so a cold-starting database container has time
// to come up before the server gives up.
func openDatabase(ctx context.Context, dsn string, log zerolog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	deadline := time.Now().Add(dbConnectWait)
	delay := dbInitialDelay

	for attempt := 1; ; attempt++ {
		pingCtx, cancel := context.WithTimeout(ctx, dbPingTimeout)
		err = db.PingContext(pingCtx)
		cancel()

		if err == nil {
			return db, nil
		}
		if ctx.Err() != nil || time.Now().After(deadline) {
			break
		}

		log.Warn().Err(err).Int("attempt", attempt).Dur("retry_in", delay).
			Msg("database not ready, retrying")
		time.Sleep(delay)
		delay *= 2
		if delay > dbMaxDelay {
			delay = dbMaxDelay
		}
	}

	_ = db.Close()
	return nil, fmt.Errorf("ping database: %w", err)
}
