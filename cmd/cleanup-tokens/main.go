// Command cleanup-tokens deletes expired refresh tokens. It is intended to
// be invoked by an external cron job, not as an in-process goroutine.
//
// Requires DATABASE_DSN environment variable to be set.
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	tokenrepo "github.com/casetrace/casetrace-backend/internal/adapter/postgres/token"
)

func main() {
	dsn := os.Getenv("DATABASE_DSN")
	if dsn == "" {
		log.Fatal("DATABASE_DSN environment variable is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	defer pool.Close()

	deleted, err := tokenrepo.New(pool).DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		log.Fatalf("cleanup tokens: %v", err)
	}

	slog.Info("expired refresh tokens removed", slog.Int64("deleted", deleted))
}
