// Command migrate creates the booking_events table used by the audit
// trail. The scheduling core itself is in-memory and needs no schema.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/campushq/scheduling-api/pkg/config"
	"github.com/campushq/scheduling-api/pkg/database"
)

const schema = `
CREATE TABLE IF NOT EXISTS booking_events (
    id           TEXT PRIMARY KEY,
    kind         TEXT NOT NULL,
    outcome      TEXT NOT NULL,
    subject_id   TEXT NOT NULL DEFAULT '',
    classroom_id TEXT NOT NULL DEFAULT '',
    professor_id TEXT NOT NULL DEFAULT '',
    booking_date TEXT NOT NULL DEFAULT '',
    time_slot    TEXT NOT NULL DEFAULT '',
    detail       TEXT NOT NULL DEFAULT '',
    request_id   TEXT NOT NULL DEFAULT '',
    created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_booking_events_classroom
    ON booking_events (classroom_id, created_at DESC);
`

func main() {
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 10*time.Second, "migration timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("failed to connect postgres: %v", err)
	}
	defer db.Close() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("booking_events schema is up to date")
}
