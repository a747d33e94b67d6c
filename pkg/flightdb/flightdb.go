// Package flightdb keeps a per-flight ingest summary in an embedded
// sqlite database next to the track store. Track data itself lives in
// the binary track files; this is bookkeeping that survives restarts,
// written once when an upload stream disconnects.
package flightdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Register driver
)

// DB wraps the sql.DB connection.
type DB struct {
	*sql.DB
}

// Summary is one flight's ingest bookkeeping row.
type Summary struct {
	FlightID   string
	Departure  string
	Arrival    string
	Points     int64
	TouchDowns int64
	Collapses  int64
	LastSeen   time.Time
}

// Init opens the database at path and runs migrations.
func Init(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("flightdb: create db dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("flightdb: open db: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("flightdb: ping db: %w", err)
	}

	// WAL mode lets readers of the summary table coexist with the
	// writer; the busy timeout covers the remaining write contention.
	if _, err := db.Exec("PRAGMA journal_mode=WAL;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("flightdb: enable WAL mode: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout=30000;"); err != nil {
		db.Close()
		return nil, fmt.Errorf("flightdb: set busy timeout: %w", err)
	}
	db.SetMaxOpenConns(1)

	d := &DB{db}
	if err := d.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("flightdb: migration failed: %w", err)
	}
	return d, nil
}

func (d *DB) migrate() error {
	_, err := d.Exec(`CREATE TABLE IF NOT EXISTS flight_summary (
		flight_id TEXT PRIMARY KEY,
		departure TEXT,
		arrival TEXT,
		points INTEGER,
		touchdowns INTEGER,
		collapses INTEGER,
		last_seen DATETIME
	);`)
	return err
}

// SaveSummary upserts s, accumulating counters across reconnects of the
// same flight so a resumed upload doesn't reset its totals.
func (d *DB) SaveSummary(ctx context.Context, s Summary) error {
	_, err := d.ExecContext(ctx,
		`INSERT INTO flight_summary (flight_id, departure, arrival, points, touchdowns, collapses, last_seen)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(flight_id) DO UPDATE SET
			departure = excluded.departure,
			arrival = excluded.arrival,
			points = points + excluded.points,
			touchdowns = touchdowns + excluded.touchdowns,
			collapses = collapses + excluded.collapses,
			last_seen = excluded.last_seen`,
		s.FlightID, s.Departure, s.Arrival, s.Points, s.TouchDowns, s.Collapses,
		s.LastSeen.UTC().Format("2006-01-02 15:04:05"))
	return err
}

// GetSummary returns the summary for flightID, or nil if none was ever
// recorded.
func (d *DB) GetSummary(ctx context.Context, flightID string) (*Summary, error) {
	row := d.QueryRowContext(ctx,
		`SELECT flight_id, departure, arrival, points, touchdowns, collapses, last_seen
		 FROM flight_summary WHERE flight_id = ?`, flightID)

	var s Summary
	var lastSeen sql.NullString
	err := row.Scan(&s.FlightID, &s.Departure, &s.Arrival, &s.Points, &s.TouchDowns, &s.Collapses, &lastSeen)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if lastSeen.Valid {
		// The driver may return a DATETIME column as a time value, which
		// database/sql renders as RFC 3339 when scanning into a string.
		for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339Nano} {
			if t, perr := time.Parse(layout, lastSeen.String); perr == nil {
				s.LastSeen = t.UTC()
				break
			}
		}
	}
	return &s, nil
}
