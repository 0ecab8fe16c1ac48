// Package history records mod management events in a local SQLite journal,
// giving users an audit trail of installs, state changes, profile switches,
// and update recoveries.
package history

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite journal connection.
type DB struct {
	*sql.DB
}

// Event is a single recorded operation.
type Event struct {
	ID        int64
	Action    string
	ModName   string
	Profile   string
	Detail    string
	CreatedAt time.Time
}

// Actions recorded in the journal.
const (
	ActionInstall        = "install"
	ActionEnable         = "enable"
	ActionDisable        = "disable"
	ActionRemove         = "remove"
	ActionRestoreAll     = "restore-all"
	ActionProfileSwitch  = "profile-switch"
	ActionUpdateRecovery = "update-recovery"
)

// New opens (or creates) the journal database and runs migrations.
func New(path string) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	if _, err := sqlDB.Exec("PRAGMA foreign_keys = ON; PRAGMA journal_mode = WAL;"); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("setting pragmas: %w", err)
	}

	database := &DB{DB: sqlDB}

	if err := database.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return database, nil
}

// Record appends an event to the journal.
func (d *DB) Record(action, modName, profile, detail string) error {
	_, err := d.Exec(`
		INSERT INTO events (action, mod_name, profile, detail)
		VALUES (?, ?, ?, ?)
	`, action, modName, profile, detail)
	if err != nil {
		return fmt.Errorf("recording event: %w", err)
	}
	return nil
}

// Recent returns the newest events, most recent first.
func (d *DB) Recent(limit int) ([]Event, error) {
	rows, err := d.Query(`
		SELECT id, action, mod_name, profile, detail, created_at
		FROM events ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying events: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Action, &e.ModName, &e.Profile, &e.Detail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning event: %w", err)
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
