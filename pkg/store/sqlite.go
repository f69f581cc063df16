package store

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/amplatech/advance-ledger/pkg/models"

	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStore manages the database connection and operations for SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLiteStore and initializes the database.
func NewSQLiteStore(dataSourceName string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("could not open database: %w", err)
	}

	// Manually enable foreign keys and WAL mode
	_, err = db.Exec("PRAGMA foreign_keys = ON;")
	if err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	_, err = db.Exec("PRAGMA journal_mode = WAL;")
	if err != nil {
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("could not connect to database: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("could not initialize schema: %w", err)
	}
	return s, nil
}

// initSchema creates the events table if it doesn't already exist.
// Amounts are stored as TEXT so no decimal precision is lost.
func (s *SQLiteStore) initSchema() error {
	const schema = `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER NOT NULL PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL CHECK (type IN ('advance', 'payment')),
		amount TEXT NOT NULL,
		date_created TEXT NOT NULL,
		batch_id TEXT NOT NULL DEFAULT ''
	);
	CREATE INDEX IF NOT EXISTS idx_events_date_created ON events(date_created);
	`
	_, err := s.db.Exec(schema)
	if err != nil {
		return err
	}
	return nil
}

// CreateEvent inserts a new event and assigns its row ID.
func (s *SQLiteStore) CreateEvent(event *models.Event) error {
	result, err := s.db.Exec(
		`INSERT INTO events (type, amount, date_created, batch_id) VALUES (?, ?, ?, ?)`,
		string(event.Type), event.Amount, event.Date, event.BatchID,
	)
	if err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read inserted event id: %w", err)
	}
	event.ID = id
	return nil
}

// CreateEvents inserts a batch of events within a single transaction.
func (s *SQLiteStore) CreateEvents(events []*models.Event) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO events (type, amount, date_created, batch_id) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, event := range events {
		result, err := stmt.Exec(string(event.Type), event.Amount, event.Date, event.BatchID)
		if err != nil {
			return fmt.Errorf("failed to insert event dated %s: %w", event.Date, err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return fmt.Errorf("failed to read inserted event id: %w", err)
		}
		event.ID = id
	}

	return tx.Commit()
}

// GetAllEvents retrieves all events ordered ascending by date, with row ID as
// the tie-break so same-day events keep insertion order.
func (s *SQLiteStore) GetAllEvents() ([]models.Event, error) {
	rows, err := s.db.Query(`SELECT id, type, amount, date_created, batch_id FROM events ORDER BY date_created ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to get events: %w", err)
	}
	defer rows.Close()

	var events []models.Event
	for rows.Next() {
		var event models.Event
		var eventType string
		if err := rows.Scan(&event.ID, &eventType, &event.Amount, &event.Date, &event.BatchID); err != nil {
			return nil, fmt.Errorf("failed to scan event row: %w", err)
		}
		event.Type = models.EventType(eventType)
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration: %w", err)
	}
	return events, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if err := s.db.Close(); err != nil {
		log.Printf("Error closing database: %v", err)
		return err
	}
	return nil
}
