package store

import (
	"github.com/amplatech/advance-ledger/pkg/models"
)

// Storage defines the interface for persisting and querying ledger events.
type Storage interface {
	// CreateEvent inserts a single event and fills in its assigned ID.
	CreateEvent(event *models.Event) error

	// CreateEvents inserts a batch of events in one transaction. Used by
	// bulk import so a bad file never leaves a partial load behind.
	CreateEvents(events []*models.Event) error

	// GetAllEvents returns every event ordered ascending by date, the
	// ordering the engine depends on.
	GetAllEvents() ([]models.Event, error)

	Close() error
}
