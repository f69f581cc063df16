package store

import (
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amplatech/advance-ledger/pkg/models"
)

func TestSQLiteStore_CreateAndGetEvents(t *testing.T) {
	dbFile := "test_store_events.db"
	os.Remove(dbFile)
	defer os.Remove(dbFile)

	s, err := NewSQLiteStore(dbFile)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	event := &models.Event{
		Type:   models.EventTypeAdvance,
		Amount: decimal.NewFromFloat(500.0),
		Date:   "2022-01-05",
	}
	if err := s.CreateEvent(event); err != nil {
		t.Fatalf("Failed to create event: %v", err)
	}
	if event.ID == 0 {
		t.Error("Expected event ID to be assigned on insert")
	}

	events, err := s.GetAllEvents()
	if err != nil {
		t.Fatalf("Failed to get events: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Type != models.EventTypeAdvance {
		t.Errorf("Expected type advance, got %s", events[0].Type)
	}
	if !events[0].Amount.Equal(event.Amount) {
		t.Errorf("Expected amount %s, got %s", event.Amount, events[0].Amount)
	}
	if events[0].Date != "2022-01-05" {
		t.Errorf("Expected date 2022-01-05, got %s", events[0].Date)
	}
}

func TestSQLiteStore_EventsOrderedByDate(t *testing.T) {
	dbFile := "test_store_order.db"
	os.Remove(dbFile)
	defer os.Remove(dbFile)

	s, err := NewSQLiteStore(dbFile)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	// Inserted out of date order; reads must come back sorted.
	dates := []string{"2022-03-01", "2022-01-01", "2022-02-01"}
	for _, date := range dates {
		err := s.CreateEvent(&models.Event{
			Type:   models.EventTypePayment,
			Amount: decimal.NewFromInt(10),
			Date:   date,
		})
		if err != nil {
			t.Fatalf("Failed to create event for %s: %v", date, err)
		}
	}

	events, err := s.GetAllEvents()
	if err != nil {
		t.Fatalf("Failed to get events: %v", err)
	}
	want := []string{"2022-01-01", "2022-02-01", "2022-03-01"}
	for i, date := range want {
		if events[i].Date != date {
			t.Errorf("Expected event %d dated %s, got %s", i, date, events[i].Date)
		}
	}
}

func TestSQLiteStore_CreateEventsBatch(t *testing.T) {
	dbFile := "test_store_batch.db"
	os.Remove(dbFile)
	defer os.Remove(dbFile)

	s, err := NewSQLiteStore(dbFile)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	batchID := uuid.New().String()
	batch := []*models.Event{
		{Type: models.EventTypeAdvance, Amount: decimal.NewFromInt(1000), Date: "2022-01-01", BatchID: batchID},
		{Type: models.EventTypePayment, Amount: decimal.NewFromInt(200), Date: "2022-01-10", BatchID: batchID},
	}
	if err := s.CreateEvents(batch); err != nil {
		t.Fatalf("Failed to create batch: %v", err)
	}

	events, err := s.GetAllEvents()
	if err != nil {
		t.Fatalf("Failed to get events: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	for _, event := range events {
		if event.BatchID != batchID {
			t.Errorf("Expected batch ID %s, got %s", batchID, event.BatchID)
		}
	}
}

func TestSQLiteStore_RejectsUnknownEventType(t *testing.T) {
	dbFile := "test_store_check.db"
	os.Remove(dbFile)
	defer os.Remove(dbFile)

	s, err := NewSQLiteStore(dbFile)
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	defer s.Close()

	err = s.CreateEvent(&models.Event{
		Type:   "refund",
		Amount: decimal.NewFromInt(10),
		Date:   "2022-01-01",
	})
	if err == nil {
		t.Error("Expected CHECK constraint to reject unknown event type")
	}
}
