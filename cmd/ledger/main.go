package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/amplatech/advance-ledger/pkg/config"
	"github.com/amplatech/advance-ledger/pkg/ledger"
	"github.com/amplatech/advance-ledger/pkg/models"
	"github.com/amplatech/advance-ledger/pkg/report"
	"github.com/amplatech/advance-ledger/pkg/store"
)

func usage() {
	fmt.Fprintln(os.Stderr, "Usage: ledger <command> [arguments]")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  create-db             Initialize the event database")
	fmt.Fprintln(os.Stderr, "  drop-db               Delete the event database")
	fmt.Fprintln(os.Stderr, "  load <file>           Load events from a csv file (type,date,amount)")
	fmt.Fprintln(os.Stderr, "  balances [end_date]   Display balance statistics as of end_date (default: today)")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "The database path is taken from LEDGER_DB_PATH (default: db.sqlite3).")
}

func main() {
	log.SetFlags(0)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "create-db":
		err = createDB(cfg.DBPath)
	case "drop-db":
		err = dropDB(cfg.DBPath)
	case "load":
		if len(os.Args) < 3 {
			usage()
			os.Exit(2)
		}
		err = loadCSV(cfg.DBPath, os.Args[2])
	case "balances":
		endDate := time.Now().Format(models.DateLayout)
		if len(os.Args) > 2 {
			endDate = os.Args[2]
		}
		err = printBalances(os.Stdout, cfg.DBPath, endDate)
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func createDB(dbPath string) error {
	if _, err := os.Stat(dbPath); err == nil {
		log.Println("Database already exists")
		return nil
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer s.Close()

	log.Printf("Initialized database at %s", dbPath)
	return nil
}

func dropDB(dbPath string) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		log.Printf("Database does not exist at %s", dbPath)
		return nil
	}
	if err := os.Remove(dbPath); err != nil {
		return fmt.Errorf("failed to delete database: %w", err)
	}
	log.Printf("Deleted database at %s", dbPath)
	return nil
}

func loadCSV(dbPath, filename string) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("database does not exist at %s, create it with the create-db command", dbPath)
	}

	infile, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer infile.Close()

	batchID := uuid.New().String()
	events, err := parseEvents(infile, batchID)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	if err := s.CreateEvents(events); err != nil {
		return fmt.Errorf("failed to load events: %w", err)
	}

	log.Printf("Loaded %d events from %s (batch %s)", len(events), filename, batchID)
	return nil
}

// parseEvents reads csv rows of the form type,date,amount and validates each
// field before anything is inserted, so a bad file fails as a whole.
func parseEvents(r io.Reader, batchID string) ([]*models.Event, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}

	var events []*models.Event
	for i, record := range records {
		if len(record) != 3 {
			return nil, fmt.Errorf("row %d: expected 3 columns, got %d", i+1, len(record))
		}

		eventType := models.EventType(strings.TrimSpace(record[0]))
		if eventType != models.EventTypeAdvance && eventType != models.EventTypePayment {
			return nil, fmt.Errorf("row %d: unknown event type %q", i+1, record[0])
		}

		date := strings.TrimSpace(record[1])
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return nil, fmt.Errorf("row %d: invalid date %q: %w", i+1, record[1], err)
		}

		amount, err := decimal.NewFromString(strings.TrimSpace(record[2]))
		if err != nil {
			return nil, fmt.Errorf("row %d: invalid amount %q: %w", i+1, record[2], err)
		}
		if !amount.IsPositive() {
			return nil, fmt.Errorf("row %d: amount must be positive, got %s", i+1, amount)
		}

		events = append(events, &models.Event{
			Type:    eventType,
			Amount:  amount,
			Date:    date,
			BatchID: batchID,
		})
	}
	return events, nil
}

func printBalances(w io.Writer, dbPath, endDate string) error {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		return fmt.Errorf("database does not exist at %s, create it with the create-db command", dbPath)
	}

	s, err := store.NewSQLiteStore(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer s.Close()

	events, err := s.GetAllEvents()
	if err != nil {
		return err
	}

	engine := ledger.NewEngine()
	summary, err := engine.Summarize(events, endDate)
	if err != nil {
		return err
	}

	return report.Write(w, engine.Advances(), summary)
}
