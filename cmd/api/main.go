package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/amplatech/advance-ledger/pkg/config"
	"github.com/amplatech/advance-ledger/pkg/ledger"
	"github.com/amplatech/advance-ledger/pkg/models"
	"github.com/amplatech/advance-ledger/pkg/store"
)

// Server holds the event store behind the HTTP handlers. Every balance
// request replays the full event history through a fresh engine, so handlers
// share no mutable ledger state.
type Server struct {
	storage store.Storage
}

func NewServer(s store.Storage) *Server {
	return &Server{storage: s}
}

func (s *Server) createEventHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type   models.EventType `json:"type"`
		Amount decimal.Decimal  `json:"amount"`
		Date   string           `json:"date"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Type != models.EventTypeAdvance && req.Type != models.EventTypePayment {
		http.Error(w, fmt.Sprintf("Unknown event type %q", req.Type), http.StatusBadRequest)
		return
	}
	if !req.Amount.IsPositive() {
		http.Error(w, "Amount must be positive", http.StatusBadRequest)
		return
	}
	if _, err := time.Parse(models.DateLayout, req.Date); err != nil {
		http.Error(w, "Date must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	event := &models.Event{Type: req.Type, Amount: req.Amount, Date: req.Date}
	if err := s.storage.CreateEvent(event); err != nil {
		log.Printf("Error creating event: %v", err)
		http.Error(w, fmt.Sprintf("Failed to create event: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(event)
}

func (s *Server) listEventsHandler(w http.ResponseWriter, r *http.Request) {
	events, err := s.storage.GetAllEvents()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

type balancesResponse struct {
	AsOf     string           `json:"as_of"`
	Advances []models.Advance `json:"advances"`
	Summary  models.Summary   `json:"summary"`
}

func (s *Server) balancesHandler(w http.ResponseWriter, r *http.Request) {
	asOf := r.URL.Query().Get("as_of")
	if asOf == "" {
		asOf = time.Now().Format(models.DateLayout)
	}
	if _, err := time.Parse(models.DateLayout, asOf); err != nil {
		http.Error(w, "as_of must be YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	events, err := s.storage.GetAllEvents()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	engine := ledger.NewEngine()
	summary, err := engine.Summarize(events, asOf)
	if err != nil {
		log.Printf("Error computing balances: %v", err)
		http.Error(w, fmt.Sprintf("Failed to compute balances: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(balancesResponse{
		AsOf:     asOf,
		Advances: engine.Advances(),
		Summary:  summary,
	})
}

func newRouter(server *Server) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/events", server.listEventsHandler).Methods("GET")
	router.HandleFunc("/events", server.createEventHandler).Methods("POST")
	router.HandleFunc("/balances", server.balancesHandler).Methods("GET")
	return router
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	sqliteStore, err := store.NewSQLiteStore(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to initialize SQLite store: %v", err)
	}
	defer sqliteStore.Close()

	server := NewServer(sqliteStore)

	httpServer := &http.Server{
		Addr:         cfg.APIAddr,
		Handler:      newRouter(server),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.APIAddr)
	log.Fatal(httpServer.ListenAndServe())
}
