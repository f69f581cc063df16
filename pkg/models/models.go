package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used throughout the system.
// Events carry day-granularity dates only.
const DateLayout = "2006-01-02"

type EventType string

const (
	EventTypeAdvance EventType = "advance"
	EventTypePayment EventType = "payment"
)

// Event is one row of the ledger's event history. Date is kept as the raw
// YYYY-MM-DD string; the engine parses it and surfaces a parse error rather
// than letting a malformed row slip through as a zero time.
type Event struct {
	ID      int64           `json:"id"`
	Type    EventType       `json:"type"`
	Amount  decimal.Decimal `json:"amount"`
	Date    string          `json:"date"` // YYYY-MM-DD
	BatchID string          `json:"batch_id,omitempty"`
}

// Advance is one issued cash advance. InitialAmount is fixed at issuance;
// CurrentAmount only ever decreases toward zero. A fully paid advance stays
// in the list with CurrentAmount == 0.
type Advance struct {
	ID              int64           `json:"id"`
	InitialAmount   decimal.Decimal `json:"initial_amount"`
	IssueDate       time.Time       `json:"issue_date"`
	CurrentAmount   decimal.Decimal `json:"current_amount"`
	LastAccrualDate time.Time       `json:"last_accrual_date"`
}

// Summary holds the four aggregate figures of a balance report.
type Summary struct {
	AdvanceBalance  decimal.Decimal `json:"advance_balance"`
	InterestPayable decimal.Decimal `json:"interest_payable"`
	InterestPaid    decimal.Decimal `json:"interest_paid"`
	FutureCredit    decimal.Decimal `json:"future_payment_credit"`
}
