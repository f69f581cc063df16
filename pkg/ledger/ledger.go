package ledger

import (
	"errors"
	"fmt"
	"time"

	"github.com/amplatech/advance-ledger/pkg/models"
	"github.com/shopspring/decimal"
)

// DailyInterestRate is the simple daily interest rate applied to the unpaid
// portion of every outstanding advance. Kept as an exact decimal so interest
// math never touches binary floating point.
var DailyInterestRate = decimal.RequireFromString("0.00035")

// ErrOutOfOrderEvent is returned when an event's date precedes the date of an
// event already processed. The engine trusts the store to order events, but a
// silently misordered stream would produce a wrong ledger, so it fails fast.
var ErrOutOfOrderEvent = errors.New("event out of order")

// Engine computes the advance/interest state of a ledger by replaying its
// full event history. One Engine serves one report computation: construct it,
// call Summarize once, then read Advances for row-level reporting. There is
// no shared or persisted engine state between runs.
type Engine struct {
	advances []models.Advance

	// Advances before this index are fully paid and never revisited by the
	// accrual or reduction passes.
	firstUnpaid int

	advanceBalance  decimal.Decimal
	interestPayable decimal.Decimal
	interestPaid    decimal.Decimal
	futureCredit    decimal.Decimal

	lastEventDate time.Time
	seenEvent     bool
}

// NewEngine creates an empty engine.
func NewEngine() *Engine {
	return &Engine{
		advanceBalance:  decimal.Zero,
		interestPayable: decimal.Zero,
		interestPaid:    decimal.Zero,
		futureCredit:    decimal.Zero,
	}
}

// Summarize replays the event stream, which must be sorted ascending by date,
// and returns the aggregate figures as of endDate (YYYY-MM-DD). Events dated
// after endDate are dropped. Interest is accrued inclusive through endDate
// itself, so the final accrual runs to the day after.
func (e *Engine) Summarize(events []models.Event, endDate string) (models.Summary, error) {
	cutoff, err := time.Parse(models.DateLayout, endDate)
	if err != nil {
		return models.Summary{}, fmt.Errorf("invalid end date %q: %w", endDate, err)
	}

	for _, ev := range events {
		if err := e.ProcessEvent(ev, cutoff); err != nil {
			return models.Summary{}, err
		}
	}

	e.interestPayable = e.accruedInterest(cutoff.AddDate(0, 0, 1))

	return models.Summary{
		AdvanceBalance:  e.advanceBalance,
		InterestPayable: e.interestPayable,
		InterestPaid:    e.interestPaid,
		FutureCredit:    e.futureCredit,
	}, nil
}

// ProcessEvent routes a single event. Events dated strictly after the cutoff
// are dropped without touching state; unknown event types are ignored.
func (e *Engine) ProcessEvent(ev models.Event, cutoff time.Time) error {
	date, err := time.Parse(models.DateLayout, ev.Date)
	if err != nil {
		return fmt.Errorf("event %d: invalid date %q: %w", ev.ID, ev.Date, err)
	}

	if e.seenEvent && date.Before(e.lastEventDate) {
		return fmt.Errorf("event %d dated %s precedes %s: %w",
			ev.ID, ev.Date, e.lastEventDate.Format(models.DateLayout), ErrOutOfOrderEvent)
	}
	e.lastEventDate = date
	e.seenEvent = true

	if date.After(cutoff) {
		return nil
	}

	switch ev.Type {
	case models.EventTypeAdvance:
		e.issueAdvance(ev, date)
	case models.EventTypePayment:
		e.applyPayment(ev.Amount, date)
	}
	return nil
}

// issueAdvance appends a new advance, netting any banked future-payment
// credit against it first. A credit covering the whole amount leaves the
// advance fully pre-paid at creation; it will never accrue interest.
func (e *Engine) issueAdvance(ev models.Event, issueDate time.Time) {
	adv := models.Advance{
		ID:              ev.ID,
		InitialAmount:   ev.Amount,
		IssueDate:       issueDate,
		CurrentAmount:   decimal.Zero,
		LastAccrualDate: issueDate,
	}

	switch {
	case !e.futureCredit.IsPositive():
		adv.CurrentAmount = ev.Amount
		e.advanceBalance = e.advanceBalance.Add(ev.Amount)
	case e.futureCredit.GreaterThan(ev.Amount):
		e.futureCredit = e.futureCredit.Sub(ev.Amount)
		e.advanceBalance = decimal.Zero
	default:
		// Credit covers part (or exactly all) of the advance.
		adv.CurrentAmount = ev.Amount.Sub(e.futureCredit)
		e.advanceBalance = e.advanceBalance.Add(adv.CurrentAmount)
		e.futureCredit = decimal.Zero
	}

	e.advances = append(e.advances, adv)
}

// applyPayment runs the settlement waterfall: interest first, then principal
// oldest advance first, then any remainder banked as future-payment credit.
// The interest payable figure is recomputed in full at every payment rather
// than tracked incrementally.
func (e *Engine) applyPayment(amount decimal.Decimal, eventDate time.Time) {
	e.interestPayable = e.accruedInterest(eventDate)

	if amount.GreaterThan(e.interestPayable) {
		e.interestPaid = e.interestPaid.Add(e.interestPayable)
	} else {
		e.interestPaid = e.interestPaid.Add(amount)
	}

	remaining := amount.Sub(e.interestPayable)
	if !remaining.IsPositive() {
		// Payment absorbed entirely by interest; principal untouched.
		return
	}

	e.reduceAdvances(remaining, eventDate)

	surplus := remaining.Sub(e.advanceBalance)
	if surplus.IsPositive() {
		e.advanceBalance = decimal.Zero
		e.futureCredit = e.futureCredit.Add(surplus)
	} else {
		e.advanceBalance = e.advanceBalance.Sub(remaining)
	}
}

// accruedInterest returns simple interest owed across all outstanding
// advances for whole days elapsed up to asOf. Read-only: accrual dates are
// advanced by reduceAdvances, not here.
func (e *Engine) accruedInterest(asOf time.Time) decimal.Decimal {
	total := decimal.Zero
	for i := e.firstUnpaid; i < len(e.advances); i++ {
		adv := &e.advances[i]
		if adv.LastAccrualDate.After(asOf) || adv.CurrentAmount.IsZero() {
			continue
		}
		days := wholeDays(adv.LastAccrualDate, asOf)
		if days == 0 {
			continue
		}
		total = total.Add(adv.CurrentAmount.Mul(DailyInterestRate).Mul(decimal.NewFromInt(days)))
	}
	return total
}

// reduceAdvances applies remaining toward principal in strict issuance order,
// starting at the first unpaid advance. If the walk exhausts the list with
// money left over, it simply stops; the caller banks the remainder. Every
// advance from the stopping point onward has its accrual date reset to the
// event date so future accrual measures from the latest payment, not from
// issuance.
func (e *Engine) reduceAdvances(remaining decimal.Decimal, eventDate time.Time) {
	i := e.firstUnpaid
	for remaining.IsPositive() {
		if i >= len(e.advances) {
			break
		}
		adv := &e.advances[i]

		next := remaining.Sub(adv.CurrentAmount)
		if remaining.GreaterThan(adv.CurrentAmount) {
			adv.CurrentAmount = decimal.Zero
			e.firstUnpaid++
		} else {
			adv.CurrentAmount = adv.CurrentAmount.Sub(remaining)
		}
		adv.LastAccrualDate = eventDate

		remaining = next
		i++
	}

	for j := i; j < len(e.advances); j++ {
		e.advances[j].LastAccrualDate = eventDate
	}
}

// Advances returns the advance list in issuance order, including fully paid
// advances, for row-level reporting.
func (e *Engine) Advances() []models.Advance {
	return e.advances
}

// OutstandingPrincipal recomputes the total unpaid principal from the advance
// list itself. The aggregate balance carried through the waterfall matches
// this sum; recomputing from the detail rows gives callers an independent
// check.
func (e *Engine) OutstandingPrincipal() decimal.Decimal {
	total := decimal.Zero
	for i := e.firstUnpaid; i < len(e.advances); i++ {
		total = total.Add(e.advances[i].CurrentAmount)
	}
	return total
}

func wholeDays(from, to time.Time) int64 {
	return int64(to.Sub(from) / (24 * time.Hour))
}
