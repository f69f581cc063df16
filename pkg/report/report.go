// Package report renders the balance summary as fixed-width text.
package report

import (
	"fmt"
	"io"

	"github.com/amplatech/advance-ledger/pkg/models"
)

// Write renders the per-advance rows and the four summary figures. Column
// widths follow the ledger report format: row index, issue date, initial
// amount, and current balance, with amounts at two decimal places.
func Write(w io.Writer, advances []models.Advance, summary models.Summary) error {
	if _, err := fmt.Fprintln(w, "Advances:"); err != nil {
		return err
	}
	fmt.Fprintln(w, "----------------------------------------------------------")
	fmt.Fprintf(w, "%10s%11s%17s%20s\n", "Identifier", "Date", "Initial Amt", "Current Balance")

	for i, adv := range advances {
		fmt.Fprintf(w, "%10d%11s%17s%20s\n",
			i+1,
			adv.IssueDate.Format(models.DateLayout),
			adv.InitialAmount.StringFixed(2),
			adv.CurrentAmount.StringFixed(2),
		)
	}

	fmt.Fprintln(w, "\nSummary Statistics:")
	fmt.Fprintln(w, "----------------------------------------------------------")
	fmt.Fprintf(w, "Aggregate Advance Balance: %31s\n", summary.AdvanceBalance.StringFixed(2))
	fmt.Fprintf(w, "Interest Payable Balance: %32s\n", summary.InterestPayable.StringFixed(2))
	fmt.Fprintf(w, "Total Interest Paid: %37s\n", summary.InterestPaid.StringFixed(2))
	_, err := fmt.Fprintf(w, "Balance Applicable to Future Advances: %19s\n", summary.FutureCredit.StringFixed(2))
	return err
}
