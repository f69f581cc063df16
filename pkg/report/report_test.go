package report

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/amplatech/advance-ledger/pkg/models"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(models.DateLayout, s)
	require.NoError(t, err)
	return d
}

func TestWrite_FixedWidthColumns(t *testing.T) {
	advances := []models.Advance{
		{
			InitialAmount: decimal.RequireFromString("1000"),
			CurrentAmount: decimal.RequireFromString("3.5"),
			IssueDate:     date(t, "2022-01-01"),
		},
		{
			InitialAmount: decimal.RequireFromString("250"),
			CurrentAmount: decimal.RequireFromString("0"),
			IssueDate:     date(t, "2022-02-15"),
		},
	}
	summary := models.Summary{
		AdvanceBalance:  decimal.RequireFromString("3.5"),
		InterestPayable: decimal.RequireFromString("0.001225"),
		InterestPaid:    decimal.RequireFromString("3.5"),
		FutureCredit:    decimal.Zero,
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, advances, summary))

	lines := strings.Split(buf.String(), "\n")
	assert.Equal(t, "Advances:", lines[0])
	assert.Equal(t, "Identifier       Date      Initial Amt     Current Balance", lines[2])
	assert.Equal(t, "         1 2022-01-01          1000.00                3.50", lines[3])
	assert.Equal(t, "         2 2022-02-15           250.00                0.00", lines[4])

	assert.Contains(t, buf.String(), "Aggregate Advance Balance:                            3.50")
	assert.Contains(t, buf.String(), "Interest Payable Balance:                             0.00")
	assert.Contains(t, buf.String(), "Total Interest Paid:                                  3.50")
	assert.Contains(t, buf.String(), "Balance Applicable to Future Advances:                0.00")
}

func TestWrite_NoAdvances(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, models.Summary{
		AdvanceBalance:  decimal.Zero,
		InterestPayable: decimal.Zero,
		InterestPaid:    decimal.Zero,
		FutureCredit:    decimal.Zero,
	}))

	out := buf.String()
	assert.Contains(t, out, "Advances:")
	assert.Contains(t, out, "Summary Statistics:")
	assert.NotContains(t, out, "          1")
}
