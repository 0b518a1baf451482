package rates

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/sand/crypto-exchanger-app/backend/internal/entities"
)

const (
	quoteScale = 4

	// ZeroQuote is returned for amounts that do not parse to a positive number.
	ZeroQuote = "0.00"

	// NoQuote is the defensive fallback for a pair missing from the table.
	// Unreachable for supported currencies; pinned by an exhaustive test.
	NoQuote = "N/A"
)

// Calculator produces receive-amount quotes. Pure and side-effect free, cheap
// enough to run on every input change.
type Calculator struct {
	table *Table
}

func NewCalculator(table *Table) *Calculator {
	return &Calculator{table: table}
}

// Quote computes the amount received for sending sendAmount of from, rounded
// to 4 decimal places. Identity pairs bypass the table with rate 1.
func (c *Calculator) Quote(sendAmount string, from, to entities.Currency) string {
	amount, err := decimalFromInput(sendAmount)
	if err != nil || !amount.IsPositive() {
		return ZeroQuote
	}

	if from == to {
		return amount.StringFixed(quoteScale)
	}

	rate, ok := c.table.Rate(from, to)
	if !ok {
		return NoQuote
	}

	return amount.Mul(rate).StringFixed(quoteScale)
}

func decimalFromInput(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.TrimSpace(s))
}
