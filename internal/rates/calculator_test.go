package rates

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sand/crypto-exchanger-app/backend/internal/entities"
)

func TestCalculatorQuote(t *testing.T) {
	calc := NewCalculator(NewTable())

	tests := []struct {
		name       string
		sendAmount string
		from       entities.Currency
		to         entities.Currency
		want       string
	}{
		{"btc to eth", "1", entities.BTC, entities.ETH, "15.0000"},
		{"btc to usdt", "2", entities.BTC, entities.USDT, "120000.0000"},
		{"fractional send amount", "0.01", entities.BTC, entities.ETH, "0.1500"},
		{"inverse rate rounds to four decimals", "1", entities.ETH, entities.BTC, "0.0667"},
		{"round trip through inverse", "15", entities.ETH, entities.BTC, "1.0000"},
		{"identity pair", "1.23456", entities.BTC, entities.BTC, "1.2346"},
		{"identity pair without table entry", "3", entities.SOL, entities.SOL, "3.0000"},
		{"zero amount", "0", entities.BTC, entities.ETH, "0.00"},
		{"negative amount", "-1", entities.BTC, entities.ETH, "0.00"},
		{"non-numeric amount", "abc", entities.BTC, entities.ETH, "0.00"},
		{"empty amount", "", entities.BTC, entities.ETH, "0.00"},
		{"whitespace is tolerated", " 1 ", entities.BTC, entities.ETH, "15.0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, calc.Quote(tt.sendAmount, tt.from, tt.to))
		})
	}
}

// The defensive "N/A" branch must be unreachable for supported currencies.
func TestCalculatorNeverFallsBackForSupportedPairs(t *testing.T) {
	calc := NewCalculator(NewTable())

	for _, from := range entities.Currencies() {
		for _, to := range entities.Currencies() {
			require.NotEqual(t, NoQuote, calc.Quote("1", from, to), "%s -> %s", from, to)
		}
	}
}

func TestCalculatorFallsBackForUnknownPair(t *testing.T) {
	calc := NewCalculator(NewTable())

	require.Equal(t, NoQuote, calc.Quote("1", entities.Currency("DOGE"), entities.BTC))
}
