package entities

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want Currency
		ok   bool
	}{
		{"btc", BTC, true},
		{"BTC", BTC, true},
		{" eth ", ETH, true},
		{"usdt", USDT, true},
		{"bnb", BNB, true},
		{"sol", SOL, true},
		{"doge", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ParseCurrency(tt.in)
		require.Equal(t, tt.ok, ok, "input %q", tt.in)
		require.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestNormalizeCurrencyDoesNotValidate(t *testing.T) {
	require.Equal(t, Currency("BTC"), NormalizeCurrency("btc"))
	// Unknown codes pass through: only presence is validated at the boundary.
	require.Equal(t, Currency("DOGE"), NormalizeCurrency(" doge "))
	require.False(t, NormalizeCurrency("doge").Valid())
}
