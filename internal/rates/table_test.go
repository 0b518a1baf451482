package rates

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/sand/crypto-exchanger-app/backend/internal/entities"
)

func TestTableCoversEveryPair(t *testing.T) {
	table := NewTable()

	for _, from := range entities.Currencies() {
		for _, to := range entities.Currencies() {
			if from == to {
				continue
			}

			rate, ok := table.Rate(from, to)
			require.True(t, ok, "missing rate for %s -> %s", from, to)
			require.True(t, rate.IsPositive(), "rate for %s -> %s must be positive", from, to)
		}
	}
}

func TestTableForwardAndInverseAreReciprocal(t *testing.T) {
	table := NewTable()
	one := decimal.NewFromInt(1)
	tolerance := decimal.RequireFromString("0.000000001")

	for _, from := range entities.Currencies() {
		for _, to := range entities.Currencies() {
			if from == to {
				continue
			}

			fwd, ok := table.Rate(from, to)
			require.True(t, ok)
			inv, ok := table.Rate(to, from)
			require.True(t, ok)

			diff := fwd.Mul(inv).Sub(one).Abs()
			require.True(t, diff.LessThan(tolerance),
				"rate[%s][%s] * rate[%s][%s] = %s, want 1", from, to, to, from, fwd.Mul(inv))
		}
	}
}

func TestTableKnownRates(t *testing.T) {
	table := NewTable()

	btcEth, ok := table.Rate(entities.BTC, entities.ETH)
	require.True(t, ok)
	require.True(t, btcEth.Equal(decimal.NewFromInt(15)))

	btcUsdt, ok := table.Rate(entities.BTC, entities.USDT)
	require.True(t, ok)
	require.True(t, btcUsdt.Equal(decimal.NewFromInt(60000)))
}

func TestTableHasNoIdentityEntries(t *testing.T) {
	table := NewTable()

	for _, c := range entities.Currencies() {
		_, ok := table.Rate(c, c)
		require.False(t, ok, "identity pair %s must not be stored", c)
	}
}
