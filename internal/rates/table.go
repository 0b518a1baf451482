package rates

import (
	"github.com/shopspring/decimal"

	"github.com/sand/crypto-exchanger-app/backend/internal/entities"
)

// forwardQuote is one hand-maintained market quote. Only the forward
// direction is written down; the inverse is derived at construction, so
// rate[a][b] * rate[b][a] == 1 holds for every pair.
type forwardQuote struct {
	from, to entities.Currency
	rate     string
}

var forwardQuotes = []forwardQuote{
	{entities.BTC, entities.ETH, "15"},
	{entities.BTC, entities.USDT, "60000"},
	{entities.BTC, entities.BNB, "200"},
	{entities.BTC, entities.SOL, "400"},
	{entities.ETH, entities.USDT, "4000"},
	{entities.ETH, entities.BNB, "13"},
	{entities.ETH, entities.SOL, "27"},
	{entities.BNB, entities.USDT, "300"},
	{entities.BNB, entities.SOL, "2"},
	{entities.SOL, entities.USDT, "150"},
}

// Table maps ordered currency pairs to positive multipliers:
// receive = send * rate[from][to]. It is built once at startup and never
// mutated afterwards, so it is safe to share between goroutines.
type Table struct {
	rates map[entities.Currency]map[entities.Currency]decimal.Decimal
}

func NewTable() *Table {
	t := &Table{
		rates: make(map[entities.Currency]map[entities.Currency]decimal.Decimal, len(entities.Currencies())),
	}

	one := decimal.NewFromInt(1)
	for _, q := range forwardQuotes {
		fwd := decimal.RequireFromString(q.rate)
		t.set(q.from, q.to, fwd)
		t.set(q.to, q.from, one.Div(fwd))
	}

	return t
}

func (t *Table) set(from, to entities.Currency, rate decimal.Decimal) {
	byTo, ok := t.rates[from]
	if !ok {
		byTo = make(map[entities.Currency]decimal.Decimal, len(entities.Currencies())-1)
		t.rates[from] = byTo
	}
	byTo[to] = rate
}

// Rate returns the multiplier for converting from into to. Identity pairs are
// not stored; callers special-case them with rate 1.
func (t *Table) Rate(from, to entities.Currency) (decimal.Decimal, bool) {
	byTo, ok := t.rates[from]
	if !ok {
		return decimal.Decimal{}, false
	}
	rate, ok := byTo[to]
	return rate, ok
}
