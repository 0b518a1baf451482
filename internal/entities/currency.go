package entities

import "strings"

// Currency is a supported cryptocurrency code.
type Currency string

const (
	BTC  Currency = "BTC"
	ETH  Currency = "ETH"
	USDT Currency = "USDT"
	BNB  Currency = "BNB"
	SOL  Currency = "SOL"
)

// Currencies returns all supported currencies in a fixed order.
func Currencies() []Currency {
	return []Currency{BTC, ETH, USDT, BNB, SOL}
}

// ParseCurrency resolves a currency code case-insensitively. The web client
// historically submits lowercase ids ("btc"), the store keeps uppercase.
func ParseCurrency(code string) (Currency, bool) {
	c := Currency(strings.ToUpper(strings.TrimSpace(code)))
	switch c {
	case BTC, ETH, USDT, BNB, SOL:
		return c, true
	}
	return "", false
}

// NormalizeCurrency uppercases a code without validating it. Persistence
// deliberately accepts whatever the caller sent; only presence is checked at
// the boundary.
func NormalizeCurrency(code string) Currency {
	return Currency(strings.ToUpper(strings.TrimSpace(code)))
}

func (c Currency) Valid() bool {
	_, ok := ParseCurrency(string(c))
	return ok
}

func (c Currency) String() string {
	return string(c)
}
