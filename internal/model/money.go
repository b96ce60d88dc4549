package model

import "github.com/shopspring/decimal"

// Money is a decimal currency amount. Physical quantities (lengths, counts)
// stay float64; only prices and cost totals use decimals.
type Money = decimal.Decimal

// Price builds a Money value from a float literal. Intended for catalog
// seeding and tests; parsed input should go through decimal directly.
func Price(v float64) Money {
	return decimal.NewFromFloat(v)
}
