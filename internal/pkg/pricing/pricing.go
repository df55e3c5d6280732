// internal/pkg/pricing/pricing.go
// Package pricing applies the platform fee to prices and order subtotals.
package pricing

import "github.com/shopspring/decimal"

const DefaultFeeRate = 0.03

// Calculator holds the configured fee rate. All results are rounded to cents.
type Calculator struct {
	rate decimal.Decimal
}

func NewCalculator(rate float64) *Calculator {
	return &Calculator{rate: decimal.NewFromFloat(rate)}
}

// Rate is the fee fraction stored on each product, e.g. 0.03.
func (c *Calculator) Rate() decimal.Decimal {
	return c.rate
}

// FinalPrice is the customer-facing price: base * (1 + rate).
func (c *Calculator) FinalPrice(base decimal.Decimal) decimal.Decimal {
	return base.Mul(decimal.NewFromInt(1).Add(c.rate)).Round(2)
}

// LineTotal is unit price times quantity.
func (c *Calculator) LineTotal(unit decimal.Decimal, quantity int) decimal.Decimal {
	return unit.Mul(decimal.NewFromInt(int64(quantity))).Round(2)
}

// OrderTotals returns the fee on subtotal and the resulting total.
func (c *Calculator) OrderTotals(subtotal decimal.Decimal) (fee, total decimal.Decimal) {
	fee = subtotal.Mul(c.rate).Round(2)
	return fee, subtotal.Add(fee)
}
