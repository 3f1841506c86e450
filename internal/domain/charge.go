package domain

import "github.com/shopspring/decimal"

type Charge struct {
	StudentID int64
	TermID    int64
	DueAmt    decimal.Decimal
	PaidAmt   decimal.Decimal
}

// Outstanding may be negative: overpayment is accepted.
func (c *Charge) Outstanding() decimal.Decimal {
	return c.DueAmt.Sub(c.PaidAmt)
}
