package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type PaymentKind string

const (
	PaymentKindCard PaymentKind = "CARD"
	PaymentKindACH  PaymentKind = "ACH"
	PaymentKindCash PaymentKind = "CASH"
)

func (k PaymentKind) IsValid() bool {
	switch k {
	case PaymentKindCard, PaymentKindACH, PaymentKindCash:
		return true
	}
	return false
}

// MovesWalletFunds is false for cash, which is not custodied in wallets.
func (k PaymentKind) MovesWalletFunds() bool {
	return k != PaymentKindCash
}

type Receipt struct {
	ID        int64
	StudentID int64
	TermID    int64
	WalletID  int64
	KindCode  PaymentKind
	Amount    decimal.Decimal
	CreatedAt time.Time
}
