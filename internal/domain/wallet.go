package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

type OwnerType string

const (
	OwnerTypeStudent OwnerType = "STUDENT"
	OwnerTypeCompany OwnerType = "COMPANY"
)

// WalletOwner identifies a wallet by who holds it. Student wallets carry the
// student id; the institution wallet is the single CompanyWallet value.
type WalletOwner struct {
	Type      OwnerType
	StudentID int64
}

var CompanyWallet = WalletOwner{Type: OwnerTypeCompany}

func StudentWallet(studentID int64) WalletOwner {
	return WalletOwner{Type: OwnerTypeStudent, StudentID: studentID}
}

func (o WalletOwner) IsCompany() bool { return o.Type == OwnerTypeCompany }

func (o WalletOwner) String() string {
	if o.IsCompany() {
		return string(OwnerTypeCompany)
	}
	return fmt.Sprintf("%s:%d", o.Type, o.StudentID)
}

type Wallet struct {
	ID      int64
	Owner   WalletOwner
	Balance decimal.Decimal
}
