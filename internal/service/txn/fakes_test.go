package txn

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
)

// fakeStore backs every repository interface and records the calls made
// against it, in order.
type fakeStore struct {
	calls []string

	term       *domain.Term
	charge     *domain.Charge
	wallets    map[domain.WalletOwner]*domain.Wallet
	enrolment  *domain.Enrolment
	nextID     int64
	debitErr   error
	receiptErr error
	auditErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		term:   &domain.Term{ID: 3, Code: "2025FA"},
		charge: &domain.Charge{StudentID: 7, TermID: 3, DueAmt: decimal.NewFromInt(5000), PaidAmt: decimal.Zero},
		wallets: map[domain.WalletOwner]*domain.Wallet{
			domain.StudentWallet(7): {ID: 70, Owner: domain.StudentWallet(7), Balance: decimal.NewFromInt(1000)},
			domain.CompanyWallet:    {ID: 1, Owner: domain.CompanyWallet},
		},
		nextID: 100,
	}
}

func (f *fakeStore) repos() Repositories {
	return Repositories{
		Terms:      f,
		Charges:    f,
		Wallets:    f,
		Receipts:   f,
		Enrolments: fakeEnrolments{f},
		Audits:     fakeAudits{f},
	}
}

func (f *fakeStore) GetByCodeForUpdate(_ context.Context, _ *sql.Tx, code string) (*domain.Term, error) {
	f.calls = append(f.calls, "term")
	if f.term == nil || f.term.Code != code {
		return nil, domain.ErrTermNotFound
	}
	return f.term, nil
}

func (f *fakeStore) GetForUpdate(_ context.Context, _ *sql.Tx, studentID, termID int64) (*domain.Charge, error) {
	f.calls = append(f.calls, "charge")
	if f.charge == nil || f.charge.StudentID != studentID || f.charge.TermID != termID {
		return nil, domain.ErrChargeNotFound
	}
	c := *f.charge
	return &c, nil
}

func (f *fakeStore) ApplyPayment(_ context.Context, _ *sql.Tx, _, _ int64, amount decimal.Decimal) error {
	f.calls = append(f.calls, "apply")
	f.charge.PaidAmt = f.charge.PaidAmt.Add(amount)
	return nil
}

func (f *fakeStore) Resolve(_ context.Context, _ *sql.Tx, owner domain.WalletOwner) (*domain.Wallet, error) {
	f.calls = append(f.calls, "resolve "+owner.String())
	w, ok := f.wallets[owner]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	return w, nil
}

func (f *fakeStore) Debit(_ context.Context, _ *sql.Tx, walletID int64, _ decimal.Decimal) error {
	f.calls = append(f.calls, fmt.Sprintf("debit %d", walletID))
	return f.debitErr
}

func (f *fakeStore) Credit(_ context.Context, _ *sql.Tx, walletID int64, _ decimal.Decimal) error {
	f.calls = append(f.calls, fmt.Sprintf("credit %d", walletID))
	return nil
}

func (f *fakeStore) Create(_ context.Context, _ *sql.Tx, receipt *domain.Receipt) error {
	f.calls = append(f.calls, "receipt")
	if f.receiptErr != nil {
		return f.receiptErr
	}
	f.nextID++
	receipt.ID = f.nextID
	return nil
}

type fakeEnrolments struct{ *fakeStore }

func (f fakeEnrolments) GetForUpdate(_ context.Context, _ *sql.Tx, studentID, offeringID int64) (*domain.Enrolment, error) {
	f.calls = append(f.calls, "enrol")
	e := f.enrolment
	if e == nil || e.StudentID != studentID || e.OfferingID != offeringID {
		return nil, domain.ErrEnrolmentNotFound
	}
	return e, nil
}

func (f fakeEnrolments) UpdateGrade(_ context.Context, _ *sql.Tx, _, _ int64, grade string) error {
	f.calls = append(f.calls, "grade "+grade)
	return nil
}

type fakeAudits struct{ *fakeStore }

func (f fakeAudits) Create(_ context.Context, _ *sql.Tx, audit *domain.MarkAudit) error {
	f.calls = append(f.calls, "audit")
	if f.auditErr != nil {
		return f.auditErr
	}
	f.nextID++
	audit.ID = f.nextID
	return nil
}
