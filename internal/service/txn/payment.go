package txn

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
	"github.com/josh-kwaku/campus-ledger/internal/logging"
)

type PaymentRequest struct {
	StudentID int64              `json:"student_id" validate:"required,gt=0"`
	TermCode  string             `json:"term_code" validate:"required,max=16"`
	KindCode  domain.PaymentKind `json:"kind_code" validate:"required,payment_kind"`
	Amount    decimal.Decimal    `json:"amount" validate:"money"`
}

type PaymentResult struct {
	Receipt domain.Receipt
	// Charge is the charge row as left by this unit.
	Charge domain.Charge
	State  State
}

// RunPayment moves req.Amount from the student's wallet to the company
// wallet, adds it to the term charge and records one receipt, all in one
// unit. Cash payments skip the wallet movement and are receipted against
// the company wallet.
func (c *Coordinator) RunPayment(ctx context.Context, req PaymentRequest) (*PaymentResult, error) {
	if err := validateRequest(req); err != nil {
		return nil, fmt.Errorf("RunPayment: %w", err)
	}

	log := logging.FromContext(ctx)
	start := time.Now()

	var result *PaymentResult
	state, err := c.inUnit(ctx, "pay_tuition", func(ctx context.Context, u *unit) error {
		var err error
		result, err = c.applyPayment(ctx, u, req)
		return err
	})
	c.metrics.ObservePayment(string(req.KindCode), outcome(err), time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("RunPayment: %w", err)
	}

	result.State = state
	log.Info("tuition payment committed",
		"receipt_id", result.Receipt.ID,
		"student_id", req.StudentID,
		"term_code", req.TermCode,
		"kind_code", req.KindCode,
		"amount", req.Amount.String(),
		"paid_amt", result.Charge.PaidAmt.String(),
	)
	return result, nil
}

func (c *Coordinator) applyPayment(ctx context.Context, u *unit, req PaymentRequest) (*PaymentResult, error) {
	if err := u.acquire(stageTerm); err != nil {
		return nil, fmt.Errorf("applyPayment: %w", err)
	}
	term, err := c.terms.GetByCodeForUpdate(ctx, u.tx, req.TermCode)
	if err != nil {
		return nil, fmt.Errorf("applyPayment: %w", err)
	}

	if err := u.acquire(stageCharge); err != nil {
		return nil, fmt.Errorf("applyPayment: %w", err)
	}
	charge, err := c.charges.GetForUpdate(ctx, u.tx, req.StudentID, term.ID)
	if err != nil {
		return nil, fmt.Errorf("applyPayment: %w", err)
	}

	if err := u.acquire(stageWallet); err != nil {
		return nil, fmt.Errorf("applyPayment: %w", err)
	}
	walletID, err := c.moveFunds(ctx, u, req)
	if err != nil {
		return nil, fmt.Errorf("applyPayment: %w", err)
	}

	receipt := &domain.Receipt{
		StudentID: req.StudentID,
		TermID:    term.ID,
		WalletID:  walletID,
		KindCode:  req.KindCode,
		Amount:    req.Amount,
	}
	if err := c.receipts.Create(ctx, u.tx, receipt); err != nil {
		return nil, fmt.Errorf("applyPayment: create receipt: %w", err)
	}

	if err := c.charges.ApplyPayment(ctx, u.tx, req.StudentID, term.ID, req.Amount); err != nil {
		return nil, fmt.Errorf("applyPayment: %w", err)
	}
	u.transition(StateMutationsApplied)

	charge.PaidAmt = charge.PaidAmt.Add(req.Amount)
	return &PaymentResult{Receipt: *receipt, Charge: *charge}, nil
}

// moveFunds debits the student and credits the company, student first, and
// returns the wallet the receipt is booked against.
func (c *Coordinator) moveFunds(ctx context.Context, u *unit, req PaymentRequest) (int64, error) {
	if !req.KindCode.MovesWalletFunds() {
		company, err := c.wallets.Resolve(ctx, u.tx, domain.CompanyWallet)
		if err != nil {
			return 0, fmt.Errorf("moveFunds: %w", err)
		}
		u.transition(StateLocksAcquired)
		return company.ID, nil
	}

	student, err := c.wallets.Resolve(ctx, u.tx, domain.StudentWallet(req.StudentID))
	if err != nil {
		return 0, fmt.Errorf("moveFunds: %w", err)
	}
	company, err := c.wallets.Resolve(ctx, u.tx, domain.CompanyWallet)
	if err != nil {
		return 0, fmt.Errorf("moveFunds: %w", err)
	}
	u.transition(StateLocksAcquired)

	if err := c.wallets.Debit(ctx, u.tx, student.ID, req.Amount); err != nil {
		return 0, fmt.Errorf("moveFunds: %w", err)
	}
	if err := c.wallets.Credit(ctx, u.tx, company.ID, req.Amount); err != nil {
		return 0, fmt.Errorf("moveFunds: %w", err)
	}
	return student.ID, nil
}
