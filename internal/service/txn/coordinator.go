// Package txn runs tuition payments and grade posts as single units of work
// over the campus store. Every unit takes its row locks in the same order
// (term, charge, wallet, enrolment) and either commits all of its writes or
// none of them.
package txn

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
	"github.com/josh-kwaku/campus-ledger/internal/metrics"
)

type termRepo interface {
	GetByCodeForUpdate(ctx context.Context, tx *sql.Tx, code string) (*domain.Term, error)
}

type chargeRepo interface {
	GetForUpdate(ctx context.Context, tx *sql.Tx, studentID, termID int64) (*domain.Charge, error)
	ApplyPayment(ctx context.Context, tx *sql.Tx, studentID, termID int64, amount decimal.Decimal) error
}

type walletRepo interface {
	Resolve(ctx context.Context, tx *sql.Tx, owner domain.WalletOwner) (*domain.Wallet, error)
	Debit(ctx context.Context, tx *sql.Tx, walletID int64, amount decimal.Decimal) error
	Credit(ctx context.Context, tx *sql.Tx, walletID int64, amount decimal.Decimal) error
}

type receiptRepo interface {
	Create(ctx context.Context, tx *sql.Tx, receipt *domain.Receipt) error
}

type enrolRepo interface {
	GetForUpdate(ctx context.Context, tx *sql.Tx, studentID, offeringID int64) (*domain.Enrolment, error)
	UpdateGrade(ctx context.Context, tx *sql.Tx, studentID, offeringID int64, grade string) error
}

type auditRepo interface {
	Create(ctx context.Context, tx *sql.Tx, audit *domain.MarkAudit) error
}

type Repositories struct {
	Terms      termRepo
	Charges    chargeRepo
	Wallets    walletRepo
	Receipts   receiptRepo
	Enrolments enrolRepo
	Audits     auditRepo
}

type Coordinator struct {
	db          *sql.DB
	terms       termRepo
	charges     chargeRepo
	wallets     walletRepo
	receipts    receiptRepo
	enrolments  enrolRepo
	audits      auditRepo
	metrics     *metrics.Recorder
	lockTimeout time.Duration
}

type Option func(*Coordinator)

// WithLockTimeout bounds every row-lock wait inside a unit. Zero or negative
// leaves waits unbounded.
func WithLockTimeout(d time.Duration) Option {
	return func(c *Coordinator) { c.lockTimeout = d }
}

func WithMetrics(r *metrics.Recorder) Option {
	return func(c *Coordinator) { c.metrics = r }
}

func NewCoordinator(db *sql.DB, repos Repositories, opts ...Option) *Coordinator {
	c := &Coordinator{
		db:         db,
		terms:      repos.Terms,
		charges:    repos.Charges,
		wallets:    repos.Wallets,
		receipts:   repos.Receipts,
		enrolments: repos.Enrolments,
		audits:     repos.Audits,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ping reports whether the store is reachable.
func (c *Coordinator) Ping(ctx context.Context) error {
	if err := c.db.PingContext(ctx); err != nil {
		return classify(err)
	}
	return nil
}
