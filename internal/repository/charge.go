package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
)

const chargeColumns = `student_id, term_id, due_amt, paid_amt`

type ChargeRepository struct {
	db *sql.DB
}

func NewChargeRepository(db *sql.DB) *ChargeRepository {
	return &ChargeRepository{db: db}
}

func (r *ChargeRepository) GetForUpdate(ctx context.Context, tx *sql.Tx, studentID, termID int64) (*domain.Charge, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+chargeColumns+` FROM campus.charge
		WHERE student_id = $1 AND term_id = $2 FOR UPDATE`,
		studentID, termID,
	)
	c, err := scanCharge(row)
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("GetForUpdate: student %d term %d: %w", studentID, termID, domain.ErrChargeNotFound)
		}
		return nil, fmt.Errorf("GetForUpdate: %w", err)
	}
	return c, nil
}

// ApplyPayment adds amount to paid_amt. It does not compare against due_amt.
func (r *ChargeRepository) ApplyPayment(ctx context.Context, tx *sql.Tx, studentID, termID int64, amount decimal.Decimal) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE campus.charge SET paid_amt = paid_amt + $1
		WHERE student_id = $2 AND term_id = $3`,
		amount, studentID, termID,
	)
	if err != nil {
		return fmt.Errorf("ApplyPayment: %w", err)
	}
	return mustAffectOne(res, "ApplyPayment", domain.ErrChargeNotFound)
}

func scanCharge(s scanner) (*domain.Charge, error) {
	var c domain.Charge
	if err := s.Scan(&c.StudentID, &c.TermID, &c.DueAmt, &c.PaidAmt); err != nil {
		return nil, err
	}
	return &c, nil
}
