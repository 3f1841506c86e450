package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
)

const receiptColumns = `receipt_id, student_id, term_id, wallet_id, kind_code, amount, created_at`

type ReceiptRepository struct {
	db *sql.DB
}

func NewReceiptRepository(db *sql.DB) *ReceiptRepository {
	return &ReceiptRepository{db: db}
}

// Create inserts the receipt and fills in its generated id and timestamp.
func (r *ReceiptRepository) Create(ctx context.Context, tx *sql.Tx, receipt *domain.Receipt) error {
	err := tx.QueryRowContext(ctx,
		`INSERT INTO campus.receipt (student_id, term_id, wallet_id, kind_code, amount)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING receipt_id, created_at`,
		receipt.StudentID, receipt.TermID, receipt.WalletID, receipt.KindCode, receipt.Amount,
	).Scan(&receipt.ID, &receipt.CreatedAt)
	if err != nil {
		return fmt.Errorf("Create: %w", err)
	}
	return nil
}

func (r *ReceiptRepository) CountByStudentTerm(ctx context.Context, studentID, termID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM campus.receipt WHERE student_id = $1 AND term_id = $2`,
		studentID, termID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("CountByStudentTerm: %w", err)
	}
	return n, nil
}

func (r *ReceiptRepository) ListByStudent(ctx context.Context, studentID int64, limit int) ([]domain.Receipt, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+receiptColumns+` FROM campus.receipt
		WHERE student_id = $1 ORDER BY receipt_id DESC LIMIT $2`,
		studentID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("ListByStudent: %w", err)
	}
	defer rows.Close()

	var receipts []domain.Receipt
	for rows.Next() {
		rc, err := scanReceipt(rows)
		if err != nil {
			return nil, fmt.Errorf("ListByStudent: scan: %w", err)
		}
		receipts = append(receipts, *rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ListByStudent: rows: %w", err)
	}
	return receipts, nil
}

func scanReceipt(s scanner) (*domain.Receipt, error) {
	var rc domain.Receipt
	err := s.Scan(
		&rc.ID, &rc.StudentID, &rc.TermID, &rc.WalletID,
		&rc.KindCode, &rc.Amount, &rc.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &rc, nil
}
