package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
)

const walletColumns = `wallet_id, owner_type, owner_id, balance`

type WalletRepository struct {
	db *sql.DB
}

func NewWalletRepository(db *sql.DB) *WalletRepository {
	return &WalletRepository{db: db}
}

// Resolve finds the wallet for owner inside tx. The company wallet is the
// only row stored with a NULL owner_id.
func (r *WalletRepository) Resolve(ctx context.Context, tx *sql.Tx, owner domain.WalletOwner) (*domain.Wallet, error) {
	var row *sql.Row
	if owner.IsCompany() {
		row = tx.QueryRowContext(ctx,
			`SELECT `+walletColumns+` FROM campus.wallet
			WHERE owner_type = $1 AND owner_id IS NULL`,
			domain.OwnerTypeCompany,
		)
	} else {
		row = tx.QueryRowContext(ctx,
			`SELECT `+walletColumns+` FROM campus.wallet
			WHERE owner_type = $1 AND owner_id = $2`,
			domain.OwnerTypeStudent, owner.StudentID,
		)
	}

	w, err := scanWallet(row)
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("Resolve: %s: %w", owner, domain.ErrWalletNotFound)
		}
		return nil, fmt.Errorf("Resolve: %w", err)
	}
	return w, nil
}

// Debit subtracts amount only while the balance covers it. The check and the
// write are one statement, so concurrent debits cannot both pass the check.
func (r *WalletRepository) Debit(ctx context.Context, tx *sql.Tx, walletID int64, amount decimal.Decimal) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE campus.wallet SET balance = balance - $1
		WHERE wallet_id = $2 AND balance >= $1`,
		amount, walletID,
	)
	if err != nil {
		return fmt.Errorf("Debit: %w", err)
	}
	return mustAffectOne(res, "Debit", domain.ErrInsufficientFunds)
}

func (r *WalletRepository) Credit(ctx context.Context, tx *sql.Tx, walletID int64, amount decimal.Decimal) error {
	res, err := tx.ExecContext(ctx,
		`UPDATE campus.wallet SET balance = balance + $1 WHERE wallet_id = $2`,
		amount, walletID,
	)
	if err != nil {
		return fmt.Errorf("Credit: %w", err)
	}
	return mustAffectOne(res, "Credit", domain.ErrWalletNotFound)
}

func (r *WalletRepository) GetByStudent(ctx context.Context, studentID int64) (*domain.Wallet, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+walletColumns+` FROM campus.wallet
		WHERE owner_type = $1 AND owner_id = $2`,
		domain.OwnerTypeStudent, studentID,
	)
	w, err := scanWallet(row)
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("GetByStudent: %w", domain.ErrWalletNotFound)
		}
		return nil, fmt.Errorf("GetByStudent: %w", err)
	}
	return w, nil
}

func scanWallet(s scanner) (*domain.Wallet, error) {
	var w domain.Wallet
	var ownerID sql.NullInt64
	if err := s.Scan(&w.ID, &w.Owner.Type, &ownerID, &w.Balance); err != nil {
		return nil, err
	}
	if ownerID.Valid {
		w.Owner.StudentID = ownerID.Int64
	}
	return &w, nil
}
