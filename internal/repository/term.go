package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
)

const termColumns = `term_id, code, starts_on, ends_on`

type TermRepository struct {
	db *sql.DB
}

func NewTermRepository(db *sql.DB) *TermRepository {
	return &TermRepository{db: db}
}

func (r *TermRepository) GetByCodeForUpdate(ctx context.Context, tx *sql.Tx, code string) (*domain.Term, error) {
	row := tx.QueryRowContext(ctx,
		`SELECT `+termColumns+` FROM campus.term WHERE code = $1 FOR UPDATE`, code,
	)
	t, err := scanTerm(row)
	if err != nil {
		if noRows(err) {
			return nil, fmt.Errorf("GetByCodeForUpdate: %q: %w", code, domain.ErrTermNotFound)
		}
		return nil, fmt.Errorf("GetByCodeForUpdate: %w", err)
	}
	return t, nil
}

func scanTerm(s scanner) (*domain.Term, error) {
	var t domain.Term
	var startsOn, endsOn sql.NullTime
	if err := s.Scan(&t.ID, &t.Code, &startsOn, &endsOn); err != nil {
		return nil, err
	}
	if startsOn.Valid {
		t.StartsOn = &startsOn.Time
	}
	if endsOn.Valid {
		t.EndsOn = &endsOn.Time
	}
	return &t, nil
}
