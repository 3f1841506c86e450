package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
)

func TestChargeRepository_GetForUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("locks the row", func(t *testing.T) {
		db, tx, mock := newMockTx(t)
		repo := NewChargeRepository(db)

		mock.ExpectQuery(`FROM campus.charge\s+WHERE student_id = \$1 AND term_id = \$2 FOR UPDATE`).
			WithArgs(int64(5), int64(2)).
			WillReturnRows(sqlmock.NewRows([]string{"student_id", "term_id", "due_amt", "paid_amt"}).
				AddRow(5, 2, "5000.00", "1200.00"))

		c, err := repo.GetForUpdate(ctx, tx, 5, 2)
		require.NoError(t, err)
		assert.True(t, c.Outstanding().Equal(decimal.NewFromInt(3800)))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no charge for term", func(t *testing.T) {
		db, tx, mock := newMockTx(t)
		repo := NewChargeRepository(db)

		mock.ExpectQuery(`FROM campus.charge`).
			WillReturnRows(sqlmock.NewRows([]string{"student_id", "term_id", "due_amt", "paid_amt"}))

		_, err := repo.GetForUpdate(ctx, tx, 5, 2)
		assert.ErrorIs(t, err, domain.ErrChargeNotFound)
	})
}

func TestChargeRepository_ApplyPayment(t *testing.T) {
	db, tx, mock := newMockTx(t)
	repo := NewChargeRepository(db)
	amount := decimal.RequireFromString("412.00")

	mock.ExpectExec(`UPDATE campus.charge SET paid_amt = paid_amt \+ \$1`).
		WithArgs(amount, int64(5), int64(2)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.ApplyPayment(context.Background(), tx, 5, 2, amount))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestTermRepository_GetByCodeForUpdate(t *testing.T) {
	ctx := context.Background()
	cols := []string{"term_id", "code", "starts_on", "ends_on"}

	t.Run("found", func(t *testing.T) {
		db, tx, mock := newMockTx(t)
		repo := NewTermRepository(db)

		mock.ExpectQuery(`FROM campus.term WHERE code = \$1 FOR UPDATE`).
			WithArgs("2025FA").
			WillReturnRows(sqlmock.NewRows(cols).AddRow(3, "2025FA", nil, nil))

		term, err := repo.GetByCodeForUpdate(ctx, tx, "2025FA")
		require.NoError(t, err)
		assert.Equal(t, int64(3), term.ID)
		assert.Nil(t, term.StartsOn)
	})

	t.Run("unknown code", func(t *testing.T) {
		db, tx, mock := newMockTx(t)
		repo := NewTermRepository(db)

		mock.ExpectQuery(`FROM campus.term`).WillReturnRows(sqlmock.NewRows(cols))

		_, err := repo.GetByCodeForUpdate(ctx, tx, "1999XX")
		assert.ErrorIs(t, err, domain.ErrTermNotFound)
	})
}
