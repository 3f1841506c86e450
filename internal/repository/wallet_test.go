package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/campus-ledger/internal/domain"
)

var walletRowColumns = []string{"wallet_id", "owner_type", "owner_id", "balance"}

func TestWalletRepository_Resolve(t *testing.T) {
	ctx := context.Background()

	t.Run("student wallet", func(t *testing.T) {
		db, tx, mock := newMockTx(t)
		repo := NewWalletRepository(db)

		mock.ExpectQuery(`FROM campus.wallet\s+WHERE owner_type = \$1 AND owner_id = \$2`).
			WithArgs(domain.OwnerTypeStudent, int64(42)).
			WillReturnRows(sqlmock.NewRows(walletRowColumns).AddRow(7, "STUDENT", 42, "1000.00"))

		w, err := repo.Resolve(ctx, tx, domain.StudentWallet(42))
		require.NoError(t, err)
		assert.Equal(t, int64(7), w.ID)
		assert.Equal(t, domain.StudentWallet(42), w.Owner)
		assert.True(t, w.Balance.Equal(decimal.NewFromInt(1000)))
		assert.False(t, w.Owner.IsCompany())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("company wallet has null owner", func(t *testing.T) {
		db, tx, mock := newMockTx(t)
		repo := NewWalletRepository(db)

		mock.ExpectQuery(`owner_id IS NULL`).
			WithArgs(domain.OwnerTypeCompany).
			WillReturnRows(sqlmock.NewRows(walletRowColumns).AddRow(1, "COMPANY", nil, "-50.00"))

		w, err := repo.Resolve(ctx, tx, domain.CompanyWallet)
		require.NoError(t, err)
		assert.Equal(t, domain.CompanyWallet, w.Owner)
		assert.True(t, w.Owner.IsCompany())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing wallet", func(t *testing.T) {
		db, tx, mock := newMockTx(t)
		repo := NewWalletRepository(db)

		mock.ExpectQuery(`FROM campus.wallet`).
			WillReturnRows(sqlmock.NewRows(walletRowColumns))

		_, err := repo.Resolve(ctx, tx, domain.StudentWallet(9))
		assert.ErrorIs(t, err, domain.ErrWalletNotFound)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestWalletRepository_Debit(t *testing.T) {
	ctx := context.Background()
	amount := decimal.RequireFromString("325.50")

	tests := []struct {
		name    string
		result  func(*sqlmock.ExpectedExec)
		wantErr error
	}{
		{
			name:   "balance covers amount",
			result: func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 1)) },
		},
		{
			name:    "balance too low",
			result:  func(e *sqlmock.ExpectedExec) { e.WillReturnResult(sqlmock.NewResult(0, 0)) },
			wantErr: domain.ErrInsufficientFunds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, tx, mock := newMockTx(t)
			repo := NewWalletRepository(db)

			tt.result(mock.ExpectExec(`UPDATE campus.wallet SET balance = balance - \$1\s+WHERE wallet_id = \$2 AND balance >= \$1`).
				WithArgs(amount, int64(7)))

			err := repo.Debit(ctx, tx, 7, amount)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("driver error is passed through", func(t *testing.T) {
		db, tx, mock := newMockTx(t)
		repo := NewWalletRepository(db)
		boom := errors.New("connection reset")

		mock.ExpectExec(`UPDATE campus.wallet`).WillReturnError(boom)

		err := repo.Debit(ctx, tx, 7, amount)
		assert.ErrorIs(t, err, boom)
		assert.False(t, errors.Is(err, domain.ErrInsufficientFunds))
	})
}

func TestWalletRepository_Credit(t *testing.T) {
	ctx := context.Background()

	t.Run("credits existing wallet", func(t *testing.T) {
		db, tx, mock := newMockTx(t)
		repo := NewWalletRepository(db)

		mock.ExpectExec(`SET balance = balance \+ \$1 WHERE wallet_id = \$2`).
			WithArgs(decimal.NewFromInt(400), int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Credit(ctx, tx, 1, decimal.NewFromInt(400)))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no such wallet", func(t *testing.T) {
		db, tx, mock := newMockTx(t)
		repo := NewWalletRepository(db)

		mock.ExpectExec(`UPDATE campus.wallet`).WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Credit(ctx, tx, 99, decimal.NewFromInt(1))
		assert.ErrorIs(t, err, domain.ErrWalletNotFound)
	})
}

func TestWalletRepository_GetByStudent(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	repo := NewWalletRepository(db)

	mock.ExpectQuery(`FROM campus.wallet`).
		WithArgs(domain.OwnerTypeStudent, int64(3)).
		WillReturnRows(sqlmock.NewRows(walletRowColumns))

	_, err = repo.GetByStudent(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrWalletNotFound)
}
