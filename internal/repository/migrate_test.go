package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/josh-kwaku/campus-ledger/internal/repository"
	"github.com/josh-kwaku/campus-ledger/internal/testutil"
)

func TestMigrate_RerunKeepsDataAndPool(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx := context.Background()

	termID := testutil.SeedTerm(t, db, "2025FA")
	testutil.SeedStudent(t, db, 7)
	testutil.SeedCharge(t, db, 7, termID, "5000.00", "120.00")

	version, err := repository.Migrate(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, uint(1), version)

	require.NoError(t, db.PingContext(ctx))
	assert.Equal(t, "120", testutil.GetPaidAmount(t, db, 7, termID).String())

	var kinds int
	require.NoError(t, db.QueryRowContext(ctx, `SELECT COUNT(*) FROM campus.pay_kind`).Scan(&kinds))
	assert.Equal(t, 3, kinds)
}
