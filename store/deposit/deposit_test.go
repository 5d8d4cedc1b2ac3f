package deposit

import (
	"context"
	"testing"
	"time"

	"yieldpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/gofrs/uuid"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepositStore(t *testing.T) {
	ctx := context.Background()
	database := db.MustOpen(db.SqliteInMemory())
	require.NoError(t, db.Migrate(database))
	store := New(database)

	poolID := uint64(time.Now().UnixNano())
	alice := uuid.Must(uuid.NewV4()).String()
	bob := uuid.Must(uuid.NewV4()).String()

	d, err := store.Find(ctx, poolID, alice)
	require.NoError(t, err)
	assert.Zero(t, d.ID)
	assert.Equal(t, alice, d.UserID)
	assert.True(t, d.Principal.IsZero())

	d.Principal = decimal.NewFromInt(100)
	require.NoError(t, store.Save(ctx, database, d))
	require.NotZero(t, d.ID)

	d.Principal = decimal.NewFromInt(60)
	require.NoError(t, store.Save(ctx, database, d))
	assert.EqualValues(t, 1, d.Version)

	b, err := store.Find(ctx, poolID, bob)
	require.NoError(t, err)
	b.Principal = decimal.NewFromInt(40)
	require.NoError(t, store.Save(ctx, database, b))

	sum, err := store.SumOfPrincipal(ctx, poolID)
	require.NoError(t, err)
	assert.Equal(t, "100", sum.String())

	count, err := store.CountOfDepositors(ctx, poolID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)

	// full withdrawal keeps the row with zero principal
	b.Principal = decimal.Zero
	require.NoError(t, store.Save(ctx, database, b))

	count, err = store.CountOfDepositors(ctx, poolID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	deposits, err := store.FindByPool(ctx, poolID)
	require.NoError(t, err)
	assert.Len(t, deposits, 2)

	stale := &core.Deposit{ID: d.ID, PoolID: poolID, UserID: alice, Principal: decimal.NewFromInt(1)}
	assert.Equal(t, db.ErrOptimisticLock, store.Save(ctx, database, stale))

	found, err := store.Find(ctx, poolID, alice)
	require.NoError(t, err)
	assert.Equal(t, "60", found.Principal.String())
}
