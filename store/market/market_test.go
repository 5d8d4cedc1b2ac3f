package market

import (
	"context"
	"testing"

	"yieldpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/gofrs/uuid"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarketStore(t *testing.T) {
	ctx := context.Background()
	database := db.MustOpen(db.SqliteInMemory())
	require.NoError(t, db.Migrate(database))
	store := New(database)

	ctokenAssetID := uuid.Must(uuid.NewV4()).String()

	market, err := store.Find(ctx, ctokenAssetID)
	require.NoError(t, err)
	assert.Zero(t, market.ID)

	market = &core.Market{
		AssetID:          uuid.Must(uuid.NewV4()).String(),
		CTokenAssetID:    ctokenAssetID,
		TotalCash:        decimal.NewFromInt(1000),
		CTokens:          decimal.NewFromInt(50000),
		InitExchangeRate: decimal.RequireFromString("0.02"),
		ExchangeRate:     decimal.RequireFromString("0.02"),
	}
	require.NoError(t, store.Save(ctx, market))
	require.NotZero(t, market.ID)

	market.TotalCash = decimal.NewFromInt(1100)
	market.CTokens = decimal.NewFromInt(55000)
	market.BlockNumber = 42
	require.NoError(t, store.Update(ctx, database, market))

	found, err := store.Find(ctx, ctokenAssetID)
	require.NoError(t, err)
	assert.Equal(t, "1100", found.TotalCash.String())
	assert.Equal(t, "55000", found.CTokens.String())
	assert.EqualValues(t, 42, found.BlockNumber)
	assert.EqualValues(t, 1, found.Version)

	found.Version = 0
	assert.Equal(t, db.ErrOptimisticLock, store.Update(ctx, database, found))

	markets, err := store.All(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, markets)
}
