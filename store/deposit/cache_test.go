package deposit

import (
	"context"
	"errors"
	"testing"
	"time"

	"yieldpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingStore struct {
	core.IDepositStore
	calls int
	count int64
}

func (s *countingStore) CountOfDepositors(ctx context.Context, poolID uint64) (int64, error) {
	s.calls++
	return s.count, nil
}

func (s *countingStore) Save(ctx context.Context, tx *db.DB, deposit *core.Deposit) error {
	s.count++
	return nil
}

func TestCache(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{count: 2}
	cache := Cache(store, time.Hour)

	for i := 0; i < 3; i++ {
		count, err := cache.CountOfDepositors(ctx, 1)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
	}
	assert.Equal(t, 1, store.calls)

	// writes are refused, the cached count stays until it expires
	err := cache.Save(ctx, nil, &core.Deposit{PoolID: 1, Principal: decimal.NewFromInt(1)})
	assert.True(t, errors.Is(err, ErrReadOnly))
	assert.EqualValues(t, 2, store.count)

	count, err := cache.CountOfDepositors(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.Equal(t, 1, store.calls)

	count, err = cache.CountOfDepositors(ctx, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
	assert.Equal(t, 2, store.calls)
}

func TestCacheExpires(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{count: 1}
	cache := Cache(store, 10*time.Millisecond)

	_, err := cache.CountOfDepositors(ctx, 1)
	require.NoError(t, err)

	store.count = 4
	time.Sleep(30 * time.Millisecond)

	count, err := cache.CountOfDepositors(ctx, 1)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)
	assert.Equal(t, 2, store.calls)
}
