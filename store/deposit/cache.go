package deposit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yieldpool/core"

	"github.com/bluele/gcache"
	"github.com/fox-one/pkg/store/db"
	"golang.org/x/sync/singleflight"
)

// ErrReadOnly the cached store does not take writes
var ErrReadOnly = errors.New("deposit: cached store is read only")

// Cache cache the depositor count of each pool for exp, for read paths only
//
// Writes go through the uncached store inside their own transaction and show
// up here once the cached count expires. Save always fails with ErrReadOnly.
func Cache(store core.IDepositStore, exp time.Duration) core.IDepositStore {
	return &cacheDepositStore{
		IDepositStore: store,
		cache:         gcache.New(256).LRU().Build(),
		sf:            &singleflight.Group{},
		exp:           exp,
	}
}

type cacheDepositStore struct {
	core.IDepositStore
	cache gcache.Cache
	sf    *singleflight.Group
	exp   time.Duration
}

func (s *cacheDepositStore) Save(ctx context.Context, tx *db.DB, deposit *core.Deposit) error {
	return ErrReadOnly
}

func (s *cacheDepositStore) CountOfDepositors(ctx context.Context, poolID uint64) (int64, error) {
	key := s.countKey(poolID)
	if v, err := s.cache.Get(key); err == nil {
		if count, ok := v.(int64); ok {
			return count, nil
		}
	}

	v, err, _ := s.sf.Do(key, func() (interface{}, error) {
		count, err := s.IDepositStore.CountOfDepositors(ctx, poolID)
		if err != nil {
			return nil, err
		}

		_ = s.cache.SetWithExpire(key, count, s.exp)
		return count, nil
	})
	if err != nil {
		return 0, err
	}

	return v.(int64), nil
}

func (s *cacheDepositStore) countKey(poolID uint64) string {
	return fmt.Sprintf("deposit:count:%d", poolID)
}
