package pool

import (
	"context"

	"yieldpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type poolStore struct {
	db *db.DB
}

// New new pool store
func New(db *db.DB) core.IPoolStore {
	return &poolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Pool{})
		if err := tx.AutoMigrate(core.Pool{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *poolStore) Create(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	return tx.Update().Where("position_asset_id=?", pool.PositionAssetID).FirstOrCreate(pool).Error
}

func (s *poolStore) Find(ctx context.Context, positionAssetID string) (*core.Pool, error) {
	return s.find(s.db.View(), positionAssetID)
}

func (s *poolStore) FindTx(ctx context.Context, tx *db.DB, positionAssetID string) (*core.Pool, error) {
	return s.find(tx.Update(), positionAssetID)
}

func (s *poolStore) find(query *gorm.DB, positionAssetID string) (*core.Pool, error) {
	var pool core.Pool
	if err := query.Where("position_asset_id=?", positionAssetID).First(&pool).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &pool, nil
		}

		return nil, err
	}

	return &pool, nil
}

func (s *poolStore) All(ctx context.Context) ([]*core.Pool, error) {
	var pools []*core.Pool
	if err := s.db.View().Find(&pools).Error; err != nil {
		return nil, err
	}

	return pools, nil
}

func (s *poolStore) Update(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	version := pool.Version
	pool.Version++

	update := tx.Update().Model(pool).Where("version=?", version).Updates(map[string]interface{}{
		"total_principal":    pool.TotalPrincipal,
		"position":           pool.Position,
		"donations":          pool.Donations,
		"interest_withdrawn": pool.InterestWithdrawn,
		"version":            pool.Version,
	})
	if update.Error != nil {
		pool.Version = version
		return update.Error
	}

	if update.RowsAffected == 0 {
		pool.Version = version
		return db.ErrOptimisticLock
	}

	return nil
}
