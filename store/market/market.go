package market

import (
	"context"

	"yieldpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type marketStore struct {
	db *db.DB
}

// New new market store
func New(db *db.DB) core.IMarketStore {
	return &marketStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Market{})
		if err := tx.AutoMigrate(core.Market{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Save create the market if absent, an existing row is loaded into market
func (s *marketStore) Save(ctx context.Context, market *core.Market) error {
	return s.db.Update().Where("ctoken_asset_id=?", market.CTokenAssetID).FirstOrCreate(market).Error
}

func (s *marketStore) Find(ctx context.Context, ctokenAssetID string) (*core.Market, error) {
	var market core.Market
	if err := s.db.View().Where("ctoken_asset_id=?", ctokenAssetID).First(&market).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &market, nil
		}

		return nil, err
	}

	return &market, nil
}

func (s *marketStore) All(ctx context.Context) ([]*core.Market, error) {
	var markets []*core.Market
	if err := s.db.View().Find(&markets).Error; err != nil {
		return nil, err
	}

	return markets, nil
}

func (s *marketStore) Update(ctx context.Context, tx *db.DB, market *core.Market) error {
	version := market.Version
	market.Version++

	update := tx.Update().Model(core.Market{}).Where("id=? AND version=?", market.ID, version).Updates(map[string]interface{}{
		"total_cash":            market.TotalCash,
		"total_borrows":         market.TotalBorrows,
		"reserves":              market.Reserves,
		"ctokens":               market.CTokens,
		"block_number":          market.BlockNumber,
		"utilization_rate":      market.UtilizationRate,
		"exchange_rate":         market.ExchangeRate,
		"supply_rate_per_block": market.SupplyRatePerBlock,
		"borrow_rate_per_block": market.BorrowRatePerBlock,
		"borrow_index":          market.BorrowIndex,
		"version":               market.Version,
	})
	if update.Error != nil {
		market.Version = version
		return update.Error
	}

	if update.RowsAffected == 0 {
		market.Version = version
		return db.ErrOptimisticLock
	}

	return nil
}
