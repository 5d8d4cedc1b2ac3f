package deposit

import (
	"context"

	"yieldpool/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type depositStore struct {
	db *db.DB
}

// New new deposit store
func New(db *db.DB) core.IDepositStore {
	return &depositStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Deposit{})
		if err := tx.AutoMigrate(core.Deposit{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *depositStore) Find(ctx context.Context, poolID uint64, userID string) (*core.Deposit, error) {
	return s.find(s.db.View(), poolID, userID)
}

func (s *depositStore) FindTx(ctx context.Context, tx *db.DB, poolID uint64, userID string) (*core.Deposit, error) {
	return s.find(tx.Update(), poolID, userID)
}

func (s *depositStore) find(query *gorm.DB, poolID uint64, userID string) (*core.Deposit, error) {
	deposit := core.Deposit{
		PoolID: poolID,
		UserID: userID,
	}

	if err := query.Where("pool_id=? and user_id=?", poolID, userID).First(&deposit).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &deposit, nil
		}

		return nil, err
	}

	return &deposit, nil
}

// Save create the record on first deposit, update it with optimistic lock afterwards
//
// Records are never deleted, a full withdrawal leaves a zero principal.
func (s *depositStore) Save(ctx context.Context, tx *db.DB, deposit *core.Deposit) error {
	if deposit.ID == 0 {
		return tx.Update().Create(deposit).Error
	}

	version := deposit.Version
	deposit.Version++

	update := tx.Update().Model(deposit).Where("version=?", version).Updates(map[string]interface{}{
		"principal": deposit.Principal,
		"version":   deposit.Version,
	})
	if update.Error != nil {
		deposit.Version = version
		return update.Error
	}

	if update.RowsAffected == 0 {
		deposit.Version = version
		return db.ErrOptimisticLock
	}

	return nil
}

func (s *depositStore) FindByPool(ctx context.Context, poolID uint64) ([]*core.Deposit, error) {
	var deposits []*core.Deposit
	if err := s.db.View().Where("pool_id=?", poolID).Order("id").Find(&deposits).Error; err != nil {
		return nil, err
	}

	return deposits, nil
}

// SumOfPrincipal principal is stored as text, summed here to keep full precision
func (s *depositStore) SumOfPrincipal(ctx context.Context, poolID uint64) (decimal.Decimal, error) {
	deposits, err := s.FindByPool(ctx, poolID)
	if err != nil {
		return decimal.Zero, err
	}

	sum := decimal.Zero
	for _, d := range deposits {
		sum = sum.Add(d.Principal)
	}

	return sum, nil
}

func (s *depositStore) CountOfDepositors(ctx context.Context, poolID uint64) (int64, error) {
	var count int64
	if err := s.db.View().Model(core.Deposit{}).Where("pool_id=? and principal<>?", poolID, "0").Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}
