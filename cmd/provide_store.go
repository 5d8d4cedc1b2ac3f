package cmd

import (
	"time"

	"yieldpool/core"
	"yieldpool/store/deposit"
	"yieldpool/store/market"
	"yieldpool/store/pool"
	"yieldpool/store/transaction"
	"yieldpool/store/transfer"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func providePoolStore(db *db.DB) core.IPoolStore {
	return pool.New(db)
}

func provideDepositStore(db *db.DB) core.IDepositStore {
	return deposit.New(db)
}

// provideCachedDepositStore deposit store for read paths
func provideCachedDepositStore(db *db.DB) core.IDepositStore {
	return deposit.Cache(deposit.New(db), time.Minute)
}

func provideTransactionStore(db *db.DB) core.TransactionStore {
	return transaction.New(db)
}

func provideTransferStore(db *db.DB) core.ITransferStore {
	return transfer.New(db)
}

func provideMarketStore(db *db.DB) core.IMarketStore {
	return market.New(db)
}
