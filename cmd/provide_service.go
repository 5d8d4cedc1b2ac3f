package cmd

import (
	"context"

	"yieldpool/core"
	"yieldpool/service/block"
	marketservice "yieldpool/service/market"
	poolservice "yieldpool/service/pool"
	"yieldpool/service/wallet"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

func provideConfig() *core.Config {
	return &cfg
}

func provideMainWallet() *core.Wallet {
	c, err := mixin.NewFromKeystore(&cfg.Wallet.Keystore)
	if err != nil {
		panic(err)
	}

	return &core.Wallet{
		Client: c,
		Pin:    cfg.Wallet.Pin,
	}
}

func provideWalletService(mainWallet *core.Wallet) core.IWalletService {
	return wallet.New(mainWallet, cfg.Pool.Precision)
}

func provideBlockService() core.IBlockService {
	return block.New(provideConfig())
}

func provideMarketService(db *db.DB, marketStr core.IMarketStore, blockSrv core.IBlockService) core.IMarketService {
	return marketservice.New(db, provideConfig(), marketStr, blockSrv)
}

func providePoolService(db *db.DB, marketSrv core.IMarketService) *poolservice.Service {
	return poolservice.New(
		db,
		cfg.Pool,
		providePoolStore(db),
		provideDepositStore(db),
		provideTransactionStore(db),
		provideTransferStore(db),
		marketSrv,
	)
}

// preparePool seed the market and open the pool, both are no-ops once done
func preparePool(ctx context.Context, database *db.DB) (core.IMarketService, *poolservice.Service) {
	log := logger.FromContext(ctx)

	marketSrv := provideMarketService(database, provideMarketStore(database), provideBlockService())
	if _, err := marketSrv.Init(ctx); err != nil {
		log.WithError(err).Fatal("init market")
	}

	poolSrv := providePoolService(database, marketSrv)
	pool, err := poolSrv.Open(ctx)
	if err != nil {
		log.WithError(err).Fatal("open pool")
	}

	log.Debugf("pool %d opened, beneficiary %s", pool.ID, pool.Beneficiary)
	return marketSrv, poolSrv
}
