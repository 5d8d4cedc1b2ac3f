package core

import (
	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/store/db"
)

// Config yield pool config
type Config struct {
	App     App          `json:"app"`
	DB      db.Config    `json:"db"`
	Pool    PoolConfig   `json:"pool"`
	Market  MarketConfig `json:"market"`
	Wallet  WalletConfig `json:"wallet"`
	Cashier Cashier      `json:"cashier"`
}

// App app config
type App struct {
	Genesis         int64  `json:"genesis"`
	SecondsPerBlock int64  `json:"seconds_per_block"`
	Location        string `json:"location"`
}

// PoolConfig pool config
type PoolConfig struct {
	Beneficiary     string `json:"beneficiary"`
	AssetID         string `json:"asset_id"`
	PositionAssetID string `json:"position_asset_id"`
	// Precision decimals of the underlying asset, 1 whole token = 10^Precision smallest units
	Precision int32 `json:"precision"`
}

// MarketConfig simulated market parameters
//
// Numbers are kept as strings so large amounts survive yaml and env decoding.
type MarketConfig struct {
	InitExchangeRate string `json:"init_exchange_rate"`
	ReserveFactor    string `json:"reserve_factor"`
	BaseRate         string `json:"base_rate"`
	Multiplier       string `json:"multiplier"`
	JumpMultiplier   string `json:"jump_multiplier"`
	Kink             string `json:"kink"`
	// initial liquidity of the simulated market, smallest units
	Cash    string `json:"cash"`
	Borrows string `json:"borrows"`
}

// WalletConfig mixin dapp config
type WalletConfig struct {
	mixin.Keystore
	ClientSecret string `json:"client_secret"`
	Pin          string `json:"pin"`
}

// Cashier cashier worker config
type Cashier struct {
	Batch    int   `json:"batch"`
	Capacity int64 `json:"capacity"`
}
