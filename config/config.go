package config

import (
	"yieldpool/core"
	"yieldpool/internal/compound"
	"yieldpool/pkg/number"

	configUtil "github.com/fox-one/pkg/config"
)

// Load load config file, environment variables prefixed YIELDPOOL override it
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("YIELDPOOL")
	if configFile != "" {
		if err := configUtil.LoadYaml(configFile, config); err != nil {
			return err
		}
	}

	defaultConfig(config)
	return nil
}

func defaultConfig(config *core.Config) {
	if config.App.SecondsPerBlock <= 0 {
		config.App.SecondsPerBlock = compound.SecondsPerBlock
	}

	if config.App.Location == "" {
		config.App.Location = "UTC"
	}

	if config.DB.Dialect == "" {
		config.DB.Dialect = "sqlite3"
		config.DB.Host = "yieldpool.db"
	}

	if config.Pool.Precision <= 0 {
		config.Pool.Precision = 8
	}

	if !number.Decimal(config.Market.InitExchangeRate).IsPositive() {
		config.Market.InitExchangeRate = "0.02"
	}

	if config.Market.ReserveFactor == "" {
		config.Market.ReserveFactor = "0.1"
	}

	if config.Market.Kink == "" {
		config.Market.Kink = "0.8"
	}

	if config.Cashier.Batch <= 0 {
		config.Cashier.Batch = 100
	}

	if config.Cashier.Capacity <= 0 {
		config.Cashier.Capacity = 1
	}
}
