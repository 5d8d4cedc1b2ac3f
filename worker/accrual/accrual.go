package accrual

import (
	"context"
	"time"

	"yieldpool/core"
	"yieldpool/worker"

	"github.com/fox-one/pkg/logger"
)

// Worker accrue interest of the simulated market block by block
type Worker struct {
	worker.BaseJob
	MarketService core.IMarketService
}

// New new accrual worker
func New(location string, marketSrv core.IMarketService) *Worker {
	job := Worker{
		MarketService: marketSrv,
	}

	if err := job.Schedule(location, "@every 15s", func() error {
		return job.onWork(context.Background(), time.Now())
	}); err != nil {
		panic(err)
	}

	return &job
}

func (w *Worker) onWork(ctx context.Context, t time.Time) error {
	log := logger.FromContext(ctx).WithField("worker", "accrual")

	market, err := w.MarketService.AccrueInterest(ctx, t)
	if err != nil {
		log.WithError(err).Errorln("accrue interest")
		return err
	}

	log.WithField("block", market.BlockNumber).Debugf("exchange rate %s, supply rate %s", market.ExchangeRate, market.SupplyRatePerBlock)
	return nil
}
