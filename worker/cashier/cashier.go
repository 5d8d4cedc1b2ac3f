package cashier

import (
	"context"

	"yieldpool/core"
	"yieldpool/worker"

	"github.com/fox-one/pkg/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// Cashier send pending payouts recorded by the pool
type Cashier struct {
	worker.BaseJob
	transferStore core.ITransferStore
	walletService core.IWalletService
	cfg           core.Cashier
}

// New new cashier
func New(
	location string,
	transferStr core.ITransferStore,
	walletSrv core.IWalletService,
	cfg core.Cashier,
) *Cashier {
	cashier := Cashier{
		transferStore: transferStr,
		walletService: walletSrv,
		cfg:           cfg,
	}

	if cashier.cfg.Batch <= 0 {
		cashier.cfg.Batch = 100
	}

	f := cashier.sync
	if cashier.cfg.Capacity > 1 {
		f = cashier.parallel(cashier.cfg.Capacity)
	}

	if err := cashier.Schedule(location, "@every 1s", func() error {
		return cashier.onWork(context.Background(), f)
	}); err != nil {
		panic(err)
	}

	return &cashier
}

func (w *Cashier) onWork(ctx context.Context, f func(context.Context, []*core.Transfer) error) error {
	log := logger.FromContext(ctx).WithField("worker", "cashier")
	ctx = logger.WithContext(ctx, log)

	transfers, err := w.transferStore.ListPending(ctx, w.cfg.Batch)
	if err != nil {
		log.WithError(err).Errorln("list transfers")
		return err
	}

	if len(transfers) == 0 {
		return nil
	}

	return f(ctx, transfers)
}

func (w *Cashier) sync(ctx context.Context, transfers []*core.Transfer) error {
	for _, transfer := range transfers {
		if err := w.handleTransfer(ctx, transfer); err != nil {
			return err
		}
	}

	return nil
}

func (w *Cashier) parallel(capacity int64) func(ctx context.Context, transfers []*core.Transfer) error {
	sem := semaphore.NewWeighted(capacity)

	return func(ctx context.Context, transfers []*core.Transfer) error {
		g := errgroup.Group{}

		for idx := range transfers {
			transfer := transfers[idx]

			if err := sem.Acquire(ctx, 1); err != nil {
				return g.Wait()
			}

			g.Go(func() error {
				defer sem.Release(1)
				return w.handleTransfer(ctx, transfer)
			})
		}

		return g.Wait()
	}
}

// handleTransfer the trace id makes a resent transfer a no-op on the network
func (w *Cashier) handleTransfer(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx).WithField("trace", transfer.TraceID)

	if err := w.walletService.HandleTransfer(ctx, transfer); err != nil {
		log.WithError(err).Errorln("walletz.HandleTransfer")
		return err
	}

	if err := w.transferStore.MarkHandled(ctx, transfer); err != nil {
		log.WithError(err).Errorln("transfers.MarkHandled")
		return err
	}

	return nil
}
