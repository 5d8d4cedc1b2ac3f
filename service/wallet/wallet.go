package wallet

import (
	"context"

	"yieldpool/core"
	"yieldpool/pkg/number"

	"github.com/fox-one/mixin-sdk-go"
	"github.com/fox-one/pkg/logger"
)

// New new wallet service
//
// precision is the number of decimals of the pool asset, transfers carry
// amounts in smallest units and are scaled before reaching the network.
func New(mainWallet *core.Wallet, precision int32) core.IWalletService {
	return &walletService{
		MainWallet: mainWallet,
		precision:  precision,
	}
}

type walletService struct {
	MainWallet *core.Wallet
	precision  int32
}

func (s *walletService) HandleTransfer(ctx context.Context, transfer *core.Transfer) error {
	log := logger.FromContext(ctx).WithField("trace", transfer.TraceID)

	input := &mixin.TransferInput{
		AssetID:    transfer.AssetID,
		OpponentID: transfer.OpponentID,
		Amount:     number.FromUnits(transfer.Amount, s.precision),
		TraceID:    transfer.TraceID,
		Memo:       transfer.Memo,
	}

	snapshot, err := s.MainWallet.Client.Transfer(ctx, input, s.MainWallet.Pin)
	if err != nil {
		log.WithError(err).Errorln("transfer failed")
		return err
	}

	log.WithField("snapshot", snapshot.SnapshotID).Debugln("transfer sent")
	return nil
}
