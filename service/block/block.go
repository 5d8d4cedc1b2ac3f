package block

import (
	"context"
	"time"

	"yieldpool/core"
	"yieldpool/internal/compound"
)

type service struct {
	config *core.Config
}

// New new block service
func New(config *core.Config) core.IBlockService {
	return &service{
		config: config,
	}
}

func (s *service) secondsPerBlock() int64 {
	if s.config.App.SecondsPerBlock > 0 {
		return s.config.App.SecondsPerBlock
	}

	return compound.SecondsPerBlock
}

// CurrentBlock current block
func (s *service) CurrentBlock(ctx context.Context) (int64, error) {
	return s.GetBlock(ctx, time.Now())
}

// GetBlock get block by time
func (s *service) GetBlock(ctx context.Context, t time.Time) (int64, error) {
	block, e := compound.GetBlockByTime(ctx, s.secondsPerBlock(), s.config.App.Genesis, t)
	if e != nil {
		return 0, e
	}
	return block, nil
}
