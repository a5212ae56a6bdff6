package block

import (
	"context"
	"time"

	"gearbox/core"
	"gearbox/internal/gearbox"
)

type blockService struct {
	genesis int64
}

// New new block service
func New(cfg *core.Config) core.IBlockService {
	gearbox.SetupGenesis(cfg.App.Genesis)
	return &blockService{
		genesis: cfg.App.Genesis,
	}
}

func (s *blockService) CurrentBlock(ctx context.Context) (int64, error) {
	return gearbox.CurrentBlock(ctx, gearbox.SecondsPerBlock, s.genesis)
}

func (s *blockService) GetBlockByTime(ctx context.Context, t time.Time) (int64, error) {
	return gearbox.GetBlockByTime(ctx, t)
}
