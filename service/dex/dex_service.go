package dex

import (
	"context"

	"gearbox/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type dexService struct {
	pairStore core.IPairStore
}

// New new dex service
func New(pairStore core.IPairStore) core.IDexService {
	return &dexService{pairStore: pairStore}
}

func (s *dexService) reserves(pair *core.Pair, assetIn string) (decimal.Decimal, decimal.Decimal) {
	if pair.BaseAssetID == assetIn {
		return pair.BaseReserve, pair.QuoteReserve
	}
	return pair.QuoteReserve, pair.BaseReserve
}

func (s *dexService) GetAmountsOut(ctx context.Context, amountIn decimal.Decimal, path []string) ([]decimal.Decimal, error) {
	if len(path) < 2 {
		return nil, core.ErrInvalidAmount
	}

	amounts := make([]decimal.Decimal, len(path))
	amounts[0] = amountIn

	for i := 0; i < len(path)-1; i++ {
		pair, err := s.pairStore.Find(ctx, path[i], path[i+1])
		if err != nil {
			return nil, err
		}

		reserveIn, reserveOut := s.reserves(pair, path[i])
		amounts[i+1] = GetAmountOut(amounts[i], reserveIn, reserveOut)
		if !amounts[i+1].IsPositive() {
			return nil, core.ErrInvalidAmount
		}
	}

	return amounts, nil
}

func (s *dexService) GetAmountsIn(ctx context.Context, amountOut decimal.Decimal, path []string) ([]decimal.Decimal, error) {
	if len(path) < 2 {
		return nil, core.ErrInvalidAmount
	}

	amounts := make([]decimal.Decimal, len(path))
	amounts[len(path)-1] = amountOut

	for i := len(path) - 1; i > 0; i-- {
		pair, err := s.pairStore.Find(ctx, path[i-1], path[i])
		if err != nil {
			return nil, err
		}

		reserveIn, reserveOut := s.reserves(pair, path[i-1])
		amounts[i-1] = GetAmountIn(amounts[i], reserveIn, reserveOut)
		if !amounts[i-1].IsPositive() {
			return nil, core.ErrInvalidAmount
		}
	}

	return amounts, nil
}

func (s *dexService) Swap(ctx context.Context, tx *db.DB, amountIn decimal.Decimal, path []string) ([]decimal.Decimal, error) {
	log := logger.FromContext(ctx).WithField("service", "dex")

	amounts, err := s.GetAmountsOut(ctx, amountIn, path)
	if err != nil {
		return nil, err
	}

	for i := 0; i < len(path)-1; i++ {
		pair, err := s.pairStore.Find(ctx, path[i], path[i+1])
		if err != nil {
			return nil, err
		}

		if pair.BaseAssetID == path[i] {
			pair.BaseReserve = pair.BaseReserve.Add(amounts[i])
			pair.QuoteReserve = pair.QuoteReserve.Sub(amounts[i+1])
		} else {
			pair.QuoteReserve = pair.QuoteReserve.Add(amounts[i])
			pair.BaseReserve = pair.BaseReserve.Sub(amounts[i+1])
		}

		if err := s.pairStore.Update(ctx, tx, pair); err != nil {
			log.WithError(err).Errorln("pairs.Update")
			return nil, err
		}
	}

	return amounts, nil
}
