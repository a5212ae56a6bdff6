package pool

import (
	"context"
	"time"

	"gearbox/core"
	"gearbox/internal/gearbox"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type poolService struct {
	poolStore    core.IPoolStore
	balanceStore core.IBalanceStore
	blockService core.IBlockService
}

// New new pool service
func New(
	poolStore core.IPoolStore,
	balanceStore core.IBalanceStore,
	blockService core.IBlockService,
) core.IPoolService {
	return &poolService{
		poolStore:    poolStore,
		balanceStore: balanceStore,
		blockService: blockService,
	}
}

func (s *poolService) AddLiquidity(ctx context.Context, tx *db.DB, pool *core.Pool, amount decimal.Decimal, onBehalfOf string, referralCode string) error {
	log := logger.FromContext(ctx).WithField("service", "pool")

	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if err := s.AccrueInterest(ctx, tx, pool, time.Now()); err != nil {
		return err
	}

	amount = amount.Truncate(gearbox.AmountPrecision)

	if err := s.balanceStore.Add(ctx, tx, onBehalfOf, pool.AssetID, amount.Neg()); err != nil {
		return err
	}

	share, err := s.poolStore.FindShare(ctx, pool.AssetID, onBehalfOf)
	if err != nil {
		return err
	}

	if share.ID == 0 {
		share.Amount = amount
		if err := s.poolStore.SaveShare(ctx, tx, share); err != nil {
			log.WithError(err).Errorln("shares.Save")
			return err
		}
	} else {
		share.Amount = share.Amount.Add(amount)
		if err := s.poolStore.UpdateShare(ctx, tx, share); err != nil {
			log.WithError(err).Errorln("shares.Update")
			return err
		}
	}

	pool.TotalLiquidity = pool.TotalLiquidity.Add(amount)
	pool.AvailableLiquidity = pool.AvailableLiquidity.Add(amount)

	return s.poolStore.Update(ctx, tx, pool)
}

func (s *poolService) RemoveLiquidity(ctx context.Context, tx *db.DB, pool *core.Pool, amount decimal.Decimal, to string) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if err := s.AccrueInterest(ctx, tx, pool, time.Now()); err != nil {
		return err
	}

	amount = amount.Truncate(gearbox.AmountPrecision)

	share, err := s.poolStore.FindShare(ctx, pool.AssetID, to)
	if err != nil {
		return err
	}

	if share.Amount.LessThan(amount) || pool.AvailableLiquidity.LessThan(amount) {
		return core.ErrInsufficientLiquidity
	}

	share.Amount = share.Amount.Sub(amount)
	if err := s.poolStore.UpdateShare(ctx, tx, share); err != nil {
		return err
	}

	pool.TotalLiquidity = pool.TotalLiquidity.Sub(amount)
	pool.AvailableLiquidity = pool.AvailableLiquidity.Sub(amount)

	if err := s.poolStore.Update(ctx, tx, pool); err != nil {
		return err
	}

	return s.balanceStore.Add(ctx, tx, to, pool.AssetID, amount)
}

func (s *poolService) Borrow(ctx context.Context, tx *db.DB, pool *core.Pool, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if err := s.AccrueInterest(ctx, tx, pool, time.Now()); err != nil {
		return err
	}

	if pool.AvailableLiquidity.LessThan(amount) {
		return core.ErrInsufficientLiquidity
	}

	pool.AvailableLiquidity = pool.AvailableLiquidity.Sub(amount)
	pool.TotalBorrowed = pool.TotalBorrowed.Add(amount)

	return s.poolStore.Update(ctx, tx, pool)
}

func (s *poolService) Repay(ctx context.Context, tx *db.DB, pool *core.Pool, principal, interest decimal.Decimal) error {
	if principal.IsNegative() || interest.IsNegative() {
		return core.ErrInvalidAmount
	}

	if err := s.AccrueInterest(ctx, tx, pool, time.Now()); err != nil {
		return err
	}

	reserved := interest.Mul(pool.ReserveFactor).Truncate(gearbox.MaxPricision)

	pool.TotalBorrowed = pool.TotalBorrowed.Sub(principal.Add(interest))
	if pool.TotalBorrowed.IsNegative() {
		pool.TotalBorrowed = decimal.Zero
	}
	pool.AvailableLiquidity = pool.AvailableLiquidity.Add(principal).Add(interest.Sub(reserved))
	pool.Reserves = pool.Reserves.Add(reserved)
	pool.TotalLiquidity = pool.AvailableLiquidity.Add(pool.TotalBorrowed)

	return s.poolStore.Update(ctx, tx, pool)
}

// AccrueInterest advance the borrow index per elapsed block. Interest inflates
// TotalBorrowed and TotalLiquidity together so the liquidity invariant holds.
func (s *poolService) AccrueInterest(ctx context.Context, tx *db.DB, pool *core.Pool, t time.Time) error {
	blockNum, err := s.blockService.GetBlockByTime(ctx, t)
	if err != nil {
		return err
	}

	if !pool.BorrowIndex.IsPositive() {
		pool.BorrowIndex = decimal.New(1, 0)
	}

	if blockDelta := blockNum - pool.BlockNumber; blockDelta > 0 {
		borrowRate := s.CurBorrowRatePerBlock(ctx, pool)
		timesBorrowRate := borrowRate.Mul(decimal.NewFromInt(blockDelta))
		interestAccumulated := pool.TotalBorrowed.Mul(timesBorrowRate).Truncate(gearbox.MaxPricision)

		pool.BlockNumber = blockNum
		pool.TotalBorrowed = pool.TotalBorrowed.Add(interestAccumulated)
		pool.TotalLiquidity = pool.TotalLiquidity.Add(interestAccumulated)
		pool.BorrowIndex = gearbox.CompoundIndex(pool.BorrowIndex, borrowRate, blockDelta)
	}

	pool.UtilizationRate = s.CurUtilizationRate(ctx, pool)
	pool.BorrowRatePerBlock = s.CurBorrowRatePerBlock(ctx, pool)
	pool.SupplyRatePerBlock = gearbox.GetSupplyRatePerBlock(
		pool.UtilizationRate,
		pool.BaseRate,
		pool.Multiplier,
		pool.JumpMultiplier,
		pool.Kink,
		pool.ReserveFactor,
	)

	return nil
}

func (s *poolService) CurBorrowRatePerBlock(ctx context.Context, pool *core.Pool) decimal.Decimal {
	return gearbox.GetBorrowRatePerBlock(
		s.CurUtilizationRate(ctx, pool),
		pool.BaseRate,
		pool.Multiplier,
		pool.JumpMultiplier,
		pool.Kink,
	)
}

func (s *poolService) CurUtilizationRate(ctx context.Context, pool *core.Pool) decimal.Decimal {
	return gearbox.UtilizationRate(pool.AvailableLiquidity, pool.TotalBorrowed, pool.Reserves)
}
