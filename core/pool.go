package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Pool single-asset liquidity pool lending to credit managers
type Pool struct {
	ID      uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID string `sql:"size:36;unique_index:pool_asset_idx" json:"asset_id"`
	Symbol  string `sql:"size:20;unique_index:pool_symbol_idx" json:"symbol"`
	// TotalLiquidity = AvailableLiquidity + TotalBorrowed, checked after every commit
	TotalLiquidity     decimal.Decimal `sql:"type:decimal(32,16)" json:"total_liquidity"`
	AvailableLiquidity decimal.Decimal `sql:"type:decimal(32,16)" json:"available_liquidity"`
	TotalBorrowed      decimal.Decimal `sql:"type:decimal(32,16)" json:"total_borrowed"`
	// 协议保留金, share of accrued interest withheld from liquidity providers
	Reserves      decimal.Decimal `sql:"type:decimal(32,16)" json:"reserves"`
	ReserveFactor decimal.Decimal `sql:"type:decimal(20,8)" json:"reserve_factor"`
	// 基础利率 per year
	BaseRate decimal.Decimal `sql:"type:decimal(20,8)" json:"base_rate"`
	// The multiplier of utilization rate that gives the slope of the interest rate. per year
	Multiplier decimal.Decimal `sql:"type:decimal(20,8)" json:"multiplier"`
	// The multiplier after hitting a specified utilization point. per year
	JumpMultiplier decimal.Decimal `sql:"type:decimal(20,8)" json:"jump_multiplier"`
	// Kink
	Kink decimal.Decimal `sql:"type:decimal(20,8)" json:"kink"`
	// max leverage factor a credit account may open with, fixed-point (10000 = 1x)
	MaxLeverageFactor int64 `sql:"default:0" json:"max_leverage_factor"`
	// 清算激励因子 (0, 1)
	LiquidationIncentive decimal.Decimal `sql:"type:decimal(20,8)" json:"liquidation_incentive"`
	// 当前区块高度
	BlockNumber        int64           `json:"block_number"`
	UtilizationRate    decimal.Decimal `sql:"type:decimal(20,16)" json:"utilization_rate"`
	BorrowRatePerBlock decimal.Decimal `sql:"type:decimal(20,16)" json:"borrow_rate_per_block"`
	SupplyRatePerBlock decimal.Decimal `sql:"type:decimal(20,16)" json:"supply_rate_per_block"`
	// cumulative interest index, monotone, snapshotted onto credit accounts at open
	BorrowIndex decimal.Decimal `sql:"type:decimal(28,16)" json:"borrow_index"`
	Version     int64           `sql:"default:0" json:"version"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// PoolShare liquidity provider share of a pool
type PoolShare struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID   string          `sql:"size:36;unique_index:share_idx" json:"asset_id"`
	Provider  string          `sql:"size:36;unique_index:share_idx" json:"provider"`
	Amount    decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPoolStore pool store interface
type IPoolStore interface {
	Save(ctx context.Context, tx *db.DB, pool *Pool) error
	Find(ctx context.Context, assetID string) (*Pool, error)
	FindBySymbol(ctx context.Context, symbol string) (*Pool, error)
	All(ctx context.Context) ([]*Pool, error)
	Update(ctx context.Context, tx *db.DB, pool *Pool) error
	SaveShare(ctx context.Context, tx *db.DB, share *PoolShare) error
	FindShare(ctx context.Context, assetID, provider string) (*PoolShare, error)
	UpdateShare(ctx context.Context, tx *db.DB, share *PoolShare) error
}

// IPoolService pool service interface
type IPoolService interface {
	AddLiquidity(ctx context.Context, tx *db.DB, pool *Pool, amount decimal.Decimal, onBehalfOf string, referralCode string) error
	RemoveLiquidity(ctx context.Context, tx *db.DB, pool *Pool, amount decimal.Decimal, to string) error
	// Borrow and Repay are credit-manager-only, both accrue interest first
	Borrow(ctx context.Context, tx *db.DB, pool *Pool, amount decimal.Decimal) error
	Repay(ctx context.Context, tx *db.DB, pool *Pool, principal, interest decimal.Decimal) error
	AccrueInterest(ctx context.Context, tx *db.DB, pool *Pool, t time.Time) error
	CurBorrowRatePerBlock(ctx context.Context, pool *Pool) decimal.Decimal
	CurUtilizationRate(ctx context.Context, pool *Pool) decimal.Decimal
}
