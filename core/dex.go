package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Pair constant-product pair on the in-process exchange
type Pair struct {
	ID           uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	BaseAssetID  string          `sql:"size:36;unique_index:pair_idx" json:"base_asset_id"`
	QuoteAssetID string          `sql:"size:36;unique_index:pair_idx" json:"quote_asset_id"`
	BaseReserve  decimal.Decimal `sql:"type:decimal(32,16)" json:"base_reserve"`
	QuoteReserve decimal.Decimal `sql:"type:decimal(32,16)" json:"quote_reserve"`
	Version      int64           `sql:"default:0" json:"version"`
	CreatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt    time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IPairStore pair store interface
type IPairStore interface {
	Save(ctx context.Context, tx *db.DB, pair *Pair) error
	// Find matches either asset order
	Find(ctx context.Context, assetA, assetB string) (*Pair, error)
	All(ctx context.Context) ([]*Pair, error)
	Update(ctx context.Context, tx *db.DB, pair *Pair) error
}

// IDexService the external exchange contract the swap adapter requires:
// quoting plus reserve-mutating swaps along a path
type IDexService interface {
	GetAmountsOut(ctx context.Context, amountIn decimal.Decimal, path []string) ([]decimal.Decimal, error)
	GetAmountsIn(ctx context.Context, amountOut decimal.Decimal, path []string) ([]decimal.Decimal, error)
	// Swap trades amountIn of path[0] along path, mutating pair reserves
	// within tx, and returns the amounts at every hop
	Swap(ctx context.Context, tx *db.DB, amountIn decimal.Decimal, path []string) ([]decimal.Decimal, error)
}
