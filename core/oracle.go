package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Price asset price at a block, in the reference unit
type Price struct {
	ID          uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID     string          `sql:"size:36;unique_index:price_idx" json:"asset_id"`
	BlockNumber int64           `sql:"unique_index:price_idx" json:"block_number"`
	Price       decimal.Decimal `sql:"type:decimal(32,16)" json:"price"`
	Version     int64           `sql:"default:0" json:"version"`
	CreatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// PriceTicker ticker from the off-chain price feed
type PriceTicker struct {
	AssetID string          `json:"asset_id"`
	Symbol  string          `json:"symbol"`
	Price   decimal.Decimal `json:"price"`
}

// IPriceStore price store interface
type IPriceStore interface {
	Save(ctx context.Context, tx *db.DB, price *Price) error
	FindByAssetBlock(ctx context.Context, assetID string, blockNumber int64) (*Price, error)
	LatestByAsset(ctx context.Context, assetID string) (*Price, error)
}

// IPriceOracleService price oracle interface
type IPriceOracleService interface {
	// GetPrice returns the current price for the asset, ErrUnpricedAsset when
	// no usable price exists
	GetPrice(ctx context.Context, assetID string) (decimal.Decimal, error)
	PullPriceTicker(ctx context.Context, assetID string, t time.Time) (*PriceTicker, error)
	PullAllPriceTickers(ctx context.Context, t time.Time) ([]*PriceTicker, error)
}

// IBlockService block clock interface
type IBlockService interface {
	CurrentBlock(ctx context.Context) (int64, error)
	GetBlockByTime(ctx context.Context, t time.Time) (int64, error)
}
