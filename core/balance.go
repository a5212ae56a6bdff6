package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// Balance token balance held by a credit account or a plain recipient
type Balance struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	HolderID  string          `sql:"size:36;unique_index:balance_idx" json:"holder_id"`
	AssetID   string          `sql:"size:36;unique_index:balance_idx" json:"asset_id"`
	Amount    decimal.Decimal `sql:"type:decimal(32,16)" json:"amount"`
	Version   int64           `sql:"default:0" json:"version"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IBalanceStore balance ledger interface. Reads go through tx so a caller
// inside a transaction sees its own writes; callers outside one pass the
// base handle.
type IBalanceStore interface {
	Find(ctx context.Context, tx *db.DB, holderID, assetID string) (*Balance, error)
	FindByHolder(ctx context.Context, tx *db.DB, holderID string) ([]*Balance, error)
	// Add credits (or debits, negative amount) a holder balance; debiting below
	// zero is rejected
	Add(ctx context.Context, tx *db.DB, holderID, assetID string, amount decimal.Decimal) error
	// Transfer moves amount between holders atomically within tx
	Transfer(ctx context.Context, tx *db.DB, from, to, assetID string, amount decimal.Decimal) error
}
