package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

// AllowedContract target contract to adapter mapping, one-to-one
type AllowedContract struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TargetID  string    `sql:"size:128;unique_index:allow_target_idx" json:"target_id"`
	AdapterID string    `sql:"size:128" json:"adapter_id"`
	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// AllowedToken token an account may hold on its balance sheet
type AllowedToken struct {
	ID        uint64    `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	AssetID   string    `sql:"size:36;unique_index:allow_token_idx" json:"asset_id"`
	Symbol    string    `sql:"size:20" json:"symbol"`
	Version   int64     `sql:"default:0" json:"version"`
	CreatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// ICreditFilterStore allow list store interface
type ICreditFilterStore interface {
	SaveContract(ctx context.Context, tx *db.DB, entry *AllowedContract) error
	DeleteContract(ctx context.Context, tx *db.DB, targetID string) error
	FindContract(ctx context.Context, targetID string) (*AllowedContract, error)
	AllContracts(ctx context.Context) ([]*AllowedContract, error)
	SaveToken(ctx context.Context, tx *db.DB, token *AllowedToken) error
	DeleteToken(ctx context.Context, tx *db.DB, assetID string) error
	FindToken(ctx context.Context, assetID string) (*AllowedToken, error)
	AllTokens(ctx context.Context) ([]*AllowedToken, error)
}

// ICreditFilterService risk engine: values collateral and gates external targets
type ICreditFilterService interface {
	ContractToAdapter(ctx context.Context, targetID string) (string, error)
	IsAccountAllowedToken(ctx context.Context, assetID string) (bool, error)
	// CalcTotalValue prices every balance the account holds; a held token
	// without a price aborts with ErrUnpricedAsset, never clamps. Balances
	// are read through tx so in-transaction moves count.
	CalcTotalValue(ctx context.Context, tx *db.DB, account *CreditAccount) (decimal.Decimal, error)
	CalcHealthFactor(ctx context.Context, tx *db.DB, account *CreditAccount, pool *Pool) (decimal.Decimal, error)
	// CheckAccount fails with ErrInsufficientCollateral when health < 1
	CheckAccount(ctx context.Context, tx *db.DB, account *CreditAccount, pool *Pool) error
}
