package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

const (
	// CreditAccountStateActive active, owner may trade through adapters
	CreditAccountStateActive = "ACTIVE"
	// CreditAccountStateRepaid closed by the owner repaying the debt
	CreditAccountStateRepaid = "REPAID"
	// CreditAccountStateLiquidated force-closed by a liquidator
	CreditAccountStateLiquidated = "LIQUIDATED"
)

// CreditAccount a leveraged position: user collateral plus pool liquidity
// held together under the solvency invariant
type CreditAccount struct {
	ID    uint64 `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	Trace string `sql:"size:36;unique_index:credit_trace_idx" json:"trace"`
	Owner string `sql:"size:36;index:credit_owner_idx" json:"owner"`
	// ActiveKey equals Owner while the account is active and Trace afterwards,
	// so the unique index admits one active account per owner
	ActiveKey string `sql:"size:36;unique_index:credit_active_idx" json:"-"`
	AssetID   string `sql:"size:36" json:"asset_id"`
	// user principal paid in at open
	Collateral decimal.Decimal `sql:"type:decimal(32,16)" json:"collateral"`
	// principal borrowed from the pool at open
	BorrowedAmount decimal.Decimal `sql:"type:decimal(32,16)" json:"borrowed_amount"`
	// pool borrow index snapshot at open; owed = BorrowedAmount * pool.BorrowIndex / InterestIndex
	InterestIndex  decimal.Decimal `sql:"type:decimal(28,16);default:1" json:"interest_index"`
	LeverageFactor int64           `json:"leverage_factor"`
	State          string          `sql:"size:16" json:"state"`
	ReferralCode   string          `sql:"size:36" json:"referral_code"`
	OpenedAt       time.Time       `json:"opened_at"`
	ClosedAt       *time.Time      `json:"closed_at,omitempty"`
	Version        int64           `sql:"default:0" json:"version"`
	CreatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt      time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// IsActive check active state
func (a *CreditAccount) IsActive() bool {
	return a.State == CreditAccountStateActive
}

// ICreditAccountStore credit account store interface
type ICreditAccountStore interface {
	Create(ctx context.Context, tx *db.DB, account *CreditAccount) error
	FindActiveByOwner(ctx context.Context, owner string) (*CreditAccount, error)
	FindByTrace(ctx context.Context, trace string) (*CreditAccount, error)
	AllActive(ctx context.Context) ([]*CreditAccount, error)
	Update(ctx context.Context, tx *db.DB, account *CreditAccount) error
}

// ICreditManagerService owns the credit account lifecycle
type ICreditManagerService interface {
	OpenCreditAccount(ctx context.Context, tx *db.DB, owner string, amount decimal.Decimal, leverageFactor int64, referralCode string) (*CreditAccount, error)
	GetCreditAccountOrRevert(ctx context.Context, owner string) (*CreditAccount, error)
	ExecuteOrder(ctx context.Context, tx *db.DB, owner, target string, order *SwapOrder) (*SwapResult, error)
	AddCollateral(ctx context.Context, tx *db.DB, owner, assetID string, amount decimal.Decimal) error
	RepayCreditAccount(ctx context.Context, tx *db.DB, owner, to string) error
	LiquidateCreditAccount(ctx context.Context, tx *db.DB, liquidator, owner, to string) error
}
