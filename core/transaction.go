package core

import (
	"context"
	"encoding/json"
	"time"

	"github.com/fox-one/pkg/store/db"
)

const (
	// ActionTypeAddLiquidity pool deposit
	ActionTypeAddLiquidity = "add_liquidity"
	// ActionTypeRemoveLiquidity pool withdrawal
	ActionTypeRemoveLiquidity = "remove_liquidity"
	// ActionTypeOpenAccount open credit account
	ActionTypeOpenAccount = "open_account"
	// ActionTypeAddCollateral extra collateral onto an active account
	ActionTypeAddCollateral = "add_collateral"
	// ActionTypeExecuteOrder adapter-routed trade
	ActionTypeExecuteOrder = "execute_order"
	// ActionTypeRepayAccount repay and close
	ActionTypeRepayAccount = "repay_account"
	// ActionTypeLiquidateAccount forced close by a liquidator
	ActionTypeLiquidateAccount = "liquidate_account"
)

// Transaction append-only operation log entry, written inside the same tx as
// the state change it records
type Transaction struct {
	ID        uint64          `sql:"PRIMARY_KEY;AUTO_INCREMENT" json:"id"`
	TraceID   string          `sql:"size:36;unique_index:tx_trace_idx" json:"trace_id"`
	Action    string          `sql:"size:32;index:tx_action_idx" json:"action"`
	UserID    string          `sql:"size:36;index:tx_user_idx" json:"user_id"`
	AssetID   string          `sql:"size:36" json:"asset_id"`
	Data      json.RawMessage `sql:"type:text" json:"data"`
	CreatedAt time.Time       `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TransactionExtra extra data of transaction
type TransactionExtra map[string]interface{}

// NewTransactionExtra new transaction extra
func NewTransactionExtra() TransactionExtra {
	return make(TransactionExtra)
}

// Put put value
func (e TransactionExtra) Put(key string, v interface{}) {
	e[key] = v
}

// Format marshal to json
func (e TransactionExtra) Format() json.RawMessage {
	data, err := json.Marshal(e)
	if err != nil {
		return json.RawMessage("{}")
	}
	return data
}

// BuildTransaction build a transaction record
func BuildTransaction(traceID, action, userID, assetID string, extra TransactionExtra) *Transaction {
	return &Transaction{
		TraceID:   traceID,
		Action:    action,
		UserID:    userID,
		AssetID:   assetID,
		Data:      extra.Format(),
		CreatedAt: time.Now().UTC(),
	}
}

// ITransactionStore transaction store interface
type ITransactionStore interface {
	Create(ctx context.Context, tx *db.DB, transaction *Transaction) error
	FindByTraceID(ctx context.Context, traceID string) (*Transaction, error)
	List(ctx context.Context, fromID uint64, limit int) ([]*Transaction, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]*Transaction, error)
}
