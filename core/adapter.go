package core

import (
	"context"
	"time"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

const (
	// SwapSideExactIn fixed input, floor on output
	SwapSideExactIn = "EXACT_IN"
	// SwapSideExactOut fixed output, cap on input
	SwapSideExactOut = "EXACT_OUT"
)

// SwapOrder caller-facing swap request routed through the credit manager
type SwapOrder struct {
	Side string `json:"side"`
	// exact-in: AmountIn fixed, AmountOutMin floors the output
	// exact-out: AmountOut fixed, AmountInMax caps the input
	AmountIn     decimal.Decimal `json:"amount_in,omitempty"`
	AmountOutMin decimal.Decimal `json:"amount_out_min,omitempty"`
	AmountOut    decimal.Decimal `json:"amount_out,omitempty"`
	AmountInMax  decimal.Decimal `json:"amount_in_max,omitempty"`
	Path         []string        `json:"path"`
	// To receives the swap output; empty keeps the output on the account
	To       string    `json:"to,omitempty"`
	Deadline time.Time `json:"deadline"`
}

// SwapResult realized swap amounts
type SwapResult struct {
	AmountIn  decimal.Decimal `json:"amount_in"`
	AmountOut decimal.Decimal `json:"amount_out"`
}

// Adapter protocol-specific translation layer; sources funds from the credit
// account and holds no persistent state of its own
type Adapter interface {
	Target() string
	SwapExactTokensForTokens(ctx context.Context, tx *db.DB, account *CreditAccount, order *SwapOrder) (*SwapResult, error)
	SwapTokensForExactTokens(ctx context.Context, tx *db.DB, account *CreditAccount, order *SwapOrder) (*SwapResult, error)
}

// AdapterRegistry adapter instances by adapter id, injected at wiring time
type AdapterRegistry map[string]Adapter
