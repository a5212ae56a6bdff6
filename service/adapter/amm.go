package adapter

import (
	"context"
	"time"

	"gearbox/core"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
)

// AmmAdapter routes credit account swaps to the constant-product exchange.
// Funds come off the account's balance sheet; output lands on the order's
// recipient, defaulting back onto the account.
type AmmAdapter struct {
	target        string
	dexService    core.IDexService
	filterService core.ICreditFilterService
	balanceStore  core.IBalanceStore
}

// NewAmm new amm adapter
func NewAmm(
	target string,
	dexService core.IDexService,
	filterService core.ICreditFilterService,
	balanceStore core.IBalanceStore,
) *AmmAdapter {
	return &AmmAdapter{
		target:        target,
		dexService:    dexService,
		filterService: filterService,
		balanceStore:  balanceStore,
	}
}

// Target target contract id
func (a *AmmAdapter) Target() string {
	return a.target
}

func (a *AmmAdapter) validateOrder(ctx context.Context, order *core.SwapOrder) error {
	if time.Now().After(order.Deadline) {
		return core.ErrDeadlineExpired
	}

	if len(order.Path) < 2 {
		return core.ErrInvalidAmount
	}

	for _, assetID := range order.Path {
		allowed, err := a.filterService.IsAccountAllowedToken(ctx, assetID)
		if err != nil {
			return err
		}
		if !allowed {
			return core.ErrTokenNotAllowed
		}
	}

	return nil
}

func (a *AmmAdapter) settle(ctx context.Context, tx *db.DB, account *core.CreditAccount, order *core.SwapOrder, result *core.SwapResult) error {
	assetIn := order.Path[0]
	assetOut := order.Path[len(order.Path)-1]

	if err := a.balanceStore.Add(ctx, tx, account.Trace, assetIn, result.AmountIn.Neg()); err != nil {
		return err
	}

	to := order.To
	if to == "" {
		to = account.Trace
	}

	return a.balanceStore.Add(ctx, tx, to, assetOut, result.AmountOut)
}

// SwapExactTokensForTokens fixed input, output floored by AmountOutMin
func (a *AmmAdapter) SwapExactTokensForTokens(ctx context.Context, tx *db.DB, account *core.CreditAccount, order *core.SwapOrder) (*core.SwapResult, error) {
	log := logger.FromContext(ctx).WithField("adapter", a.target)

	if err := a.validateOrder(ctx, order); err != nil {
		return nil, err
	}

	if !order.AmountIn.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	// quote first so a slippage violation leaves reserves untouched
	amounts, err := a.dexService.GetAmountsOut(ctx, order.AmountIn, order.Path)
	if err != nil {
		return nil, err
	}

	amountOut := amounts[len(amounts)-1]
	if amountOut.LessThan(order.AmountOutMin) {
		log.Infoln("swap rejected: output", amountOut, "below", order.AmountOutMin)
		return nil, core.ErrSlippageExceeded
	}

	if _, err := a.dexService.Swap(ctx, tx, order.AmountIn, order.Path); err != nil {
		return nil, err
	}

	result := &core.SwapResult{AmountIn: order.AmountIn, AmountOut: amountOut}
	if err := a.settle(ctx, tx, account, order, result); err != nil {
		return nil, err
	}

	return result, nil
}

// SwapTokensForExactTokens fixed output, input capped by AmountInMax
func (a *AmmAdapter) SwapTokensForExactTokens(ctx context.Context, tx *db.DB, account *core.CreditAccount, order *core.SwapOrder) (*core.SwapResult, error) {
	log := logger.FromContext(ctx).WithField("adapter", a.target)

	if err := a.validateOrder(ctx, order); err != nil {
		return nil, err
	}

	if !order.AmountOut.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	amounts, err := a.dexService.GetAmountsIn(ctx, order.AmountOut, order.Path)
	if err != nil {
		return nil, err
	}

	amountIn := amounts[0]
	if order.AmountInMax.IsPositive() && amountIn.GreaterThan(order.AmountInMax) {
		log.Infoln("swap rejected: input", amountIn, "above", order.AmountInMax)
		return nil, core.ErrSlippageExceeded
	}

	swapped, err := a.dexService.Swap(ctx, tx, amountIn, order.Path)
	if err != nil {
		return nil, err
	}

	result := &core.SwapResult{AmountIn: amountIn, AmountOut: swapped[len(swapped)-1]}
	if err := a.settle(ctx, tx, account, order, result); err != nil {
		return nil, err
	}

	return result, nil
}
