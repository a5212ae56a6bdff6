package creditmanager

import (
	"context"

	"gearbox/core"
	"gearbox/pkg/id"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/sirupsen/logrus"
)

// ExecuteOrder resolve the adapter registered for target, forward the order
// with the account's funds, then re-validate solvency. The account lock is
// held across the external call: no other operation against this account is
// accepted until the post-trade check finishes.
func (m *Manager) ExecuteOrder(ctx context.Context, tx *db.DB, owner, target string, order *core.SwapOrder) (*core.SwapResult, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":  "execute_order",
		"owner":  owner,
		"target": target,
	})
	ctx = logger.WithContext(ctx, log)

	release := m.locks.Lock(owner)
	defer release()

	account, err := m.GetCreditAccountOrRevert(ctx, owner)
	if err != nil {
		return nil, err
	}

	adapterID, err := m.filterService.ContractToAdapter(ctx, target)
	if err != nil {
		return nil, err
	}

	adapter, ok := m.adapters[adapterID]
	if !ok {
		log.Infoln("adapter not wired:", adapterID)
		return nil, core.ErrUnauthorizedTarget
	}

	pool, err := m.poolStore.Find(ctx, m.assetID)
	if err != nil {
		return nil, err
	}

	// cheap short-circuit before handing control to external code
	if err := m.filterService.CheckAccount(ctx, tx, account, pool); err != nil {
		return nil, err
	}

	var result *core.SwapResult
	switch order.Side {
	case core.SwapSideExactIn:
		result, err = adapter.SwapExactTokensForTokens(ctx, tx, account, order)
	case core.SwapSideExactOut:
		result, err = adapter.SwapTokensForExactTokens(ctx, tx, account, order)
	default:
		log.Infoln("unrecognized order side:", order.Side)
		return nil, core.ErrInvalidAmount
	}
	if err != nil {
		log.WithError(err).Infoln("adapter swap failed")
		return nil, err
	}

	// mandatory post-trade check; an error here rolls the whole tx back
	if err := m.filterService.CheckAccount(ctx, tx, account, pool); err != nil {
		log.WithError(err).Infoln("post-trade check failed")
		return nil, err
	}

	extra := core.NewTransactionExtra()
	extra.Put("trace", account.Trace)
	extra.Put("target", target)
	extra.Put("amount_in", result.AmountIn)
	extra.Put("amount_out", result.AmountOut)
	extra.Put("path", order.Path)

	transaction := core.BuildTransaction(id.GenTraceID(), core.ActionTypeExecuteOrder, owner, m.assetID, extra)
	if err := m.transactionStore.Create(ctx, tx, transaction); err != nil {
		log.WithError(err).Errorln("transactions.Create")
		return nil, err
	}

	return result, nil
}
