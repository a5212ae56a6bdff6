package creditmanager

import (
	"context"
	"time"

	"gearbox/core"
	"gearbox/internal/gearbox"
	"gearbox/pkg/id"

	"github.com/fox-one/pkg/logger"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// OpenCreditAccount borrow amount * leverage / LeverageDecimals from the pool
// and combine it with the owner's collateral on a fresh account
func (m *Manager) OpenCreditAccount(ctx context.Context, tx *db.DB, owner string, amount decimal.Decimal, leverageFactor int64, referralCode string) (*core.CreditAccount, error) {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event": "open_credit_account",
		"owner": owner,
	})
	ctx = logger.WithContext(ctx, log)

	amount = amount.Truncate(gearbox.AmountPrecision)
	if !amount.IsPositive() {
		return nil, core.ErrInvalidAmount
	}

	release := m.locks.Lock(owner)
	defer release()

	if _, err := m.accountStore.FindActiveByOwner(ctx, owner); err == nil {
		return nil, core.ErrAccountAlreadyOpen
	} else if err != core.ErrAccountNotFound {
		return nil, err
	}

	pool, err := m.poolStore.Find(ctx, m.assetID)
	if err != nil {
		return nil, err
	}

	if !gearbox.ValidLeverage(leverageFactor, pool.MaxLeverageFactor) {
		return nil, core.ErrExcessiveLeverage
	}

	borrowed := gearbox.BorrowedAmount(amount, leverageFactor)

	// accrues interest before moving funds, so the snapshot below is current
	if err := m.poolService.Borrow(ctx, tx, pool, borrowed); err != nil {
		log.WithError(err).Infoln("pool.Borrow")
		return nil, err
	}

	account := &core.CreditAccount{
		Trace:          id.GenTraceID(),
		Owner:          owner,
		AssetID:        m.assetID,
		Collateral:     amount,
		BorrowedAmount: borrowed,
		InterestIndex:  pool.BorrowIndex,
		LeverageFactor: leverageFactor,
		State:          core.CreditAccountStateActive,
		ReferralCode:   referralCode,
		OpenedAt:       time.Now().UTC(),
	}

	if err := m.accountStore.Create(ctx, tx, account); err != nil {
		log.WithError(err).Errorln("accounts.Create")
		return nil, err
	}

	// collateral from the owner's wallet, borrowed funds from the pool
	if err := m.balanceStore.Transfer(ctx, tx, owner, account.Trace, m.assetID, amount); err != nil {
		return nil, err
	}

	if err := m.balanceStore.Add(ctx, tx, account.Trace, m.assetID, borrowed); err != nil {
		return nil, err
	}

	// solvent at leverage limits by construction, re-checked defensively
	if err := m.filterService.CheckAccount(ctx, tx, account, pool); err != nil {
		log.WithError(err).Infoln("post-open check failed")
		return nil, err
	}

	extra := core.NewTransactionExtra()
	extra.Put("trace", account.Trace)
	extra.Put("collateral", amount)
	extra.Put("borrowed", borrowed)
	extra.Put("leverage_factor", leverageFactor)

	transaction := core.BuildTransaction(foxuuid.Modify(account.Trace, "open_account"), core.ActionTypeOpenAccount, owner, m.assetID, extra)
	if err := m.transactionStore.Create(ctx, tx, transaction); err != nil {
		log.WithError(err).Errorln("transactions.Create")
		return nil, err
	}

	return account, nil
}

// AddCollateral deposit an allowed token from the owner's wallet onto the
// active account
func (m *Manager) AddCollateral(ctx context.Context, tx *db.DB, owner, assetID string, amount decimal.Decimal) error {
	amount = amount.Truncate(gearbox.AmountPrecision)
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	release := m.locks.Lock(owner)
	defer release()

	account, err := m.GetCreditAccountOrRevert(ctx, owner)
	if err != nil {
		return err
	}

	allowed, err := m.filterService.IsAccountAllowedToken(ctx, assetID)
	if err != nil {
		return err
	}
	if !allowed {
		return core.ErrTokenNotAllowed
	}

	if err := m.balanceStore.Transfer(ctx, tx, owner, account.Trace, assetID, amount); err != nil {
		return err
	}

	extra := core.NewTransactionExtra()
	extra.Put("trace", account.Trace)
	extra.Put("amount", amount)

	transaction := core.BuildTransaction(id.GenTraceID(), core.ActionTypeAddCollateral, owner, assetID, extra)
	return m.transactionStore.Create(ctx, tx, transaction)
}
