package creditmanager

import (
	"context"
	"time"

	"gearbox/core"
	"gearbox/internal/gearbox"
	"gearbox/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// LiquidateCreditAccount force-close an insolvent account: the liquidator
// covers the debt from their own wallet, repays the pool and seizes account
// holdings worth the debt plus the liquidation incentive; the residual goes
// back to the owner
func (m *Manager) LiquidateCreditAccount(ctx context.Context, tx *db.DB, liquidator, owner, to string) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event":      "liquidate_credit_account",
		"owner":      owner,
		"liquidator": liquidator,
	})
	ctx = logger.WithContext(ctx, log)

	release := m.locks.Lock(owner)
	defer release()

	account, err := m.GetCreditAccountOrRevert(ctx, owner)
	if err != nil {
		return err
	}

	pool, err := m.poolStore.Find(ctx, m.assetID)
	if err != nil {
		return err
	}

	if err := m.poolService.AccrueInterest(ctx, tx, pool, time.Now()); err != nil {
		return err
	}

	healthFactor, err := m.filterService.CalcHealthFactor(ctx, tx, account, pool)
	if err != nil {
		return err
	}

	if healthFactor.GreaterThanOrEqual(decimal.New(1, 0)) {
		return core.ErrAccountNotLiquidatable
	}

	owed := gearbox.BorrowBalance(account.BorrowedAmount, pool.BorrowIndex, account.InterestIndex)
	interest := owed.Sub(account.BorrowedAmount)

	// the liquidator funds the repayment from their own wallet
	wallet, err := m.balanceStore.Find(ctx, tx, liquidator, m.assetID)
	if err != nil {
		return err
	}
	if wallet.Amount.LessThan(owed) {
		return core.ErrInsufficientRepayment
	}

	if err := m.balanceStore.Add(ctx, tx, liquidator, m.assetID, owed.Neg()); err != nil {
		return err
	}

	if err := m.poolService.Repay(ctx, tx, pool, account.BorrowedAmount, interest); err != nil {
		log.WithError(err).Errorln("pool.Repay")
		return err
	}

	assetPrice, err := m.priceService.GetPrice(ctx, m.assetID)
	if err != nil {
		return err
	}

	// seize up to owed value plus the incentive premium
	seizeValue := owed.Mul(assetPrice).Mul(decimal.New(1, 0).Add(pool.LiquidationIncentive))

	balances, err := m.balanceStore.FindByHolder(ctx, tx, account.Trace)
	if err != nil {
		return err
	}

	for _, balance := range balances {
		if !balance.Amount.IsPositive() {
			continue
		}

		if !seizeValue.IsPositive() {
			// residual back to the owner
			if err := m.balanceStore.Transfer(ctx, tx, account.Trace, owner, balance.AssetID, balance.Amount); err != nil {
				return err
			}
			continue
		}

		price, err := m.priceService.GetPrice(ctx, balance.AssetID)
		if err != nil {
			return err
		}

		seizable := number.Min(balance.Amount, seizeValue.Div(price).Truncate(gearbox.AmountPrecision))
		if seizable.IsPositive() {
			if err := m.balanceStore.Transfer(ctx, tx, account.Trace, to, balance.AssetID, seizable); err != nil {
				return err
			}
			seizeValue = seizeValue.Sub(seizable.Mul(price))
		}

		if residual := balance.Amount.Sub(seizable); residual.IsPositive() {
			if err := m.balanceStore.Transfer(ctx, tx, account.Trace, owner, balance.AssetID, residual); err != nil {
				return err
			}
		}
	}

	now := time.Now().UTC()
	account.State = core.CreditAccountStateLiquidated
	account.ClosedAt = &now
	if err := m.accountStore.Update(ctx, tx, account); err != nil {
		log.WithError(err).Errorln("accounts.Update")
		return err
	}

	extra := core.NewTransactionExtra()
	extra.Put("trace", account.Trace)
	extra.Put("liquidator", liquidator)
	extra.Put("principal", account.BorrowedAmount)
	extra.Put("interest", interest)
	extra.Put("health_factor", healthFactor)

	transaction := core.BuildTransaction(foxuuid.Modify(account.Trace, "liquidate_account"), core.ActionTypeLiquidateAccount, liquidator, m.assetID, extra)
	return m.transactionStore.Create(ctx, tx, transaction)
}
