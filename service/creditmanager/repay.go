package creditmanager

import (
	"context"
	"time"

	"gearbox/core"
	"gearbox/internal/gearbox"
	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// RepayCreditAccount settle principal plus accrued interest with the pool,
// sweep every remaining balance to the designated recipient and free the
// owner's account slot
func (m *Manager) RepayCreditAccount(ctx context.Context, tx *db.DB, owner, to string) error {
	log := logger.FromContext(ctx).WithFields(logrus.Fields{
		"event": "repay_credit_account",
		"owner": owner,
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

	// bring the index current before computing what is owed
	if err := m.poolService.AccrueInterest(ctx, tx, pool, time.Now()); err != nil {
		return err
	}

	owed := gearbox.BorrowBalance(account.BorrowedAmount, pool.BorrowIndex, account.InterestIndex)
	interest := owed.Sub(account.BorrowedAmount)

	// snapshot holdings before any debit so the sweep amounts stay exact
	balances, err := m.balanceStore.FindByHolder(ctx, tx, account.Trace)
	if err != nil {
		return err
	}

	var held decimal.Decimal
	for _, balance := range balances {
		if balance.AssetID == m.assetID {
			held = balance.Amount
		}
	}

	if held.LessThan(owed) {
		log.Infoln("repay denied: held", held, "owed", owed)
		return core.ErrInsufficientRepayment
	}

	if err := m.balanceStore.Add(ctx, tx, account.Trace, m.assetID, owed.Neg()); err != nil {
		return err
	}

	if err := m.poolService.Repay(ctx, tx, pool, account.BorrowedAmount, interest); err != nil {
		log.WithError(err).Errorln("pool.Repay")
		return err
	}

	// return every residual balance to the recipient
	for _, balance := range balances {
		remaining := balance.Amount
		if balance.AssetID == m.assetID {
			remaining = remaining.Sub(owed)
		}
		if !remaining.IsPositive() {
			continue
		}

		if err := m.balanceStore.Transfer(ctx, tx, account.Trace, to, balance.AssetID, remaining); err != nil {
			return err
		}
	}

	now := time.Now().UTC()
	account.State = core.CreditAccountStateRepaid
	account.ClosedAt = &now
	if err := m.accountStore.Update(ctx, tx, account); err != nil {
		log.WithError(err).Errorln("accounts.Update")
		return err
	}

	extra := core.NewTransactionExtra()
	extra.Put("trace", account.Trace)
	extra.Put("principal", account.BorrowedAmount)
	extra.Put("interest", interest)
	extra.Put("to", to)

	transaction := core.BuildTransaction(foxuuid.Modify(account.Trace, "repay_account"), core.ActionTypeRepayAccount, owner, m.assetID, extra)
	return m.transactionStore.Create(ctx, tx, transaction)
}
