package creditfilter

import (
	"context"

	"gearbox/core"
	"gearbox/internal/gearbox"

	"github.com/fox-one/pkg/logger"
	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
)

type filterService struct {
	filterStore  core.ICreditFilterStore
	balanceStore core.IBalanceStore
	priceService core.IPriceOracleService
}

// New new credit filter service
func New(
	filterStore core.ICreditFilterStore,
	balanceStore core.IBalanceStore,
	priceService core.IPriceOracleService,
) core.ICreditFilterService {
	return &filterService{
		filterStore:  filterStore,
		balanceStore: balanceStore,
		priceService: priceService,
	}
}

func (s *filterService) ContractToAdapter(ctx context.Context, targetID string) (string, error) {
	entry, err := s.filterStore.FindContract(ctx, targetID)
	if err != nil {
		return "", err
	}

	return entry.AdapterID, nil
}

func (s *filterService) IsAccountAllowedToken(ctx context.Context, assetID string) (bool, error) {
	if _, err := s.filterStore.FindToken(ctx, assetID); err != nil {
		if err == core.ErrTokenNotAllowed {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// CalcTotalValue sum of every balance the account holds, in the reference
// unit. Zero balances contribute zero; a held token without a price aborts.
// Balances are read through tx: the solvency checks inside OpenCreditAccount
// and ExecuteOrder must see the uncommitted moves of their own transaction.
func (s *filterService) CalcTotalValue(ctx context.Context, tx *db.DB, account *core.CreditAccount) (decimal.Decimal, error) {
	balances, err := s.balanceStore.FindByHolder(ctx, tx, account.Trace)
	if err != nil {
		return decimal.Zero, err
	}

	totalValue := decimal.Zero
	for _, balance := range balances {
		if balance.Amount.IsZero() {
			continue
		}

		price, err := s.priceService.GetPrice(ctx, balance.AssetID)
		if err != nil {
			logger.FromContext(ctx).WithError(err).
				WithField("asset_id", balance.AssetID).
				Infoln("price unavailable for held token")
			return decimal.Zero, core.ErrUnpricedAsset
		}

		totalValue = totalValue.Add(balance.Amount.Mul(price))
	}

	return totalValue, nil
}

func (s *filterService) CalcHealthFactor(ctx context.Context, tx *db.DB, account *core.CreditAccount, pool *core.Pool) (decimal.Decimal, error) {
	totalValue, err := s.CalcTotalValue(ctx, tx, account)
	if err != nil {
		return decimal.Zero, err
	}

	price, err := s.priceService.GetPrice(ctx, account.AssetID)
	if err != nil {
		return decimal.Zero, err
	}

	debt := gearbox.BorrowBalance(account.BorrowedAmount, pool.BorrowIndex, account.InterestIndex).Mul(price)

	return gearbox.HealthFactor(totalValue, debt), nil
}

func (s *filterService) CheckAccount(ctx context.Context, tx *db.DB, account *core.CreditAccount, pool *core.Pool) error {
	healthFactor, err := s.CalcHealthFactor(ctx, tx, account, pool)
	if err != nil {
		return err
	}

	if healthFactor.LessThan(decimal.New(1, 0)) {
		return core.ErrInsufficientCollateral
	}

	return nil
}
