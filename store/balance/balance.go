package balance

import (
	"context"

	"gearbox/core"
	"gearbox/internal/gearbox"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
	"github.com/shopspring/decimal"
)

type balanceStore struct {
	db *db.DB
}

// New new balance store
func New(db *db.DB) core.IBalanceStore {
	return &balanceStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Balance{})
		if err := tx.AutoMigrate(core.Balance{}).Error; err != nil {
			return err
		}

		return nil
	})
}

// Find reads through tx.Update() so uncommitted debits and credits within
// the same transaction are visible
func (s *balanceStore) Find(ctx context.Context, tx *db.DB, holderID, assetID string) (*core.Balance, error) {
	var balance core.Balance
	if err := tx.Update().Where("holder_id=? and asset_id=?", holderID, assetID).First(&balance).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.Balance{HolderID: holderID, AssetID: assetID}, nil
		}
		return nil, err
	}

	return &balance, nil
}

func (s *balanceStore) FindByHolder(ctx context.Context, tx *db.DB, holderID string) ([]*core.Balance, error) {
	var balances []*core.Balance
	if err := tx.Update().Where("holder_id=?", holderID).Find(&balances).Error; err != nil {
		return nil, err
	}
	return balances, nil
}

func (s *balanceStore) Add(ctx context.Context, tx *db.DB, holderID, assetID string, amount decimal.Decimal) error {
	var balance core.Balance
	err := tx.Update().Where("holder_id=? and asset_id=?", holderID, assetID).First(&balance).Error
	if err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			return err
		}

		if amount.IsNegative() {
			return core.ErrInvalidAmount
		}

		balance = core.Balance{
			HolderID: holderID,
			AssetID:  assetID,
			Amount:   amount.Truncate(gearbox.MaxPricision),
		}
		return tx.Update().Create(&balance).Error
	}

	next := balance.Amount.Add(amount).Truncate(gearbox.MaxPricision)
	if next.IsNegative() {
		return core.ErrInvalidAmount
	}

	version := balance.Version
	r := tx.Update().Model(core.Balance{}).
		Where("holder_id=? and asset_id=? and version=?", holderID, assetID, version).
		Updates(map[string]interface{}{"amount": next, "version": version + 1})
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return core.ErrOperationConflict
	}

	return nil
}

func (s *balanceStore) Transfer(ctx context.Context, tx *db.DB, from, to, assetID string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return core.ErrInvalidAmount
	}

	if err := s.Add(ctx, tx, from, assetID, amount.Neg()); err != nil {
		return err
	}

	return s.Add(ctx, tx, to, assetID, amount)
}
