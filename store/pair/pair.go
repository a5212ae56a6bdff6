package pair

import (
	"context"

	"gearbox/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type pairStore struct {
	db *db.DB
}

// New new pair store
func New(db *db.DB) core.IPairStore {
	return &pairStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Pair{})
		if err := tx.AutoMigrate(core.Pair{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *pairStore) Save(ctx context.Context, tx *db.DB, pair *core.Pair) error {
	return tx.Update().Create(pair).Error
}

func (s *pairStore) Find(ctx context.Context, assetA, assetB string) (*core.Pair, error) {
	var pair core.Pair
	err := s.db.View().
		Where("(base_asset_id=? and quote_asset_id=?) or (base_asset_id=? and quote_asset_id=?)", assetA, assetB, assetB, assetA).
		First(&pair).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrPairNotFound
		}
		return nil, err
	}

	return &pair, nil
}

func (s *pairStore) All(ctx context.Context) ([]*core.Pair, error) {
	var pairs []*core.Pair
	if err := s.db.View().Find(&pairs).Error; err != nil {
		return nil, err
	}
	return pairs, nil
}

func (s *pairStore) Update(ctx context.Context, tx *db.DB, pair *core.Pair) error {
	version := pair.Version
	pair.Version++
	r := tx.Update().Model(core.Pair{}).
		Where("base_asset_id=? and quote_asset_id=? and version=?", pair.BaseAssetID, pair.QuoteAssetID, version).
		Update(pair)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return core.ErrOperationConflict
	}

	return nil
}
