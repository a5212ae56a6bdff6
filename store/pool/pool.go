package pool

import (
	"context"
	"errors"

	"gearbox/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type poolStore struct {
	db *db.DB
}

// New new pool store
func New(db *db.DB) core.IPoolStore {
	return &poolStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.Pool{})
		if err := tx.AutoMigrate(core.Pool{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.PoolShare{}).AutoMigrate(core.PoolShare{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *poolStore) Save(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	return tx.Update().Create(pool).Error
}

func (s *poolStore) Find(ctx context.Context, assetID string) (*core.Pool, error) {
	if assetID == "" {
		return nil, errors.New("invalid asset_id")
	}

	var pool core.Pool
	if err := s.db.View().Where("asset_id=?", assetID).First(&pool).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrPoolNotFound
		}
		return nil, err
	}

	return &pool, nil
}

func (s *poolStore) FindBySymbol(ctx context.Context, symbol string) (*core.Pool, error) {
	if symbol == "" {
		return nil, errors.New("invalid symbol")
	}

	var pool core.Pool
	if err := s.db.View().Where("symbol=?", symbol).First(&pool).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrPoolNotFound
		}
		return nil, err
	}

	return &pool, nil
}

func (s *poolStore) All(ctx context.Context) ([]*core.Pool, error) {
	var pools []*core.Pool
	if err := s.db.View().Find(&pools).Error; err != nil {
		return nil, err
	}
	return pools, nil
}

func (s *poolStore) Update(ctx context.Context, tx *db.DB, pool *core.Pool) error {
	version := pool.Version
	pool.Version++
	r := tx.Update().Model(core.Pool{}).Where("asset_id=? and version=?", pool.AssetID, version).Update(pool)
	if r.Error != nil {
		return r.Error
	}

	// losing the version race means a concurrent operation committed first
	if r.RowsAffected == 0 {
		return core.ErrOperationConflict
	}

	return nil
}

func (s *poolStore) SaveShare(ctx context.Context, tx *db.DB, share *core.PoolShare) error {
	return tx.Update().Where("asset_id=? and provider=?", share.AssetID, share.Provider).FirstOrCreate(share).Error
}

func (s *poolStore) FindShare(ctx context.Context, assetID, provider string) (*core.PoolShare, error) {
	var share core.PoolShare
	if err := s.db.View().Where("asset_id=? and provider=?", assetID, provider).First(&share).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return &core.PoolShare{AssetID: assetID, Provider: provider}, nil
		}
		return nil, err
	}

	return &share, nil
}

func (s *poolStore) UpdateShare(ctx context.Context, tx *db.DB, share *core.PoolShare) error {
	version := share.Version
	share.Version++
	r := tx.Update().Model(core.PoolShare{}).Where("asset_id=? and provider=? and version=?", share.AssetID, share.Provider, version).Updates(share)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return core.ErrOperationConflict
	}

	return nil
}
