package allowlist

import (
	"context"

	"gearbox/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type creditFilterStore struct {
	db *db.DB
}

// New new credit filter store
func New(db *db.DB) core.ICreditFilterStore {
	return &creditFilterStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		if err := db.Update().Model(core.AllowedContract{}).AutoMigrate(core.AllowedContract{}).Error; err != nil {
			return err
		}

		if err := db.Update().Model(core.AllowedToken{}).AutoMigrate(core.AllowedToken{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *creditFilterStore) SaveContract(ctx context.Context, tx *db.DB, entry *core.AllowedContract) error {
	return tx.Update().Where("target_id=?", entry.TargetID).Assign(map[string]interface{}{"adapter_id": entry.AdapterID}).FirstOrCreate(entry).Error
}

func (s *creditFilterStore) DeleteContract(ctx context.Context, tx *db.DB, targetID string) error {
	return tx.Update().Where("target_id=?", targetID).Delete(core.AllowedContract{}).Error
}

func (s *creditFilterStore) FindContract(ctx context.Context, targetID string) (*core.AllowedContract, error) {
	var entry core.AllowedContract
	if err := s.db.View().Where("target_id=?", targetID).First(&entry).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrUnauthorizedTarget
		}
		return nil, err
	}

	return &entry, nil
}

func (s *creditFilterStore) AllContracts(ctx context.Context) ([]*core.AllowedContract, error) {
	var entries []*core.AllowedContract
	if err := s.db.View().Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *creditFilterStore) SaveToken(ctx context.Context, tx *db.DB, token *core.AllowedToken) error {
	return tx.Update().Where("asset_id=?", token.AssetID).FirstOrCreate(token).Error
}

func (s *creditFilterStore) DeleteToken(ctx context.Context, tx *db.DB, assetID string) error {
	return tx.Update().Where("asset_id=?", assetID).Delete(core.AllowedToken{}).Error
}

func (s *creditFilterStore) FindToken(ctx context.Context, assetID string) (*core.AllowedToken, error) {
	var token core.AllowedToken
	if err := s.db.View().Where("asset_id=?", assetID).First(&token).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrTokenNotAllowed
		}
		return nil, err
	}

	return &token, nil
}

func (s *creditFilterStore) AllTokens(ctx context.Context) ([]*core.AllowedToken, error) {
	var tokens []*core.AllowedToken
	if err := s.db.View().Find(&tokens).Error; err != nil {
		return nil, err
	}
	return tokens, nil
}
