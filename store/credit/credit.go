package credit

import (
	"context"

	"gearbox/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/jinzhu/gorm"
)

type creditAccountStore struct {
	db *db.DB
}

// New new credit account store
func New(db *db.DB) core.ICreditAccountStore {
	return &creditAccountStore{db: db}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		tx := db.Update().Model(core.CreditAccount{})
		if err := tx.AutoMigrate(core.CreditAccount{}).Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *creditAccountStore) Create(ctx context.Context, tx *db.DB, account *core.CreditAccount) error {
	// ActiveKey carries the unique one-active-account-per-owner index
	account.ActiveKey = account.Owner
	return tx.Update().Create(account).Error
}

func (s *creditAccountStore) FindActiveByOwner(ctx context.Context, owner string) (*core.CreditAccount, error) {
	var account core.CreditAccount
	if err := s.db.View().Where("owner=? and state=?", owner, core.CreditAccountStateActive).First(&account).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrAccountNotFound
		}
		return nil, err
	}

	return &account, nil
}

func (s *creditAccountStore) FindByTrace(ctx context.Context, trace string) (*core.CreditAccount, error) {
	var account core.CreditAccount
	if err := s.db.View().Where("trace=?", trace).First(&account).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, core.ErrAccountNotFound
		}
		return nil, err
	}

	return &account, nil
}

func (s *creditAccountStore) AllActive(ctx context.Context) ([]*core.CreditAccount, error) {
	var accounts []*core.CreditAccount
	if err := s.db.View().Where("state=?", core.CreditAccountStateActive).Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (s *creditAccountStore) Update(ctx context.Context, tx *db.DB, account *core.CreditAccount) error {
	if !account.IsActive() {
		// closed accounts release the owner slot
		account.ActiveKey = account.Trace
	}

	version := account.Version
	account.Version++
	r := tx.Update().Model(core.CreditAccount{}).Where("trace=? and version=?", account.Trace, version).Update(account)
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return core.ErrOperationConflict
	}

	return nil
}
