package balance

import (
	"context"

	"cdp/core"
	"cdp/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
	"github.com/jinzhu/gorm"
)

type balanceStore struct {
	db *db.DB
}

// New new balance store
func New(db *db.DB) core.IBalanceStore {
	return &balanceStore{
		db: db,
	}
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

func (s *balanceStore) Find(ctx context.Context, owner, assetID string) (*uint256.Int, error) {
	balance, err := find(s.db.View(), owner, assetID)
	if err != nil {
		return nil, err
	}

	return balance.Amount, nil
}

func (s *balanceStore) Move(ctx context.Context, assetID, from, to string, amount *uint256.Int) error {
	return s.db.Tx(func(tx *db.DB) error {
		if from != "" {
			balance, err := find(tx.Update(), from, assetID)
			if err != nil {
				return err
			}

			left, err := number.Sub(balance.Amount, amount)
			if err != nil {
				return core.ErrInsufficientBalance
			}

			if err := update(tx, balance, left); err != nil {
				return err
			}
		}

		if to != "" {
			balance, err := find(tx.Update(), to, assetID)
			if err != nil {
				return err
			}

			total, err := number.Add(balance.Amount, amount)
			if err != nil {
				return core.ErrArithmeticOverflow
			}

			if err := update(tx, balance, total); err != nil {
				return err
			}
		}

		return nil
	})
}

func find(d *gorm.DB, owner, assetID string) (*core.Balance, error) {
	balance := core.Balance{
		Owner:   owner,
		AssetID: assetID,
	}

	if err := d.Where("owner = ? AND asset_id = ?", owner, assetID).First(&balance).Error; err != nil && !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	if balance.Amount == nil {
		balance.Amount = number.Zero()
	}

	return &balance, nil
}

// update optimistic write guarded by version
func update(tx *db.DB, balance *core.Balance, amount *uint256.Int) error {
	if balance.Version == 0 {
		balance.Amount = amount
		balance.Version = 1
		return tx.Update().Create(balance).Error
	}

	r := tx.Update().Model(balance).
		Where("version = ?", balance.Version).
		Updates(map[string]interface{}{
			"amount":  amount,
			"version": balance.Version + 1,
		})
	if r.Error != nil {
		return r.Error
	}

	if r.RowsAffected == 0 {
		return db.ErrOptimisticLock
	}

	return nil
}
