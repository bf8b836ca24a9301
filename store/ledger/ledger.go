package ledger

import (
	"context"

	"cdp/core"
	"cdp/pkg/number"

	"github.com/fox-one/pkg/store/db"
	"github.com/holiman/uint256"
	"github.com/jinzhu/gorm"
)

// owner of the pools penalty rows
const poolsOwner = "pools"

type ledgerStore struct {
	db *db.DB
}

// New new ledger store
func New(db *db.DB) core.ILedgerStore {
	return &ledgerStore{
		db: db,
	}
}

func init() {
	db.RegisterMigrate(func(db *db.DB) error {
		for _, model := range []interface{}{
			core.Account{},
			core.CollateralBalance{},
			core.SavingsPosition{},
			core.BorrowPosition{},
			core.Pools{},
		} {
			tx := db.Update().Model(model)
			if err := tx.AutoMigrate(model).Error; err != nil {
				return err
			}
		}

		tx := db.Update().Model(core.CollateralBalance{})
		if err := tx.AddIndex("idx_collateral_balances_owner_kind", "owner", "kind").Error; err != nil {
			return err
		}

		return nil
	})
}

func (s *ledgerStore) FindAccount(ctx context.Context, address string) (*core.Account, error) {
	account := core.NewAccount(address)
	if err := s.db.View().Where("address = ?", address).First(account).Error; err != nil && !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	collateral, err := findBalances(s.db, address, core.CollateralKindLedger)
	if err != nil {
		return nil, err
	}

	account.Collateral = collateral
	return account, nil
}

func (s *ledgerStore) ListAccounts(ctx context.Context) ([]*core.Account, error) {
	var accounts []*core.Account
	if err := s.db.View().Order("address").Find(&accounts).Error; err != nil {
		return nil, err
	}

	for _, account := range accounts {
		collateral, err := findBalances(s.db, account.Address, core.CollateralKindLedger)
		if err != nil {
			return nil, err
		}

		account.Collateral = collateral
	}

	return accounts, nil
}

func (s *ledgerStore) FindSavings(ctx context.Context, address string) (*core.SavingsPosition, error) {
	position := core.NewSavingsPosition(address)
	if err := s.db.View().Where("address = ?", address).First(position).Error; err != nil && !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	return position, nil
}

func (s *ledgerStore) FindBorrow(ctx context.Context, address string) (*core.BorrowPosition, error) {
	position := core.NewBorrowPosition(address)
	if err := s.db.View().Where("address = ?", address).First(position).Error; err != nil && !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	collateral, err := findBalances(s.db, address, core.CollateralKindBorrow)
	if err != nil {
		return nil, err
	}

	position.CollateralByAsset = collateral
	return position, nil
}

func (s *ledgerStore) ListBorrows(ctx context.Context) ([]*core.BorrowPosition, error) {
	var positions []*core.BorrowPosition
	if err := s.db.View().Where("amount_borrowed > 0").Order("address").Find(&positions).Error; err != nil {
		return nil, err
	}

	for _, position := range positions {
		collateral, err := findBalances(s.db, position.Address, core.CollateralKindBorrow)
		if err != nil {
			return nil, err
		}

		position.CollateralByAsset = collateral
	}

	return positions, nil
}

func (s *ledgerStore) FindPools(ctx context.Context) (*core.Pools, error) {
	pools := core.NewPools()
	if err := s.db.View().Where("id = ?", core.PoolsID).First(pools).Error; err != nil && !gorm.IsRecordNotFoundError(err) {
		return nil, err
	}

	penalties, err := findBalances(s.db, poolsOwner, core.CollateralKindPenalty)
	if err != nil {
		return nil, err
	}

	pools.Penalties = penalties
	return pools, nil
}

func (s *ledgerStore) Commit(ctx context.Context, changes *core.Changeset) error {
	if changes == nil || changes.Empty() {
		return nil
	}

	return s.db.Tx(func(tx *db.DB) error {
		for _, account := range changes.Accounts {
			row := account.Clone()
			row.Version++
			if err := save(tx, row); err != nil {
				return err
			}

			if err := saveBalances(tx, account.Address, core.CollateralKindLedger, account.Collateral); err != nil {
				return err
			}
		}

		for _, position := range changes.Savings {
			row := position.Clone()
			row.Version++
			if err := save(tx, row); err != nil {
				return err
			}
		}

		for _, position := range changes.Borrows {
			row := position.Clone()
			row.Version++
			if err := save(tx, row); err != nil {
				return err
			}

			if err := saveBalances(tx, position.Address, core.CollateralKindBorrow, position.CollateralByAsset); err != nil {
				return err
			}
		}

		if pools := changes.Pools; pools != nil {
			row := pools.Clone()
			row.Version++
			if err := save(tx, row); err != nil {
				return err
			}

			if err := saveBalances(tx, poolsOwner, core.CollateralKindPenalty, pools.Penalties); err != nil {
				return err
			}
		}

		return nil
	})
}

// save upsert by primary key
func save(tx *db.DB, row interface{}) error {
	return tx.Update().Save(row).Error
}

func findBalances(d *db.DB, owner, kind string) (map[string]*uint256.Int, error) {
	var rows []*core.CollateralBalance
	if err := d.View().Where("owner = ? AND kind = ?", owner, kind).Find(&rows).Error; err != nil {
		return nil, err
	}

	balances := make(map[string]*uint256.Int, len(rows))
	for _, row := range rows {
		core.SetBalance(balances, row.AssetID, number.Clone(row.Amount))
	}

	return balances, nil
}

func saveBalances(tx *db.DB, owner, kind string, balances map[string]*uint256.Int) error {
	if err := tx.Update().Where("owner = ? AND kind = ?", owner, kind).Delete(core.CollateralBalance{}).Error; err != nil {
		return err
	}

	for asset, amount := range balances {
		if number.IsZero(amount) {
			continue
		}

		row := &core.CollateralBalance{
			Owner:   owner,
			Kind:    kind,
			AssetID: asset,
			Amount:  number.Clone(amount),
		}

		if err := tx.Update().Create(row).Error; err != nil {
			return err
		}
	}

	return nil
}
