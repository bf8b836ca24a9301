package core

import (
	"context"
)

// Changeset entities touched by one operation, written atomically
type Changeset struct {
	Accounts []*Account
	Savings  []*SavingsPosition
	Borrows  []*BorrowPosition
	Pools    *Pools
}

// Empty nothing to write
func (c *Changeset) Empty() bool {
	return len(c.Accounts) == 0 && len(c.Savings) == 0 && len(c.Borrows) == 0 && c.Pools == nil
}

// ILedgerStore ledger persistence. Finds return zero valued entities for unknown addresses.
type ILedgerStore interface {
	FindAccount(ctx context.Context, address string) (*Account, error)
	ListAccounts(ctx context.Context) ([]*Account, error)
	FindSavings(ctx context.Context, address string) (*SavingsPosition, error)
	FindBorrow(ctx context.Context, address string) (*BorrowPosition, error)
	ListBorrows(ctx context.Context) ([]*BorrowPosition, error)
	FindPools(ctx context.Context) (*Pools, error)
	Commit(ctx context.Context, changes *Changeset) error
}
