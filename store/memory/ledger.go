package memory

import (
	"context"
	"sort"
	"sync"

	"cdp/core"
)

type ledgerStore struct {
	mu       sync.RWMutex
	accounts map[string]*core.Account
	savings  map[string]*core.SavingsPosition
	borrows  map[string]*core.BorrowPosition
	pools    *core.Pools
}

// NewLedgerStore in process ledger store
func NewLedgerStore() core.ILedgerStore {
	return &ledgerStore{
		accounts: map[string]*core.Account{},
		savings:  map[string]*core.SavingsPosition{},
		borrows:  map[string]*core.BorrowPosition{},
		pools:    core.NewPools(),
	}
}

func (s *ledgerStore) FindAccount(_ context.Context, address string) (*core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if account, ok := s.accounts[address]; ok {
		return account.Clone(), nil
	}

	return core.NewAccount(address), nil
}

func (s *ledgerStore) ListAccounts(_ context.Context) ([]*core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	accounts := make([]*core.Account, 0, len(s.accounts))
	for _, account := range s.accounts {
		accounts = append(accounts, account.Clone())
	}

	sort.Slice(accounts, func(i, j int) bool {
		return accounts[i].Address < accounts[j].Address
	})

	return accounts, nil
}

func (s *ledgerStore) FindSavings(_ context.Context, address string) (*core.SavingsPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if position, ok := s.savings[address]; ok {
		return position.Clone(), nil
	}

	return core.NewSavingsPosition(address), nil
}

func (s *ledgerStore) FindBorrow(_ context.Context, address string) (*core.BorrowPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if position, ok := s.borrows[address]; ok {
		return position.Clone(), nil
	}

	return core.NewBorrowPosition(address), nil
}

func (s *ledgerStore) ListBorrows(_ context.Context) ([]*core.BorrowPosition, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	borrows := make([]*core.BorrowPosition, 0, len(s.borrows))
	for _, position := range s.borrows {
		if position.Open() {
			borrows = append(borrows, position.Clone())
		}
	}

	sort.Slice(borrows, func(i, j int) bool {
		return borrows[i].Address < borrows[j].Address
	})

	return borrows, nil
}

func (s *ledgerStore) FindPools(_ context.Context) (*core.Pools, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pools.Clone(), nil
}

func (s *ledgerStore) Commit(_ context.Context, changes *core.Changeset) error {
	if changes == nil || changes.Empty() {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, account := range changes.Accounts {
		c := account.Clone()
		c.Version++
		s.accounts[c.Address] = c
	}

	for _, position := range changes.Savings {
		c := position.Clone()
		c.Version++
		s.savings[c.Address] = c
	}

	for _, position := range changes.Borrows {
		c := position.Clone()
		c.Version++
		s.borrows[c.Address] = c
	}

	if changes.Pools != nil {
		c := changes.Pools.Clone()
		c.Version++
		s.pools = c
	}

	return nil
}
