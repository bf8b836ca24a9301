package memory

import (
	"context"
	"sync"

	"cdp/core"
	"cdp/pkg/number"

	"github.com/holiman/uint256"
)

type balanceKey struct {
	owner, asset string
}

type balanceStore struct {
	mu       sync.Mutex
	balances map[balanceKey]*uint256.Int
}

// NewBalanceStore in process balance book
func NewBalanceStore() core.IBalanceStore {
	return &balanceStore{
		balances: map[balanceKey]*uint256.Int{},
	}
}

func (s *balanceStore) Find(_ context.Context, owner, assetID string) (*uint256.Int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return number.Clone(s.balances[balanceKey{owner, assetID}]), nil
}

func (s *balanceStore) Move(_ context.Context, assetID, from, to string, amount *uint256.Int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if from != "" {
		key := balanceKey{from, assetID}
		left, err := number.Sub(s.balances[key], amount)
		if err != nil {
			return core.ErrInsufficientBalance
		}

		s.balances[key] = left
	}

	if to != "" {
		key := balanceKey{to, assetID}
		total, err := number.Add(s.balances[key], amount)
		if err != nil {
			return core.ErrArithmeticOverflow
		}

		s.balances[key] = total
	}

	return nil
}
