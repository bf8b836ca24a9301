package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"cdp/core"
)

type transactionStore struct {
	mu           sync.RWMutex
	seq          int64
	transactions []*core.Transaction
	traces       map[string]bool
}

// NewTransactionStore in process audit trail
func NewTransactionStore() core.ITransactionStore {
	return &transactionStore{
		traces: map[string]bool{},
	}
}

func (s *transactionStore) Create(_ context.Context, transaction *core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.traces[transaction.TraceID] {
		return nil
	}

	s.seq++
	transaction.ID = s.seq
	if transaction.CreatedAt.IsZero() {
		transaction.CreatedAt = time.Now()
	}

	c := *transaction
	s.transactions = append(s.transactions, &c)
	s.traces[transaction.TraceID] = true
	return nil
}

func (s *transactionStore) ListByAccount(_ context.Context, account string, offset time.Time, limit int) ([]*core.Transaction, error) {
	if limit <= 0 {
		limit = 500
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var transactions []*core.Transaction
	for _, t := range s.transactions {
		if t.Account != account || t.CreatedAt.Before(offset) {
			continue
		}

		c := *t
		transactions = append(transactions, &c)
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].CreatedAt.Before(transactions[j].CreatedAt)
	})

	if len(transactions) > limit {
		transactions = transactions[:limit]
	}

	return transactions, nil
}
