package operation

import (
	"context"
	"fmt"
	"time"

	"cdp/core"
	"cdp/internal/metrics"
	"cdp/pkg/guard"
	"cdp/pkg/id"

	"github.com/facebookgo/clock"
	"github.com/fox-one/pkg/logger"
	foxuuid "github.com/fox-one/pkg/uuid"
	"github.com/holiman/uint256"
)

// Runner runs mutating operations one at a time.
//
// An operation stages its effects on loaded entities and verifies them,
// the runner commits the staged state, then performs the scheduled
// collaborator calls in order. When a call fails, the calls already made
// are compensated in reverse and the loaded state is committed back.
type Runner struct {
	guard        *guard.Guard
	ledger       core.ILedgerStore
	transactions core.ITransactionStore
	clock        clock.Clock
	metrics      *metrics.Metrics
}

// NewRunner new runner, services sharing a ledger must share the guard
func NewRunner(
	g *guard.Guard,
	ledger core.ILedgerStore,
	transactions core.ITransactionStore,
	clk clock.Clock,
	m *metrics.Metrics,
) *Runner {
	return &Runner{
		guard:        g,
		ledger:       ledger,
		transactions: transactions,
		clock:        clk,
		metrics:      m,
	}
}

// Now current time of the runner clock
func (r *Runner) Now() time.Time {
	return r.clock.Now()
}

// Ledger ledger store read by the runner
func (r *Runner) Ledger() core.ILedgerStore {
	return r.ledger
}

// Run execute fn as one operation on behalf of account
func (r *Runner) Run(ctx context.Context, action core.ActionType, account string, fn func(ctx context.Context, op *Operation) error) (err error) {
	defer func() { r.metrics.ObserveOperation(action, err) }()

	ctx, leave, err := r.guard.Enter(ctx)
	if err != nil {
		logger.FromContext(ctx).WithField("action", action.String()).WithError(err).Warnln("enter guard")
		return err
	}
	defer leave()

	op := newOperation(r.ledger, action, account, r.clock.Now())
	log := logger.FromContext(ctx).WithField("action", action.String()).
		WithField("account", account).
		WithField("trace", op.TraceID)
	ctx = logger.WithContext(ctx, log)

	if err := fn(ctx, op); err != nil {
		log.WithError(err).Debugln("operation rejected")
		return err
	}

	if err := r.ledger.Commit(ctx, op.after()); err != nil {
		log.WithError(err).Errorln("commit ledger")
		return err
	}

	for idx, s := range op.steps {
		if err := s.do(ctx); err != nil {
			log.WithError(err).WithField("step", s.name).Errorln("collaborator call failed, reverting")
			r.revert(ctx, op, idx)
			return err
		}
	}

	for _, t := range op.records {
		if err := r.transactions.Create(ctx, t); err != nil {
			log.WithError(err).Errorln("create transaction")
		}
	}

	for _, fn := range op.onSuccess {
		fn(ctx)
	}

	return nil
}

func (r *Runner) revert(ctx context.Context, op *Operation, failed int) {
	log := logger.FromContext(ctx)
	r.metrics.ObserveRollback(op.Action)

	for idx := failed - 1; idx >= 0; idx-- {
		s := op.steps[idx]
		if s.undo == nil {
			continue
		}

		if err := s.undo(ctx); err != nil {
			log.WithError(err).WithField("step", s.name).Errorln("compensate step")
		}
	}

	if err := r.ledger.Commit(ctx, op.before()); err != nil {
		log.WithError(err).Errorln("restore ledger")
	}
}

type entityKind int

const (
	kindAccount entityKind = iota
	kindSavings
	kindBorrow
)

type entityKey struct {
	kind    entityKind
	address string
}

type step struct {
	name string
	do   func(ctx context.Context) error
	undo func(ctx context.Context) error
}

// Operation staged state of one mutating call
type Operation struct {
	Action  core.ActionType
	Account string
	TraceID string
	Now     time.Time

	ledger core.ILedgerStore

	accounts       map[string]*core.Account
	accountsBefore map[string]*core.Account
	savings        map[string]*core.SavingsPosition
	savingsBefore  map[string]*core.SavingsPosition
	borrows        map[string]*core.BorrowPosition
	borrowsBefore  map[string]*core.BorrowPosition
	pools          *core.Pools
	poolsBefore    *core.Pools

	// load order, committed in the same order
	order []entityKey

	steps     []step
	records   []*core.Transaction
	onSuccess []func(ctx context.Context)
}

func newOperation(ledger core.ILedgerStore, action core.ActionType, account string, now time.Time) *Operation {
	return &Operation{
		Action:         action,
		Account:        account,
		TraceID:        id.GenTraceID(),
		Now:            now,
		ledger:         ledger,
		accounts:       map[string]*core.Account{},
		accountsBefore: map[string]*core.Account{},
		savings:        map[string]*core.SavingsPosition{},
		savingsBefore:  map[string]*core.SavingsPosition{},
		borrows:        map[string]*core.BorrowPosition{},
		borrowsBefore:  map[string]*core.BorrowPosition{},
	}
}

// LedgerAccount staged ledger account of address, loaded once
func (op *Operation) LedgerAccount(ctx context.Context, address string) (*core.Account, error) {
	if a, ok := op.accounts[address]; ok {
		return a, nil
	}

	a, err := op.ledger.FindAccount(ctx, address)
	if err != nil {
		return nil, err
	}

	op.accountsBefore[address] = a.Clone()
	op.accounts[address] = a
	op.order = append(op.order, entityKey{kindAccount, address})
	return a, nil
}

// Savings staged savings position of address
func (op *Operation) Savings(ctx context.Context, address string) (*core.SavingsPosition, error) {
	if p, ok := op.savings[address]; ok {
		return p, nil
	}

	p, err := op.ledger.FindSavings(ctx, address)
	if err != nil {
		return nil, err
	}

	op.savingsBefore[address] = p.Clone()
	op.savings[address] = p
	op.order = append(op.order, entityKey{kindSavings, address})
	return p, nil
}

// Borrow staged borrow position of address
func (op *Operation) Borrow(ctx context.Context, address string) (*core.BorrowPosition, error) {
	if p, ok := op.borrows[address]; ok {
		return p, nil
	}

	p, err := op.ledger.FindBorrow(ctx, address)
	if err != nil {
		return nil, err
	}

	op.borrowsBefore[address] = p.Clone()
	op.borrows[address] = p
	op.order = append(op.order, entityKey{kindBorrow, address})
	return p, nil
}

// Pools staged global pools
func (op *Operation) Pools(ctx context.Context) (*core.Pools, error) {
	if op.pools != nil {
		return op.pools, nil
	}

	p, err := op.ledger.FindPools(ctx)
	if err != nil {
		return nil, err
	}

	op.poolsBefore = p.Clone()
	op.pools = p
	return p, nil
}

// Call schedule a collaborator call performed after the staged state is committed.
// undo compensates a successful do when a later call fails, nil when nothing can follow.
func (op *Operation) Call(name string, do, undo func(ctx context.Context) error) {
	op.steps = append(op.steps, step{name: name, do: do, undo: undo})
}

// OnSuccess run fn once the operation completed
func (op *Operation) OnSuccess(fn func(ctx context.Context)) {
	op.onSuccess = append(op.onSuccess, fn)
}

// Record audit record written once every call succeeded
func (op *Operation) Record(account, asset string, amount *uint256.Int, extra core.TransactionExtraData) *core.Transaction {
	t := &core.Transaction{
		TraceID:   op.TraceID,
		Action:    op.Action,
		Account:   account,
		AssetID:   asset,
		Amount:    amount,
		CreatedAt: op.Now,
	}

	if n := len(op.records); n > 0 {
		t.TraceID = foxuuid.Modify(op.TraceID, fmt.Sprintf("%s:%d", account, n))
	}

	t.SetExtraData(extra)
	op.records = append(op.records, t)
	return t
}

func (op *Operation) after() *core.Changeset {
	return op.changeset(op.accounts, op.savings, op.borrows, op.pools)
}

func (op *Operation) before() *core.Changeset {
	return op.changeset(op.accountsBefore, op.savingsBefore, op.borrowsBefore, op.poolsBefore)
}

func (op *Operation) changeset(
	accounts map[string]*core.Account,
	savings map[string]*core.SavingsPosition,
	borrows map[string]*core.BorrowPosition,
	pools *core.Pools,
) *core.Changeset {
	changes := &core.Changeset{Pools: pools}
	for _, key := range op.order {
		switch key.kind {
		case kindAccount:
			changes.Accounts = append(changes.Accounts, accounts[key.address])
		case kindSavings:
			changes.Savings = append(changes.Savings, savings[key.address])
		case kindBorrow:
			changes.Borrows = append(changes.Borrows, borrows[key.address])
		}
	}

	return changes
}
