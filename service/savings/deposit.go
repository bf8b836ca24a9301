package savings

import (
	"context"
	"time"

	"cdp/core"
	"cdp/internal/risk"
	"cdp/pkg/number"
	"cdp/service/operation"

	"github.com/holiman/uint256"
)

// Deposit lock amount of the savings asset for lock.
// A top up keeps the later expiry and averages the rate snapshots by amount.
func (s *Service) Deposit(ctx context.Context, account string, amount *uint256.Int, lock time.Duration) error {
	return s.runner.Run(ctx, core.ActionTypeSavingsDeposit, account, func(ctx context.Context, op *operation.Operation) error {
		if err := checkAmount(amount); err != nil {
			return err
		}

		if err := s.checkLock(lock); err != nil {
			return err
		}

		pools, err := op.Pools(ctx)
		if err != nil {
			return err
		}

		if pools.TotalSaved, err = overflow(number.Add(pools.TotalSaved, amount)); err != nil {
			return err
		}

		rate, err := s.model.CurrentRate(pools.TotalBorrowed, pools.TotalSaved)
		if err != nil {
			return err
		}

		p, err := op.Savings(ctx, account)
		if err != nil {
			return err
		}

		total, err := overflow(number.Add(p.AmountDeposited, amount))
		if err != nil {
			return err
		}

		if !number.IsZero(p.AmountDeposited) {
			if rate, err = weightedRate(p.AmountDeposited, p.RateAtDeposit, amount, rate); err != nil {
				return err
			}
		}

		expiry := op.Now.Add(lock)
		if p.LockExpiry.After(expiry) {
			expiry = p.LockExpiry
		}

		p.AmountDeposited = total
		p.RateAtDeposit = rate
		p.LockExpiry = expiry

		s.bank.TransferIn(op, s.policy.SavingsAsset, account, amount)

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyRate, rate)
		extra.Put(core.TransactionKeyLockExpiry, expiry.Unix())
		op.Record(account, s.policy.SavingsAsset, amount, extra)
		return nil
	})
}

// Withdraw withdraw amount of unlocked savings, the yield is minted as debt token.
// Returns the yield.
func (s *Service) Withdraw(ctx context.Context, account string, amount *uint256.Int) (*uint256.Int, error) {
	var yield *uint256.Int
	err := s.runner.Run(ctx, core.ActionTypeSavingsWithdraw, account, func(ctx context.Context, op *operation.Operation) error {
		if err := checkAmount(amount); err != nil {
			return err
		}

		p, err := op.Savings(ctx, account)
		if err != nil {
			return err
		}

		left, err := number.Sub(p.AmountDeposited, amount)
		if err != nil {
			return core.ErrInsufficientSavings
		}

		if op.Now.Before(p.LockExpiry) {
			return core.ErrLockNotElapsed
		}

		pools, err := op.Pools(ctx)
		if err != nil {
			return err
		}

		saved, err := number.Sub(pools.TotalSaved, amount)
		if err != nil || saved.Lt(pools.TotalBorrowed) {
			return core.ErrInsufficientPoolLiquidity
		}

		value, err := s.oracle.ValueOf(ctx, s.policy.SavingsAsset, amount)
		if err != nil {
			return err
		}

		if yield, err = risk.ApplyRate(value, p.RateAtDeposit); err != nil {
			return err
		}

		minted, err := overflow(number.Add(pools.YieldMinted, yield))
		if err != nil {
			return err
		}

		p.AmountDeposited = left
		pools.TotalSaved = saved
		pools.YieldMinted = minted

		s.bank.TransferOut(op, s.policy.SavingsAsset, account, amount)
		s.bank.Mint(op, account, yield)

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyRate, p.RateAtDeposit)
		extra.Put(core.TransactionKeyYield, yield.Dec())
		op.Record(account, s.policy.SavingsAsset, amount, extra)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return yield, nil
}

// weightedRate (a*ra + b*rb) / (a + b)
func weightedRate(a *uint256.Int, ra uint64, b *uint256.Int, rb uint64) (uint64, error) {
	x, err := number.Mul(a, uint256.NewInt(ra))
	if err != nil {
		return 0, core.ErrArithmeticOverflow
	}

	y, err := number.Mul(b, uint256.NewInt(rb))
	if err != nil {
		return 0, core.ErrArithmeticOverflow
	}

	sum, err := number.Add(x, y)
	if err != nil {
		return 0, core.ErrArithmeticOverflow
	}

	total, err := number.Add(a, b)
	if err != nil {
		return 0, core.ErrArithmeticOverflow
	}

	return new(uint256.Int).Div(sum, total).Uint64(), nil
}
