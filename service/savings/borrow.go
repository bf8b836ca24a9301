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

// Borrow borrow amount of the savings asset against collateral for lock.
// The origination fee is withheld, returns the amount disbursed.
func (s *Service) Borrow(ctx context.Context, account, collateralAsset string, collateral, amount *uint256.Int, lock time.Duration) (*uint256.Int, error) {
	var net *uint256.Int
	err := s.runner.Run(ctx, core.ActionTypeBorrow, account, func(ctx context.Context, op *operation.Operation) error {
		if !s.registry.Allowed(collateralAsset) {
			return core.ErrAssetNotAllowed
		}

		if err := checkAmount(collateral, amount); err != nil {
			return err
		}

		if err := s.checkLock(lock); err != nil {
			return err
		}

		b, err := op.Borrow(ctx, account)
		if err != nil {
			return err
		}

		if b.Open() {
			return core.ErrBorrowPositionOpen
		}

		pools, err := op.Pools(ctx)
		if err != nil {
			return err
		}

		borrowed, err := overflow(number.Add(pools.TotalBorrowed, amount))
		if err != nil {
			return err
		}

		if err := s.checkCap(borrowed, pools.TotalSaved); err != nil {
			return err
		}

		fee, rate, err := s.model.OriginationFee(amount, borrowed, pools.TotalSaved)
		if err != nil {
			return err
		}

		if net, err = number.Sub(amount, fee); err != nil {
			return core.ErrArithmeticOverflow
		}

		fees, err := overflow(number.Add(pools.FeesCollected, fee))
		if err != nil {
			return err
		}

		b.AmountBorrowed = number.Clone(amount)
		b.CollateralByAsset = map[string]*uint256.Int{collateralAsset: number.Clone(collateral)}
		b.OpenedAt = op.Now
		b.LockExpiry = op.Now.Add(lock)
		b.LockPeriod = int64(lock / time.Second)
		b.FeeAtOrigination = fee

		hf, err := s.ensureHealthy(ctx, b)
		if err != nil {
			return err
		}

		pools.TotalBorrowed = borrowed
		pools.FeesCollected = fees

		s.bank.TransferIn(op, collateralAsset, account, collateral)
		s.bank.TransferOut(op, s.policy.SavingsAsset, account, net)

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyFee, fee.Dec())
		extra.Put(core.TransactionKeyRate, rate)
		extra.Put(core.TransactionKeyLockExpiry, b.LockExpiry.Unix())
		extra.Put(core.TransactionKeyHealthFactor, hf.Dec())
		extra.Put(core.TransactionKeyPosition, borrowAudit(b))
		op.Record(account, s.policy.SavingsAsset, amount, extra)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return net, nil
}

// checkCap borrowed * 100 <= saved * cap
func (s *Service) checkCap(borrowed, saved *uint256.Int) error {
	if number.IsZero(saved) {
		return core.ErrInsufficientPoolLiquidity
	}

	limit, err := number.MulDiv(saved, uint256.NewInt(s.policy.BorrowCap), uint256.NewInt(100))
	if err != nil {
		return core.ErrArithmeticOverflow
	}

	if borrowed.Gt(limit) {
		return core.ErrInsufficientPoolLiquidity
	}

	return nil
}

// AddCollateral add amount of asset to the open borrow position of account
func (s *Service) AddCollateral(ctx context.Context, account, asset string, amount *uint256.Int) error {
	return s.runner.Run(ctx, core.ActionTypeAddCollateral, account, func(ctx context.Context, op *operation.Operation) error {
		if !s.registry.Allowed(asset) {
			return core.ErrAssetNotAllowed
		}

		if err := checkAmount(amount); err != nil {
			return err
		}

		b, err := op.Borrow(ctx, account)
		if err != nil {
			return err
		}

		if !b.Open() {
			return core.ErrNoBorrowPosition
		}

		balance, err := overflow(number.Add(b.CollateralOf(asset), amount))
		if err != nil {
			return err
		}

		core.SetBalance(b.CollateralByAsset, asset, balance)

		hf, err := s.ensureHealthy(ctx, b)
		if err != nil {
			return err
		}

		s.bank.TransferIn(op, asset, account, amount)

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyHealthFactor, hf.Dec())
		op.Record(account, asset, amount, extra)
		return nil
	})
}

// Settle repay the borrow of account and take back the collateral.
// Past the lock expiry the collateral decays once per full lock period
// beyond the first, the retained part stays in custody as penalty.
// Returns the collateral returned per asset.
func (s *Service) Settle(ctx context.Context, account string) (map[string]*uint256.Int, error) {
	returned := map[string]*uint256.Int{}
	err := s.runner.Run(ctx, core.ActionTypeSettle, account, func(ctx context.Context, op *operation.Operation) error {
		b, err := op.Borrow(ctx, account)
		if err != nil {
			return err
		}

		if !b.Open() {
			return core.ErrNoBorrowPosition
		}

		pools, err := op.Pools(ctx)
		if err != nil {
			return err
		}

		borrowed, err := number.Sub(pools.TotalBorrowed, b.AmountBorrowed)
		if err != nil {
			return core.ErrArithmeticOverflow
		}

		if pools.Penalties == nil {
			pools.Penalties = map[string]*uint256.Int{}
		}

		periods := risk.OverduePeriods(b.OpenedAt, time.Duration(b.LockPeriod)*time.Second, op.Now)
		fraction := risk.DecayFraction(periods, s.policy.DecayMultiplier, s.policy.DecayFloorPeriods)

		repaid := number.Clone(b.AmountBorrowed)
		s.bank.TransferIn(op, s.policy.SavingsAsset, account, repaid)

		for _, asset := range s.registry.Assets() {
			amount := b.CollateralOf(asset)
			if amount.IsZero() {
				continue
			}

			back, err := risk.ApplyDecay(amount, fraction)
			if err != nil {
				return err
			}

			if penalty := new(uint256.Int).Sub(amount, back); !penalty.IsZero() {
				total, err := overflow(number.Add(pools.Penalties[asset], penalty))
				if err != nil {
					return err
				}

				pools.Penalties[asset] = total
			}

			returned[asset] = back
			s.bank.TransferOut(op, asset, account, back)
		}

		pools.TotalBorrowed = borrowed
		position := borrowAudit(b)
		b.Reset()

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyReturned, decs(returned))
		extra.Put(core.TransactionKeyPeriods, periods)
		extra.Put(core.TransactionKeyPosition, position)
		op.Record(account, s.policy.SavingsAsset, repaid, extra)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return returned, nil
}

func decs(m map[string]*uint256.Int) map[string]string {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v.Dec()
	}

	return out
}
