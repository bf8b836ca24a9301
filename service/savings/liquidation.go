package savings

import (
	"context"

	"cdp/core"
	"cdp/internal/risk"
	"cdp/pkg/number"
	"cdp/service/operation"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// LiquidationKindBorrow metrics label of borrow liquidations
const LiquidationKindBorrow = "borrow"

// LiquidateBorrow repay the whole borrow of target on its behalf and take the
// equivalent of collateralAsset plus the bonus, the rest of the collateral
// goes back to target
func (s *Service) LiquidateBorrow(ctx context.Context, liquidator, target, collateralAsset string) error {
	return s.runner.Run(ctx, core.ActionTypeLiquidateBorrow, liquidator, func(ctx context.Context, op *operation.Operation) error {
		if !s.registry.Allowed(collateralAsset) {
			return core.ErrAssetNotAllowed
		}

		b, err := op.Borrow(ctx, target)
		if err != nil {
			return err
		}

		if !b.Open() {
			return core.ErrNoBorrowPosition
		}

		hf, err := s.healthFactor(ctx, b)
		if err != nil {
			return err
		}

		if !risk.Broken(hf) {
			return core.ErrPositionHealthy
		}

		debtValue, err := s.oracle.ValueOf(ctx, s.policy.SavingsAsset, b.AmountBorrowed)
		if err != nil {
			return err
		}

		base, err := s.oracle.AmountFor(ctx, collateralAsset, debtValue)
		if err != nil {
			return err
		}

		reward, bonus, err := risk.WithBonus(base, s.policy.LiquidationBonus)
		if err != nil {
			return err
		}

		if b.CollateralOf(collateralAsset).Lt(reward) {
			return core.ErrInsufficientCollateral
		}

		pools, err := op.Pools(ctx)
		if err != nil {
			return err
		}

		borrowed, err := number.Sub(pools.TotalBorrowed, b.AmountBorrowed)
		if err != nil {
			return core.ErrArithmeticOverflow
		}

		repaid := number.Clone(b.AmountBorrowed)
		s.bank.TransferIn(op, s.policy.SavingsAsset, liquidator, repaid)
		s.bank.TransferOut(op, collateralAsset, liquidator, reward)

		returned := map[string]*uint256.Int{}
		for _, asset := range s.registry.Assets() {
			amount := b.CollateralOf(asset)
			if asset == collateralAsset {
				amount = new(uint256.Int).Sub(amount, reward)
			}

			if amount.IsZero() {
				continue
			}

			returned[asset] = amount
			s.bank.TransferOut(op, asset, target, amount)
		}

		pools.TotalBorrowed = borrowed
		b.Reset()

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyTarget, target)
		extra.Put(core.TransactionKeyDebt, repaid.Dec())
		extra.Put(core.TransactionKeySeized, reward.Dec())
		extra.Put(core.TransactionKeyBonus, bonus.Dec())
		extra.Put(core.TransactionKeyHealthFactor, hf.Dec())
		extra.Put(core.TransactionKeyReturned, decs(returned))
		op.Record(liquidator, collateralAsset, reward, extra)
		op.Record(target, s.policy.SavingsAsset, repaid, extra)

		op.OnSuccess(func(ctx context.Context) {
			logger.FromContext(ctx).WithField("target", target).
				WithField("seized", reward.Dec()).
				Infoln("borrow liquidated")
			s.metrics.ObserveLiquidation(LiquidationKindBorrow)
		})
		return nil
	})
}
