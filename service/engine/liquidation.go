package engine

import (
	"context"

	"cdp/core"
	"cdp/internal/risk"
	"cdp/pkg/number"
	"cdp/service/operation"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// LiquidationKindLedger metrics label of ledger liquidations
const LiquidationKindLedger = "ledger"

// Liquidate cover debtToCover of target's debt with the liquidator's tokens and
// seize the equivalent amount of asset plus the bonus
func (e *Engine) Liquidate(ctx context.Context, liquidator, asset, target string, debtToCover *uint256.Int) error {
	return e.runner.Run(ctx, core.ActionTypeLiquidate, liquidator, func(ctx context.Context, op *operation.Operation) error {
		if err := e.checkAsset(asset); err != nil {
			return err
		}

		if err := checkAmount(debtToCover); err != nil {
			return err
		}

		t, err := op.LedgerAccount(ctx, target)
		if err != nil {
			return err
		}

		before, err := e.healthFactor(ctx, t)
		if err != nil {
			return err
		}

		if !risk.Broken(before) {
			return core.ErrPositionHealthy
		}

		base, err := e.oracle.AmountFor(ctx, asset, debtToCover)
		if err != nil {
			return err
		}

		seized, bonus, err := risk.WithBonus(base, e.policy.LiquidationBonus)
		if err != nil {
			return err
		}

		if t.CollateralOf(asset).Lt(seized) {
			return core.ErrInsufficientCollateral
		}

		if _, err := e.removeDebt(ctx, op, target, debtToCover); err != nil {
			return err
		}

		if _, err := e.removeCollateral(ctx, op, target, asset, seized); err != nil {
			return err
		}

		after, err := e.healthFactor(ctx, t)
		if err != nil {
			return err
		}

		if !after.Gt(before) {
			return core.ErrLiquidationNotEffective
		}

		l, err := op.LedgerAccount(ctx, liquidator)
		if err != nil {
			return err
		}

		if _, err := e.ensureHealthy(ctx, l); err != nil {
			return err
		}

		e.bank.PullDebt(op, liquidator, debtToCover)
		e.bank.TransferOut(op, asset, liquidator, seized)
		e.bank.Burn(op, debtToCover)

		extra := core.NewTransactionExtra()
		extra.Put(core.TransactionKeyTarget, target)
		extra.Put(core.TransactionKeyDebt, debtToCover.Dec())
		extra.Put(core.TransactionKeySeized, seized.Dec())
		extra.Put(core.TransactionKeyBonus, bonus.Dec())
		extra.Put(core.TransactionKeyHealthFactor, after.Dec())
		op.Record(liquidator, asset, seized, extra)
		op.Record(target, asset, number.Clone(debtToCover), extra)

		op.OnSuccess(func(ctx context.Context) {
			logger.FromContext(ctx).WithField("target", target).
				WithField("seized", seized.Dec()).
				WithField("health_factor", after.Dec()).
				Infoln("liquidated")
			e.metrics.ObserveLiquidation(LiquidationKindLedger)
		})
		return nil
	})
}
