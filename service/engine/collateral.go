package engine

import (
	"context"

	"cdp/core"
	"cdp/pkg/number"
	"cdp/service/operation"

	"github.com/holiman/uint256"
)

// DepositCollateral move amount of asset from account into custody
func (e *Engine) DepositCollateral(ctx context.Context, account, asset string, amount *uint256.Int) error {
	return e.runner.Run(ctx, core.ActionTypeDepositCollateral, account, func(ctx context.Context, op *operation.Operation) error {
		if err := e.checkAsset(asset); err != nil {
			return err
		}

		if err := checkAmount(amount); err != nil {
			return err
		}

		a, err := e.addCollateral(ctx, op, account, asset, amount)
		if err != nil {
			return err
		}

		hf, err := e.ensureHealthy(ctx, a)
		if err != nil {
			return err
		}

		e.bank.TransferIn(op, asset, account, amount)
		op.Record(account, asset, amount, healthExtra(hf))
		return nil
	})
}

// RedeemCollateral return amount of asset from custody to account
func (e *Engine) RedeemCollateral(ctx context.Context, account, asset string, amount *uint256.Int) error {
	return e.runner.Run(ctx, core.ActionTypeRedeemCollateral, account, func(ctx context.Context, op *operation.Operation) error {
		if err := e.checkAsset(asset); err != nil {
			return err
		}

		if err := checkAmount(amount); err != nil {
			return err
		}

		a, err := e.removeCollateral(ctx, op, account, asset, amount)
		if err != nil {
			return err
		}

		hf, err := e.ensureHealthy(ctx, a)
		if err != nil {
			return err
		}

		e.bank.TransferOut(op, asset, account, amount)
		op.Record(account, asset, amount, healthExtra(hf))
		return nil
	})
}

// DepositAndMint deposit collateral then mint debt against it
func (e *Engine) DepositAndMint(ctx context.Context, account, asset string, collateral, debt *uint256.Int) error {
	return e.runner.Run(ctx, core.ActionTypeDepositAndMint, account, func(ctx context.Context, op *operation.Operation) error {
		if err := e.checkAsset(asset); err != nil {
			return err
		}

		if err := checkAmount(collateral, debt); err != nil {
			return err
		}

		if _, err := e.addCollateral(ctx, op, account, asset, collateral); err != nil {
			return err
		}

		a, err := e.addDebt(ctx, op, account, debt)
		if err != nil {
			return err
		}

		hf, err := e.ensureHealthy(ctx, a)
		if err != nil {
			return err
		}

		e.bank.TransferIn(op, asset, account, collateral)
		e.bank.Mint(op, account, debt)

		extra := healthExtra(hf)
		extra.Put(core.TransactionKeyDebt, debt.Dec())
		op.Record(account, asset, collateral, extra)
		return nil
	})
}

// RedeemAndBurn burn debt then redeem collateral
func (e *Engine) RedeemAndBurn(ctx context.Context, account, asset string, collateral, debt *uint256.Int) error {
	return e.runner.Run(ctx, core.ActionTypeRedeemAndBurn, account, func(ctx context.Context, op *operation.Operation) error {
		if err := e.checkAsset(asset); err != nil {
			return err
		}

		if err := checkAmount(collateral, debt); err != nil {
			return err
		}

		if _, err := e.removeDebt(ctx, op, account, debt); err != nil {
			return err
		}

		a, err := e.removeCollateral(ctx, op, account, asset, collateral)
		if err != nil {
			return err
		}

		hf, err := e.ensureHealthy(ctx, a)
		if err != nil {
			return err
		}

		e.bank.PullDebt(op, account, debt)
		e.bank.TransferOut(op, asset, account, collateral)
		e.bank.Burn(op, debt)

		extra := healthExtra(hf)
		extra.Put(core.TransactionKeyDebt, debt.Dec())
		op.Record(account, asset, collateral, extra)
		return nil
	})
}

func (e *Engine) addCollateral(ctx context.Context, op *operation.Operation, account, asset string, amount *uint256.Int) (*core.Account, error) {
	a, err := op.LedgerAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	balance, err := overflow(number.Add(a.CollateralOf(asset), amount))
	if err != nil {
		return nil, err
	}

	core.SetBalance(a.Collateral, asset, balance)
	return a, nil
}

func (e *Engine) removeCollateral(ctx context.Context, op *operation.Operation, account, asset string, amount *uint256.Int) (*core.Account, error) {
	a, err := op.LedgerAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	balance, err := number.Sub(a.CollateralOf(asset), amount)
	if err != nil {
		return nil, core.ErrInsufficientCollateral
	}

	core.SetBalance(a.Collateral, asset, balance)
	return a, nil
}

func healthExtra(hf *uint256.Int) core.TransactionExtraData {
	extra := core.NewTransactionExtra()
	extra.Put(core.TransactionKeyHealthFactor, hf.Dec())
	return extra
}
