package engine

import (
	"context"

	"cdp/core"
	"cdp/pkg/number"
	"cdp/service/operation"

	"github.com/holiman/uint256"
)

// MintDebt mint amount of debt token to account
func (e *Engine) MintDebt(ctx context.Context, account string, amount *uint256.Int) error {
	return e.runner.Run(ctx, core.ActionTypeMint, account, func(ctx context.Context, op *operation.Operation) error {
		if err := checkAmount(amount); err != nil {
			return err
		}

		a, err := e.addDebt(ctx, op, account, amount)
		if err != nil {
			return err
		}

		hf, err := e.ensureHealthy(ctx, a)
		if err != nil {
			return err
		}

		e.bank.Mint(op, account, amount)
		op.Record(account, "", amount, healthExtra(hf))
		return nil
	})
}

// BurnDebt take amount of debt token from account and burn it
func (e *Engine) BurnDebt(ctx context.Context, account string, amount *uint256.Int) error {
	return e.runner.Run(ctx, core.ActionTypeBurn, account, func(ctx context.Context, op *operation.Operation) error {
		if err := checkAmount(amount); err != nil {
			return err
		}

		a, err := e.removeDebt(ctx, op, account, amount)
		if err != nil {
			return err
		}

		hf, err := e.ensureHealthy(ctx, a)
		if err != nil {
			return err
		}

		e.bank.PullDebt(op, account, amount)
		e.bank.Burn(op, amount)
		op.Record(account, "", amount, healthExtra(hf))
		return nil
	})
}

func (e *Engine) addDebt(ctx context.Context, op *operation.Operation, account string, amount *uint256.Int) (*core.Account, error) {
	a, err := op.LedgerAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	debt, err := overflow(number.Add(a.DebtMinted, amount))
	if err != nil {
		return nil, err
	}

	a.DebtMinted = debt
	return a, nil
}

func (e *Engine) removeDebt(ctx context.Context, op *operation.Operation, account string, amount *uint256.Int) (*core.Account, error) {
	a, err := op.LedgerAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	debt, err := number.Sub(a.DebtMinted, amount)
	if err != nil {
		return nil, core.ErrInsufficientDebt
	}

	a.DebtMinted = debt
	return a, nil
}
