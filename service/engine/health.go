package engine

import (
	"context"

	"cdp/core"
	"cdp/internal/risk"
	"cdp/pkg/number"

	"github.com/holiman/uint256"
)

// HealthFactor current health factor of account
func (e *Engine) HealthFactor(ctx context.Context, account string) (*uint256.Int, error) {
	a, err := e.runner.Ledger().FindAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	return e.healthFactor(ctx, a)
}

// CollateralValue USD value of all collateral of account
func (e *Engine) CollateralValue(ctx context.Context, account string) (*uint256.Int, error) {
	a, err := e.runner.Ledger().FindAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	return e.collateralValue(ctx, a)
}

// Account collateral and debt snapshot of account
func (e *Engine) Account(ctx context.Context, account string) (*core.AccountSnapshot, error) {
	a, err := e.runner.Ledger().FindAccount(ctx, account)
	if err != nil {
		return nil, err
	}

	value, err := e.collateralValue(ctx, a)
	if err != nil {
		return nil, err
	}

	hf, err := risk.HealthFactor(a.DebtMinted, value, e.policy.LiquidationThreshold)
	if err != nil {
		return nil, err
	}

	return &core.AccountSnapshot{
		Address:         a.Address,
		DebtMinted:      number.Clone(a.DebtMinted),
		Collateral:      a.Clone().Collateral,
		CollateralValue: value,
		HealthFactor:    hf,
	}, nil
}

func (e *Engine) collateralValue(ctx context.Context, a *core.Account) (*uint256.Int, error) {
	return e.oracle.TotalValue(ctx, a.Collateral)
}

// healthFactor prices are only read when a has debt
func (e *Engine) healthFactor(ctx context.Context, a *core.Account) (*uint256.Int, error) {
	if number.IsZero(a.DebtMinted) {
		return number.Max(), nil
	}

	value, err := e.collateralValue(ctx, a)
	if err != nil {
		return nil, err
	}

	return risk.HealthFactor(a.DebtMinted, value, e.policy.LiquidationThreshold)
}

// ensureHealthy postcondition of every mutating call
func (e *Engine) ensureHealthy(ctx context.Context, a *core.Account) (*uint256.Int, error) {
	hf, err := e.healthFactor(ctx, a)
	if err != nil {
		return nil, err
	}

	if risk.Broken(hf) {
		return nil, &core.HealthFactorError{Account: a.Address, HealthFactor: hf}
	}

	return hf, nil
}
