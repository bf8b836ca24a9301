package vault

import (
	"context"
	"errors"

	"cdp/core"
	"cdp/pkg/number"

	"github.com/fox-one/pkg/logger"
	"github.com/holiman/uint256"
)

// Custody collateral custody over the balance book, assets are held by address
type Custody struct {
	balances core.IBalanceStore
	address  string
}

// NewCustody new custody holding assets at address
func NewCustody(balances core.IBalanceStore, address string) *Custody {
	return &Custody{
		balances: balances,
		address:  address,
	}
}

// TransferIn pull amount of asset from into custody
func (c *Custody) TransferIn(ctx context.Context, asset, from string, amount *uint256.Int) (bool, error) {
	return move(ctx, c.balances, asset, from, c.address, amount)
}

// TransferOut push amount of asset from custody to to
func (c *Custody) TransferOut(ctx context.Context, asset, to string, amount *uint256.Int) (bool, error) {
	return move(ctx, c.balances, asset, c.address, to, amount)
}

// DebtToken debt token over the balance book, minted only by its owner
type DebtToken struct {
	balances core.IBalanceStore
	asset    string
	owner    string
}

// NewDebtToken new debt token of asset, owner holds the engine's tokens
func NewDebtToken(balances core.IBalanceStore, asset, owner string) *DebtToken {
	return &DebtToken{
		balances: balances,
		asset:    asset,
		owner:    owner,
	}
}

// Mint create amount for to
func (t *DebtToken) Mint(ctx context.Context, to string, amount *uint256.Int) (bool, error) {
	return move(ctx, t.balances, t.asset, "", to, amount)
}

// Burn destroy amount held by the owner
func (t *DebtToken) Burn(ctx context.Context, amount *uint256.Int) error {
	ok, err := move(ctx, t.balances, t.asset, t.owner, "", amount)
	if err != nil {
		return err
	}

	if !ok {
		return core.ErrInsufficientBalance
	}

	return nil
}

// TransferFrom move amount from from to to
func (t *DebtToken) TransferFrom(ctx context.Context, from, to string, amount *uint256.Int) (bool, error) {
	return move(ctx, t.balances, t.asset, from, to, amount)
}

// Transfer move amount held by the owner to to
func (t *DebtToken) Transfer(ctx context.Context, to string, amount *uint256.Int) (bool, error) {
	return move(ctx, t.balances, t.asset, t.owner, to, amount)
}

// BalanceOf token balance of owner
func (t *DebtToken) BalanceOf(ctx context.Context, owner string) (*uint256.Int, error) {
	return t.balances.Find(ctx, owner, t.asset)
}

func move(ctx context.Context, balances core.IBalanceStore, asset, from, to string, amount *uint256.Int) (bool, error) {
	if number.IsZero(amount) {
		return true, nil
	}

	if err := balances.Move(ctx, asset, from, to, amount); err != nil {
		if errors.Is(err, core.ErrInsufficientBalance) {
			logger.FromContext(ctx).WithField("asset", asset).
				WithField("from", from).
				WithField("amount", amount.Dec()).
				Infoln("vault: insufficient balance")
			return false, nil
		}

		return false, err
	}

	return true, nil
}
