package operation

import (
	"context"

	"cdp/core"
	"cdp/pkg/number"

	"github.com/holiman/uint256"
)

// Bank schedules custody and debt token calls on an operation,
// each with the call that undoes it
type Bank struct {
	custody core.ICustody
	token   core.IDebtToken
	address string
}

// NewBank new bank, address is where custody and the debt token hold the engine's funds
func NewBank(custody core.ICustody, token core.IDebtToken, address string) *Bank {
	return &Bank{
		custody: custody,
		token:   token,
		address: address,
	}
}

// Address engine holding address
func (b *Bank) Address() string {
	return b.address
}

// TransferIn pull collateral from into custody
func (b *Bank) TransferIn(op *Operation, asset, from string, amount *uint256.Int) {
	if number.IsZero(amount) {
		return
	}

	amount = number.Clone(amount)
	op.Call("custody.transfer_in", func(ctx context.Context) error {
		return checked(b.custody.TransferIn(ctx, asset, from, amount))
	}, func(ctx context.Context) error {
		return checked(b.custody.TransferOut(ctx, asset, from, amount))
	})
}

// TransferOut push collateral from custody to to
func (b *Bank) TransferOut(op *Operation, asset, to string, amount *uint256.Int) {
	if number.IsZero(amount) {
		return
	}

	amount = number.Clone(amount)
	op.Call("custody.transfer_out", func(ctx context.Context) error {
		return checked(b.custody.TransferOut(ctx, asset, to, amount))
	}, func(ctx context.Context) error {
		return checked(b.custody.TransferIn(ctx, asset, to, amount))
	})
}

// Mint mint debt tokens to to
func (b *Bank) Mint(op *Operation, to string, amount *uint256.Int) {
	if number.IsZero(amount) {
		return
	}

	amount = number.Clone(amount)
	op.Call("token.mint", func(ctx context.Context) error {
		ok, err := b.token.Mint(ctx, to, amount)
		if err != nil {
			return err
		}

		if !ok {
			return core.ErrMintFailed
		}

		return nil
	}, func(ctx context.Context) error {
		if err := checked(b.token.TransferFrom(ctx, to, b.address, amount)); err != nil {
			return err
		}

		return b.token.Burn(ctx, amount)
	})
}

// PullDebt move debt tokens from from to the engine
func (b *Bank) PullDebt(op *Operation, from string, amount *uint256.Int) {
	if number.IsZero(amount) {
		return
	}

	amount = number.Clone(amount)
	op.Call("token.transfer_from", func(ctx context.Context) error {
		return checked(b.token.TransferFrom(ctx, from, b.address, amount))
	}, func(ctx context.Context) error {
		return checked(b.token.Transfer(ctx, from, amount))
	})
}

// Burn burn debt tokens held by the engine, schedule it last
func (b *Bank) Burn(op *Operation, amount *uint256.Int) {
	if number.IsZero(amount) {
		return
	}

	amount = number.Clone(amount)
	op.Call("token.burn", func(ctx context.Context) error {
		return b.token.Burn(ctx, amount)
	}, nil)
}

func checked(ok bool, err error) error {
	if err != nil {
		return err
	}

	if !ok {
		return core.ErrTransferFailed
	}

	return nil
}
