package core

import (
	"context"

	"github.com/holiman/uint256"
)

// ICustody moves collateral assets in and out of the engine's custody.
// A false result means the transfer did not happen.
type ICustody interface {
	TransferIn(ctx context.Context, asset, from string, amount *uint256.Int) (bool, error)
	TransferOut(ctx context.Context, asset, to string, amount *uint256.Int) (bool, error)
}

// IDebtToken the debt token, the engine is its only minter
type IDebtToken interface {
	Mint(ctx context.Context, to string, amount *uint256.Int) (bool, error)
	// Burn destroys amount held by the engine
	Burn(ctx context.Context, amount *uint256.Int) error
	TransferFrom(ctx context.Context, from, to string, amount *uint256.Int) (bool, error)
	// Transfer moves amount held by the engine to to
	Transfer(ctx context.Context, to string, amount *uint256.Int) (bool, error)
	BalanceOf(ctx context.Context, owner string) (*uint256.Int, error)
}

// Balance token balance of an owner
type Balance struct {
	Owner   string       `sql:"size:64;PRIMARY_KEY" json:"owner"`
	AssetID string       `sql:"size:64;PRIMARY_KEY" json:"asset_id"`
	Amount  *uint256.Int `sql:"type:numeric(78,0)" json:"amount"`
	Version int64        `sql:"default:0" json:"version"`
}

// IBalanceStore balance book backing the in process collaborators
type IBalanceStore interface {
	Find(ctx context.Context, owner, assetID string) (*uint256.Int, error)
	// Move moves amount from one owner to another, from == "" mints, to == "" burns
	Move(ctx context.Context, assetID, from, to string, amount *uint256.Int) error
}
