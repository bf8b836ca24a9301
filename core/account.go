package core

import (
	"context"
	"time"

	"cdp/pkg/number"

	"github.com/holiman/uint256"
)

// Account collateral and minted debt of one address
type Account struct {
	Address    string                  `sql:"size:64;PRIMARY_KEY" json:"address"`
	DebtMinted *uint256.Int            `sql:"type:numeric(78,0)" json:"debt_minted"`
	Collateral map[string]*uint256.Int `sql:"-" json:"collateral"`
	Version    int64                   `sql:"default:0" json:"version"`
	CreatedAt  time.Time               `sql:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time               `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// NewAccount zero valued account
func NewAccount(address string) *Account {
	return &Account{
		Address:    address,
		DebtMinted: number.Zero(),
		Collateral: map[string]*uint256.Int{},
	}
}

// CollateralOf collateral balance of asset, zero if absent
func (a *Account) CollateralOf(asset string) *uint256.Int {
	return number.Clone(a.Collateral[asset])
}

// Clone deep copy
func (a *Account) Clone() *Account {
	c := *a
	c.DebtMinted = number.Clone(a.DebtMinted)
	c.Collateral = cloneBalances(a.Collateral)
	return &c
}

// Collateral kinds
const (
	CollateralKindLedger  = "ledger"
	CollateralKindBorrow  = "borrow"
	CollateralKindPenalty = "penalty"
)

// CollateralBalance one row of an account or borrow position collateral map
type CollateralBalance struct {
	Owner     string       `sql:"size:64;PRIMARY_KEY" json:"owner"`
	Kind      string       `sql:"size:16;PRIMARY_KEY" json:"kind"`
	AssetID   string       `sql:"size:64;PRIMARY_KEY" json:"asset_id"`
	Amount    *uint256.Int `sql:"type:numeric(78,0)" json:"amount"`
	UpdatedAt time.Time    `sql:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// SetBalance set asset balance in m, zero balances are removed
func SetBalance(m map[string]*uint256.Int, asset string, v *uint256.Int) {
	if number.IsZero(v) {
		delete(m, asset)
		return
	}

	m[asset] = v
}

func cloneBalances(m map[string]*uint256.Int) map[string]*uint256.Int {
	c := make(map[string]*uint256.Int, len(m))
	for k, v := range m {
		c[k] = number.Clone(v)
	}

	return c
}

// AccountSnapshot account read model
type AccountSnapshot struct {
	Address         string                  `json:"address"`
	DebtMinted      *uint256.Int            `json:"debt_minted"`
	Collateral      map[string]*uint256.Int `json:"collateral"`
	CollateralValue *uint256.Int            `json:"collateral_value"`
	HealthFactor    *uint256.Int            `json:"health_factor"`
}

// IEngine collateral ledger, health factor and liquidation
type IEngine interface {
	DepositCollateral(ctx context.Context, account, asset string, amount *uint256.Int) error
	DepositAndMint(ctx context.Context, account, asset string, collateral, debt *uint256.Int) error
	RedeemCollateral(ctx context.Context, account, asset string, amount *uint256.Int) error
	RedeemAndBurn(ctx context.Context, account, asset string, collateral, debt *uint256.Int) error
	MintDebt(ctx context.Context, account string, amount *uint256.Int) error
	BurnDebt(ctx context.Context, account string, amount *uint256.Int) error
	Liquidate(ctx context.Context, liquidator, asset, target string, debtToCover *uint256.Int) error

	Account(ctx context.Context, account string) (*AccountSnapshot, error)
	HealthFactor(ctx context.Context, account string) (*uint256.Int, error)
	CollateralValue(ctx context.Context, account string) (*uint256.Int, error)
	Registry() *AssetRegistry
	Policy() Policy
}
