package views

import (
	"cdp/core"

	"github.com/holiman/uint256"
	"github.com/shopspring/decimal"
)

// Balance base units with the human readable amount
type Balance struct {
	AssetID string          `json:"asset_id,omitempty"`
	Amount  string          `json:"amount"`
	Human   decimal.Decimal `json:"human"`
}

// NewBalance balance view of x
func NewBalance(assetID string, x *uint256.Int) Balance {
	return Balance{
		AssetID: assetID,
		Amount:  x.Dec(),
		Human:   core.HumanAmount(x),
	}
}

// Balances views of m in registry order
func Balances(assets []string, m map[string]*uint256.Int) []Balance {
	views := make([]Balance, 0, len(m))
	for _, asset := range assets {
		if x, ok := m[asset]; ok {
			views = append(views, NewBalance(asset, x))
		}
	}

	return views
}

// Account account view
type Account struct {
	Address         string    `json:"address"`
	DebtMinted      Balance   `json:"debt_minted"`
	Collateral      []Balance `json:"collateral"`
	CollateralValue Balance   `json:"collateral_value"`
	HealthFactor    Balance   `json:"health_factor"`
}

// AccountView convert snapshot
func AccountView(assets []string, s *core.AccountSnapshot) Account {
	return Account{
		Address:         s.Address,
		DebtMinted:      NewBalance("", s.DebtMinted),
		Collateral:      Balances(assets, s.Collateral),
		CollateralValue: NewBalance("", s.CollateralValue),
		HealthFactor:    NewBalance("", s.HealthFactor),
	}
}
