package core

import (
	"github.com/fox-one/pkg/store/db"
)

// Config cdp config
type Config struct {
	App         App           `json:"app"`
	DB          db.Config     `json:"db"`
	Engine      Engine        `json:"engine"`
	Assets      []AssetConfig `json:"assets"`
	Policy      Policy        `json:"policy"`
	PriceOracle PriceOracle   `json:"price_oracle"`
}

// App app config
type App struct {
	Location string `json:"location"`
	// Memory keep state in process instead of the database
	Memory bool `json:"memory"`
}

// Engine engine identity
type Engine struct {
	// Address custody account of the engine in the balance book
	Address string `json:"address"`
	// DebtAsset asset id of the debt token in the balance book
	DebtAsset string `json:"debt_asset"`
}

// AssetConfig allowed collateral asset and its feed
type AssetConfig struct {
	ID     string `json:"id"`
	Symbol string `json:"symbol"`
	Feed   string `json:"feed"`
}

// PriceOracle price oracle config
type PriceOracle struct {
	EndPoint string `json:"end_point"`
	// CacheTTL seconds a pulled ticker is reused
	CacheTTL int64 `json:"cache_ttl"`
	// Decimals feed native decimals
	Decimals int32 `json:"decimals"`
}

// Registry build the asset registry from config order
func (c *Config) Registry() (*AssetRegistry, error) {
	assets := make([]string, 0, len(c.Assets))
	feeds := make([]string, 0, len(c.Assets))
	for _, a := range c.Assets {
		assets = append(assets, a.ID)
		feeds = append(feeds, a.Feed)
	}

	return NewAssetRegistry(assets, feeds)
}
