package core

// AssetRegistry allowed collateral assets and their price feeds, immutable after construction
type AssetRegistry struct {
	assets []string
	feeds  map[string]string
}

// NewAssetRegistry pair assets with feeds 1:1, in order
func NewAssetRegistry(assets, feeds []string) (*AssetRegistry, error) {
	if len(assets) != len(feeds) || len(assets) == 0 {
		return nil, ErrInvalidConfiguration
	}

	r := &AssetRegistry{
		assets: make([]string, 0, len(assets)),
		feeds:  make(map[string]string, len(assets)),
	}

	for i, asset := range assets {
		if asset == "" || feeds[i] == "" {
			return nil, ErrInvalidConfiguration
		}

		if _, ok := r.feeds[asset]; ok {
			return nil, ErrInvalidConfiguration
		}

		r.assets = append(r.assets, asset)
		r.feeds[asset] = feeds[i]
	}

	return r, nil
}

// Allowed check asset is registered
func (r *AssetRegistry) Allowed(asset string) bool {
	_, ok := r.feeds[asset]
	return ok
}

// Feed price feed id of asset
func (r *AssetRegistry) Feed(asset string) (string, error) {
	feed, ok := r.feeds[asset]
	if !ok {
		return "", ErrAssetNotAllowed
	}

	return feed, nil
}

// Assets registered assets in construction order
func (r *AssetRegistry) Assets() []string {
	return append([]string(nil), r.assets...)
}

// AssetFeed asset and feed pair
type AssetFeed struct {
	AssetID string `json:"asset_id"`
	FeedID  string `json:"feed_id"`
}

// Pairs registered asset feed pairs in construction order
func (r *AssetRegistry) Pairs() []AssetFeed {
	pairs := make([]AssetFeed, 0, len(r.assets))
	for _, asset := range r.assets {
		pairs = append(pairs, AssetFeed{AssetID: asset, FeedID: r.feeds[asset]})
	}

	return pairs
}
