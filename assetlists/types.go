package assetlists

// AssetList is the chain registry assetlist.json of a single chain.
type AssetList struct {
	ChainName string  `json:"chain_name"`
	Assets    []Asset `json:"assets"`
}

type Asset struct {
	Description string      `json:"description"`
	DenomUnits  []DenomUnit `json:"denom_units"`
	Base        string      `json:"base"`
	Name        string      `json:"name"`
	Display     string      `json:"display"`
	Symbol      string      `json:"symbol"`
	CoingeckoID string      `json:"coingecko_id"`
}

type DenomUnit struct {
	Denom    string   `json:"denom"`
	Exponent int32    `json:"exponent"`
	Aliases  []string `json:"aliases,omitempty"`
}
