// Package assetlists reads chain registry asset lists and turns their denom units into coin lookups.
package assetlists

import (
	"context"
	"net/http"

	"github.com/DefiantLabs/lunie-core/network"
	"github.com/DefiantLabs/lunie-core/rest"
	"github.com/shopspring/decimal"
)

func GetAssetList(ctx context.Context, client *http.Client, url string) (AssetList, error) {
	var assetList AssetList
	err := rest.GetJSON(ctx, client, url, &assetList)
	return assetList, err
}

// displayExponent is the exponent of the display unit. Assets without a matching display unit
// use their largest exponent.
func (a Asset) displayExponent() (int32, bool) {
	var largest int32
	found := false
	for _, unit := range a.DenomUnits {
		if unit.Denom == a.Display {
			return unit.Exponent, true
		}
		if !found || unit.Exponent > largest {
			largest = unit.Exponent
			found = true
		}
	}
	return largest, found
}

// CoinLookups converts every asset with a symbol and denom units into a lookup whose factor is 10^-exponent.
func (l AssetList) CoinLookups() []network.CoinLookup {
	lookups := make([]network.CoinLookup, 0, len(l.Assets))
	for _, asset := range l.Assets {
		if asset.Base == "" || asset.Symbol == "" {
			continue
		}
		exponent, ok := asset.displayExponent()
		if !ok {
			continue
		}
		lookups = append(lookups, network.CoinLookup{
			ChainDenom:                  asset.Base,
			ViewDenom:                   asset.Symbol,
			ChainToViewConversionFactor: decimal.New(1, -exponent),
		})
	}
	return lookups
}

// PriceIDs maps display denominations to their CoinGecko ids.
func (l AssetList) PriceIDs() map[string]string {
	ids := make(map[string]string)
	for _, asset := range l.Assets {
		if asset.Symbol != "" && asset.CoingeckoID != "" {
			ids[asset.Symbol] = asset.CoingeckoID
		}
	}
	return ids
}

// MergeInto adds the lookups of the asset list to n. Lookups already configured for a chain denomination win.
func (l AssetList) MergeInto(n *network.Network) {
	for _, lookup := range l.CoinLookups() {
		if n.GetCoinLookup(lookup.ChainDenom, network.ChainDenomKey) != nil {
			continue
		}
		n.CoinLookup = append(n.CoinLookup, lookup)
	}
}
