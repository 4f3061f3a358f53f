// Package reducers transforms raw chain responses into the records shown to users.
// Every reducer is a pure function of its inputs and safe to call concurrently.
package reducers

import (
	"strings"

	"github.com/DefiantLabs/lunie-core/cosmos/modules/bank"
	"github.com/DefiantLabs/lunie-core/network"
	"github.com/shopspring/decimal"
)

// Reducers are the leaf reducers that composite reducers call through, so callers can swap them out.
type Reducers interface {
	DenomLookup(denom string) string
	CoinReducer(coin *bank.Coin, lookup *network.CoinLookup) Coin
	NetworkAccountReducer(address string, validators map[string]Validator) NetworkAccount
}

type chainReducers struct {
	network *network.Network
}

// New returns the reducers of a network.
func New(n *network.Network) Reducers {
	return &chainReducers{network: n}
}

func (r *chainReducers) DenomLookup(denom string) string {
	return DenomLookup(denom, r.network)
}

func (r *chainReducers) CoinReducer(coin *bank.Coin, lookup *network.CoinLookup) Coin {
	return CoinReducer(coin, lookup, r.network)
}

func (r *chainReducers) NetworkAccountReducer(address string, validators map[string]Validator) NetworkAccount {
	return NetworkAccountReducer(address, validators, r.network)
}

var knownDenoms = map[string]string{
	"uatom": "ATOM",
	"umuon": "MUON",
	"uluna": "LUNA",
	"ukrw":  "KRT",
	"umnt":  "MNT",
	"usdr":  "SDT",
	"uusd":  "UST",
	"seed":  "TREE",
	"ungm":  "NGM",
	"eeur":  "eEUR",
	"echf":  "eCHF",
	"ejpy":  "eJPY",
	"eusd":  "eUSD",
	"edkk":  "eDKK",
	"enok":  "eNOK",
	"esek":  "eSEK",
	"ukava": "KAVA",
	"uakt":  "AKT",
}

// DenomLookup maps a chain denomination to its display denomination. The network's coin lookup
// wins over the built-in table; unknown denominations are upper-cased.
func DenomLookup(denom string, n *network.Network) string {
	if viewDenom, ok := n.ViewDenom(denom); ok {
		return viewDenom
	}
	if viewDenom, ok := knownDenoms[denom]; ok {
		return viewDenom
	}
	return strings.ToUpper(denom)
}

// CoinReducer converts a chain coin into display units. Without a lookup the staking
// denomination's lookup is used.
func CoinReducer(coin *bank.Coin, lookup *network.CoinLookup, n *network.Network) Coin {
	if coin == nil {
		return Coin{Amount: decimal.Zero}
	}
	if lookup == nil && n != nil {
		lookup = n.StakingCoinLookup()
	}

	amount, err := decimal.NewFromString(strings.TrimSpace(coin.Amount))
	if err != nil {
		amount = decimal.Zero
	}

	return Coin{
		Denom:  DenomLookup(coin.Denom, n),
		Amount: amount.Mul(lookup.Factor()),
	}
}
