package reducers

import (
	"testing"

	"github.com/DefiantLabs/lunie-core/cosmos/modules/bank"
	"github.com/DefiantLabs/lunie-core/network"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cosmosHub() *network.Network {
	return &network.Network{
		ID:            "cosmos-hub-mainnet",
		StakingDenom:  "ATOM",
		AddressPrefix: "cosmos",
		CoinLookup: []network.CoinLookup{
			{ChainDenom: "uatom", ViewDenom: "ATOM", ChainToViewConversionFactor: decimal.New(1, -6)},
		},
	}
}

func emoney() *network.Network {
	return &network.Network{
		ID:            "emoney-mainnet",
		StakingDenom:  "NGM",
		AddressPrefix: "emoney",
		CoinLookup: []network.CoinLookup{
			{ChainDenom: "ungm", ViewDenom: "NGM", ChainToViewConversionFactor: decimal.New(1, -6)},
			{ChainDenom: "uchf", ViewDenom: "CHF", ChainToViewConversionFactor: decimal.New(1, -4)},
			{ChainDenom: "ueur", ViewDenom: "EUR", ChainToViewConversionFactor: decimal.New(1, -6)},
		},
	}
}

func TestDenomLookup(t *testing.T) {
	assert.Equal(t, "ATOM", DenomLookup("uatom", nil))
	assert.Equal(t, "eCHF", DenomLookup("echf", nil))
	assert.Equal(t, "UFOO", DenomLookup("ufoo", nil))
	assert.Equal(t, "CHF", DenomLookup("uchf", emoney()), "network lookup wins over upper-casing")
}

func TestCoinReducer(t *testing.T) {
	coin := CoinReducer(&bank.Coin{Denom: "uatom", Amount: "1500000"}, nil, cosmosHub())
	assert.Equal(t, "ATOM", coin.Denom)
	assert.True(t, coin.Amount.Equal(decimal.RequireFromString("1.5")))

	n := emoney()
	coin = CoinReducer(&bank.Coin{Denom: "uchf", Amount: "15000"}, n.GetCoinLookup("uchf", ""), n)
	assert.Equal(t, "CHF", coin.Denom)
	assert.True(t, coin.Amount.Equal(decimal.RequireFromString("1.5")))
}

func TestCoinReducerMissingCoin(t *testing.T) {
	coin := CoinReducer(nil, nil, cosmosHub())
	assert.Equal(t, "", coin.Denom)
	assert.True(t, coin.Amount.IsZero())
}

func TestCoinReducerWithoutLookup(t *testing.T) {
	coin := CoinReducer(&bank.Coin{Denom: "ufoo", Amount: "2000000"}, nil, nil)
	assert.Equal(t, "UFOO", coin.Denom)
	assert.True(t, coin.Amount.Equal(decimal.NewFromInt(2)))
}

func TestNewDelegatesToNetwork(t *testing.T) {
	r := New(emoney())
	require.Equal(t, "CHF", r.DenomLookup("uchf"))
	coin := r.CoinReducer(&bank.Coin{Denom: "ungm", Amount: "1000000"}, nil)
	require.True(t, coin.Amount.Equal(decimal.NewFromInt(1)))
	require.Equal(t, "", r.NetworkAccountReducer("", nil).Address)
}
