package config

import (
	"errors"
	"fmt"

	"github.com/DefiantLabs/lunie-core/network"
	"github.com/DefiantLabs/lunie-core/util"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// Network is the network section of the config file. Coin lookups can only be set in the file:
//
//	[[network.coin-lookup]]
//	chain-denom = "uatom"
//	view-denom = "ATOM"
//	chain-to-view-conversion-factor = "0.000001"
type Network struct {
	ID                     string
	Title                  string
	StakingDenom           string       `mapstructure:"staking-denom"`
	AddressPrefix          string       `mapstructure:"address-prefix"`
	ValidatorAddressPrefix string       `mapstructure:"validator-address-prefix"`
	AssetList              string       `mapstructure:"asset-list"`
	CoinLookup             []CoinLookup `mapstructure:"coin-lookup"`
}

type CoinLookup struct {
	ChainDenom                  string `mapstructure:"chain-denom"`
	ViewDenom                   string `mapstructure:"view-denom"`
	ChainToViewConversionFactor string `mapstructure:"chain-to-view-conversion-factor"`
}

func SetupNetworkFlags(networkConf *Network, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&networkConf.ID, "network.id", "", "network id, e.g. cosmos-hub-mainnet")
	cmd.PersistentFlags().StringVar(&networkConf.Title, "network.title", "", "human readable network name")
	cmd.PersistentFlags().StringVar(&networkConf.StakingDenom, "network.staking-denom", "", "display denomination of the staking token, e.g. ATOM")
	cmd.PersistentFlags().StringVar(&networkConf.AddressPrefix, "network.address-prefix", "cosmos", "bech32 prefix of account addresses")
	cmd.PersistentFlags().StringVar(&networkConf.ValidatorAddressPrefix, "network.validator-address-prefix", "", "bech32 prefix of validator operator addresses (default is <address-prefix>valoper)")
	cmd.PersistentFlags().StringVar(&networkConf.AssetList, "network.asset-list", "", "chain registry assetlist.json url, its denom units are added to the coin lookups")
}

func validateNetworkConf(networkConf Network) error {
	if util.StrNotSet(networkConf.ID) {
		return errors.New("network id must be set")
	}
	if util.StrNotSet(networkConf.StakingDenom) {
		return errors.New("network staking-denom must be set")
	}
	for _, lookup := range networkConf.CoinLookup {
		if util.StrNotSet(lookup.ChainDenom) || util.StrNotSet(lookup.ViewDenom) {
			return errors.New("network coin-lookup entries need a chain-denom and a view-denom")
		}
		if _, err := parseConversionFactor(lookup.ChainToViewConversionFactor); err != nil {
			return fmt.Errorf("network coin-lookup %s: %w", lookup.ChainDenom, err)
		}
	}
	return nil
}

func parseConversionFactor(factor string) (decimal.Decimal, error) {
	if util.StrNotSet(factor) {
		return network.DefaultConversionFactor, nil
	}
	parsed, err := decimal.NewFromString(factor)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid conversion factor %q: %w", factor, err)
	}
	if !parsed.IsPositive() {
		return decimal.Zero, fmt.Errorf("conversion factor %q must be greater than 0", factor)
	}
	return parsed, nil
}

// ToNetwork converts the section into a network. Lookups without a factor get the micro unit factor.
func (networkConf Network) ToNetwork() (*network.Network, error) {
	n := &network.Network{
		ID:                     networkConf.ID,
		Title:                  networkConf.Title,
		StakingDenom:           networkConf.StakingDenom,
		AddressPrefix:          networkConf.AddressPrefix,
		ValidatorAddressPrefix: networkConf.ValidatorAddressPrefix,
		CoinLookup:             make([]network.CoinLookup, 0, len(networkConf.CoinLookup)),
	}
	for _, lookup := range networkConf.CoinLookup {
		factor, err := parseConversionFactor(lookup.ChainToViewConversionFactor)
		if err != nil {
			return nil, fmt.Errorf("network coin-lookup %s: %w", lookup.ChainDenom, err)
		}
		n.CoinLookup = append(n.CoinLookup, network.CoinLookup{
			ChainDenom:                  lookup.ChainDenom,
			ViewDenom:                   lookup.ViewDenom,
			ChainToViewConversionFactor: factor,
		})
	}
	return n, nil
}
