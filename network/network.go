// Package network describes the chain a client is connected to: its staking denomination,
// address prefixes and the table mapping chain denominations to display denominations.
package network

import (
	"strings"

	"github.com/shopspring/decimal"
)

// DefaultConversionFactor converts a micro-denominated chain amount into display units.
var DefaultConversionFactor = decimal.New(1, -6)

// Lookup keys accepted by GetCoinLookup.
const (
	ChainDenomKey = "chainDenom"
	ViewDenomKey  = "viewDenom"
)

type CoinLookup struct {
	ChainDenom                  string          `json:"chainDenom"`
	ViewDenom                   string          `json:"viewDenom"`
	ChainToViewConversionFactor decimal.Decimal `json:"chainToViewConversionFactor"`
}

// Factor returns the conversion factor of the lookup, falling back to 1e-6 when none is configured.
func (c *CoinLookup) Factor() decimal.Decimal {
	if c == nil || c.ChainToViewConversionFactor.IsZero() {
		return DefaultConversionFactor
	}
	return c.ChainToViewConversionFactor
}

type Network struct {
	ID                     string       `json:"id"`
	Title                  string       `json:"title"`
	StakingDenom           string       `json:"stakingDenom"`
	AddressPrefix          string       `json:"addressPrefix"`
	ValidatorAddressPrefix string       `json:"validatorAddressPrefix"`
	CoinLookup             []CoinLookup `json:"coinLookup"`
}

// GetCoinLookup finds the coin lookup whose field named by key matches denom.
// An empty key matches on the chain denomination.
func (n *Network) GetCoinLookup(denom string, key string) *CoinLookup {
	if n == nil {
		return nil
	}
	for i := range n.CoinLookup {
		lookup := &n.CoinLookup[i]
		switch key {
		case ViewDenomKey:
			if lookup.ViewDenom == denom {
				return lookup
			}
		default:
			if lookup.ChainDenom == denom {
				return lookup
			}
		}
	}
	return nil
}

// StakingCoinLookup returns the lookup of the staking denomination.
func (n *Network) StakingCoinLookup() *CoinLookup {
	return n.GetCoinLookup(n.StakingDenom, ViewDenomKey)
}

// ValidatorPrefix is the human readable part of validator operator addresses on this network.
func (n *Network) ValidatorPrefix() string {
	if n == nil {
		return "cosmosvaloper"
	}
	if n.ValidatorAddressPrefix != "" {
		return n.ValidatorAddressPrefix
	}
	return n.AccountPrefix() + "valoper"
}

func (n *Network) AccountPrefix() string {
	if n == nil || n.AddressPrefix == "" {
		return "cosmos"
	}
	return n.AddressPrefix
}

// ViewDenom maps a chain denomination to the denomination configured for display, if any.
func (n *Network) ViewDenom(chainDenom string) (string, bool) {
	lookup := n.GetCoinLookup(chainDenom, ChainDenomKey)
	if lookup == nil || lookup.ViewDenom == "" {
		return "", false
	}
	return lookup.ViewDenom, true
}

func (n *Network) IsStakingDenom(viewDenom string) bool {
	return n != nil && strings.EqualFold(n.StakingDenom, viewDenom)
}
