package reducers

import (
	"github.com/DefiantLabs/lunie-core/network"
	"github.com/DefiantLabs/lunie-core/util"
)

// atomsExponent is the fixed decimal shift between chain units and display units assumed by Atoms.
const atomsExponent = 6

// Atoms converts an amount in the smallest chain unit into display units with 6 decimals,
// e.g. "1000000" becomes "1.000000". Every denomination is assumed to use a 1e-6 unit here;
// use AtomsWithLookup when the denomination has a configured conversion factor.
func Atoms(amount string) string {
	return util.ToDecimal(amount).Shift(-atomsExponent).StringFixed(atomsExponent)
}

// AtomsWithLookup converts an amount using the conversion factor of the coin lookup.
func AtomsWithLookup(amount string, lookup *network.CoinLookup) string {
	return util.ToDecimal(amount).Mul(lookup.Factor()).StringFixed(atomsExponent)
}
