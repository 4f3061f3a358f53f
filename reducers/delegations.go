package reducers

import (
	"fmt"

	"github.com/DefiantLabs/lunie-core/cosmos/modules/staking"
	"github.com/DefiantLabs/lunie-core/util"
	"github.com/shopspring/decimal"
)

// CalculateTokens converts delegation shares into tokens: (shares / delegatorShares) * tokens.
// A validator without delegator shares has no tokens to hand out.
func CalculateTokens(validator Validator, shares string) decimal.Decimal {
	totalShares := util.ToDecimal(validator.DelegatorShares)
	if totalShares.IsZero() {
		return decimal.Zero
	}
	myShares := util.ToDecimal(shares)
	totalTokens := util.ToDecimal(validator.Tokens)

	return myShares.Mul(totalTokens).Div(totalShares).Round(atomsExponent)
}

func DelegationReducer(delegation staking.Delegation, validator Validator, active bool) Delegation {
	return Delegation{
		ID:               delegation.ValidatorAddress,
		ValidatorAddress: delegation.ValidatorAddress,
		DelegatorAddress: delegation.DelegatorAddress,
		Validator:        validator,
		Amount:           CalculateTokens(validator, delegation.Shares),
		Active:           active,
	}
}

func UndelegationReducer(undelegation staking.UnbondingDelegation, validator Validator) Undelegation {
	return Undelegation{
		ID:               fmt.Sprintf("%s_%s", validator.OperatorAddress, undelegation.CreationHeight),
		DelegatorAddress: undelegation.DelegatorAddress,
		Validator:        validator,
		Amount:           util.ToDecimal(Atoms(undelegation.Balance)),
		StartHeight:      undelegation.CreationHeight,
		EndTime:          undelegation.CompletionTime,
	}
}
