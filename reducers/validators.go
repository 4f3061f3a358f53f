package reducers

import (
	"regexp"
	"time"

	"github.com/DefiantLabs/lunie-core/cosmos/modules/staking"
	"github.com/DefiantLabs/lunie-core/util"
	"github.com/shopspring/decimal"
)

// bannedJailThreshold separates temporary jailing from tombstoned validators, which the chain
// reports as jailed until a date far in the future.
var bannedJailThreshold = time.Date(9000, time.February, 1, 0, 0, 0, 0, time.UTC)

var websiteSchemeRegex = regexp.MustCompile(`http[s]?`)

func GetValidatorStatus(validator staking.Validator) ValidatorStatus {
	if validator.Status == staking.BondStatusBonded {
		return ValidatorStatus{
			Status:         ValidatorStatusActive,
			StatusDetailed: ValidatorStatusDetailedActive,
		}
	}
	if validator.SigningInfo != nil {
		jailedUntil := parseTime(validator.SigningInfo.JailedUntil)
		if jailedUntil != nil && jailedUntil.After(bannedJailThreshold) {
			return ValidatorStatus{
				Status:         ValidatorStatusInactive,
				StatusDetailed: ValidatorStatusDetailedBanned,
			}
		}
	}
	return ValidatorStatus{
		Status:         ValidatorStatusInactive,
		StatusDetailed: ValidatorStatusDetailedInactive,
	}
}

func websiteURL(website string) string {
	if website == "" || website == "[do-not-modify]" {
		return ""
	}
	if !websiteSchemeRegex.MatchString(website) {
		return "https://" + website
	}
	return website
}

func uptimePercentage(signingInfo *staking.SigningInfo, signedBlocksWindow string) decimal.Decimal {
	window := util.ToDecimal(signedBlocksWindow)
	if window.IsZero() {
		return decimal.NewFromInt(1)
	}
	missed := decimal.Zero
	if signingInfo != nil {
		missed = util.ToDecimal(signingInfo.MissedBlocksCounter)
	}
	return decimal.NewFromInt(1).Sub(missed.Div(window))
}

func ValidatorReducer(networkID string, signedBlocksWindow string, validator staking.Validator) Validator {
	status := GetValidatorStatus(validator)

	var startHeight string
	if validator.SigningInfo != nil {
		startHeight = validator.SigningInfo.StartHeight
	}

	return Validator{
		ID:                   validator.OperatorAddress,
		NetworkID:            networkID,
		OperatorAddress:      validator.OperatorAddress,
		ConsensusPubkey:      validator.ConsensusPubkey,
		Jailed:               validator.Jailed,
		Details:              validator.Description.Details,
		Website:              websiteURL(validator.Description.Website),
		Identity:             validator.Description.Identity,
		Name:                 validator.Description.Moniker,
		VotingPower:          validator.VotingPower.StringFixed(atomsExponent),
		StartHeight:          startHeight,
		UptimePercentage:     uptimePercentage(validator.SigningInfo, signedBlocksWindow),
		Tokens:               Atoms(validator.Tokens),
		CommissionUpdateTime: validator.Commission.UpdateTime,
		Commission:           validator.Commission.Rate,
		MaxCommission:        validator.Commission.MaxRate,
		MaxChangeCommission:  validator.Commission.MaxChangeRate,
		Status:               status.Status,
		StatusDetailed:       status.StatusDetailed,
		DelegatorShares:      validator.DelegatorShares,
		Popularity:           validator.Popularity,
	}
}

// ValidatorsByOperatorAddress indexes reduced validators for account and reward lookups.
func ValidatorsByOperatorAddress(validators []Validator) map[string]Validator {
	dict := make(map[string]Validator, len(validators))
	for _, validator := range validators {
		dict[validator.OperatorAddress] = validator
	}
	return dict
}

// ExpectedRewardsPerToken is the yearly reward a single delegated token earns with the validator,
// net of its commission. Inactive and jailed validators earn nothing.
func ExpectedRewardsPerToken(validator Validator, commission decimal.Decimal, annualProvision decimal.Decimal) decimal.Decimal {
	if validator.Status == ValidatorStatusInactive || validator.Jailed {
		return decimal.Zero
	}
	tokens := util.ToDecimal(validator.Tokens)
	if tokens.IsZero() {
		return decimal.Zero
	}

	// share of all provisioned block rewards the delegators of this validator get
	totalAnnualValidatorRewards := util.ToDecimal(validator.VotingPower).Mul(annualProvision)
	totalAnnualDelegatorRewards := totalAnnualValidatorRewards.Mul(decimal.NewFromInt(1).Sub(commission))

	return totalAnnualDelegatorRewards.Div(tokens).Shift(-atomsExponent)
}

func TopVoterReducer(validator Validator) TopVoter {
	return TopVoter{
		Name:        validator.Name,
		Address:     validator.OperatorAddress,
		VotingPower: validator.VotingPower,
		Validator:   validator,
	}
}
