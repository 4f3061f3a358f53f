package reducers

import (
	"testing"

	"github.com/DefiantLabs/lunie-core/cosmos/modules/staking"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rawValidator() staking.Validator {
	popularity := int64(3)
	return staking.Validator{
		OperatorAddress: "cosmosvaloper1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc56kct20",
		ConsensusPubkey: "cosmosvalconspub1zcjduepq",
		Status:          staking.BondStatusBonded,
		Tokens:          "1000000000",
		DelegatorShares: "1000000000.000000000000000000",
		Description: staking.Description{
			Moniker:  "Validator One",
			Identity: "ABCDEF",
			Website:  "lunie.io",
			Details:  "Details",
		},
		Commission: staking.Commission{
			Rate:          "0.100000000000000000",
			MaxRate:       "0.200000000000000000",
			MaxChangeRate: "0.010000000000000000",
			UpdateTime:    "2019-03-13T23:00:00Z",
		},
		SigningInfo: &staking.SigningInfo{
			StartHeight:         "42",
			JailedUntil:         "1970-01-01T00:00:00Z",
			MissedBlocksCounter: "50",
		},
		VotingPower: decimal.RequireFromString("0.123456789"),
		Popularity:  &popularity,
	}
}

func TestGetValidatorStatusBondedIgnoresSigningInfo(t *testing.T) {
	validator := rawValidator()
	validator.SigningInfo.JailedUntil = "9999-12-31T23:59:59.999999999Z"

	status := GetValidatorStatus(validator)
	assert.Equal(t, ValidatorStatusActive, status.Status)
	assert.Equal(t, ValidatorStatusDetailedActive, status.StatusDetailed)
}

func TestGetValidatorStatusBanned(t *testing.T) {
	validator := rawValidator()
	validator.Status = 0
	validator.SigningInfo.JailedUntil = "9999-12-31T23:59:59.999999999Z"

	status := GetValidatorStatus(validator)
	assert.Equal(t, ValidatorStatusInactive, status.Status)
	assert.Equal(t, ValidatorStatusDetailedBanned, status.StatusDetailed)
}

func TestGetValidatorStatusInactive(t *testing.T) {
	tests := []struct {
		name        string
		signingInfo *staking.SigningInfo
	}{
		{"jailed in the past", &staking.SigningInfo{JailedUntil: "2019-03-01T00:00:00Z"}},
		{"jailed exactly at the threshold", &staking.SigningInfo{JailedUntil: "9000-02-01T00:00:00Z"}},
		{"unparsable jail time", &staking.SigningInfo{JailedUntil: "soon"}},
		{"no signing info", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			validator := rawValidator()
			validator.Status = 1
			validator.SigningInfo = tt.signingInfo

			status := GetValidatorStatus(validator)
			assert.Equal(t, ValidatorStatusInactive, status.Status)
			assert.Equal(t, ValidatorStatusDetailedInactive, status.StatusDetailed)
		})
	}
}

func TestValidatorReducer(t *testing.T) {
	validator := ValidatorReducer("cosmos-hub-mainnet", "10000", rawValidator())

	assert.Equal(t, "cosmosvaloper1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc56kct20", validator.ID)
	assert.Equal(t, validator.ID, validator.OperatorAddress)
	assert.Equal(t, "cosmos-hub-mainnet", validator.NetworkID)
	assert.Equal(t, "Validator One", validator.Name)
	assert.Equal(t, "https://lunie.io", validator.Website)
	assert.Equal(t, "0.123457", validator.VotingPower)
	assert.Equal(t, "42", validator.StartHeight)
	assert.True(t, validator.UptimePercentage.Equal(decimal.RequireFromString("0.995")))
	assert.Equal(t, "1000.000000", validator.Tokens)
	assert.Equal(t, "0.100000000000000000", validator.Commission)
	assert.Equal(t, "0.200000000000000000", validator.MaxCommission)
	assert.Equal(t, "0.010000000000000000", validator.MaxChangeCommission)
	assert.Equal(t, "2019-03-13T23:00:00Z", validator.CommissionUpdateTime)
	assert.Equal(t, ValidatorStatusActive, validator.Status)
	assert.Equal(t, ValidatorStatusDetailedActive, validator.StatusDetailed)
	assert.Equal(t, "1000000000.000000000000000000", validator.DelegatorShares)
	require.NotNil(t, validator.Popularity)
	assert.Equal(t, int64(3), *validator.Popularity)
}

func TestValidatorReducerWithoutSigningInfo(t *testing.T) {
	raw := rawValidator()
	raw.SigningInfo = nil

	validator := ValidatorReducer("cosmos-hub-mainnet", "10000", raw)
	assert.Equal(t, "", validator.StartHeight)
	assert.True(t, validator.UptimePercentage.Equal(decimal.NewFromInt(1)))
}

func TestWebsiteURL(t *testing.T) {
	assert.Equal(t, "", websiteURL(""))
	assert.Equal(t, "", websiteURL("[do-not-modify]"))
	assert.Equal(t, "http://lunie.io", websiteURL("http://lunie.io"))
	assert.Equal(t, "https://lunie.io", websiteURL("https://lunie.io"))
	assert.Equal(t, "https://lunie.io", websiteURL("lunie.io"))
}

func TestExpectedRewardsPerToken(t *testing.T) {
	validator := Validator{
		Status:      ValidatorStatusActive,
		VotingPower: "0.100000",
		Tokens:      "1000.000000",
	}
	commission := decimal.RequireFromString("0.1")
	annualProvision := decimal.NewFromInt(1000000000)

	expected := ExpectedRewardsPerToken(validator, commission, annualProvision)
	assert.True(t, expected.Equal(decimal.RequireFromString("0.09")), expected.String())

	inactive := validator
	inactive.Status = ValidatorStatusInactive
	assert.True(t, ExpectedRewardsPerToken(inactive, commission, annualProvision).IsZero())

	jailed := validator
	jailed.Jailed = true
	assert.True(t, ExpectedRewardsPerToken(jailed, commission, annualProvision).IsZero())

	empty := validator
	empty.Tokens = "0.000000"
	assert.True(t, ExpectedRewardsPerToken(empty, commission, annualProvision).IsZero())
}

func TestTopVoterReducer(t *testing.T) {
	validator := ValidatorReducer("cosmos-hub-mainnet", "10000", rawValidator())
	voter := TopVoterReducer(validator)
	assert.Equal(t, "Validator One", voter.Name)
	assert.Equal(t, validator.OperatorAddress, voter.Address)
	assert.Equal(t, "0.123457", voter.VotingPower)
}

func TestValidatorsByOperatorAddress(t *testing.T) {
	dict := ValidatorsByOperatorAddress([]Validator{{OperatorAddress: "a", Name: "A"}, {OperatorAddress: "b", Name: "B"}})
	assert.Len(t, dict, 2)
	assert.Equal(t, "B", dict["b"].Name)
}
