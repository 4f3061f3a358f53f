package reducers

import (
	"context"
	"testing"

	"github.com/DefiantLabs/lunie-core/cosmos/modules/bank"
	"github.com/DefiantLabs/lunie-core/cosmos/modules/distribution"
	"github.com/DefiantLabs/lunie-core/cosmos/modules/gov"
	"github.com/DefiantLabs/lunie-core/cosmos/modules/staking"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const snapshotDelegator = "cosmos1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu"

func rawSnapshot() ChainSnapshot {
	validator := rawValidator()
	return ChainSnapshot{
		Address:            snapshotDelegator,
		SignedBlocksWindow: "10000",
		Pool:               staking.Pool{BondedTokens: "4000000", NotBondedTokens: "0"},
		StakingParams:      staking.Params{BondDenom: "uatom", MaxValidators: 100},
		Validators:         []staking.Validator{validator},
		Delegations: []staking.Delegation{
			{DelegatorAddress: snapshotDelegator, ValidatorAddress: validator.OperatorAddress, Shares: "2000000"},
			{DelegatorAddress: snapshotDelegator, ValidatorAddress: "cosmosvaloper1unknown", Shares: "5"},
		},
		UnbondingDelegations: []staking.UnbondingDelegation{
			{DelegatorAddress: snapshotDelegator, ValidatorAddress: validator.OperatorAddress, CreationHeight: "12", Balance: "1000000"},
		},
		Balances: []bank.Coin{{Denom: "uatom", Amount: "3000000"}},
		Rewards: []distribution.Reward{
			{ValidatorAddress: validator.OperatorAddress, Reward: []bank.Coin{{Denom: "uatom", Amount: "1500000"}}},
		},
		Proposals: []ProposalSnapshot{{
			Proposal: gov.Proposal{
				ProposalID:      "7",
				ProposalStatus:  gov.StatusVotingPeriod,
				VotingStartTime: "2020-01-01T00:00:00Z",
				VotingEndTime:   "2020-01-15T00:00:00Z",
				TotalDeposit:    []bank.Coin{{Denom: "uatom", Amount: "512000000"}},
			},
			Tally:    gov.TallyResult{Yes: "1000000", No: "0", Abstain: "0", NoWithVeto: "0"},
			Proposer: gov.Proposer{ProposalID: "7", Proposer: snapshotDelegator},
			Votes:    []gov.Vote{{ProposalID: "7", Voter: snapshotDelegator, Option: "Yes"}},
		}},
		DepositParams: gov.DepositParams{MinDeposit: []bank.Coin{{Denom: "uatom", Amount: "512000000"}}},
		TallyParams:   gov.TallyParams{Threshold: "0.5", Veto: "0.334"},
	}
}

func TestSnapshotReducer(t *testing.T) {
	n := cosmosHub()
	fiat := &fakeFiatAPI{prices: map[string]decimal.Decimal{"ATOM": decimal.NewFromInt(10)}}

	snapshot := SnapshotReducer(context.Background(), rawSnapshot(), n, New(n), fiat, "USD")

	assert.Equal(t, "cosmos-hub-mainnet", snapshot.NetworkID)
	assert.Equal(t, snapshotDelegator, snapshot.Address)
	require.Len(t, snapshot.Validators, 1)
	assert.Equal(t, ValidatorStatusActive, snapshot.Validators[0].Status)

	require.Len(t, snapshot.Delegations, 1, "delegations to unknown validators are dropped")
	assert.True(t, snapshot.Delegations[0].Active)
	assert.True(t, snapshot.Delegations[0].Amount.Equal(decimal.NewFromInt(2)), snapshot.Delegations[0].Amount.String())

	require.Len(t, snapshot.Undelegations, 1)
	assert.Equal(t, rawValidator().OperatorAddress+"_12", snapshot.Undelegations[0].ID)

	require.Len(t, snapshot.Balances, 1)
	balance := snapshot.Balances[0]
	assert.Equal(t, BalanceTypeStake, balance.Type)
	assert.True(t, balance.Total.Equal(decimal.NewFromInt(6)), balance.Total.String())
	assert.True(t, balance.Available.Equal(decimal.NewFromInt(3)), balance.Available.String())
	require.NotNil(t, balance.FiatValue)
	assert.True(t, balance.FiatValue.Amount.Equal(decimal.NewFromInt(60)), balance.FiatValue.Amount.String())

	require.Len(t, snapshot.Rewards, 1)
	assert.Equal(t, "ATOM", snapshot.Rewards[0].Denom)

	require.Len(t, snapshot.Proposals, 1)
	proposal := snapshot.Proposals[0]
	assert.Equal(t, int64(7), proposal.ID)
	assert.Equal(t, "1.000000", proposal.Tally.Yes)
	assert.InDelta(t, 0.25, proposal.Tally.TotalVotedPercentage, 1e-9)
	require.NotNil(t, proposal.DetailedVotes)
	assert.Equal(t, 1, proposal.DetailedVotes.VotesSum)

	assert.Equal(t, "ATOM", snapshot.GovernanceParameters.DepositDenom)
	assert.Equal(t, "4000000", snapshot.Pool.BondedTokens)
}

func TestSnapshotReducerWithoutFiat(t *testing.T) {
	n := cosmosHub()
	snapshot := SnapshotReducer(context.Background(), rawSnapshot(), n, New(n), nil, "USD")

	require.Len(t, snapshot.Balances, 1)
	assert.Nil(t, snapshot.Balances[0].FiatValue)
	require.Len(t, snapshot.Rewards, 1)
	assert.Nil(t, snapshot.Rewards[0].FiatValue)
}

func TestSnapshotReducerEmpty(t *testing.T) {
	n := cosmosHub()
	snapshot := SnapshotReducer(context.Background(), ChainSnapshot{}, n, New(n), nil, "USD")

	assert.Empty(t, snapshot.Validators)
	assert.Empty(t, snapshot.Delegations)
	assert.Empty(t, snapshot.Balances)
	assert.Empty(t, snapshot.Rewards)
	assert.Empty(t, snapshot.Proposals)
}
