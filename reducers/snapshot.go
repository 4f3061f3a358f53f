package reducers

import (
	"context"

	"github.com/DefiantLabs/lunie-core/config"
	"github.com/DefiantLabs/lunie-core/cosmos/modules/bank"
	"github.com/DefiantLabs/lunie-core/cosmos/modules/distribution"
	"github.com/DefiantLabs/lunie-core/cosmos/modules/gov"
	"github.com/DefiantLabs/lunie-core/cosmos/modules/staking"
	"github.com/DefiantLabs/lunie-core/network"
)

// ProposalSnapshot is a raw proposal with the records fetched alongside it.
type ProposalSnapshot struct {
	Proposal gov.Proposal    `json:"proposal"`
	Tally    gov.TallyResult `json:"tally"`
	Proposer gov.Proposer    `json:"proposer"`
	Deposits []gov.Deposit   `json:"deposits"`
	Votes    []gov.Vote      `json:"votes"`
}

// ChainSnapshot is the raw chain data of one account at one point in time.
type ChainSnapshot struct {
	Address              string                        `json:"address"`
	SignedBlocksWindow   string                        `json:"signed_blocks_window"`
	Pool                 staking.Pool                  `json:"pool"`
	StakingParams        staking.Params                `json:"staking_params"`
	Validators           []staking.Validator           `json:"validators"`
	Delegations          []staking.Delegation          `json:"delegations"`
	UnbondingDelegations []staking.UnbondingDelegation `json:"unbonding_delegations"`
	Balances             []bank.Coin                   `json:"balances"`
	Rewards              []distribution.Reward         `json:"rewards"`
	Proposals            []ProposalSnapshot            `json:"proposals"`
	DepositParams        gov.DepositParams             `json:"deposit_params"`
	TallyParams          gov.TallyParams               `json:"tally_params"`
}

// Snapshot is a ChainSnapshot in view records.
type Snapshot struct {
	NetworkID            string               `json:"networkId"`
	Address              string               `json:"address"`
	Validators           []Validator          `json:"validators"`
	Delegations          []Delegation         `json:"delegations"`
	Undelegations        []Undelegation       `json:"undelegations"`
	Balances             []BalanceView        `json:"balances"`
	Rewards              []Reward             `json:"rewards"`
	Proposals            []Proposal           `json:"proposals"`
	GovernanceParameters GovernanceParameters `json:"governanceParameters"`
	Pool                 staking.Pool         `json:"pool"`
	StakingParameters    staking.Params       `json:"stakingParameters"`
}

// SnapshotReducer normalizes everything a snapshot carries. Delegations and undelegations to
// validators missing from the snapshot are dropped. fiatValueAPI may be nil.
func SnapshotReducer(
	ctx context.Context,
	raw ChainSnapshot,
	n *network.Network,
	r Reducers,
	fiatValueAPI FiatValueAPI,
	fiatCurrency string,
) Snapshot {
	snapshot := Snapshot{
		NetworkID:         n.ID,
		Address:           raw.Address,
		Validators:        make([]Validator, 0, len(raw.Validators)),
		Delegations:       make([]Delegation, 0, len(raw.Delegations)),
		Undelegations:     make([]Undelegation, 0, len(raw.UnbondingDelegations)),
		Proposals:         make([]Proposal, 0, len(raw.Proposals)),
		Pool:              raw.Pool,
		StakingParameters: raw.StakingParams,
	}

	for _, validator := range raw.Validators {
		snapshot.Validators = append(snapshot.Validators, ValidatorReducer(n.ID, raw.SignedBlocksWindow, validator))
	}
	validators := ValidatorsByOperatorAddress(snapshot.Validators)

	for _, delegation := range raw.Delegations {
		validator, ok := validators[delegation.ValidatorAddress]
		if !ok {
			config.Log.Debugf("Dropping delegation to unknown validator %s", delegation.ValidatorAddress)
			continue
		}
		active := validator.Status == ValidatorStatusActive
		snapshot.Delegations = append(snapshot.Delegations, DelegationReducer(delegation, validator, active))
	}
	for _, undelegation := range raw.UnbondingDelegations {
		validator, ok := validators[undelegation.ValidatorAddress]
		if !ok {
			config.Log.Debugf("Dropping undelegation from unknown validator %s", undelegation.ValidatorAddress)
			continue
		}
		snapshot.Undelegations = append(snapshot.Undelegations, UndelegationReducer(undelegation, validator))
	}

	coins := make([]Coin, 0, len(raw.Balances))
	for i := range raw.Balances {
		lookup := n.GetCoinLookup(raw.Balances[i].Denom, network.ChainDenomKey)
		coins = append(coins, r.CoinReducer(&raw.Balances[i], lookup))
	}
	snapshot.Balances = BalancesV2Reducer(ctx, coins, n.StakingDenom, snapshot.Delegations, snapshot.Undelegations, fiatValueAPI, fiatCurrency)

	snapshot.Rewards = RewardReducer(ctx, raw.Rewards, validators, fiatCurrency, FiatValueFuncFor(fiatValueAPI), r, n)

	for _, proposal := range raw.Proposals {
		detailed := DetailedVotesReducer(proposal.Deposits, proposal.Votes, r)
		snapshot.Proposals = append(snapshot.Proposals, ProposalReducer(
			n.ID,
			proposal.Proposal,
			proposal.Tally,
			proposal.Proposer,
			raw.Pool.BondedTokens,
			detailed,
			r,
			validators,
		))
	}
	snapshot.GovernanceParameters = GovernanceParameterReducer(raw.DepositParams, raw.TallyParams, r)

	return snapshot
}
