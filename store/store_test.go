package store

import (
	"testing"

	"github.com/DefiantLabs/lunie-core/cosmos/modules/staking"
	"github.com/DefiantLabs/lunie-core/reducers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testNetwork = "cosmos-hub-mainnet"
	testAddress = "cosmos1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc5lzv7xu"
)

func signedInStore(t *testing.T) *Store {
	t.Helper()
	s := New(NewState())
	require.NoError(t, s.Commit(MutationSetNetwork, testNetwork))
	require.NoError(t, s.Commit(MutationSetUserAddress, testAddress))
	return s
}

func TestCommitUnknownMutation(t *testing.T) {
	s := New(NewState())
	err := s.Commit("setSomethingElse", nil)
	assert.ErrorIs(t, err, ErrUnknownMutation)
}

func TestCommitInvalidPayloadKeepsState(t *testing.T) {
	s := signedInStore(t)
	require.NoError(t, s.Commit(MutationSetDelegates, []reducers.Validator{{OperatorAddress: "a"}}))

	err := s.Commit(MutationSetDelegates, "not validators")
	require.ErrorIs(t, err, ErrInvalidPayload)
	assert.Len(t, s.State().Delegates, 1)
}

func TestCommittedDelegation(t *testing.T) {
	s := signedInStore(t)
	delegation := reducers.Delegation{ID: "valoper1", ValidatorAddress: "valoper1", Amount: decimal.NewFromInt(5)}

	require.NoError(t, s.Commit(MutationSetCommittedDelegation, CommittedDelegation{ValidatorAddress: "valoper1", Delegation: &delegation}))
	assert.Contains(t, s.State().Delegation.CommittedDelegates, "valoper1")

	zero := delegation
	zero.Amount = decimal.Zero
	require.NoError(t, s.Commit(MutationSetCommittedDelegation, CommittedDelegation{ValidatorAddress: "valoper1", Delegation: &zero}))
	assert.Empty(t, s.State().Delegation.CommittedDelegates)
}

func TestUnbondingDelegationsGroupedByValidator(t *testing.T) {
	s := signedInStore(t)
	undelegations := []reducers.Undelegation{
		{ID: "a_1", Validator: reducers.Validator{OperatorAddress: "a"}},
		{ID: "a_2", Validator: reducers.Validator{OperatorAddress: "a"}},
		{ID: "b_1", Validator: reducers.Validator{OperatorAddress: "b"}},
	}
	require.NoError(t, s.Commit(MutationSetUnbondingDelegations, undelegations))

	unbonding := s.State().Delegation.UnbondingDelegations
	assert.Len(t, unbonding["a"], 2)
	assert.Len(t, unbonding["b"], 1)
}

func TestProposalMutations(t *testing.T) {
	s := signedInStore(t)
	require.NoError(t, s.Commit(MutationSetProposal, reducers.Proposal{ID: 7, Title: "Upgrade"}))
	require.NoError(t, s.Commit(MutationSetProposalTally, ProposalTally{ProposalID: "7", Tally: reducers.Tally{Yes: "1.000000"}}))
	require.NoError(t, s.Commit(MutationSetProposalDeposits, ProposalDeposits{ProposalID: "7", Deposits: []reducers.Deposit{{}}}))
	require.NoError(t, s.Commit(MutationSetProposalVotes, ProposalVotes{ProposalID: "7", Votes: []reducers.Vote{{Option: "Yes"}}}))

	state := s.State()
	assert.Equal(t, "Upgrade", state.Proposals["7"].Title)
	assert.Equal(t, "1.000000", state.Proposals["7"].Tally.Yes)
	assert.Len(t, state.Deposits["7"], 1)
	assert.Equal(t, "Yes", state.Votes["7"][0].Option)

	err := s.Commit(MutationSetProposalTally, ProposalTally{ProposalID: "8"})
	assert.ErrorIs(t, err, ErrInvalidPayload)
}

func TestParameterMutations(t *testing.T) {
	s := signedInStore(t)
	require.NoError(t, s.Commit(MutationSetStakingParameters, staking.Params{BondDenom: "uatom"}))
	require.NoError(t, s.Commit(MutationSetPool, staking.Pool{BondedTokens: "100"}))
	require.NoError(t, s.Commit(MutationSetGovParameters, reducers.GovernanceParameters{DepositDenom: "ATOM"}))
	require.NoError(t, s.Commit(MutationSetKeybaseIdentities, []KeybaseIdentity{{KeybaseID: "ABC", UserName: "val"}}))
	require.NoError(t, s.Commit(MutationSetWalletHistory, Transactions{Wallet: nil, Staking: nil}))

	state := s.State()
	assert.Equal(t, "uatom", state.StakingParameters.BondDenom)
	assert.Equal(t, "100", state.Pool.BondedTokens)
	assert.Equal(t, "ATOM", state.GovernanceParameters.DepositDenom)
	assert.Equal(t, "val", state.Keybase["ABC"].UserName)
}

func TestCart(t *testing.T) {
	s := signedInStore(t)
	item := CartItem{ID: "valoper1"}
	require.NoError(t, s.Commit(MutationAddToCart, item))
	require.NoError(t, s.Commit(MutationAddToCart, item))
	assert.Len(t, s.State().Cart, 1)

	require.NoError(t, s.Commit(MutationRemoveFromCart, "valoper1"))
	assert.Empty(t, s.State().Cart)
}

func TestSignOutResetsState(t *testing.T) {
	s := signedInStore(t)
	require.NoError(t, s.Commit(MutationSetDelegates, []reducers.Validator{{OperatorAddress: "a"}}))
	require.NoError(t, s.Commit(MutationSignOut, nil))

	state := s.State()
	assert.Equal(t, "", state.User.Address)
	assert.False(t, state.User.SignedIn)
	assert.Empty(t, state.Delegates)
}

func TestSubscribe(t *testing.T) {
	s := New(NewState())
	var seen []string
	unsubscribe := s.Subscribe(func(mutation Mutation, state *State) {
		seen = append(seen, mutation.Type)
	})

	require.NoError(t, s.Commit(MutationSetNetwork, testNetwork))
	_ = s.Commit("unknown", nil)
	unsubscribe()
	require.NoError(t, s.Commit(MutationSetUserAddress, testAddress))

	assert.Equal(t, []string{MutationSetNetwork}, seen)
}

func TestStateReturnsCopy(t *testing.T) {
	s := signedInStore(t)
	require.NoError(t, s.Commit(MutationSetProposal, reducers.Proposal{ID: 1}))

	state := s.State()
	state.Proposals["2"] = reducers.Proposal{ID: 2}
	assert.Len(t, s.State().Proposals, 1)
}

func TestIsPersisted(t *testing.T) {
	assert.True(t, IsPersisted(MutationSetWalletBalances))
	assert.True(t, IsPersisted(MutationSetKeybaseIdentities))
	assert.False(t, IsPersisted(MutationAddToCart))
	assert.False(t, IsPersisted(MutationSetUserAddress))
}
