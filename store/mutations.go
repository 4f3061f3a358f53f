package store

import (
	"errors"
	"fmt"

	"github.com/DefiantLabs/lunie-core/cosmos/modules/staking"
	"github.com/DefiantLabs/lunie-core/reducers"
)

// Mutations changing persisted slices.
const (
	MutationSetWalletBalances       = "setWalletBalances"
	MutationSetWalletHistory        = "setWalletHistory"
	MutationSetCommittedDelegation  = "setCommittedDelegation"
	MutationSetUnbondingDelegations = "setUnbondingDelegations"
	MutationSetDelegates            = "setDelegates"
	MutationSetStakingParameters    = "setStakingParameters"
	MutationSetPool                 = "setPool"
	MutationSetProposal             = "setProposal"
	MutationSetProposalDeposits     = "setProposalDeposits"
	MutationSetProposalVotes        = "setProposalVotes"
	MutationSetProposalTally        = "setProposalTally"
	MutationSetGovParameters        = "setGovParameters"
	MutationSetKeybaseIdentities    = "setKeybaseIdentities"
)

// Session and cart mutations. These never reach the cache.
const (
	MutationSetUserAddress       = "setUserAddress"
	MutationSetNetwork           = "setNetwork"
	MutationSignOut              = "signOut"
	MutationAddToCart            = "addToCart"
	MutationRemoveFromCart       = "removeFromCart"
	MutationSetDelegationsLoaded = "setDelegationsLoaded"
)

var (
	ErrUnknownMutation = errors.New("unknown mutation")
	ErrInvalidPayload  = errors.New("invalid mutation payload")
)

type Mutation struct {
	Type    string
	Payload any
}

// CommittedDelegation sets or, with a nil Delegation, removes the delegation to a validator.
type CommittedDelegation struct {
	ValidatorAddress string
	Delegation       *reducers.Delegation
}

type ProposalDeposits struct {
	ProposalID string
	Deposits   []reducers.Deposit
}

type ProposalVotes struct {
	ProposalID string
	Votes      []reducers.Vote
}

type ProposalTally struct {
	ProposalID string
	Tally      reducers.Tally
}

var persistedMutations = map[string]struct{}{
	MutationSetWalletBalances:       {},
	MutationSetWalletHistory:        {},
	MutationSetCommittedDelegation:  {},
	MutationSetUnbondingDelegations: {},
	MutationSetDelegates:            {},
	MutationSetStakingParameters:    {},
	MutationSetPool:                 {},
	MutationSetProposal:             {},
	MutationSetProposalDeposits:     {},
	MutationSetProposalVotes:        {},
	MutationSetProposalTally:        {},
	MutationSetGovParameters:        {},
	MutationSetKeybaseIdentities:    {},
}

// IsPersisted reports whether a mutation changes a slice that is written to the cache.
func IsPersisted(mutationType string) bool {
	_, ok := persistedMutations[mutationType]
	return ok
}

type mutationFunc func(state *State, payload any) error

func payloadAs[T any](mutationType string, payload any) (T, error) {
	typed, ok := payload.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%s expects %T, got %T: %w", mutationType, zero, payload, ErrInvalidPayload)
	}
	return typed, nil
}

// typed wraps a mutation whose payload has a single expected type.
func typed[T any](mutationType string, apply func(state *State, payload T)) mutationFunc {
	return func(state *State, payload any) error {
		value, err := payloadAs[T](mutationType, payload)
		if err != nil {
			return err
		}
		apply(state, value)
		return nil
	}
}

var mutations = map[string]mutationFunc{
	MutationSetWalletBalances: typed(MutationSetWalletBalances, func(state *State, balances []reducers.BalanceView) {
		state.Wallet.Balances = balances
	}),
	MutationSetWalletHistory: typed(MutationSetWalletHistory, func(state *State, transactions Transactions) {
		state.Transactions = transactions
	}),
	MutationSetCommittedDelegation: typed(MutationSetCommittedDelegation, func(state *State, delegation CommittedDelegation) {
		committed := make(map[string]reducers.Delegation, len(state.Delegation.CommittedDelegates)+1)
		for address, existing := range state.Delegation.CommittedDelegates {
			committed[address] = existing
		}
		if delegation.Delegation == nil || delegation.Delegation.Amount.IsZero() {
			delete(committed, delegation.ValidatorAddress)
		} else {
			committed[delegation.ValidatorAddress] = *delegation.Delegation
		}
		state.Delegation.CommittedDelegates = committed
	}),
	MutationSetUnbondingDelegations: typed(MutationSetUnbondingDelegations, func(state *State, undelegations []reducers.Undelegation) {
		unbonding := make(map[string][]reducers.Undelegation)
		for _, undelegation := range undelegations {
			address := undelegation.Validator.OperatorAddress
			unbonding[address] = append(unbonding[address], undelegation)
		}
		state.Delegation.UnbondingDelegations = unbonding
	}),
	MutationSetDelegates: typed(MutationSetDelegates, func(state *State, delegates []reducers.Validator) {
		state.Delegates = delegates
	}),
	MutationSetStakingParameters: typed(MutationSetStakingParameters, func(state *State, params staking.Params) {
		state.StakingParameters = &params
	}),
	MutationSetPool: typed(MutationSetPool, func(state *State, pool staking.Pool) {
		state.Pool = &pool
	}),
	MutationSetProposal: typed(MutationSetProposal, func(state *State, proposal reducers.Proposal) {
		proposals := copyMap(state.Proposals)
		proposals[fmt.Sprint(proposal.ID)] = proposal
		state.Proposals = proposals
	}),
	MutationSetProposalDeposits: typed(MutationSetProposalDeposits, func(state *State, deposits ProposalDeposits) {
		all := copyMap(state.Deposits)
		all[deposits.ProposalID] = deposits.Deposits
		state.Deposits = all
	}),
	MutationSetProposalVotes: typed(MutationSetProposalVotes, func(state *State, votes ProposalVotes) {
		all := copyMap(state.Votes)
		all[votes.ProposalID] = votes.Votes
		state.Votes = all
	}),
	MutationSetProposalTally: func(state *State, payload any) error {
		tally, err := payloadAs[ProposalTally](MutationSetProposalTally, payload)
		if err != nil {
			return err
		}
		proposal, ok := state.Proposals[tally.ProposalID]
		if !ok {
			return fmt.Errorf("tally for unknown proposal %s: %w", tally.ProposalID, ErrInvalidPayload)
		}
		proposal.Tally = tally.Tally
		proposals := copyMap(state.Proposals)
		proposals[tally.ProposalID] = proposal
		state.Proposals = proposals
		return nil
	},
	MutationSetGovParameters: typed(MutationSetGovParameters, func(state *State, params reducers.GovernanceParameters) {
		state.GovernanceParameters = &params
	}),
	MutationSetKeybaseIdentities: typed(MutationSetKeybaseIdentities, func(state *State, identities []KeybaseIdentity) {
		keybase := copyMap(state.Keybase)
		for _, identity := range identities {
			keybase[identity.KeybaseID] = identity
		}
		state.Keybase = keybase
	}),

	MutationSetUserAddress: typed(MutationSetUserAddress, func(state *State, address string) {
		state.User = User{Address: address, SignedIn: address != ""}
	}),
	MutationSetNetwork: typed(MutationSetNetwork, func(state *State, networkID string) {
		state.Connection.NetworkID = networkID
	}),
	MutationSignOut: func(state *State, _ any) error {
		*state = NewState()
		return nil
	},
	MutationSetDelegationsLoaded: typed(MutationSetDelegationsLoaded, func(state *State, loaded bool) {
		state.Delegation.Loaded = loaded
	}),
	MutationAddToCart: typed(MutationAddToCart, func(state *State, item CartItem) {
		for _, existing := range state.Cart {
			if existing.ID == item.ID {
				return
			}
		}
		state.Cart = append(state.Cart, item)
	}),
	MutationRemoveFromCart: typed(MutationRemoveFromCart, func(state *State, id string) {
		cart := make([]CartItem, 0, len(state.Cart))
		for _, item := range state.Cart {
			if item.ID != id {
				cart = append(cart, item)
			}
		}
		state.Cart = cart
	}),
}

// copyMap returns a writable copy of m, which may be nil for states built by hand.
func copyMap[K comparable, V any](m map[K]V) map[K]V {
	copied := make(map[K]V, len(m)+1)
	for key, value := range m {
		copied[key] = value
	}
	return copied
}
