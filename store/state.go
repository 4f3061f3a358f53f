package store

import (
	"encoding/json"
	"maps"
	"slices"

	"github.com/DefiantLabs/lunie-core/cosmos/modules/staking"
	"github.com/DefiantLabs/lunie-core/reducers"
	"github.com/shopspring/decimal"
)

type User struct {
	Address  string `json:"address"`
	SignedIn bool   `json:"signedIn"`
}

type Connection struct {
	NetworkID string `json:"networkId"`
}

type Transactions struct {
	Wallet  []json.RawMessage `json:"wallet"`
	Staking []json.RawMessage `json:"staking"`
}

type Wallet struct {
	Balances []reducers.BalanceView `json:"balances"`
}

type Delegation struct {
	Loaded bool `json:"loaded"`
	// CommittedDelegates are the delegations of the user keyed by validator operator address.
	CommittedDelegates map[string]reducers.Delegation `json:"committedDelegates"`
	// UnbondingDelegations are keyed by validator operator address.
	UnbondingDelegations map[string][]reducers.Undelegation `json:"unbondingDelegations"`
}

type KeybaseIdentity struct {
	KeybaseID  string `json:"keybaseId"`
	UserName   string `json:"userName"`
	ProfileURL string `json:"profileUrl"`
	Avatar     string `json:"avatarUrl"`
}

// CartItem is a validator the user is about to delegate to.
type CartItem struct {
	ID        string             `json:"id"`
	Validator reducers.Validator `json:"validator"`
	Stake     decimal.Decimal    `json:"stake"`
}

// State is the client state. Persisted holds the slices that survive a restart.
type State struct {
	User       User       `json:"user"`
	Connection Connection `json:"connection"`
	Persisted
	Cart []CartItem `json:"cart"`
}

// Persisted is the part of the state that is written to the cache.
type Persisted struct {
	Transactions         Transactions                   `json:"transactions"`
	Wallet               Wallet                         `json:"wallet"`
	Delegation           Delegation                     `json:"delegation"`
	Delegates            []reducers.Validator           `json:"delegates"`
	Keybase              map[string]KeybaseIdentity     `json:"keybase"`
	StakingParameters    *staking.Params                `json:"stakingParameters"`
	Pool                 *staking.Pool                  `json:"pool"`
	Proposals            map[string]reducers.Proposal   `json:"proposals"`
	Deposits             map[string][]reducers.Deposit  `json:"deposits"`
	Votes                map[string][]reducers.Vote     `json:"votes"`
	GovernanceParameters *reducers.GovernanceParameters `json:"governanceParameters"`
}

// NewState returns the state of a fresh session.
func NewState() State {
	return State{
		Persisted: Persisted{
			Delegation: Delegation{
				CommittedDelegates:   map[string]reducers.Delegation{},
				UnbondingDelegations: map[string][]reducers.Undelegation{},
			},
			Keybase:   map[string]KeybaseIdentity{},
			Proposals: map[string]reducers.Proposal{},
			Deposits:  map[string][]reducers.Deposit{},
			Votes:     map[string][]reducers.Vote{},
		},
	}
}

func clonePtr[T any](value *T) *T {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneSliceMap[K comparable, V any](m map[K][]V) map[K][]V {
	if m == nil {
		return nil
	}
	cloned := make(map[K][]V, len(m))
	for key, values := range m {
		cloned[key] = slices.Clone(values)
	}
	return cloned
}

// Clone copies the persisted slices so the copy can be read while the store keeps mutating.
// Records themselves are treated as immutable and shared.
func (p Persisted) Clone() Persisted {
	return Persisted{
		Transactions: Transactions{
			Wallet:  slices.Clone(p.Transactions.Wallet),
			Staking: slices.Clone(p.Transactions.Staking),
		},
		Wallet: Wallet{Balances: slices.Clone(p.Wallet.Balances)},
		Delegation: Delegation{
			Loaded:               p.Delegation.Loaded,
			CommittedDelegates:   maps.Clone(p.Delegation.CommittedDelegates),
			UnbondingDelegations: cloneSliceMap(p.Delegation.UnbondingDelegations),
		},
		Delegates:            slices.Clone(p.Delegates),
		Keybase:              maps.Clone(p.Keybase),
		StakingParameters:    clonePtr(p.StakingParameters),
		Pool:                 clonePtr(p.Pool),
		Proposals:            maps.Clone(p.Proposals),
		Deposits:             cloneSliceMap(p.Deposits),
		Votes:                cloneSliceMap(p.Votes),
		GovernanceParameters: clonePtr(p.GovernanceParameters),
	}
}

func (s State) Clone() State {
	cloned := s
	cloned.Persisted = s.Persisted.Clone()
	cloned.Cart = slices.Clone(s.Cart)
	return cloned
}

// Merge overlays cached slices onto the state. Slices missing from the cache keep their current value.
func (s *State) Merge(cached Persisted) {
	if cached.Transactions.Wallet != nil {
		s.Transactions.Wallet = cached.Transactions.Wallet
	}
	if cached.Transactions.Staking != nil {
		s.Transactions.Staking = cached.Transactions.Staking
	}
	if cached.Wallet.Balances != nil {
		s.Wallet.Balances = cached.Wallet.Balances
	}
	if cached.Delegation.CommittedDelegates != nil {
		s.Delegation.CommittedDelegates = cached.Delegation.CommittedDelegates
	}
	if cached.Delegation.UnbondingDelegations != nil {
		s.Delegation.UnbondingDelegations = cached.Delegation.UnbondingDelegations
	}
	s.Delegation.Loaded = s.Delegation.Loaded || cached.Delegation.Loaded
	if cached.Delegates != nil {
		s.Delegates = cached.Delegates
	}
	if cached.Keybase != nil {
		s.Keybase = cached.Keybase
	}
	if cached.StakingParameters != nil {
		s.StakingParameters = cached.StakingParameters
	}
	if cached.Pool != nil {
		s.Pool = cached.Pool
	}
	if cached.Proposals != nil {
		s.Proposals = cached.Proposals
	}
	if cached.Deposits != nil {
		s.Deposits = cached.Deposits
	}
	if cached.Votes != nil {
		s.Votes = cached.Votes
	}
	if cached.GovernanceParameters != nil {
		s.GovernanceParameters = cached.GovernanceParameters
	}
}

