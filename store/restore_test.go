package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DefiantLabs/lunie-core/cosmos/modules/staking"
	"github.com/DefiantLabs/lunie-core/pkg/repository"
	"github.com/DefiantLabs/lunie-core/reducers"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCache(t *testing.T, records repository.RecordStore, persisted Persisted) {
	t.Helper()
	data, err := EncodeEnvelope(persisted, time.Now())
	require.NoError(t, err)
	require.NoError(t, records.Set(context.Background(), CacheKey(testNetwork, testAddress), data))
}

func TestLoadPersistedStateNotSignedIn(t *testing.T) {
	records := newCountingRecords()
	s := New(NewState())

	restored, err := LoadPersistedState(context.Background(), s, records)
	require.NoError(t, err)
	assert.False(t, restored)
}

func TestLoadPersistedStateMissingRecord(t *testing.T) {
	records := newCountingRecords()
	s := signedInStore(t)

	restored, err := LoadPersistedState(context.Background(), s, records)
	require.NoError(t, err)
	assert.False(t, restored)
	assert.Empty(t, s.State().Cart)
}

func TestLoadPersistedStateDiscardsBadRecords(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage", "xxx"},
		{"other version", `{"version":0,"state":{}}`},
		{"missing state", `{"version":1}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := newCountingRecords()
			key := CacheKey(testNetwork, testAddress)
			require.NoError(t, records.Set(context.Background(), key, []byte(tt.data)))
			s := signedInStore(t)

			restored, err := LoadPersistedState(context.Background(), s, records)
			require.NoError(t, err)
			assert.False(t, restored)
			assert.Equal(t, 1, records.deleteCount(key))
			_, err = records.Get(context.Background(), key)
			assert.ErrorIs(t, err, repository.ErrRecordNotFound)

			state := s.State()
			assert.Empty(t, state.Delegates)
			assert.Empty(t, state.Cart)
			assert.Equal(t, testAddress, state.User.Address)
		})
	}
}

func TestLoadPersistedStateCommitsCartOnce(t *testing.T) {
	records := newCountingRecords()
	validator := reducers.Validator{OperatorAddress: "cosmosvaloper1qypqxpq9qcrsszg2pvxq6rs0zqg3yyc56kct20", Name: "Validator 1"}
	seedCache(t, records, Persisted{
		Delegates: []reducers.Validator{validator},
		Pool:      &staking.Pool{BondedTokens: "100"},
		Delegation: Delegation{
			CommittedDelegates: map[string]reducers.Delegation{
				validator.OperatorAddress: {ID: validator.OperatorAddress, Amount: decimal.NewFromInt(1)},
			},
		},
	})
	s := signedInStore(t)

	var commits []Mutation
	s.Subscribe(func(m Mutation, _ *State) {
		commits = append(commits, m)
	})

	restored, err := LoadPersistedState(context.Background(), s, records)
	require.NoError(t, err)
	assert.True(t, restored)

	require.Len(t, commits, 1)
	assert.Equal(t, MutationAddToCart, commits[0].Type)

	state := s.State()
	require.Len(t, state.Cart, 1)
	assert.Equal(t, validator.OperatorAddress, state.Cart[0].ID)
	assert.Equal(t, "Validator 1", state.Cart[0].Validator.Name)
	assert.Equal(t, "100", state.Pool.BondedTokens)
	assert.Len(t, state.Delegates, 1)
}

func TestLoadPersistedStateCartOnlyHoldsKnownDelegates(t *testing.T) {
	records := newCountingRecords()
	seedCache(t, records, Persisted{
		Delegates: []reducers.Validator{
			{OperatorAddress: "valoper_c", Name: "C"},
			{OperatorAddress: "valoper_a", Name: "A"},
			{OperatorAddress: "valoper_d", Name: "D"},
		},
		Delegation: Delegation{
			CommittedDelegates: map[string]reducers.Delegation{
				"valoper_a": {ID: "valoper_a"},
				"valoper_b": {ID: "valoper_b", Validator: reducers.Validator{OperatorAddress: "valoper_b", Name: "B"}},
				"valoper_c": {ID: "valoper_c"},
			},
		},
	})
	s := signedInStore(t)

	restored, err := LoadPersistedState(context.Background(), s, records)
	require.NoError(t, err)
	assert.True(t, restored)

	cart := s.State().Cart
	require.Len(t, cart, 2)
	assert.Equal(t, "valoper_c", cart[0].ID)
	assert.Equal(t, "C", cart[0].Validator.Name)
	assert.Equal(t, "valoper_a", cart[1].ID)
	assert.Equal(t, "A", cart[1].Validator.Name)
}

func TestLoadPersistedStateKeepsLiveSlices(t *testing.T) {
	records := newCountingRecords()
	seedCache(t, records, Persisted{Pool: &staking.Pool{BondedTokens: "100"}})
	s := signedInStore(t)
	require.NoError(t, s.Commit(MutationSetDelegates, []reducers.Validator{{OperatorAddress: "live"}}))

	_, err := LoadPersistedState(context.Background(), s, records)
	require.NoError(t, err)

	state := s.State()
	require.Len(t, state.Delegates, 1)
	assert.Equal(t, "live", state.Delegates[0].OperatorAddress)
	assert.Equal(t, "100", state.Pool.BondedTokens)
}

type brokenRecords struct {
	repository.RecordStore
}

func (brokenRecords) Get(context.Context, string) ([]byte, error) {
	return nil, errStorageDown
}

func TestLoadPersistedStateReadError(t *testing.T) {
	s := signedInStore(t)
	_, err := LoadPersistedState(context.Background(), s, brokenRecords{repository.NewMemoryRecords()})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errStorageDown))
}

func TestRestoreThenMutateWritesThrough(t *testing.T) {
	records := newCountingRecords()
	clock := newFakeClock()
	seedCache(t, records, Persisted{Wallet: Wallet{Balances: balances("ATOM")}})
	s := signedInStore(t)
	sync := NewSynchronizer(records, WithClock(clock))
	sync.Attach(s)

	_, err := LoadPersistedState(context.Background(), s, records)
	require.NoError(t, err)
	clock.Advance(time.Minute)
	assert.Equal(t, 1, records.setCount(CacheKey(testNetwork, testAddress)), "restoring alone does not write")

	require.NoError(t, s.Commit(MutationSetWalletBalances, balances("ATOM", "MUON")))
	clock.Advance(DefaultDebounce)
	assert.Equal(t, 2, records.setCount(CacheKey(testNetwork, testAddress)))
}
