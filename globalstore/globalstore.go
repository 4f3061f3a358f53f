// Package globalstore aggregates validator data across networks for validators running on several of them.
package globalstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/DefiantLabs/lunie-core/config"
	"github.com/DefiantLabs/lunie-core/db/models"
	"github.com/DefiantLabs/lunie-core/reducers"
	"github.com/DefiantLabs/lunie-core/util"
	"github.com/shopspring/decimal"
)

// Registry lists the networks to wait for and the premium validators to aggregate.
type Registry interface {
	GetNetworks(ctx context.Context) ([]models.Network, error)
	GetPremiumValidators(ctx context.Context) ([]models.PremiumValidator, error)
}

// NetworkStore holds the reduced validators of one network by operator address.
type NetworkStore struct {
	NetworkID  string
	Validators map[string]reducers.Validator
}

type GlobalValidator struct {
	Name              string          `json:"name"`
	Picture           string          `json:"picture"`
	Website           string          `json:"website"`
	Details           string          `json:"details"`
	OperatorAddresses []string        `json:"operatorAddresses"`
	UptimePercentage  decimal.Decimal `json:"uptimePercentage"`
}

// Store becomes ready once the expected number of distinct networks has been upserted.
type Store struct {
	registry Registry
	expected int

	mu     sync.RWMutex
	stores []NetworkStore
	// validatorsLookup maps a premium validator's name to its operator addresses on all networks
	validatorsLookup map[string][]string
	premium          []models.PremiumValidator

	ready     chan struct{}
	readyOnce sync.Once
	// loadMu guards loaded; a failed load is retried by the next caller
	loadMu    sync.Mutex
	loaded    bool
}

func New(registry Registry, expected int) *Store {
	s := &Store{
		registry:         registry,
		expected:         expected,
		validatorsLookup: map[string][]string{},
		ready:            make(chan struct{}),
	}
	if expected <= 0 {
		s.markReady()
	}
	return s
}

func (s *Store) markReady() {
	s.readyOnce.Do(func() {
		close(s.ready)
		config.Log.Info("Global store is ready")
	})
}

// UpsertStore replaces the store of the same network or appends it.
func (s *Store) UpsertStore(networkStore NetworkStore) {
	s.mu.Lock()
	replaced := false
	for i := range s.stores {
		if s.stores[i].NetworkID == networkStore.NetworkID {
			s.stores[i] = networkStore
			replaced = true
			break
		}
	}
	if !replaced {
		s.stores = append(s.stores, networkStore)
	}
	registered := len(s.stores)
	s.mu.Unlock()

	config.Log.Debugf("Upserted network store %s (%d/%d)", networkStore.NetworkID, registered, s.expected)
	if registered >= s.expected {
		s.markReady()
	}
}

// Ready blocks until every expected network has been upserted, then loads the premium validators
// unless an earlier call already loaded them.
func (s *Store) Ready(ctx context.Context) error {
	select {
	case <-s.ready:
	case <-ctx.Done():
		s.mu.RLock()
		registered := len(s.stores)
		s.mu.RUnlock()
		return fmt.Errorf("waiting for %d networks, %d registered: %w", s.expected, registered, ctx.Err())
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()
	if s.loaded {
		return nil
	}
	if err := s.loadPremiumValidators(ctx); err != nil {
		return err
	}
	s.loaded = true
	return nil
}

func (s *Store) loadPremiumValidators(ctx context.Context) error {
	premium, err := s.registry.GetPremiumValidators(ctx)
	if err != nil {
		return fmt.Errorf("loading premium validators: %w", err)
	}

	lookup := make(map[string][]string, len(premium))
	for _, validator := range premium {
		addresses := make([]string, 0, len(validator.Addresses))
		for _, address := range validator.Addresses {
			addresses = append(addresses, address.OperatorAddress)
		}
		lookup[validator.Name] = util.RemoveDuplicatesFromStringSlice(addresses)
	}

	s.mu.Lock()
	s.premium = premium
	s.validatorsLookup = lookup
	s.mu.Unlock()
	return nil
}

// CalculateAverageUptimePercentage averages the uptime of every network that knows one of the
// validator's operator addresses. Unknown validators have an uptime of 0.
func (s *Store) CalculateAverageUptimePercentage(name string) decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()

	aggregated := decimal.Zero
	validatorNetworks := 0
	for _, operatorAddress := range s.validatorsLookup[name] {
		for _, store := range s.stores {
			if validator, ok := store.Validators[operatorAddress]; ok {
				aggregated = aggregated.Add(validator.UptimePercentage)
				validatorNetworks++
			}
		}
	}
	if validatorNetworks == 0 {
		return decimal.Zero
	}
	return aggregated.Div(decimal.NewFromInt(int64(validatorNetworks)))
}

// GlobalValidators waits for the store to be ready and returns the premium validators with their averaged uptime.
func (s *Store) GlobalValidators(ctx context.Context) ([]GlobalValidator, error) {
	if err := s.Ready(ctx); err != nil {
		return nil, err
	}

	s.mu.RLock()
	premium := s.premium
	lookup := s.validatorsLookup
	s.mu.RUnlock()

	validators := make([]GlobalValidator, 0, len(premium))
	for _, validator := range premium {
		validators = append(validators, GlobalValidator{
			Name:              validator.Name,
			Picture:           validator.Picture,
			Website:           validator.Website,
			Details:           validator.Details,
			OperatorAddresses: lookup[validator.Name],
			UptimePercentage:  s.CalculateAverageUptimePercentage(validator.Name),
		})
	}
	return validators, nil
}

// ExpectedNetworks counts the networks of the registry, the usual expected value for New.
func ExpectedNetworks(ctx context.Context, registry Registry) (int, error) {
	networks, err := registry.GetNetworks(ctx)
	if err != nil {
		return 0, fmt.Errorf("loading networks: %w", err)
	}
	return len(networks), nil
}
