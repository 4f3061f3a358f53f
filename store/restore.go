package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/DefiantLabs/lunie-core/config"
	"github.com/DefiantLabs/lunie-core/pkg/repository"
)

// LoadPersistedState restores the cache of the signed in session into the store. It reports
// whether a cache record was merged. Corrupt records and records of another version are deleted
// and treated as a cache miss. Every restored delegate the user has a committed delegation with is
// put into the cart, one addToCart commit per delegate.
func LoadPersistedState(ctx context.Context, store *Store, records repository.RecordStore) (bool, error) {
	current := store.State()
	if current.User.Address == "" || current.Connection.NetworkID == "" {
		return false, nil
	}
	key := CacheKey(current.Connection.NetworkID, current.User.Address)

	data, err := records.Get(ctx, key)
	if errors.Is(err, repository.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading cache %s: %w", key, err)
	}

	cached, savedAt, err := DecodeEnvelope(data)
	if err != nil {
		config.Log.Warn(fmt.Sprintf("Discarding cache %s", key), err)
		if deleteErr := records.Delete(ctx, key); deleteErr != nil {
			config.Log.Error(fmt.Sprintf("Could not delete cache %s", key), deleteErr)
		}
		return false, nil
	}

	restored := store.MergePersisted(cached)
	config.Log.ZInfo().Str("key", key).Time("savedAt", savedAt).Msg("Restored cached state")

	for _, validator := range restored.Delegates {
		if _, ok := restored.Delegation.CommittedDelegates[validator.OperatorAddress]; !ok {
			continue
		}
		if err := store.Commit(MutationAddToCart, CartItem{ID: validator.OperatorAddress, Validator: validator}); err != nil {
			return true, err
		}
	}
	return true, nil
}
