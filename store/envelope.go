package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// CacheVersion is the version written into every cache envelope. Records of any other version are discarded.
const CacheVersion = 1

var (
	ErrCorruptCache       = errors.New("corrupt cache record")
	ErrUnsupportedVersion = errors.New("unsupported cache version")
)

type envelope struct {
	Version int             `json:"version"`
	SavedAt time.Time       `json:"savedAt"`
	State   json.RawMessage `json:"state"`
}

// CacheKey is the record key of the cache of an address on a network.
func CacheKey(networkID string, address string) string {
	return fmt.Sprintf("store_%s_%s", networkID, address)
}

func EncodeEnvelope(persisted Persisted, savedAt time.Time) ([]byte, error) {
	state, err := json.Marshal(persisted)
	if err != nil {
		return nil, err
	}
	return json.Marshal(envelope{
		Version: CacheVersion,
		SavedAt: savedAt.UTC(),
		State:   state,
	})
}

// DecodeEnvelope parses a cache record. The version is checked before the state is decoded.
func DecodeEnvelope(data []byte) (Persisted, time.Time, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return Persisted{}, time.Time{}, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	if env.Version != CacheVersion {
		return Persisted{}, time.Time{}, fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	if len(env.State) == 0 {
		return Persisted{}, time.Time{}, fmt.Errorf("%w: missing state", ErrCorruptCache)
	}

	var persisted Persisted
	if err := json.Unmarshal(env.State, &persisted); err != nil {
		return Persisted{}, time.Time{}, fmt.Errorf("%w: %v", ErrCorruptCache, err)
	}
	return persisted, env.SavedAt, nil
}
