package repository

import (
	"context"

	"github.com/puzpuzpuz/xsync/v4"
)

type memoryRecords struct {
	records *xsync.Map[string, []byte]
}

// NewMemoryRecords keeps records in process memory. Used for dry runs and tests.
func NewMemoryRecords() RecordStore {
	return &memoryRecords{records: xsync.NewMap[string, []byte]()}
}

func (m *memoryRecords) Get(_ context.Context, key string) ([]byte, error) {
	value, ok := m.records.Load(key)
	if !ok {
		return nil, ErrRecordNotFound
	}
	return append([]byte(nil), value...), nil
}

func (m *memoryRecords) Set(_ context.Context, key string, value []byte) error {
	m.records.Store(key, append([]byte(nil), value...))
	return nil
}

func (m *memoryRecords) Delete(_ context.Context, key string) error {
	m.records.Delete(key)
	return nil
}
