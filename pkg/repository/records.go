// Package repository stores the persisted state cache records.
package repository

import (
	"context"
	"errors"
)

// ErrRecordNotFound is returned by Get when no record exists for the key.
var ErrRecordNotFound = errors.New("record not found")

// RecordStore is a key value store for serialized cache records.
type RecordStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
