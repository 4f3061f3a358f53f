package repository

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

type Cache struct {
	rdb *redis.Client
}

// NewCache stores records as plain redis strings. Records do not expire.
func NewCache(rdb *redis.Client) *Cache {
	return &Cache{
		rdb: rdb,
	}
}

func (s *Cache) Get(ctx context.Context, key string) ([]byte, error) {
	res, err := s.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (s *Cache) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *Cache) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
