package utils

import (
	"context"
	"fmt"

	"github.com/ory/dockertest/v3"
	"github.com/redis/go-redis/v9"
)

type TestDockerRedisConfig struct {
	DockerResourceName string
	Addr               string
	Client             *redis.Client
	Clean              func()
}

// SetupTestRedis starts a redis container. With an empty optionalDockerNetworkID a fresh network is created.
func SetupTestRedis(optionalDockerNetworkID string) (*TestDockerRedisConfig, error) {
	pool, err := newPool()
	if err != nil {
		return nil, err
	}

	createdNetwork, _, network, err := findOrCreateDockerNetworkByID(pool, optionalDockerNetworkID)
	if err != nil {
		return nil, err
	}

	resourceName := fmt.Sprintf("redis-%s", randResourceNameSuffix(10))
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       resourceName,
		Repository: "redis",
		Tag:        "7-alpine",
		Networks:   []*dockertest.Network{network},
	})
	if err != nil {
		return nil, err
	}

	addr := fmt.Sprintf("%s:%s", resource.GetBoundIP("6379/tcp"), resource.GetPort("6379/tcp"))
	client := redis.NewClient(&redis.Options{Addr: addr})

	if err := pool.Retry(func() error {
		return client.Ping(context.Background()).Err()
	}); err != nil {
		return nil, err
	}

	purge := cleanupFunc(pool, resource, network, createdNetwork)
	return &TestDockerRedisConfig{
		DockerResourceName: resourceName,
		Addr:               addr,
		Client:             client,
		Clean: func() {
			_ = client.Close()
			purge()
		},
	}, nil
}
