package utils

import (
	"context"
	"fmt"

	"github.com/ory/dockertest/v3"
	"go.mongodb.org/mongo-driver/mongo"
	mOptions "go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	mongoImage   = "mongo"
	mongoVersion = "5.0.2"

	MongoDBName = "lunie_test"
)

type TestDockerMongoConfig struct {
	DockerResourceName string
	URI                string
	Database           *mongo.Database
	Clean              func()
}

// SetupTestMongo starts a mongo container. With an empty optionalDockerNetworkID a fresh network is created.
func SetupTestMongo(optionalDockerNetworkID string) (*TestDockerMongoConfig, error) {
	pool, err := newPool()
	if err != nil {
		return nil, err
	}

	createdNetwork, _, network, err := findOrCreateDockerNetworkByID(pool, optionalDockerNetworkID)
	if err != nil {
		return nil, err
	}

	resourceName := fmt.Sprintf("mongo-%s", randResourceNameSuffix(10))
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       resourceName,
		Repository: mongoImage,
		Tag:        mongoVersion,
		Env: []string{
			"MONGO_INITDB_DATABASE=" + MongoDBName,
			"MONGO_INITDB_ROOT_USERNAME=admin",
			"MONGO_INITDB_ROOT_PASSWORD=password",
		},
		Networks: []*dockertest.Network{network},
	})
	if err != nil {
		return nil, err
	}

	uri := fmt.Sprintf("mongodb://admin:password@%s:%s", resource.GetBoundIP("27017/tcp"), resource.GetPort("27017/tcp"))

	var client *mongo.Client
	if err := pool.Retry(func() error {
		ctx := context.Background()
		var err error
		client, err = mongo.Connect(ctx, mOptions.Client().ApplyURI(uri))
		if err != nil {
			return err
		}
		return client.Ping(ctx, readpref.Primary())
	}); err != nil {
		return nil, err
	}

	purge := cleanupFunc(pool, resource, network, createdNetwork)
	return &TestDockerMongoConfig{
		DockerResourceName: resourceName,
		URI:                uri,
		Database:           client.Database(MongoDBName),
		Clean: func() {
			_ = client.Disconnect(context.Background())
			purge()
		},
	}, nil
}
