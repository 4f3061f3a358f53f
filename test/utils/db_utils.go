package utils

import (
	"fmt"

	dbTypes "github.com/DefiantLabs/lunie-core/db"
	"github.com/ory/dockertest/v3"
	"gorm.io/gorm"
)

// SetupTestDatabase starts a postgres container. With an empty optionalDockerNetworkID a fresh network is created.
func SetupTestDatabase(optionalDockerNetworkID string) (*TestDockerDBConfig, error) {
	pool, err := newPool()
	if err != nil {
		return nil, err
	}

	databaseName := "test"
	user := "test"
	password := "test"

	connectUserEnv := fmt.Sprintf("POSTGRES_USER=%s", user)
	connectPasswordEnv := fmt.Sprintf("POSTGRES_PASSWORD=%s", password)
	connectDbEnv := fmt.Sprintf("POSTGRES_DB=%s", databaseName)

	createdNetwork, networkName, network, err := findOrCreateDockerNetworkByID(pool, optionalDockerNetworkID)
	if err != nil {
		return nil, err
	}

	resourceName := fmt.Sprintf("postgres-%s", randResourceNameSuffix(10))

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Name:       resourceName,
		Repository: "postgres",
		Tag:        "15-alpine",
		Env:        []string{connectUserEnv, connectPasswordEnv, connectDbEnv},
		Networks:   []*dockertest.Network{network},
	})
	if err != nil {
		return nil, err
	}

	var db *gorm.DB
	host := resource.GetBoundIP("5432/tcp")
	port := resource.GetPort("5432/tcp")

	if err := pool.Retry(func() error {
		var err error
		db, err = dbTypes.PostgresDbConnect(host, port, databaseName, user, password, "silent")
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Ping()
	}); err != nil {
		return nil, err
	}

	conf := TestDockerDBConfig{
		DockerResourceName: resourceName,
		DockerNetwork:      networkName,
		GormDB:             db,
		Host:               host,
		Port:               port,
		Database:           databaseName,
		User:               user,
		Password:           password,
		LogLevel:           "silent",
		Clean:              cleanupFunc(pool, resource, network, createdNetwork),
	}

	return &conf, nil
}

type TestDockerDBConfig struct {
	DockerResourceName string
	DockerNetwork      string
	GormDB             *gorm.DB
	Host               string
	Port               string
	Database           string
	User               string
	Password           string
	LogLevel           string
	Clean              func()
}

// DSN is the connection string of the database for pgx.
func (c *TestDockerDBConfig) DSN() string {
	return dbTypes.PostgresDSN(c.Host, c.Port, c.Database, c.User, c.Password)
}
