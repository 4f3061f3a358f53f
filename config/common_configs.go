package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/DefiantLabs/lunie-core/util"
	"github.com/spf13/cobra"
)

// Storage backends of the persisted cache.
const (
	PersistBackendMemory   = "memory"
	PersistBackendRedis    = "redis"
	PersistBackendMongo    = "mongo"
	PersistBackendPostgres = "postgres"
)

// These configs are used across multiple commands, and are not specific to a single command
type log struct {
	Level  string
	Path   string
	Pretty bool
}

type Database struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
	LogLevel string `mapstructure:"log-level"`
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Mongo struct {
	URI        string
	Database   string
	Collection string
}

type Persist struct {
	Backend  string
	Debounce time.Duration
}

type Fiat struct {
	API               string
	Currency          string
	RequestsPerSecond float64       `mapstructure:"requests-per-second"`
	CacheTTL          time.Duration `mapstructure:"cache-ttl"`
}

func SetupLogFlags(logConf *log, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&logConf.Level, "log.level", "info", "log level")
	cmd.PersistentFlags().BoolVar(&logConf.Pretty, "log.pretty", false, "pretty logs")
	cmd.PersistentFlags().StringVar(&logConf.Path, "log.path", "", "log path (default is stdout only)")
}

func SetupDatabaseFlags(databaseConf *Database, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&databaseConf.Host, "database.host", "", "database host")
	cmd.PersistentFlags().StringVar(&databaseConf.Port, "database.port", "5432", "database port")
	cmd.PersistentFlags().StringVar(&databaseConf.Database, "database.database", "", "database name")
	cmd.PersistentFlags().StringVar(&databaseConf.User, "database.user", "", "database user")
	cmd.PersistentFlags().StringVar(&databaseConf.Password, "database.password", "", "database password")
	cmd.PersistentFlags().StringVar(&databaseConf.LogLevel, "database.log-level", "", "database loglevel")
}

func SetupRedisFlags(redisConf *Redis, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&redisConf.Addr, "redis.addr", "", "redis address")
	cmd.PersistentFlags().StringVar(&redisConf.Password, "redis.password", "", "redis password")
	cmd.PersistentFlags().IntVar(&redisConf.DB, "redis.db", 0, "redis database number")
}

func SetupMongoFlags(mongoConf *Mongo, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&mongoConf.URI, "mongo.uri", "", "mongo connection uri")
	cmd.PersistentFlags().StringVar(&mongoConf.Database, "mongo.database", "lunie", "mongo database")
	cmd.PersistentFlags().StringVar(&mongoConf.Collection, "mongo.collection", "store_cache", "mongo collection holding cache records")
}

func SetupPersistFlags(persistConf *Persist, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&persistConf.Backend, "persist.backend", PersistBackendMemory, "cache storage backend (memory, redis, mongo, postgres)")
	cmd.PersistentFlags().DurationVar(&persistConf.Debounce, "persist.debounce", 5*time.Second, "quiet period after the last state change before the cache is written")
}

func SetupFiatFlags(fiatConf *Fiat, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&fiatConf.API, "fiat.api", "", "price API base url, fiat values are skipped when empty")
	cmd.PersistentFlags().StringVar(&fiatConf.Currency, "fiat.currency", "USD", "fiat currency to value coins in")
	cmd.PersistentFlags().Float64Var(&fiatConf.RequestsPerSecond, "fiat.requests-per-second", 1, "price API request rate limit")
	cmd.PersistentFlags().DurationVar(&fiatConf.CacheTTL, "fiat.cache-ttl", time.Minute, "how long fetched prices are reused")
}

func validateDatabaseConf(dbConf Database) error {
	if util.StrNotSet(dbConf.Host) {
		return errors.New("database host must be set")
	}
	if util.StrNotSet(dbConf.Port) {
		return errors.New("database port must be set")
	}
	if util.StrNotSet(dbConf.Database) {
		return errors.New("database name (i.e. database) must be set")
	}
	if util.StrNotSet(dbConf.User) {
		return errors.New("database user must be set")
	}
	if util.StrNotSet(dbConf.Password) {
		return errors.New("database password must be set")
	}

	return nil
}

func validateRedisConf(redisConf Redis) error {
	if util.StrNotSet(redisConf.Addr) {
		return errors.New("redis addr must be set")
	}
	if redisConf.DB < 0 {
		return errors.New("redis db must be a positive number or 0")
	}
	return nil
}

func validateMongoConf(mongoConf Mongo) error {
	if util.StrNotSet(mongoConf.URI) {
		return errors.New("mongo uri must be set")
	}
	if util.StrNotSet(mongoConf.Database) {
		return errors.New("mongo database must be set")
	}
	if util.StrNotSet(mongoConf.Collection) {
		return errors.New("mongo collection must be set")
	}
	return nil
}

// validatePersistConf checks the persist section and the connection settings of the chosen backend.
func validatePersistConf(persistConf Persist, redisConf Redis, mongoConf Mongo, dbConf Database) error {
	if persistConf.Debounce < 0 {
		return errors.New("persist debounce must be a positive duration or 0")
	}

	switch strings.ToLower(persistConf.Backend) {
	case PersistBackendMemory:
		return nil
	case PersistBackendRedis:
		return validateRedisConf(redisConf)
	case PersistBackendMongo:
		return validateMongoConf(mongoConf)
	case PersistBackendPostgres:
		return validateDatabaseConf(dbConf)
	default:
		return fmt.Errorf("invalid persist backend %q, valid backends are %v", persistConf.Backend,
			[]string{PersistBackendMemory, PersistBackendRedis, PersistBackendMongo, PersistBackendPostgres})
	}
}

func validateFiatConf(fiatConf Fiat) error {
	if util.StrNotSet(fiatConf.API) {
		return nil
	}
	if util.StrNotSet(fiatConf.Currency) {
		return errors.New("fiat currency must be set when a fiat api is configured")
	}
	if fiatConf.RequestsPerSecond <= 0 {
		return errors.New("fiat requests-per-second must be greater than 0")
	}
	if fiatConf.CacheTTL < 0 {
		return errors.New("fiat cache-ttl must be a positive duration or 0")
	}
	return nil
}

// Reads the Viper mapstructure tag to get the valid keys for a given config struct
func getValidConfigKeys(section any, baseName string) (keys []string) {
	v := reflect.ValueOf(section)
	typeOfS := v.Type()

	if baseName == "" {
		baseName = strings.ToLower(typeOfS.Name())
	}

	for i := 0; i < v.NumField(); i++ {
		field := typeOfS.Field(i)

		// embedded config structs contribute their own keys
		if !strings.HasPrefix(field.Type.String(), "config.") {
			name := field.Tag.Get("mapstructure")
			if name == "" {
				name = field.Name
			}

			key := fmt.Sprintf("%v.%v", baseName, strings.ReplaceAll(strings.ToLower(name), " ", ""))
			keys = append(keys, key)
		}
	}
	return
}

func addConfigKeys(validKeys map[string]struct{}, section any, baseName string) {
	for _, key := range getValidConfigKeys(section, baseName) {
		validKeys[key] = struct{}{}
	}
}

func addDatabaseConfigKeys(validKeys map[string]struct{}) {
	addConfigKeys(validKeys, Database{}, "")
}

func addLogConfigKeys(validKeys map[string]struct{}) {
	addConfigKeys(validKeys, log{}, "")
}

func addPersistConfigKeys(validKeys map[string]struct{}) {
	addConfigKeys(validKeys, Persist{}, "")
	addConfigKeys(validKeys, Redis{}, "")
	addConfigKeys(validKeys, Mongo{}, "")
	addDatabaseConfigKeys(validKeys)
}

func addFiatConfigKeys(validKeys map[string]struct{}) {
	addConfigKeys(validKeys, Fiat{}, "")
}

// superfluousKeys returns the keys that are not part of validKeys, in input order.
func superfluousKeys(keys []string, validKeys map[string]struct{}) []string {
	ignoredKeys := make([]string, 0)
	for _, key := range keys {
		if _, ok := validKeys[key]; !ok {
			ignoredKeys = append(ignoredKeys, key)
		}
	}
	return ignoredKeys
}
