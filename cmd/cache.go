package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/DefiantLabs/lunie-core/config"
	"github.com/DefiantLabs/lunie-core/db"
	"github.com/DefiantLabs/lunie-core/pkg/repository"
	"github.com/DefiantLabs/lunie-core/reducers"
	"github.com/DefiantLabs/lunie-core/store"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var cacheConf = &config.CacheConfig{}

func init() {
	config.SetupLogFlags(&cacheConf.Log, cacheCmd)
	config.SetupNetworkFlags(&cacheConf.Network, cacheCmd)
	config.SetupFiatFlags(&cacheConf.Fiat, cacheCmd)
	config.SetupPersistFlags(&cacheConf.Persist, cacheCmd)
	config.SetupRedisFlags(&cacheConf.Redis, cacheCmd)
	config.SetupMongoFlags(&cacheConf.Mongo, cacheCmd)
	config.SetupDatabaseFlags(&cacheConf.Database, cacheCmd)
	config.SetupCacheSpecificFlags(cacheConf, cacheCmd)

	cacheCmd.AddCommand(cacheSaveCmd, cacheShowCmd, cacheRestoreCmd, cacheDeleteCmd)
	rootCmd.AddCommand(cacheCmd)
}

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manages the persisted state cache of an account.",
	Long: `Reads and writes the cache record of one account on one network. The record lives under
	store_<network id>_<address> in the configured backend (memory, redis, mongo or postgres).`,
	PersistentPreRunE: setupCache,
}

var cacheSaveCmd = &cobra.Command{
	Use:   "save",
	Short: "Normalizes a raw chain snapshot and writes it through the state synchronizer.",
	RunE:  cacheSave,
}

var cacheShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the cache record of the account.",
	RunE:  cacheShow,
}

var cacheRestoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Restores the cache record into a fresh session and prints the resulting state.",
	RunE:  cacheRestore,
}

var cacheDeleteCmd = &cobra.Command{
	Use:   "delete",
	Short: "Deletes the cache record of the account.",
	RunE:  cacheDelete,
}

func setupCache(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)
	if err := bindCoinLookups(&cacheConf.Network, viperConf); err != nil {
		return err
	}

	err := cacheConf.Validate()
	if err != nil {
		return err
	}

	ignoredKeys := config.CheckSuperfluousCacheKeys(viperConf.AllKeys())

	if len(ignoredKeys) > 0 {
		config.Log.Warnf("Warning, the following invalid keys will be ignored: %v", ignoredKeys)
	}

	setupLogger(cacheConf.Log.Level, cacheConf.Log.Path, cacheConf.Log.Pretty)
	return nil
}

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
}

// openRecords connects to the configured cache backend. The returned function closes the connection.
func openRecords(ctx context.Context, conf *config.CacheConfig) (repository.RecordStore, func(), error) {
	switch strings.ToLower(conf.Persist.Backend) {
	case config.PersistBackendRedis:
		rdb := redis.NewClient(&redis.Options{
			Addr:     conf.Redis.Addr,
			Password: conf.Redis.Password,
			DB:       conf.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			return nil, nil, fmt.Errorf("connecting to redis: %w", err)
		}
		return repository.NewCache(rdb), func() { _ = rdb.Close() }, nil

	case config.PersistBackendMongo:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(conf.Mongo.URI))
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		closeFn := func() { _ = client.Disconnect(context.Background()) }
		database := client.Database(conf.Mongo.Database)
		if err := repository.MigrateMongo(ctx, database, conf.Mongo.Collection); err != nil {
			closeFn()
			return nil, nil, fmt.Errorf("migrating mongo: %w", err)
		}
		return repository.NewMongoRecords(database, conf.Mongo.Collection), closeFn, nil

	case config.PersistBackendPostgres:
		dbConf := conf.Database
		pool, err := pgxpool.New(ctx, db.PostgresDSN(dbConf.Host, dbConf.Port, dbConf.Database, dbConf.User, dbConf.Password))
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		if err := repository.MigratePostgres(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("migrating postgres: %w", err)
		}
		return repository.NewPostgresRecords(pool), pool.Close, nil

	default:
		config.Log.Warn("Using the memory backend, records are dropped when the command exits")
		return repository.NewMemoryRecords(), func() {}, nil
	}
}

// signedInStore starts the session of the configured account.
func signedInStore() (*store.Store, error) {
	s := store.New(store.NewState())
	if err := s.Commit(store.MutationSetNetwork, cacheConf.Network.ID); err != nil {
		return nil, err
	}
	if err := s.Commit(store.MutationSetUserAddress, cacheConf.Base.Address); err != nil {
		return nil, err
	}
	return s, nil
}

func cacheKey() string {
	return store.CacheKey(cacheConf.Network.ID, cacheConf.Base.Address)
}

func cacheSave(cmd *cobra.Command, args []string) error {
	if cacheConf.Base.Input == "" {
		return errors.New("base.input must be set")
	}
	ctx, cancel := commandContext(cmd)
	defer cancel()

	n, priceIDs, err := loadNetwork(ctx, cacheConf.Network)
	if err != nil {
		return err
	}
	raw, err := readChainSnapshot(cacheConf.Base.Input)
	if err != nil {
		return err
	}
	if raw.Address != "" && raw.Address != cacheConf.Base.Address {
		return fmt.Errorf("snapshot of %s cannot be saved for %s", raw.Address, cacheConf.Base.Address)
	}

	records, closeRecords, err := openRecords(ctx, cacheConf)
	if err != nil {
		return err
	}
	defer closeRecords()

	s, err := signedInStore()
	if err != nil {
		return err
	}
	if _, err := store.LoadPersistedState(ctx, s, records); err != nil {
		return err
	}

	synchronizer := store.NewSynchronizer(records, store.WithDebounce(cacheConf.Persist.Debounce))
	detach := synchronizer.Attach(s)
	defer detach()

	snapshot := reducers.SnapshotReducer(ctx, raw, n, reducers.New(n), newFiatAPI(cacheConf.Fiat, priceIDs), cacheConf.Fiat.Currency)
	snapshot.Address = cacheConf.Base.Address
	if err := store.ApplySnapshot(s, snapshot); err != nil {
		return err
	}

	// the command exits right away, so pending writes are flushed instead of waiting out the debounce
	flushCtx, flushCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer flushCancel()
	if err := synchronizer.Flush(flushCtx); err != nil {
		return err
	}
	config.Log.Infof("Saved cache %s", cacheKey())
	return nil
}

type cacheRecordView struct {
	Key     string          `json:"key"`
	SavedAt time.Time       `json:"savedAt"`
	State   store.Persisted `json:"state"`
}

func cacheShow(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	records, closeRecords, err := openRecords(ctx, cacheConf)
	if err != nil {
		return err
	}
	defer closeRecords()

	key := cacheKey()
	data, err := records.Get(ctx, key)
	if errors.Is(err, repository.ErrRecordNotFound) {
		config.Log.Infof("No cache stored under %s", key)
		return nil
	}
	if err != nil {
		return err
	}

	persisted, savedAt, err := store.DecodeEnvelope(data)
	if err != nil {
		return fmt.Errorf("cache %s: %w", key, err)
	}
	return writeJSON(os.Stdout, cacheRecordView{Key: key, SavedAt: savedAt, State: persisted}, true)
}

func cacheRestore(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	records, closeRecords, err := openRecords(ctx, cacheConf)
	if err != nil {
		return err
	}
	defer closeRecords()

	s, err := signedInStore()
	if err != nil {
		return err
	}
	restored, err := store.LoadPersistedState(ctx, s, records)
	if err != nil {
		return err
	}
	if !restored {
		config.Log.Infof("Nothing restored from %s", cacheKey())
	}
	return writeJSON(os.Stdout, s.State(), true)
}

func cacheDelete(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	records, closeRecords, err := openRecords(ctx, cacheConf)
	if err != nil {
		return err
	}
	defer closeRecords()

	if err := records.Delete(ctx, cacheKey()); err != nil {
		return err
	}
	config.Log.Infof("Deleted cache %s", cacheKey())
	return nil
}
