package config

import (
	"errors"

	"github.com/DefiantLabs/lunie-core/util"
	"github.com/spf13/cobra"
)

// CacheConfig is shared by the cache subcommands. Only save reads an input snapshot.
type CacheConfig struct {
	Log      log
	Network  Network
	Fiat     Fiat
	Persist  Persist
	Redis    Redis
	Mongo    Mongo
	Database Database
	Base     cacheBase
}

type cacheBase struct {
	Address string `mapstructure:"address"`
	Input   string `mapstructure:"input"`
}

func SetupCacheSpecificFlags(conf *CacheConfig, cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&conf.Base.Address, "base.address", "", "address of the signed in account")
	cmd.PersistentFlags().StringVar(&conf.Base.Input, "base.input", "", "raw chain snapshot to load into the store (save only)")
}

func (conf *CacheConfig) Validate() error {
	if util.StrNotSet(conf.Base.Address) {
		return errors.New("base.address must be set")
	}
	if err := validateNetworkConf(conf.Network); err != nil {
		return err
	}
	if err := validateFiatConf(conf.Fiat); err != nil {
		return err
	}
	return validatePersistConf(conf.Persist, conf.Redis, conf.Mongo, conf.Database)
}

func CheckSuperfluousCacheKeys(keys []string) []string {
	validKeys := make(map[string]struct{})

	addLogConfigKeys(validKeys)
	addConfigKeys(validKeys, Network{}, "")
	addFiatConfigKeys(validKeys)
	addPersistConfigKeys(validKeys)
	addConfigKeys(validKeys, cacheBase{}, "base")

	return superfluousKeys(keys, validKeys)
}
