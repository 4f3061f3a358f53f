package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

type GlobalConfig struct {
	Log      log
	Database Database
	Base     globalBase
}

type globalBase struct {
	// Snapshots are networkID=path pairs of raw chain snapshots holding each network's validators.
	Snapshots    []string      `mapstructure:"snapshots"`
	ReadyTimeout time.Duration `mapstructure:"ready-timeout"`
	Seed         bool          `mapstructure:"seed"`
}

func SetupGlobalSpecificFlags(conf *GlobalConfig, cmd *cobra.Command) {
	cmd.Flags().StringSliceVar(&conf.Base.Snapshots, "base.snapshots", nil, "networkID=path pairs of validator snapshots. (Both '--base.snapshots a=1.json,b=2.json' and repeated flags are valid)")
	cmd.Flags().DurationVar(&conf.Base.ReadyTimeout, "base.ready-timeout", 30*time.Second, "how long to wait for every registered network to report its validators")
	cmd.Flags().BoolVar(&conf.Base.Seed, "base.seed", false, "register the networks of the given snapshots before aggregating")
}

func (conf *GlobalConfig) Validate() error {
	if err := validateDatabaseConf(conf.Database); err != nil {
		return err
	}
	if len(conf.Base.Snapshots) == 0 {
		return errors.New("base.snapshots must list at least one snapshot")
	}
	for _, snapshot := range conf.Base.Snapshots {
		if _, _, err := SplitSnapshotArg(snapshot); err != nil {
			return err
		}
	}
	if conf.Base.ReadyTimeout <= 0 {
		return errors.New("base.ready-timeout must be greater than 0")
	}
	return nil
}

// SplitSnapshotArg splits a networkID=path snapshot argument.
func SplitSnapshotArg(arg string) (string, string, error) {
	networkID, path, found := strings.Cut(arg, "=")
	if !found || networkID == "" || path == "" {
		return "", "", fmt.Errorf("invalid snapshot %q, expected networkID=path", arg)
	}
	return networkID, path, nil
}

func CheckSuperfluousGlobalKeys(keys []string) []string {
	validKeys := make(map[string]struct{})

	addDatabaseConfigKeys(validKeys)
	addLogConfigKeys(validKeys)
	addConfigKeys(validKeys, globalBase{}, "base")

	return superfluousKeys(keys, validKeys)
}
