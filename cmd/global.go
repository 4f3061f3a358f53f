package cmd

import (
	"context"
	"os"

	"github.com/DefiantLabs/lunie-core/config"
	dbTypes "github.com/DefiantLabs/lunie-core/db"
	"github.com/DefiantLabs/lunie-core/db/models"
	"github.com/DefiantLabs/lunie-core/globalstore"
	"github.com/DefiantLabs/lunie-core/reducers"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var globalConf = &config.GlobalConfig{}

func init() {
	config.SetupLogFlags(&globalConf.Log, globalCmd)
	config.SetupDatabaseFlags(&globalConf.Database, globalCmd)
	config.SetupGlobalSpecificFlags(globalConf, globalCmd)

	rootCmd.AddCommand(globalCmd)
}

var globalCmd = &cobra.Command{
	Use:   "global",
	Short: "Aggregates premium validators across networks.",
	Long: `Loads the validators of every registered network from the given snapshots and prints the
	premium validators of the registry with their uptime averaged over all networks they validate on.
	The command waits until every registered network has reported or the ready timeout passes.`,
	PreRunE: setupGlobal,
	RunE:    global,
}

func setupGlobal(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)

	err := globalConf.Validate()
	if err != nil {
		return err
	}

	ignoredKeys := config.CheckSuperfluousGlobalKeys(viperConf.AllKeys())

	if len(ignoredKeys) > 0 {
		config.Log.Warnf("Warning, the following invalid keys will be ignored: %v", ignoredKeys)
	}

	setupLogger(globalConf.Log.Level, globalConf.Log.Path, globalConf.Log.Pretty)
	return nil
}

func global(cmd *cobra.Command, args []string) error {
	ctx, cancel := commandContext(cmd)
	defer cancel()

	database, err := connectToDBAndMigrate(globalConf.Database)
	if err != nil {
		return err
	}
	registry := dbTypes.NewRegistry(database)

	snapshots := make(map[string]string, len(globalConf.Base.Snapshots))
	for _, arg := range globalConf.Base.Snapshots {
		networkID, path, _ := config.SplitSnapshotArg(arg)
		snapshots[networkID] = path
	}

	if globalConf.Base.Seed {
		for networkID := range snapshots {
			if _, err := registry.UpsertNetwork(ctx, models.Network{NetworkID: networkID, Enabled: true}); err != nil {
				return err
			}
		}
	}

	expected, err := globalstore.ExpectedNetworks(ctx, registry)
	if err != nil {
		return err
	}
	aggregator := globalstore.New(registry, expected)

	readyCtx, readyCancel := context.WithTimeout(ctx, globalConf.Base.ReadyTimeout)
	defer readyCancel()

	eg, egCtx := errgroup.WithContext(readyCtx)
	for networkID, path := range snapshots {
		eg.Go(func() error {
			if egCtx.Err() != nil {
				return egCtx.Err()
			}
			raw, err := readChainSnapshot(path)
			if err != nil {
				return err
			}
			validators := make([]reducers.Validator, 0, len(raw.Validators))
			for _, validator := range raw.Validators {
				validators = append(validators, reducers.ValidatorReducer(networkID, raw.SignedBlocksWindow, validator))
			}
			aggregator.UpsertStore(globalstore.NetworkStore{
				NetworkID:  networkID,
				Validators: reducers.ValidatorsByOperatorAddress(validators),
			})
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	validators, err := aggregator.GlobalValidators(readyCtx)
	if err != nil {
		return err
	}
	return writeJSON(os.Stdout, validators, true)
}
