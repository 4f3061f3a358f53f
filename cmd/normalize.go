package cmd

import (
	"context"
	"os"

	"github.com/DefiantLabs/lunie-core/config"
	"github.com/DefiantLabs/lunie-core/reducers"
	"github.com/spf13/cobra"
)

var normalizeConf = &config.NormalizeConfig{}

func init() {
	config.SetupLogFlags(&normalizeConf.Log, normalizeCmd)
	config.SetupNetworkFlags(&normalizeConf.Network, normalizeCmd)
	config.SetupFiatFlags(&normalizeConf.Fiat, normalizeCmd)
	config.SetupNormalizeSpecificFlags(normalizeConf, normalizeCmd)

	rootCmd.AddCommand(normalizeCmd)
}

var normalizeCmd = &cobra.Command{
	Use:   "normalize",
	Short: "Normalizes a raw chain snapshot into view records.",
	Long: `Reads a raw chain snapshot of one account (validators, delegations, balances, rewards,
	proposals) and writes the normalized records as JSON. Fiat values are added when a price API is configured.`,
	PreRunE: setupNormalize,
	RunE:    normalize,
}

func setupNormalize(cmd *cobra.Command, args []string) error {
	bindFlags(cmd, viperConf)
	if err := bindCoinLookups(&normalizeConf.Network, viperConf); err != nil {
		return err
	}

	err := normalizeConf.Validate()
	if err != nil {
		return err
	}

	ignoredKeys := config.CheckSuperfluousNormalizeKeys(viperConf.AllKeys())

	if len(ignoredKeys) > 0 {
		config.Log.Warnf("Warning, the following invalid keys will be ignored: %v", ignoredKeys)
	}

	setupLogger(normalizeConf.Log.Level, normalizeConf.Log.Path, normalizeConf.Log.Pretty)
	return nil
}

func normalize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	n, priceIDs, err := loadNetwork(ctx, normalizeConf.Network)
	if err != nil {
		return err
	}

	raw, err := readChainSnapshot(normalizeConf.Base.Input)
	if err != nil {
		return err
	}

	snapshot := reducers.SnapshotReducer(ctx, raw, n, reducers.New(n), newFiatAPI(normalizeConf.Fiat, priceIDs), normalizeConf.Fiat.Currency)
	config.Log.ZInfo().
		Str("network", n.ID).
		Int("validators", len(snapshot.Validators)).
		Int("balances", len(snapshot.Balances)).
		Int("proposals", len(snapshot.Proposals)).
		Msg("Normalized snapshot")

	out := os.Stdout
	if normalizeConf.Base.Output != "" {
		file, err := os.Create(normalizeConf.Base.Output)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}
	return writeJSON(out, snapshot, normalizeConf.Base.Pretty)
}
