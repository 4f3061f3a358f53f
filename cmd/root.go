package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/DefiantLabs/lunie-core/assetlists"
	"github.com/DefiantLabs/lunie-core/config"
	"github.com/DefiantLabs/lunie-core/db"
	"github.com/DefiantLabs/lunie-core/fiat"
	"github.com/DefiantLabs/lunie-core/network"
	"github.com/DefiantLabs/lunie-core/reducers"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

var (
	cfgFile string // config file location to load
	rootCmd = &cobra.Command{
		Use:   "lunie-core",
		Short: "A CLI tool for normalizing and caching Cosmos chain data",
		Long: `lunie-core turns raw Cosmos-SDK chain responses into the records a wallet shows,
		keeps a per account cache of them, and aggregates validators across networks.`,
	}
	viperConf = viper.New()
)

func GetRootCmd() *cobra.Command {
	return rootCmd
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(getViperConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file location (default is <CWD>/config.toml)")
}

func getViperConfig() {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("toml")
	} else {
		// Check in current working dir
		pwd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Could not determine current working dir. Err: %v", err)
		}
		if _, err := os.Stat(fmt.Sprintf("%v/config.toml", pwd)); err == nil {
			cfgFile = pwd
		} else {
			// file not in current working dir. Check home dir instead
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatalf("Failed to find user home dir. Err: %v", err)
			}
			cfgFile = fmt.Sprintf("%s/.lunie-core", home)
		}
		v.AddConfigPath(cfgFile)
		v.SetConfigType("toml")
		v.SetConfigName("config")
	}

	var noConfig bool
	err := v.ReadInConfig()
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "Config File \"config\" Not Found"):
			noConfig = true
		case strings.Contains(err.Error(), "incomplete number"):
			log.Fatalf("Failed to read config file %v. This usually means you forgot to wrap a string in quotes.", err)
		default:
			log.Fatalf("Failed to read config file. Err: %v", err)
		}
	}

	if !noConfig {
		log.Println("CFG successfully read from: ", cfgFile)
	}

	viperConf = v
}

// Set config vars from config file not already specified on command line.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		configName := f.Name

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(configName) {
			val := v.Get(configName)
			err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val))
			if err != nil {
				log.Fatalf("Failed to bind config file value %v. Err: %v", configName, err)
			}
		}
	})
}

// bindCoinLookups reads the coin lookup tables, which have no flag equivalent.
func bindCoinLookups(networkConf *config.Network, v *viper.Viper) error {
	if !v.IsSet("network.coin-lookup") {
		return nil
	}
	return v.UnmarshalKey("network.coin-lookup", &networkConf.CoinLookup)
}

func setupLogger(logLevel string, logPath string, prettyLogging bool) {
	config.DoConfigureLogger(logPath, logLevel, prettyLogging)
}

func connectToDBAndMigrate(dbConfig config.Database) (*gorm.DB, error) {
	database, err := db.PostgresDbConnect(dbConfig.Host, dbConfig.Port, dbConfig.Database, dbConfig.User, dbConfig.Password, strings.ToLower(dbConfig.LogLevel))
	if err != nil {
		config.Log.Fatal("Could not establish connection to the database", err)
	}

	sqldb, _ := database.DB()
	sqldb.SetMaxIdleConns(10)
	sqldb.SetMaxOpenConns(100)
	sqldb.SetConnMaxLifetime(time.Hour)

	err = db.MigrateModels(database)
	if err != nil {
		config.Log.Error("Error running DB migrations", err)
	}

	return database, err
}

// loadNetwork builds the network of the config. With an asset list configured its denom units are
// merged into the coin lookups and its price ids are returned for the fiat client.
func loadNetwork(ctx context.Context, networkConf config.Network) (*network.Network, map[string]string, error) {
	n, err := networkConf.ToNetwork()
	if err != nil {
		return nil, nil, err
	}
	if networkConf.AssetList == "" {
		return n, nil, nil
	}

	assetList, err := assetlists.GetAssetList(ctx, http.DefaultClient, networkConf.AssetList)
	if err != nil {
		return nil, nil, fmt.Errorf("loading asset list: %w", err)
	}
	assetList.MergeInto(n)
	config.Log.Infof("Merged asset list of %s, %d coin lookups", assetList.ChainName, len(n.CoinLookup))
	return n, assetList.PriceIDs(), nil
}

// newFiatAPI returns nil when no price API is configured, so fiat values are skipped.
func newFiatAPI(fiatConf config.Fiat, priceIDs map[string]string) reducers.FiatValueAPI {
	if fiatConf.API == "" {
		return nil
	}
	return fiat.NewClient(fiatConf.API, fiatConf.RequestsPerSecond, fiatConf.CacheTTL, fiat.WithPriceIDs(priceIDs))
}

func readChainSnapshot(path string) (reducers.ChainSnapshot, error) {
	var snapshot reducers.ChainSnapshot
	data, err := os.ReadFile(path)
	if err != nil {
		return snapshot, err
	}
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return snapshot, fmt.Errorf("parsing snapshot %s: %w", path, err)
	}
	return snapshot, nil
}

func writeJSON(w io.Writer, value any, pretty bool) error {
	encoder := json.NewEncoder(w)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(value)
}
