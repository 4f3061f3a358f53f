package config

import (
	"errors"

	"github.com/DefiantLabs/lunie-core/util"
	"github.com/spf13/cobra"
)

type NormalizeConfig struct {
	Log     log
	Network Network
	Fiat    Fiat
	Base    normalizeBase
}

type normalizeBase struct {
	Input  string `mapstructure:"input"`
	Output string `mapstructure:"output"`
	Pretty bool   `mapstructure:"pretty"`
}

func SetupNormalizeSpecificFlags(conf *NormalizeConfig, cmd *cobra.Command) {
	cmd.Flags().StringVar(&conf.Base.Input, "base.input", "", "file holding the raw chain snapshot to normalize")
	cmd.Flags().StringVar(&conf.Base.Output, "base.output", "", "file to write the normalized snapshot to (default is stdout)")
	cmd.Flags().BoolVar(&conf.Base.Pretty, "base.pretty", false, "indent the output")
}

func (conf *NormalizeConfig) Validate() error {
	if util.StrNotSet(conf.Base.Input) {
		return errors.New("base.input must be set")
	}
	if err := validateNetworkConf(conf.Network); err != nil {
		return err
	}
	return validateFiatConf(conf.Fiat)
}

func CheckSuperfluousNormalizeKeys(keys []string) []string {
	validKeys := make(map[string]struct{})

	addLogConfigKeys(validKeys)
	addConfigKeys(validKeys, Network{}, "")
	addFiatConfigKeys(validKeys)
	addConfigKeys(validKeys, normalizeBase{}, "base")

	return superfluousKeys(keys, validKeys)
}
