package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const (
	configFileName = "extarray"
	configFileType = "yaml"
	envPrefix      = "EXTARRAY"

	cfgKeyDB     = "db"
	cfgKeyFormat = "format"

	defaultDBPath = "extarray.db"
	defaultFormat = "text"
)

// loadConfig resolves db and format from, in increasing precedence:
// defaults, extarray.yaml, EXTARRAY_* environment variables and flags.
//
// An explicit --config file must exist. Without one, extarray.yaml is looked
// up in the working directory and a missing file is not an error.
func loadConfig(cmd *cobra.Command, configFile string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyDB, defaultDBPath)
	v.SetDefault(cfgKeyFormat, defaultFormat)

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	flags := cmd.Flags()
	for _, key := range []string{cfgKeyDB, cfgKeyFormat} {
		if f := flags.Lookup(key); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return nil, fmt.Errorf("bind flag %s: %w", key, err)
			}
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		return v, nil
	}

	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}
