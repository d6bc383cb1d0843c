// Package config loads tool configuration from file, environment and
// defaults.
package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config represents the structure of the configuration file.
type Config struct {
	Mode           string   `mapstructure:"mode"`
	Seed           int32    `mapstructure:"seed"`
	DelayMin       float64  `mapstructure:"delay_min"`
	DelayMax       float64  `mapstructure:"delay_max"`
	Exclude        []string `mapstructure:"exclude"`
	SkipGenerators bool     `mapstructure:"skip_generators"`
	Parallel       int      `mapstructure:"parallel"`
}

// DefaultConfig values.
var DefaultConfig = Config{
	Mode:     "medium",
	Seed:     42,
	DelayMin: 1,
	DelayMax: 50,
	Parallel: 1,
}

// Load initializes configuration from defaults, an optional .flakemonster
// file in cwd (yaml), and FLAKEMONSTER_* environment variables, in that
// order of increasing precedence. Flag overrides are applied by the caller.
func Load(cwd string) (*Config, error) {
	v := viper.New()

	v.SetDefault("mode", DefaultConfig.Mode)
	v.SetDefault("seed", DefaultConfig.Seed)
	v.SetDefault("delay_min", DefaultConfig.DelayMin)
	v.SetDefault("delay_max", DefaultConfig.DelayMax)
	v.SetDefault("exclude", DefaultConfig.Exclude)
	v.SetDefault("skip_generators", DefaultConfig.SkipGenerators)
	v.SetDefault("parallel", DefaultConfig.Parallel)

	v.SetConfigName(".flakemonster")
	v.SetConfigType("yaml")
	v.AddConfigPath(cwd)

	v.SetEnvPrefix("FLAKEMONSTER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; anything else is a real error.
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
