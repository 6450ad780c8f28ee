package config

import (
	"runtime"

	"github.com/spf13/viper"
)

// Config carries the environment-tunable defaults. CLI flags take
// precedence over everything here.
type Config struct {
	MinIntervalDuration int    `mapstructure:"IFIND_MIN_DURATION"`
	Workers             int    `mapstructure:"IFIND_WORKERS"`
	OutputSuffix        string `mapstructure:"IFIND_OUTPUT_SUFFIX"`
}

// Load reads defaults from the environment.
func Load() Config {
	viper.AutomaticEnv()
	viper.SetDefault("IFIND_MIN_DURATION", 20)
	viper.SetDefault("IFIND_WORKERS", runtime.NumCPU())
	viper.SetDefault("IFIND_OUTPUT_SUFFIX", "_intervals")

	var cfg Config
	_ = viper.Unmarshal(&cfg)
	return cfg
}
