package main

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const envPrefix = "REUNIQ"

// config is what the command runs with after flags, environment and config
// file are merged. Flags win over environment, environment over the file.
type config struct {
	Pattern  string `mapstructure:"pattern"`
	Output   string `mapstructure:"output"`
	LogLevel string `mapstructure:"log_level"`
	Stats    bool   `mapstructure:"stats"`
	Runs     bool   `mapstructure:"runs"`
}

var flagKeys = map[string]string{
	"regexp":    "pattern",
	"output":    "output",
	"log-level": "log_level",
	"stats":     "stats",
	"runs":      "runs",
}

func loadConfig(flags *pflag.FlagSet, cfgFile string) (cfg config, err error) {
	v := viper.New()
	v.SetDefault("log_level", "warn")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for flag, key := range flagKeys {
		if f := flags.Lookup(flag); f != nil {
			if err = v.BindPFlag(key, f); err != nil {
				return cfg, err
			}
		}
	}
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err = v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("config file %s: %w", cfgFile, err)
		}
	}
	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}
