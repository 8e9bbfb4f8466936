// (c) 2019-2020, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

// demoConfig holds the knobs exposed on the command line and, optionally,
// a config file. urfave/cli parses the command line; viper layers an
// optional YAML config file underneath so a deployment can pin defaults
// without repeating flags.
type demoConfig struct {
	RetryPolicy string
	Skip        int64
	MaxRetries  uint64
	Base        uint64
	Ticks       int
	MetricsAddr string
	AdoptAfter  int
}

func defaultConfig() demoConfig {
	return demoConfig{
		RetryPolicy: "constant",
		Skip:        0,
		MaxRetries:  3,
		Base:        2,
		Ticks:       10,
		MetricsAddr: "",
		AdoptAfter:  0,
	}
}

var configFlags = []cli.Flag{
	&cli.StringFlag{Name: "config", Usage: "optional YAML config file"},
	&cli.StringFlag{Name: "retry-policy", Usage: "retry policy: constant or exponential"},
	&cli.Int64Flag{Name: "skip", Usage: "slots to skip between retries (constant policy)"},
	&cli.Uint64Flag{Name: "max-retries", Usage: "number of sends attempted before giving up and probing for confirmation"},
	&cli.Uint64Flag{Name: "base", Usage: "exponential backoff base (exponential policy)"},
	&cli.IntFlag{Name: "ticks", Usage: "number of slots to simulate"},
	&cli.StringFlag{Name: "metrics-addr", Usage: "address to serve Prometheus metrics on, empty disables"},
	&cli.IntFlag{Name: "adopt-after", Usage: "sightings of a transaction after which the demo network adopts it; 0 never adopts"},
}

// loadConfig merges defaults, an optional --config YAML file (via viper),
// and the flags explicitly set on ctx, in that order of increasing
// precedence.
func loadConfig(ctx *cli.Context) (demoConfig, error) {
	cfg := defaultConfig()

	if path := ctx.String("config"); path != "" {
		v := viper.New()
		v.SetConfigFile(path)
		if _, err := os.Stat(path); err != nil {
			return demoConfig{}, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := v.ReadInConfig(); err != nil {
			return demoConfig{}, fmt.Errorf("reading config file %s: %w", path, err)
		}
		if v.IsSet("retry-policy") {
			cfg.RetryPolicy = v.GetString("retry-policy")
		}
		if v.IsSet("skip") {
			cfg.Skip = v.GetInt64("skip")
		}
		if v.IsSet("max-retries") {
			cfg.MaxRetries = v.GetUint64("max-retries")
		}
		if v.IsSet("base") {
			cfg.Base = v.GetUint64("base")
		}
		if v.IsSet("ticks") {
			cfg.Ticks = v.GetInt("ticks")
		}
		if v.IsSet("metrics-addr") {
			cfg.MetricsAddr = v.GetString("metrics-addr")
		}
		if v.IsSet("adopt-after") {
			cfg.AdoptAfter = v.GetInt("adopt-after")
		}
	}

	if ctx.IsSet("retry-policy") {
		cfg.RetryPolicy = ctx.String("retry-policy")
	}
	if ctx.IsSet("skip") {
		cfg.Skip = ctx.Int64("skip")
	}
	if ctx.IsSet("max-retries") {
		cfg.MaxRetries = ctx.Uint64("max-retries")
	}
	if ctx.IsSet("base") {
		cfg.Base = ctx.Uint64("base")
	}
	if ctx.IsSet("ticks") {
		cfg.Ticks = ctx.Int("ticks")
	}
	if ctx.IsSet("metrics-addr") {
		cfg.MetricsAddr = ctx.String("metrics-addr")
	}
	if ctx.IsSet("adopt-after") {
		cfg.AdoptAfter = ctx.Int("adopt-after")
	}

	if cfg.RetryPolicy != "constant" && cfg.RetryPolicy != "exponential" {
		return demoConfig{}, fmt.Errorf("unknown retry policy %q", cfg.RetryPolicy)
	}
	return cfg, nil
}
