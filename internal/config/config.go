// Package config loads process-level render tuning from the environment,
// following the env-first, flag-overrides pattern used elsewhere in the
// wider stack.
package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config holds the worker-pool tuning knobs cmd/sdfmarch and web/server
// fall back to when no explicit flag overrides them.
type Config struct {
	Workers  int `envconfig:"WORKERS" default:"0"`  // 0 = runtime.NumCPU()
	TileSize int `envconfig:"TILE_SIZE" default:"32"`
}

// Load reads SDFMARCH_WORKERS and SDFMARCH_TILE_SIZE from the environment,
// falling back to Config's defaults when unset.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("sdfmarch", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
