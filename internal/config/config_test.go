package config

import (
	"os"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("SDFMARCH_WORKERS")
	os.Unsetenv("SDFMARCH_TILE_SIZE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Workers != 0 {
		t.Errorf("Workers = %d, want 0", cfg.Workers)
	}
	if cfg.TileSize != 32 {
		t.Errorf("TileSize = %d, want 32", cfg.TileSize)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SDFMARCH_WORKERS", "4")
	t.Setenv("SDFMARCH_TILE_SIZE", "64")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Workers != 4 {
		t.Errorf("Workers = %d, want 4", cfg.Workers)
	}
	if cfg.TileSize != 64 {
		t.Errorf("TileSize = %d, want 64", cfg.TileSize)
	}
}
