package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig with no file: %v", err)
	}
	if cfg.Server.HTTPAddress != ":8080" {
		t.Errorf("http address = %q, want :8080", cfg.Server.HTTPAddress)
	}
	if cfg.Server.RPCAddress != ":7000" {
		t.Errorf("rpc address = %q, want :7000", cfg.Server.RPCAddress)
	}
	if cfg.Server.MonitorAddress != ":9100" {
		t.Errorf("monitor address = %q, want :9100", cfg.Server.MonitorAddress)
	}
	if cfg.Server.PublicURL != "http://localhost:8080" {
		t.Errorf("public url = %q, want http://localhost:8080", cfg.Server.PublicURL)
	}
	if cfg.Game.StartingLives != 3 {
		t.Errorf("starting lives = %d, want 3", cfg.Game.StartingLives)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("server:\n  http_address: \":9999\"\ngame:\n  starting_lives: 5\n")
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(dir)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.HTTPAddress != ":9999" {
		t.Errorf("http address = %q, want :9999", cfg.Server.HTTPAddress)
	}
	if cfg.Game.StartingLives != 5 {
		t.Errorf("starting lives = %d, want 5", cfg.Game.StartingLives)
	}
	if cfg.Server.RPCAddress != ":7000" {
		t.Errorf("rpc address = %q, want the :7000 default to survive a partial file", cfg.Server.RPCAddress)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("QUIZSERVER_SERVER_HTTP_ADDRESS", ":7777")

	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Server.HTTPAddress != ":7777" {
		t.Errorf("http address = %q, want the env override :7777", cfg.Server.HTTPAddress)
	}
}
