package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadReadsYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := []byte(`
server:
  port: "9090"
redis:
  addr: "localhost:6379"
  db: 2
postgres:
  url: "postgres://game@localhost/gamedb"
game:
  hint_delay: "30s"
  grace_window: "500ms"
`)
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Fatalf("port: got %q", cfg.Server.Port)
	}
	if cfg.Redis.Addr != "localhost:6379" || cfg.Redis.DB != 2 {
		t.Fatalf("redis: got %+v", cfg.Redis)
	}
	if cfg.Game.HintDelay != "30s" || cfg.Game.GraceWindow != "500ms" {
		t.Fatalf("game overrides: got %+v", cfg.Game)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatalf("expected an error for a missing file")
	}
}

func TestDurationFallbacks(t *testing.T) {
	if got := Duration("", time.Second); got != time.Second {
		t.Fatalf("empty input: got %v", got)
	}
	if got := Duration("garbage", time.Second); got != time.Second {
		t.Fatalf("invalid input: got %v", got)
	}
	if got := Duration("250ms", time.Second); got != 250*time.Millisecond {
		t.Fatalf("valid input: got %v", got)
	}
}
