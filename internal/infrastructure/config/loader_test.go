package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadWritesDefaultWhenMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AI.DefaultProvider != "auto" {
		t.Fatalf("DefaultProvider = %q, want auto", cfg.AI.DefaultProvider)
	}
	if cfg.Sudo.CacheTimeoutSeconds != 300 {
		t.Fatalf("CacheTimeoutSeconds = %d, want 300", cfg.Sudo.CacheTimeoutSeconds)
	}
	if len(cfg.AI.RoutingRules) != 3 {
		t.Fatalf("routing rules = %d, want 3", len(cfg.AI.RoutingRules))
	}
	if _, ok := cfg.Response.Styles["bullets"]; !ok {
		t.Fatal("default styles missing 'bullets'")
	}

	// The default file is persisted for the user to edit.
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("config perms = %o, want 600", perm)
	}
}

func TestLoadParsesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
ai:
  default_provider: deepseek
  timeout: 10
sudo:
  cache_timeout: 120
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.AI.DefaultProvider != "deepseek" {
		t.Fatalf("DefaultProvider = %q", cfg.AI.DefaultProvider)
	}
	if cfg.AI.TimeoutSeconds != 10 {
		t.Fatalf("TimeoutSeconds = %d", cfg.AI.TimeoutSeconds)
	}
	if cfg.Sudo.CacheTimeoutSeconds != 120 {
		t.Fatalf("CacheTimeoutSeconds = %d", cfg.Sudo.CacheTimeoutSeconds)
	}
	if cfg.Logging.Level != "debug" {
		t.Fatalf("Level = %q", cfg.Logging.Level)
	}
}

func TestLoadHydratesMissingSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
ai:
  default_provider: gemini
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	// The one provided value sticks, everything else is defaulted.
	if cfg.AI.DefaultProvider != "gemini" {
		t.Fatalf("DefaultProvider = %q", cfg.AI.DefaultProvider)
	}
	if cfg.Sudo.ExecTimeoutSeconds != 30 {
		t.Fatalf("ExecTimeoutSeconds = %d, want default 30", cfg.Sudo.ExecTimeoutSeconds)
	}
	if len(cfg.Sudo.DangerousCommands) == 0 {
		t.Fatal("dangerous-command deny list not hydrated")
	}
	if cfg.Response.DefaultStyle != "short" {
		t.Fatalf("DefaultStyle = %q, want short", cfg.Response.DefaultStyle)
	}
	if cfg.Security.KeyFile == "" || cfg.History.Path == "" {
		t.Fatal("file paths not hydrated")
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("ai: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("malformed YAML accepted")
	}
}

func TestEnvOverrideSelectsPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alt.yaml")
	t.Setenv("MAYSIE_CONFIG", path)

	loader := NewFileLoader("")
	if got := loader.resolvePath(); got != path {
		t.Fatalf("resolvePath = %q, want %q", got, path)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	if got := expandPath("~/x/config.yaml"); got != filepath.Join(home, "x", "config.yaml") {
		t.Fatalf("expandPath(~/...) = %q", got)
	}
	if got := expandPath("/etc/maysie.yaml"); got != "/etc/maysie.yaml" {
		t.Fatalf("expandPath(abs) = %q", got)
	}
}
