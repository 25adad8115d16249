package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/maysielabs/maysie/internal/domain"
	"github.com/maysielabs/maysie/internal/ports"
)

// FileLoader loads YAML configuration from ~/.maysie/config.yaml (overridable
// via MAYSIE_CONFIG).
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("MAYSIE_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".maysie", "config.yaml")
}

func ensureConfigDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o600)
}

func defaultConfig() domain.Config {
	home := userHomeDir()
	return domain.Config{
		ConfigFormatVersion: "1",
		AI: domain.AISettings{
			DefaultProvider: "auto",
			TimeoutSeconds:  30,
			RoutingRules: []domain.RoutingRule{
				{Pattern: `research|latest|news|current`, Provider: "gemini", Priority: 10},
				{Pattern: `code|script|program|debug|function`, Provider: "deepseek", Priority: 10},
				{Pattern: `decide|compare|analyze|recommend|choose`, Provider: "chatgpt", Priority: 10},
			},
		},
		Sudo: domain.SudoSettings{
			CacheTimeoutSeconds:  300,
			SweepIntervalSeconds: 60,
			ExecTimeoutSeconds:   30,
			DangerousCommands: []string{
				"rm -rf /",
				"mkfs",
				"dd if=/dev/zero",
				":(){:|:&};:",
			},
		},
		Response: domain.ResponseSettings{
			DefaultStyle: "short",
			Styles: map[string]string{
				"short":     "Provide a concise, direct answer. 2-3 sentences max.",
				"detailed":  "Provide a comprehensive, well-explained answer with examples.",
				"bullets":   "Provide answer as clear bullet points.",
				"technical": "Provide detailed technical explanation with proper terminology.",
			},
		},
		Security: domain.SecuritySettings{
			KeyFile:         filepath.Join(home, ".maysie", ".key"),
			CredentialsFile: filepath.Join(home, ".maysie", "api_keys.enc"),
		},
		History: domain.HistorySettings{
			Path: filepath.Join(home, ".maysie", "history", "history.db"),
		},
		Logging: domain.LoggingSettings{Level: "info"},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	def := defaultConfig()
	if cfg.AI.DefaultProvider == "" {
		cfg.AI.DefaultProvider = def.AI.DefaultProvider
	}
	if len(cfg.AI.RoutingRules) == 0 {
		cfg.AI.RoutingRules = def.AI.RoutingRules
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = def.AI.TimeoutSeconds
	}
	if cfg.Sudo.CacheTimeoutSeconds == 0 {
		cfg.Sudo.CacheTimeoutSeconds = def.Sudo.CacheTimeoutSeconds
	}
	if cfg.Sudo.SweepIntervalSeconds == 0 {
		cfg.Sudo.SweepIntervalSeconds = def.Sudo.SweepIntervalSeconds
	}
	if cfg.Sudo.ExecTimeoutSeconds == 0 {
		cfg.Sudo.ExecTimeoutSeconds = def.Sudo.ExecTimeoutSeconds
	}
	if len(cfg.Sudo.DangerousCommands) == 0 {
		cfg.Sudo.DangerousCommands = def.Sudo.DangerousCommands
	}
	if cfg.Response.DefaultStyle == "" {
		cfg.Response.DefaultStyle = def.Response.DefaultStyle
	}
	if len(cfg.Response.Styles) == 0 {
		cfg.Response.Styles = def.Response.Styles
	}
	if cfg.Security.KeyFile == "" {
		cfg.Security.KeyFile = def.Security.KeyFile
	}
	if cfg.Security.CredentialsFile == "" {
		cfg.Security.CredentialsFile = def.Security.CredentialsFile
	}
	if cfg.History.Path == "" {
		cfg.History.Path = def.History.Path
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = def.Logging.Level
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if len(path) > 1 && path[:2] == "~/" {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
