package domain

// Config mirrors ~/.maysie/config.yaml.
type Config struct {
	ConfigFormatVersion string           `yaml:"config_format_version"`
	AI                  AISettings       `yaml:"ai"`
	Sudo                SudoSettings     `yaml:"sudo"`
	Response            ResponseSettings `yaml:"response"`
	Security            SecuritySettings `yaml:"security"`
	History             HistorySettings  `yaml:"history"`
	Logging             LoggingSettings  `yaml:"logging"`
}

// RoutingRule maps a command pattern to an AI provider. Matching is strictly
// first-in-list; Priority is carried in the schema but is not a sort key.
type RoutingRule struct {
	Pattern  string `yaml:"pattern"`
	Provider string `yaml:"provider"`
	Priority int    `yaml:"priority"`
}

// AISettings configures provider selection.
type AISettings struct {
	DefaultProvider string        `yaml:"default_provider"`
	RoutingRules    []RoutingRule `yaml:"routing_rules"`
	TimeoutSeconds  int           `yaml:"timeout"`
}

// SudoSettings configures the privileged credential cache.
type SudoSettings struct {
	CacheTimeoutSeconds  int      `yaml:"cache_timeout"`
	SweepIntervalSeconds int      `yaml:"sweep_interval"`
	ExecTimeoutSeconds   int      `yaml:"exec_timeout"`
	DangerousCommands    []string `yaml:"dangerous_commands"`
}

// ResponseSettings configures AI answer styling.
type ResponseSettings struct {
	DefaultStyle string            `yaml:"default_style"`
	Styles       map[string]string `yaml:"styles"`
}

// SecuritySettings locates the at-rest secret material.
type SecuritySettings struct {
	KeyFile         string `yaml:"key_file"`
	CredentialsFile string `yaml:"credentials_file"`
}

// HistorySettings locates the routed-command audit database.
type HistorySettings struct {
	Path string `yaml:"path"`
}

// LoggingSettings controls log verbosity.
type LoggingSettings struct {
	Level string `yaml:"level"`
}
