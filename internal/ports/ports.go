// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// The application core depends on these abstractions only; concrete adapters
// live in the infrastructure layer and are wired together by the app
// container. System-operation collaborators follow the (success, message)
// contract: the core surfaces their messages but never interprets them.
package ports

import (
	"context"
	"time"

	"github.com/maysielabs/maysie/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.maysie/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// QueryContext carries optional instructions attached to an AI query.
type QueryContext struct {
	// ResponseStyle is a free-text instruction describing how the answer
	// should be formatted (e.g. "answer in bullet points").
	ResponseStyle string
}

// AIProvider is the uniform query capability over one AI backend.
// IsConfigured distinguishes "no API key" from a transient backend failure.
type AIProvider interface {
	Name() string
	Query(ctx context.Context, prompt string, qctx QueryContext) (string, error)
	IsConfigured() bool
}

// ProviderRegistry resolves providers by name. Lookup of an unregistered name
// returns ok=false; it is never an error at selection time.
type ProviderRegistry interface {
	Lookup(name string) (AIProvider, bool)
}

// ProviderSelector picks the AI backend for a free-text query, applying the
// configured routing rules and fallbacks.
type ProviderSelector interface {
	Select(text string) string
}

// IntentClassifier maps free text to a structured intent.
type IntentClassifier interface {
	Classify(text string) domain.Intent
}

// CommandGuard decides whether a literal shell command is too dangerous to
// run with elevated privileges. Pure and side-effect-free.
type CommandGuard interface {
	IsDangerous(command string) bool
}

// CredentialValidator probes a secret against the underlying privilege
// mechanism. The mechanism, not a stored hash, is the source of truth.
type CredentialValidator interface {
	Validate(ctx context.Context, secret string) bool
}

// PrivilegedRunner executes a single command with elevated privileges, the
// secret supplied through the mechanism's standard secret-input channel.
type PrivilegedRunner interface {
	Run(ctx context.Context, command, secret string) (domain.ExecResult, error)
}

// PrivilegedExecutor runs a command through the credential cache's gated
// execution path. Implemented by the sudo cache.
type PrivilegedExecutor interface {
	RunCommand(ctx context.Context, command string) (domain.ExecResult, error)
}

// CredentialCache is the router-facing surface of the sudo credential cache.
type CredentialCache interface {
	PrivilegedExecutor
	SetSecret(ctx context.Context, secret string, ttl time.Duration) error
	Clear()
	HasCredential() bool
}

// PackageManager installs, removes and updates system packages.
type PackageManager interface {
	Install(ctx context.Context, packages []string) (bool, string)
	Uninstall(ctx context.Context, packages []string, purge bool) (bool, string)
	Update(ctx context.Context) (bool, string)
	Search(ctx context.Context, query string) (bool, string)
	IsInstalled(ctx context.Context, pkg string) bool
}

// FileOperations manages files and directories on behalf of classified
// file intents.
type FileOperations interface {
	CreateDirectory(path string) (bool, string)
	CreateFile(path string) (bool, string)
	Move(source, destination string) (bool, string)
	Copy(source, destination string) (bool, string)
	Delete(path string) (bool, string)
	Find(pattern, root string) ([]string, error)
	List(path string, showHidden bool) ([]string, error)
}

// ProcessManager lists, kills and launches processes.
type ProcessManager interface {
	List(filter string) ([]domain.ProcessInfo, error)
	KillByName(name string) (bool, string)
	Launch(app string) (bool, string)
}

// HistoryRepository records routed commands for later audit.
type HistoryRepository interface {
	Save(record domain.HistoryRecord) error
	Recent(limit int) ([]domain.HistoryRecord, error)
	Close() error
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
