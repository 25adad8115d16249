package domain

import "errors"

// Sentinel errors for the failure modes the router recovers from. Callers
// match with errors.Is; wrapping sites add context with fmt.Errorf and %w.
var (
	// ErrInvalidCredential reports a secret that failed the privilege probe.
	ErrInvalidCredential = errors.New("invalid sudo credential")

	// ErrNoCredentialCached reports privileged execution with nothing cached
	// (or only an expired entry).
	ErrNoCredentialCached = errors.New("no sudo credential cached")

	// ErrDangerousCommand is the policy veto. It is always surfaced, never
	// downgraded.
	ErrDangerousCommand = errors.New("dangerous command blocked")

	// ErrExecutionTimeout reports a subprocess that exceeded its bound and
	// was forcibly killed.
	ErrExecutionTimeout = errors.New("command execution timeout")

	// ErrCipherFailure reports unreadable key material or ciphertext that
	// fails authentication.
	ErrCipherFailure = errors.New("cipher failure")

	// ErrProviderUnavailable reports that no registered, configured AI
	// provider could be resolved.
	ErrProviderUnavailable = errors.New("ai provider unavailable")

	// ErrBackendError reports an AI collaborator failure.
	ErrBackendError = errors.New("ai backend error")
)
