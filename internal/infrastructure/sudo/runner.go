package sudo

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/maysielabs/maysie/internal/domain"
	"github.com/maysielabs/maysie/internal/ports"
)

const validateTimeout = 5 * time.Second

// Runner shells out through `sudo -S`, feeding the secret on stdin so it
// never appears in process arguments or the environment.
type Runner struct {
	execTimeout time.Duration
}

// NewRunner builds a runner with the configured per-command timeout
// (30 seconds when zero).
func NewRunner(execTimeout time.Duration) *Runner {
	if execTimeout <= 0 {
		execTimeout = 30 * time.Second
	}
	return &Runner{execTimeout: execTimeout}
}

// Run implements ports.PrivilegedRunner. A command exceeding the timeout is
// forcibly killed and reported as domain.ErrExecutionTimeout rather than raw
// exit semantics.
func (r *Runner) Run(ctx context.Context, command, secret string) (domain.ExecResult, error) {
	ctx, cancel := context.WithTimeout(ctx, r.execTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sh", "-c", "sudo -S "+command)
	cmd.Stdin = strings.NewReader(secret + "\n")
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	if ctx.Err() == context.DeadlineExceeded {
		return domain.ExecResult{ExitCode: -1, Stderr: "command execution timeout"},
			fmt.Errorf("%w: %s", domain.ErrExecutionTimeout, command)
	}

	result := domain.ExecResult{
		Stdout: stdout.String(),
		Stderr: stripPromptLines(stderr.String()),
	}

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		result.ExitCode = 0
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	default:
		return domain.ExecResult{ExitCode: -1, Stderr: err.Error()}, err
	}
	return result, nil
}

// Validate implements ports.CredentialValidator with a no-op privilege probe:
// `sudo -S -v` succeeds only when the secret is accepted by the underlying
// mechanism. No hash comparison is involved.
func (r *Runner) Validate(ctx context.Context, secret string) bool {
	ctx, cancel := context.WithTimeout(ctx, validateTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "sudo", "-S", "-v")
	cmd.Stdin = strings.NewReader(secret + "\n")
	return cmd.Run() == nil
}

// stripPromptLines drops the interactive `[sudo] password for ...` boilerplate
// that sudo writes to stderr when reading the secret from stdin.
func stripPromptLines(stderr string) string {
	var kept []string
	for _, line := range strings.Split(stderr, "\n") {
		if strings.HasPrefix(line, "[sudo]") || strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

var (
	_ ports.PrivilegedRunner    = (*Runner)(nil)
	_ ports.CredentialValidator = (*Runner)(nil)
)
