// Package sudo manages the time-bounded elevated-privilege credential and
// gated privileged execution.
package sudo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/maysielabs/maysie/internal/domain"
	"github.com/maysielabs/maysie/internal/ports"
)

type cachedCredential struct {
	secret    string
	expiresAt time.Time
}

// Cache holds at most one validated sudo secret in memory. The secret is
// exposed only while now < expiresAt; expiry is re-checked on every read, so
// the background sweep is hygiene that shortens the secret's memory lifetime,
// never a correctness mechanism. The credential is never written to disk.
type Cache struct {
	validator ports.CredentialValidator
	guard     ports.CommandGuard
	runner    ports.PrivilegedRunner
	logger    ports.Logger

	defaultTTL    time.Duration
	sweepInterval time.Duration
	now           func() time.Time

	mu       sync.Mutex
	cred     *cachedCredential
	sweeping bool
	closed   bool
	stop     chan struct{}
}

// NewCache wires the cache with its collaborators. ttl and sweepInterval come
// from configuration; zero values fall back to 5 minutes and 60 seconds.
func NewCache(validator ports.CredentialValidator, guard ports.CommandGuard,
	runner ports.PrivilegedRunner, log ports.Logger,
	ttl, sweepInterval time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if sweepInterval <= 0 {
		sweepInterval = time.Minute
	}
	return &Cache{
		validator:     validator,
		guard:         guard,
		runner:        runner,
		logger:        log,
		defaultTTL:    ttl,
		sweepInterval: sweepInterval,
		now:           time.Now,
		stop:          make(chan struct{}),
	}
}

// SetSecret validates the secret against the privilege mechanism and caches
// it until now+ttl, replacing any prior credential. A ttl <= 0 means the
// configured default. Validation failure leaves existing state untouched.
func (c *Cache) SetSecret(ctx context.Context, secret string, ttl time.Duration) error {
	if !c.validator.Validate(ctx, secret) {
		return domain.ErrInvalidCredential
	}

	if ttl <= 0 {
		ttl = c.defaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("sudo cache closed")
	}
	c.cred = &cachedCredential{secret: secret, expiresAt: c.now().Add(ttl)}
	if !c.sweeping {
		c.sweeping = true
		go c.sweepLoop()
	}
	c.logger.Info("sudo credential cached", map[string]interface{}{
		"ttl_seconds": int(ttl.Seconds()),
	})
	return nil
}

// Secret returns the cached secret while it is unexpired. The expiry check
// and the read are a single critical section, so a concurrent replacement or
// sweep can never surface a half-written or stale credential.
func (c *Cache) Secret() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cred == nil || !c.now().Before(c.cred.expiresAt) {
		return "", false
	}
	return c.cred.secret, true
}

// HasCredential reports whether an unexpired secret is cached.
func (c *Cache) HasCredential() bool {
	_, ok := c.Secret()
	return ok
}

// Clear discards the cached credential unconditionally.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cred != nil {
		c.logger.Info("sudo credential cleared", nil)
	}
	c.cred = nil
}

// RunCommand executes command with elevated privileges. The dangerous-command
// veto runs first and cannot be bypassed: a flagged command fails before any
// credential lookup and never spawns a child process.
func (c *Cache) RunCommand(ctx context.Context, command string) (domain.ExecResult, error) {
	if c.guard.IsDangerous(command) {
		return domain.ExecResult{ExitCode: -1},
			fmt.Errorf("%w: %s", domain.ErrDangerousCommand, command)
	}

	secret, ok := c.Secret()
	if !ok {
		return domain.ExecResult{ExitCode: -1},
			fmt.Errorf("%w: use 'sudo code:<password>' first", domain.ErrNoCredentialCached)
	}

	result, err := c.runner.Run(ctx, command, secret)
	if err != nil {
		return result, err
	}
	c.logger.Info("sudo command executed", map[string]interface{}{
		"exit_code": result.ExitCode,
	})
	return result, nil
}

// Close stops the background sweep and drops any cached secret.
func (c *Cache) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	c.cred = nil
	c.mu.Unlock()
	close(c.stop)
}

func (c *Cache) sweepLoop() {
	ticker := time.NewTicker(c.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.mu.Lock()
			if c.cred != nil && !c.now().Before(c.cred.expiresAt) {
				c.cred = nil
				c.logger.Debug("expired sudo credential swept", nil)
			}
			c.mu.Unlock()
		case <-c.stop:
			return
		}
	}
}
