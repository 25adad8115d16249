package security

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/maysielabs/maysie/internal/ports"
)

// CredentialStore keeps named long-lived secrets (API keys) in a single
// encrypted blob on disk. Every mutation re-serializes the whole mapping,
// encrypts it and rewrites the file; there is no per-key persistence. Config
// saves are infrequent, so one coarse mutex around the read-modify-write is
// enough.
type CredentialStore struct {
	path   string
	cipher *Cipher
	logger ports.Logger

	mu          sync.Mutex
	credentials map[string]string
}

// NewCredentialStore loads the blob at path if present. A store that cannot
// be decrypted or parsed starts empty after logging the failure: the operator
// re-enters secrets rather than the process crashing or leaking a partial
// decryption.
func NewCredentialStore(path string, cipher *Cipher, log ports.Logger) *CredentialStore {
	store := &CredentialStore{
		path:        path,
		cipher:      cipher,
		logger:      log,
		credentials: make(map[string]string),
	}
	store.load()
	return store
}

// Get returns the secret for name, with ok=false when absent.
func (s *CredentialStore) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.credentials[name]
	return value, ok
}

// GetOr returns the secret for name or fallback when absent.
func (s *CredentialStore) GetOr(name, fallback string) string {
	if value, ok := s.Get(name); ok {
		return value
	}
	return fallback
}

// Set stores a secret and persists the whole mapping. A failed persist rolls
// the in-memory entry back, so memory and disk never diverge.
func (s *CredentialStore) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, existed := s.credentials[name]
	s.credentials[name] = value
	if err := s.save(); err != nil {
		if existed {
			s.credentials[name] = prev
		} else {
			delete(s.credentials, name)
		}
		return err
	}
	return nil
}

// Delete removes a secret and persists the whole mapping. Deleting an absent
// name is a no-op; a failed persist restores the entry.
func (s *CredentialStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev, ok := s.credentials[name]
	if !ok {
		return nil
	}
	delete(s.credentials, name)
	if err := s.save(); err != nil {
		s.credentials[name] = prev
		return err
	}
	return nil
}

// Names lists stored credential names, sorted, values omitted.
func (s *CredentialStore) Names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.credentials))
	for name := range s.credentials {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *CredentialStore) load() {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn("credential store unreadable, starting empty", map[string]interface{}{
				"path":  s.path,
				"error": err.Error(),
			})
		}
		return
	}
	if strings.TrimSpace(string(data)) == "" {
		return
	}

	plaintext, err := s.cipher.Decrypt(strings.TrimSpace(string(data)))
	if err != nil {
		s.logger.Error("credential store decryption failed, starting empty", err, map[string]interface{}{
			"path": s.path,
		})
		return
	}

	for _, line := range strings.Split(plaintext, "\n") {
		name, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		s.credentials[strings.TrimSpace(name)] = strings.TrimSpace(value)
	}
	s.logger.Info("credential store loaded", map[string]interface{}{
		"entries": len(s.credentials),
	})
}

// save writes the encrypted blob. Caller holds s.mu.
func (s *CredentialStore) save() error {
	lines := make([]string, 0, len(s.credentials))
	for name, value := range s.credentials {
		lines = append(lines, name+"="+value)
	}
	sort.Strings(lines)

	encrypted, err := s.cipher.Encrypt(strings.Join(lines, "\n"))
	if err != nil {
		return fmt.Errorf("encrypt credential store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(encrypted), 0o600); err != nil {
		return err
	}
	return os.Chmod(s.path, 0o600)
}
