// Package security holds the at-rest secret protection pieces: the symmetric
// cipher, the encrypted credential store and the dangerous-command guard.
package security

import (
	stdcipher "crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/maysielabs/maysie/internal/domain"
	"github.com/maysielabs/maysie/internal/ports"
)

// Cipher encrypts and decrypts opaque strings with an XChaCha20-Poly1305 key
// persisted next to the rest of the Maysie state. The key lives only in
// memory once loaded.
type Cipher struct {
	aead       stdcipher.AEAD
	persistent bool
}

// NewCipher loads the key file, creating it with owner-only permissions on
// first use. When the key cannot be persisted (read-only filesystem, missing
// privileges) the cipher degrades to an in-memory key for the life of the
// process: prior ciphertexts become unreadable after restart, which favors
// availability over hard failure.
func NewCipher(keyFile string, log ports.Logger) (*Cipher, error) {
	key, persistent, err := loadOrCreateKey(keyFile, log)
	if err != nil {
		return nil, err
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrCipherFailure, err)
	}
	return &Cipher{aead: aead, persistent: persistent}, nil
}

// Persistent reports whether the key survives process restarts.
func (c *Cipher) Persistent() bool {
	return c.persistent
}

// Encrypt seals plaintext and returns base64(nonce || ciphertext).
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCipherFailure, err)
	}
	sealed := c.aead.Seal(nonce, nonce, []byte(plaintext), nil)
	return base64.StdEncoding.EncodeToString(sealed), nil
}

// Decrypt reverses Encrypt. Ciphertext not produced by the currently loaded
// key fails with domain.ErrCipherFailure; it never yields garbage silently.
func (c *Cipher) Decrypt(encoded string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("%w: malformed ciphertext: %v", domain.ErrCipherFailure, err)
	}
	if len(raw) < chacha20poly1305.NonceSizeX {
		return "", fmt.Errorf("%w: ciphertext too short", domain.ErrCipherFailure)
	}
	nonce, sealed := raw[:chacha20poly1305.NonceSizeX], raw[chacha20poly1305.NonceSizeX:]
	plain, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrCipherFailure, err)
	}
	return string(plain), nil
}

func loadOrCreateKey(keyFile string, log ports.Logger) (key []byte, persistent bool, err error) {
	data, err := os.ReadFile(keyFile)
	switch {
	case err == nil:
		if len(data) != chacha20poly1305.KeySize {
			return nil, false, fmt.Errorf("%w: key file %s has %d bytes, want %d",
				domain.ErrCipherFailure, keyFile, len(data), chacha20poly1305.KeySize)
		}
		return data, true, nil
	case errors.Is(err, fs.ErrNotExist):
		// fall through to key generation
	default:
		return nil, false, fmt.Errorf("%w: read key file: %v", domain.ErrCipherFailure, err)
	}

	key = make([]byte, chacha20poly1305.KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, false, fmt.Errorf("%w: %v", domain.ErrCipherFailure, err)
	}

	if err := saveKey(keyFile, key); err != nil {
		log.Warn("using temporary encryption key, persistence degraded", map[string]interface{}{
			"key_file": keyFile,
			"error":    err.Error(),
		})
		return key, false, nil
	}
	log.Info("encryption key generated", map[string]interface{}{"key_file": keyFile})
	return key, true, nil
}

func saveKey(keyFile string, key []byte) error {
	if err := os.MkdirAll(filepath.Dir(keyFile), 0o700); err != nil {
		return err
	}
	if err := os.WriteFile(keyFile, key, 0o600); err != nil {
		return err
	}
	return os.Chmod(keyFile, 0o600)
}
