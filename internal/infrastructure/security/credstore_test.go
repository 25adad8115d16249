package security

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/maysielabs/maysie/internal/pkg/logger"
)

func newTestStore(t *testing.T) (*CredentialStore, *Cipher, string) {
	t.Helper()
	dir := t.TempDir()
	cipher, err := NewCipher(filepath.Join(dir, ".key"), logger.NewNop())
	if err != nil {
		t.Fatalf("NewCipher error: %v", err)
	}
	path := filepath.Join(dir, "api_keys.enc")
	return NewCredentialStore(path, cipher, logger.NewNop()), cipher, path
}

func TestCredentialStoreSetGet(t *testing.T) {
	store, _, _ := newTestStore(t)

	if err := store.Set("gemini_api_key", "abc123"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	value, ok := store.Get("gemini_api_key")
	if !ok || value != "abc123" {
		t.Fatalf("Get = %q, %v; want abc123, true", value, ok)
	}

	if _, ok := store.Get("missing"); ok {
		t.Fatal("Get(missing) reported present")
	}
	if got := store.GetOr("missing", "fallback"); got != "fallback" {
		t.Fatalf("GetOr = %q, want fallback", got)
	}
}

func TestCredentialStorePersistenceRoundTrip(t *testing.T) {
	store, cipher, path := newTestStore(t)

	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// A fresh instance against the same file sees the value.
	reopened := NewCredentialStore(path, cipher, logger.NewNop())
	value, ok := reopened.Get("k")
	if !ok || value != "v" {
		t.Fatalf("reopened Get = %q, %v; want v, true", value, ok)
	}
}

func TestCredentialStoreFileIsOneCiphertextBlob(t *testing.T) {
	store, cipher, path := newTestStore(t)

	if err := store.Set("openai_api_key", "sk-something"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read blob: %v", err)
	}
	if string(raw) == "" {
		t.Fatal("blob is empty")
	}
	// The plaintext never appears on disk; the blob decrypts as a whole.
	if contains := string(raw); contains == "openai_api_key=sk-something" {
		t.Fatal("store written in plaintext")
	}
	plain, err := cipher.Decrypt(string(raw))
	if err != nil {
		t.Fatalf("blob does not decrypt: %v", err)
	}
	if plain != "openai_api_key=sk-something" {
		t.Fatalf("decrypted blob = %q", plain)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat blob: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Fatalf("blob permissions = %o, want 600", perm)
	}
}

func TestCredentialStoreDelete(t *testing.T) {
	store, cipher, path := newTestStore(t)

	if err := store.Set("a", "1"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := store.Set("b", "2"); err != nil {
		t.Fatalf("Set error: %v", err)
	}
	if err := store.Delete("a"); err != nil {
		t.Fatalf("Delete error: %v", err)
	}
	if err := store.Delete("never-existed"); err != nil {
		t.Fatalf("Delete(absent) error: %v", err)
	}

	reopened := NewCredentialStore(path, cipher, logger.NewNop())
	if _, ok := reopened.Get("a"); ok {
		t.Fatal("deleted entry survived reload")
	}
	if value, ok := reopened.Get("b"); !ok || value != "2" {
		t.Fatalf("surviving entry = %q, %v", value, ok)
	}
}

func TestCredentialStoreNames(t *testing.T) {
	store, _, _ := newTestStore(t)

	for name, value := range map[string]string{"zeta": "1", "alpha": "2"} {
		if err := store.Set(name, value); err != nil {
			t.Fatalf("Set error: %v", err)
		}
	}

	names := store.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "zeta" {
		t.Fatalf("Names = %v, want [alpha zeta]", names)
	}
}

func TestCredentialStoreUnreadableBlobStartsEmpty(t *testing.T) {
	store, cipher, path := newTestStore(t)
	if err := store.Set("k", "v"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Corrupt the blob; the next load must not crash or leak partial data.
	if err := os.WriteFile(path, []byte("definitely not ciphertext"), 0o600); err != nil {
		t.Fatalf("corrupt blob: %v", err)
	}

	reopened := NewCredentialStore(path, cipher, logger.NewNop())
	if _, ok := reopened.Get("k"); ok {
		t.Fatal("corrupted store returned a value")
	}
	if len(reopened.Names()) != 0 {
		t.Fatalf("corrupted store has names: %v", reopened.Names())
	}

	// The store remains usable for re-entered secrets.
	if err := reopened.Set("k", "again"); err != nil {
		t.Fatalf("Set after corruption error: %v", err)
	}
	if value, ok := reopened.Get("k"); !ok || value != "again" {
		t.Fatalf("re-entered value = %q, %v", value, ok)
	}
}

func TestCredentialStoreRollsBackOnPersistFailure(t *testing.T) {
	store, _, _ := newTestStore(t)

	if err := store.Set("keep", "v1"); err != nil {
		t.Fatalf("Set error: %v", err)
	}

	// Repoint the blob at a directory so the rewrite fails.
	store.path = t.TempDir()

	if err := store.Set("new", "v2"); err == nil {
		t.Fatal("Set with unwritable store succeeded")
	}
	if _, ok := store.Get("new"); ok {
		t.Fatal("failed Set left the entry in memory")
	}

	if err := store.Set("keep", "v2"); err == nil {
		t.Fatal("overwrite with unwritable store succeeded")
	}
	if value, _ := store.Get("keep"); value != "v1" {
		t.Fatalf("failed overwrite left value %q, want v1", value)
	}

	if err := store.Delete("keep"); err == nil {
		t.Fatal("Delete with unwritable store succeeded")
	}
	if value, ok := store.Get("keep"); !ok || value != "v1" {
		t.Fatalf("failed Delete left %q, %v; want v1, true", value, ok)
	}
}
