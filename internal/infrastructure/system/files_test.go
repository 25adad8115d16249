package system

import (
	"os"
	"path/filepath"
	"testing"
)

func mustWrite(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestCreateDirectoryAndFile(t *testing.T) {
	files := NewFiles()
	root := t.TempDir()

	dir := filepath.Join(root, "a", "b")
	if ok, msg := files.CreateDirectory(dir); !ok {
		t.Fatalf("CreateDirectory: %s", msg)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("nested directory not created: %v", err)
	}

	file := filepath.Join(dir, "notes.txt")
	if ok, msg := files.CreateFile(file); !ok {
		t.Fatalf("CreateFile: %s", msg)
	}
	if _, err := os.Stat(file); err != nil {
		t.Fatalf("file not created: %v", err)
	}

	// Re-creating must not truncate existing content.
	mustWrite(t, file, "keep me")
	if ok, msg := files.CreateFile(file); !ok {
		t.Fatalf("CreateFile on existing: %s", msg)
	}
	data, err := os.ReadFile(file)
	if err != nil || string(data) != "keep me" {
		t.Fatalf("existing content lost: %q, %v", data, err)
	}
}

func TestMoveAndCopy(t *testing.T) {
	files := NewFiles()
	root := t.TempDir()

	src := filepath.Join(root, "src.txt")
	dst := filepath.Join(root, "dst.txt")
	mustWrite(t, src, "payload")

	if ok, msg := files.Move(src, dst); !ok {
		t.Fatalf("Move: %s", msg)
	}
	if _, err := os.Stat(src); !os.IsNotExist(err) {
		t.Fatal("source survived the move")
	}
	data, err := os.ReadFile(dst)
	if err != nil || string(data) != "payload" {
		t.Fatalf("moved content = %q, %v", data, err)
	}

	copied := filepath.Join(root, "copy.txt")
	if ok, msg := files.Copy(dst, copied); !ok {
		t.Fatalf("Copy: %s", msg)
	}
	data, err = os.ReadFile(copied)
	if err != nil || string(data) != "payload" {
		t.Fatalf("copied content = %q, %v", data, err)
	}
	if _, err := os.Stat(dst); err != nil {
		t.Fatal("copy removed the source")
	}

	if ok, _ := files.Move(filepath.Join(root, "absent"), dst); ok {
		t.Fatal("moving a missing file succeeded")
	}
}

func TestDelete(t *testing.T) {
	files := NewFiles()
	root := t.TempDir()

	file := filepath.Join(root, "gone.txt")
	mustWrite(t, file, "x")
	if ok, msg := files.Delete(file); !ok {
		t.Fatalf("Delete file: %s", msg)
	}
	if _, err := os.Stat(file); !os.IsNotExist(err) {
		t.Fatal("file still present")
	}

	dir := filepath.Join(root, "tree", "deep")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(dir, "f.txt"), "x")
	if ok, msg := files.Delete(filepath.Join(root, "tree")); !ok {
		t.Fatalf("Delete directory: %s", msg)
	}
	if _, err := os.Stat(filepath.Join(root, "tree")); !os.IsNotExist(err) {
		t.Fatal("directory tree still present")
	}

	if ok, _ := files.Delete(filepath.Join(root, "never-existed")); ok {
		t.Fatal("deleting a missing path succeeded")
	}
}

func TestFind(t *testing.T) {
	files := NewFiles()
	root := t.TempDir()

	if err := os.MkdirAll(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatal(err)
	}
	mustWrite(t, filepath.Join(root, "main.go"), "")
	mustWrite(t, filepath.Join(root, "sub", "util.go"), "")
	mustWrite(t, filepath.Join(root, "README.md"), "")

	t.Run("glob pattern", func(t *testing.T) {
		matches, err := files.Find("*.go", root)
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		if len(matches) != 2 {
			t.Fatalf("matches = %v, want 2 entries", matches)
		}
	})

	t.Run("case-insensitive substring", func(t *testing.T) {
		matches, err := files.Find("readme", root)
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		if len(matches) != 1 || filepath.Base(matches[0]) != "README.md" {
			t.Fatalf("matches = %v", matches)
		}
	})

	t.Run("no matches", func(t *testing.T) {
		matches, err := files.Find("*.rs", root)
		if err != nil {
			t.Fatalf("Find: %v", err)
		}
		if len(matches) != 0 {
			t.Fatalf("matches = %v, want none", matches)
		}
	})
}

func TestList(t *testing.T) {
	files := NewFiles()
	root := t.TempDir()

	mustWrite(t, filepath.Join(root, "b.txt"), "")
	mustWrite(t, filepath.Join(root, "a.txt"), "")
	mustWrite(t, filepath.Join(root, ".hidden"), "")

	entries, err := files.List(root, false)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{filepath.Join(root, "a.txt"), filepath.Join(root, "b.txt")}
	if len(entries) != 2 || entries[0] != want[0] || entries[1] != want[1] {
		t.Fatalf("entries = %v, want %v", entries, want)
	}

	entries, err = files.List(root, true)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("entries with hidden = %v, want 3", entries)
	}

	if _, err := files.List(filepath.Join(root, "missing"), false); err == nil {
		t.Fatal("listing a missing directory succeeded")
	}
}
