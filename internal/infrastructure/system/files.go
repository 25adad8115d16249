package system

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/maysielabs/maysie/internal/ports"
)

// Files handles unprivileged file and directory management.
type Files struct{}

// NewFiles builds the file-operations collaborator.
func NewFiles() *Files {
	return &Files{}
}

// CreateDirectory implements ports.FileOperations.
func (f *Files) CreateDirectory(path string) (bool, string) {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return false, err.Error()
	}
	return true, "Directory created: " + path
}

// CreateFile creates an empty file, leaving an existing one untouched.
func (f *Files) CreateFile(path string) (bool, string) {
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, err.Error()
	}
	file.Close()
	return true, "File created: " + path
}

// Move implements ports.FileOperations.
func (f *Files) Move(source, destination string) (bool, string) {
	if err := os.Rename(source, destination); err != nil {
		return false, err.Error()
	}
	return true, fmt.Sprintf("Moved %s to %s", source, destination)
}

// Copy implements ports.FileOperations for regular files.
func (f *Files) Copy(source, destination string) (bool, string) {
	data, err := os.ReadFile(source)
	if err != nil {
		return false, err.Error()
	}
	info, err := os.Stat(source)
	if err != nil {
		return false, err.Error()
	}
	if err := os.WriteFile(destination, data, info.Mode().Perm()); err != nil {
		return false, err.Error()
	}
	return true, fmt.Sprintf("Copied %s to %s", source, destination)
}

// Delete removes a file, or a directory tree when path is a directory.
func (f *Files) Delete(path string) (bool, string) {
	info, err := os.Stat(path)
	if err != nil {
		return false, err.Error()
	}
	if info.IsDir() {
		if err := os.RemoveAll(path); err != nil {
			return false, err.Error()
		}
		return true, "Directory deleted: " + path
	}
	if err := os.Remove(path); err != nil {
		return false, err.Error()
	}
	return true, "File deleted: " + path
}

// Find implements ports.FileOperations with a recursive glob-style walk.
func (f *Files) Find(pattern, root string) ([]string, error) {
	var matches []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if d.IsDir() {
			return nil
		}
		ok, matchErr := filepath.Match(pattern, d.Name())
		if matchErr != nil {
			return matchErr
		}
		if ok || strings.Contains(strings.ToLower(d.Name()), strings.ToLower(pattern)) {
			matches = append(matches, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return matches, nil
}

// List implements ports.FileOperations.
func (f *Files) List(path string, showHidden bool) ([]string, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if !showHidden && strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		names = append(names, filepath.Join(path, entry.Name()))
	}
	sort.Strings(names)
	return names, nil
}

var _ ports.FileOperations = (*Files)(nil)
