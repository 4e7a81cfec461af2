// Package storage persists values as whole JSON files. Every store replaces the complete file,
// every retrieve decodes the complete file. There is no caching and no partial update.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gitlab.com/dirk.krummacker/youthere/internal/logger"
)

// Directory names one of the places where files are kept.
type Directory int

const (
	// Documents holds user-generated data that cannot be recreated, e.g. the contact list.
	Documents Directory = iota
	// Caches holds data that can be regenerated.
	Caches
)

func (d Directory) String() string {
	switch d {
	case Documents:
		return "documents"
	case Caches:
		return "caches"
	default:
		return fmt.Sprintf("directory(%d)", int(d))
	}
}

// ErrNotExist is returned by Retrieve when the requested file is missing.
var ErrNotExist = errors.New("file does not exist")

// Storage maps directories to paths on the local filesystem.
type Storage struct {
	documents string
	caches    string
	lggr      logger.Logger
}

// New creates a Storage rooted at the given directories. Both directories are created if they do
// not exist yet.
func New(documentsDir string, cachesDir string, lggr logger.Logger) (*Storage, error) {
	s := &Storage{lggr: lggr}
	var err error
	if s.documents, err = prepare(documentsDir); err != nil {
		return nil, err
	}
	if s.caches, err = prepare(cachesDir); err != nil {
		return nil, err
	}
	return s, nil
}

func prepare(dir string) (string, error) {
	if dir == "" {
		return "", errors.New("storage directory must not be empty")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("could not create %s: %w", abs, err)
	}
	return abs, nil
}

// URL returns the absolute path of the specified directory.
func (s *Storage) URL(dir Directory) (string, error) {
	switch dir {
	case Documents:
		return s.documents, nil
	case Caches:
		return s.caches, nil
	default:
		return "", fmt.Errorf("could not create URL for %s", dir)
	}
}

func (s *Storage) path(fileName string, dir Directory) (string, error) {
	base, err := s.URL(dir)
	if err != nil {
		return "", err
	}
	if fileName == "" || fileName == "." || fileName == ".." || fileName != filepath.Base(fileName) {
		return "", fmt.Errorf("invalid file name %q", fileName)
	}
	return filepath.Join(base, fileName), nil
}

// Store encodes value as JSON and writes it to fileName in dir. An existing file is removed first.
func (s *Storage) Store(value any, dir Directory, fileName string) error {
	path, err := s.path(fileName, dir)
	if err != nil {
		return err
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("could not encode %s: %w", fileName, err)
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return err
	}
	s.lggr.Debugw(fmt.Sprintf("%s was successfully saved to %s", fileName, dir), "path", path, "bytes", len(data))
	return nil
}

// Retrieve decodes the JSON in fileName in dir into out, which must be a pointer.
func (s *Storage) Retrieve(fileName string, dir Directory, out any) error {
	path, err := s.path(fileName, dir)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("file at path %s: %w", path, ErrNotExist)
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return fmt.Errorf("no data at %s", path)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("could not decode %s: %w", path, err)
	}
	return nil
}

// Clear removes all files from dir.
func (s *Storage) Clear(dir Directory) error {
	base, err := s.URL(dir)
	if err != nil {
		return err
	}
	entries, err := os.ReadDir(base)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		if err := os.RemoveAll(filepath.Join(base, entry.Name())); err != nil {
			return err
		}
	}
	s.lggr.Debugw("directory cleared", "directory", dir.String(), "entries", len(entries))
	return nil
}

// Remove deletes fileName from dir. It is not an error if the file does not exist.
func (s *Storage) Remove(fileName string, dir Directory) error {
	path, err := s.path(fileName, dir)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// FileExists reports whether fileName exists in dir.
func (s *Storage) FileExists(fileName string, dir Directory) bool {
	path, err := s.path(fileName, dir)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}
