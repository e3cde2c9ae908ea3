// Package kvstore implements a file-backed key-value store. Each key maps
// to one JSON document under a namespace directory; writes go through a
// temp file and an atomic rename while holding the namespace lock.
package kvstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"syscall"
)

// ErrInvalidKey is returned when a key is empty or sanitizes to nothing.
var ErrInvalidKey = errors.New("invalid key")

const (
	docSuffix    = ".json"
	lockFileName = ".lock"
)

// Store is a key-value namespace rooted at a directory.
type Store struct {
	dir string
}

// Open returns a store rooted at dir, creating the directory if needed.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the namespace directory.
func (s *Store) Dir() string {
	return s.dir
}

// Save stores value under key as an indented JSON document, replacing any
// previous document.
func (s *Store) Save(key string, value any) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	data = append(data, '\n')

	return s.withLock(func() error {
		return writeFileAtomic(path, data)
	})
}

// Load decodes the document stored under key into value. A missing key
// returns nil without touching value, so the caller's default applies. On
// a read or decode failure the contents of value must be discarded.
func (s *Store) Load(key string, value any) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	var data []byte
	err = s.withLock(func() error {
		var readErr error
		data, readErr = os.ReadFile(path)
		return readErr
	})
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", key, err)
	}

	if err := json.Unmarshal(data, value); err != nil {
		return fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return nil
}

// Remove deletes the document stored under key, if any.
func (s *Store) Remove(key string) error {
	path, err := s.keyPath(key)
	if err != nil {
		return err
	}

	return s.withLock(func() error {
		err := os.Remove(path)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("remove %s: %w", key, err)
		}
		return nil
	})
}

// Clear deletes every document in the namespace.
func (s *Store) Clear() error {
	return s.withLock(func() error {
		entries, err := os.ReadDir(s.dir)
		if os.IsNotExist(err) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read store dir: %w", err)
		}

		for _, entry := range entries {
			if entry.IsDir() || !strings.HasSuffix(entry.Name(), docSuffix) {
				continue
			}
			if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
				return fmt.Errorf("remove %s: %w", entry.Name(), err)
			}
		}
		return nil
	})
}

func (s *Store) keyPath(key string) (string, error) {
	name := SanitizeKey(key)
	if name == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(s.dir, name+docSuffix), nil
}

// withLock executes fn while holding an exclusive lock on the namespace.
func (s *Store) withLock(fn func() error) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create store dir: %w", err)
	}

	lockFile, err := os.OpenFile(filepath.Join(s.dir, lockFileName), os.O_CREATE|os.O_RDWR, 0o644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	return fn()
}

// writeFileAtomic writes data to path via a temp file and rename.
func writeFileAtomic(path string, data []byte) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmpFile.Name()

	_, err = tmpFile.Write(data)
	if closeErr := tmpFile.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(name)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := os.Rename(name, path); err != nil {
		os.Remove(name)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

var (
	unsafeKeyChars = regexp.MustCompile(`[^a-z0-9._-]`)
	hyphenRuns     = regexp.MustCompile(`-+`)
)

// SanitizeKey converts a logical key to a safe file name: lowercase, with
// anything outside [a-z0-9._-] collapsed to hyphens.
func SanitizeKey(key string) string {
	key = strings.ToLower(strings.TrimSpace(key))
	key = unsafeKeyChars.ReplaceAllString(key, "-")
	key = hyphenRuns.ReplaceAllString(key, "-")
	return strings.Trim(key, "-.")
}
