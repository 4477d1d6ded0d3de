package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/sjson"
)

// lockTimeout bounds how long SetValue waits for a concurrent writer.
const lockTimeout = 5 * time.Second

// SetValue writes key (a dotted path such as "ado.auth_scheme") into the
// JSONC file at path as a string, creating the file and its directory if
// needed. Comments are not preserved on write.
func SetValue(path, key, value string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	return withLock(path, func() error {
		existing := []byte("{}")
		if data, err := os.ReadFile(path); err == nil {
			existing = jsonc.ToJSON(data)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("reading config: %w", err)
		}

		updated, err := sjson.SetBytes(existing, key, value)
		if err != nil {
			return fmt.Errorf("setting key %q: %w", key, err)
		}

		if err := os.WriteFile(path, updated, 0600); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}
		return nil
	})
}

// withLock acquires an exclusive lock on path.lock, runs fn, then releases.
func withLock(path string, fn func() error) error {
	lockPath := path + ".lock"
	fileLock := flock.New(lockPath)

	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(ctx, 100*time.Millisecond)
	if err != nil {
		return fmt.Errorf("acquiring lock on %s: %w", lockPath, err)
	}
	if !locked {
		return fmt.Errorf("timed out acquiring lock on %s", lockPath)
	}
	defer fileLock.Unlock()

	return fn()
}
