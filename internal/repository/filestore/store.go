// Package filestore keeps every key of the key-value store in one JSON document.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"clubroster/internal/domain"
)

const (
	BackupSuffix    = ".backup"
	TmpSuffix       = ".tmp"
	CorruptSuffix   = ".corrupt"
	FilePermissions = 0o644
)

// Store is a file-backed domain.KeyValueStore. Every write rewrites the whole
// document through a temp file and rename, keeping the previous version as a backup.
type Store struct {
	mu     sync.RWMutex
	path   string
	values map[string]string
	logger *slog.Logger
}

// Open reads path if it exists. A document that cannot be parsed is moved
// aside with CorruptSuffix and the store starts empty.
func Open(path string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Store{path: path, values: make(map[string]string), logger: logger}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) == 0 {
		return s, nil
	}
	if err := json.Unmarshal(data, &s.values); err != nil {
		s.values = make(map[string]string)
		aside := path + CorruptSuffix
		if rerr := os.Rename(path, aside); rerr != nil {
			logger.Warn("failed to move corrupt data file aside", "path", path, "err", rerr)
		}
		logger.Warn("data file is corrupt, starting empty", "path", path, "moved_to", aside, "err", err)
	}
	return s, nil
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key, value string) error {
	return s.SetMany(ctx, domain.Entry{Key: key, Value: value})
}

// SetMany applies all entries and writes the document once.
func (s *Store) SetMany(ctx context.Context, entries ...domain.Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make(map[string]string, len(s.values)+len(entries))
	for k, v := range s.values {
		next[k] = v
	}
	for _, e := range entries {
		next[e.Key] = e.Value
	}
	if err := s.writeLocked(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

// writeLocked persists values; caller must hold the write lock.
func (s *Store) writeLocked(values map[string]string) error {
	data, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode data file: %w", err)
	}

	tmpFile := s.path + TmpSuffix
	if err := os.WriteFile(tmpFile, data, FilePermissions); err != nil {
		return fmt.Errorf("write %s: %w", tmpFile, err)
	}

	if _, err := os.Stat(s.path); err == nil {
		if err := copyFile(s.path, s.path+BackupSuffix); err != nil {
			s.logger.Warn("failed to create backup", "path", s.path, "err", err)
		}
	}

	if err := os.Rename(tmpFile, s.path); err != nil {
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, FilePermissions)
}

func (s *Store) Close() error { return nil }
