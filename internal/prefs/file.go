package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"portfolio-terminal/internal/logging"
)

// FileStore keeps every preference in a single JSON document. Writes go to a
// temp file in the same directory and are renamed into place. A document that
// no longer decodes reads as empty and is replaced by the next write.
type FileStore struct {
	path   string
	mu     sync.Mutex
	now    func() time.Time
	logger *log.Logger
}

func NewFileStore(path string, logger *log.Logger) (*FileStore, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	if path == "" {
		path = filepath.Join(os.TempDir(), "portfolio-terminal-prefs.json")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("creating preference directory: %w", err)
	}
	return &FileStore{path: path, now: time.Now, logger: logger}, nil
}

func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(_ context.Context, key string) (string, error) {
	if err := validateKey(key); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.readLocked()
	if err != nil {
		return "", err
	}
	row, ok := rows[key]
	if !ok {
		return "", ErrNotFound
	}
	return row.Value, nil
}

func (s *FileStore) Set(_ context.Context, key, value string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.readLocked()
	if err != nil {
		return err
	}
	rows[key] = Entry{Key: key, Value: value, UpdatedAt: s.now().UTC()}
	return s.writeLocked(rows)
}

func (s *FileStore) List(_ context.Context, prefix string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.readLocked()
	if err != nil {
		return nil, err
	}
	out := make([]Entry, 0, len(rows))
	for key, row := range rows {
		if strings.HasPrefix(key, prefix) {
			row.Key = key
			out = append(out, row)
		}
	}
	sortEntries(out)
	return out, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) readLocked() (map[string]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.path, err)
	}
	if len(data) == 0 {
		return map[string]Entry{}, nil
	}
	rows := map[string]Entry{}
	if err := json.Unmarshal(data, &rows); err != nil {
		s.logger.Warn("preference file is corrupted, starting empty", "path", s.path, "err", err)
		return map[string]Entry{}, nil
	}
	return rows, nil
}

func (s *FileStore) writeLocked(rows map[string]Entry) error {
	data, err := json.MarshalIndent(rows, "", "  ")
	if err != nil {
		return err
	}
	tmpFile, err := os.CreateTemp(filepath.Dir(s.path), ".prefs-*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmpFile.Name()
	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Chmod(0o600); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	return nil
}
