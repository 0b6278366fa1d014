package content

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"portfolio-terminal/internal/logging"
)

// Source serves the current profile and swaps it when the backing file
// changes. Readers never block on reloads.
type Source struct {
	path       string
	resumePath string
	logger     *log.Logger
	current    atomic.Pointer[Profile]
}

// NewSource loads the profile at path, or the embedded default when path is
// empty. resumePath is attached to every loaded profile.
func NewSource(path, resumePath string, logger *log.Logger) (*Source, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	s := &Source{path: path, resumePath: resumePath, logger: logger}
	p, err := s.load()
	if err != nil {
		return nil, err
	}
	s.current.Store(&p)
	return s, nil
}

// Static wraps a fixed profile.
func Static(p Profile) *Source {
	s := &Source{}
	s.current.Store(&p)
	return s
}

// Profile returns the current profile.
func (s *Source) Profile() Profile {
	return *s.current.Load()
}

// Path returns the watched file, or "" for the embedded profile.
func (s *Source) Path() string { return s.path }

// Reload re-reads the backing file. On failure the previous profile stays
// current.
func (s *Source) Reload() error {
	p, err := s.load()
	if err != nil {
		return err
	}
	s.current.Store(&p)
	return nil
}

func (s *Source) load() (Profile, error) {
	var (
		p   Profile
		err error
	)
	if s.path == "" {
		p = Default()
	} else if p, err = Load(s.path); err != nil {
		return Profile{}, err
	}
	if s.resumePath != "" {
		p.Resume.Path = s.resumePath
	}
	return p, nil
}

// Watch reloads the profile whenever its file is written or replaced, until
// ctx is done. It returns immediately for the embedded profile.
func (s *Source) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating content watcher: %w", err)
	}
	defer watcher.Close()

	// Editors replace files on save, so watch the directory.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		return fmt.Errorf("watching %s: %w", s.path, err)
	}

	name := filepath.Base(s.path)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Warn("content reload failed, keeping previous profile", "path", s.path, "err", err)
				continue
			}
			s.logger.Info("content reloaded", "path", s.path)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("content watcher error", "err", err)
		}
	}
}
