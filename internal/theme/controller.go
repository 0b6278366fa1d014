package theme

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"

	"portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/prefs"
)

// PreferenceKey is the store key holding the selected mode.
const PreferenceKey = "theme"

// Controller owns the theme mode of one client session. It is the single
// writer of the persisted preference and projects the mode onto a Scope.
//
// A Controller is not safe for concurrent use; each SSH session and each HTTP
// request builds its own.
type Controller struct {
	store    prefs.Store
	scope    Scope
	key      string
	fallback Mode
	logger   *log.Logger

	mode        Mode
	initialized bool
	persistent  bool
}

// Option configures a Controller.
type Option func(*Controller)

// WithDefault sets the mode used when nothing valid is stored.
func WithDefault(mode Mode) Option {
	return func(c *Controller) {
		if _, err := ParseMode(string(mode)); err == nil {
			c.fallback = mode
		}
	}
}

// WithLogger sets the logger for degraded-store warnings.
func WithLogger(logger *log.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithKey overrides PreferenceKey.
func WithKey(key string) Option {
	return func(c *Controller) {
		if key != "" {
			c.key = key
		}
	}
}

// NewController wires a controller to its store and style scope. Either may
// be nil: a nil store gives session-only theming, a nil scope skips styling.
func NewController(store prefs.Store, scope Scope, opts ...Option) *Controller {
	c := &Controller{
		store:    store,
		scope:    scope,
		key:      PreferenceKey,
		fallback: DefaultMode,
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.mode = c.fallback
	return c
}

// Initialize loads the persisted mode and applies it to the scope. An absent
// or malformed value is replaced by the default, which is written back at
// once. When the store cannot be read the session runs on the default without
// persistence. Initialize must finish before the first frame is rendered.
func (c *Controller) Initialize(ctx context.Context) Mode {
	c.mode = c.fallback
	c.persistent = false

	if c.store == nil {
		c.logger.Debug("no preference store, theme is session-only", "mode", c.mode)
		c.finishInit()
		return c.mode
	}

	raw, err := c.store.Get(ctx, c.key)
	switch {
	case err == nil:
		mode, parseErr := ParseMode(raw)
		if parseErr == nil {
			c.mode = mode
			c.persistent = true
			break
		}
		c.logger.Warn("stored theme is malformed, restoring default", "value", raw, "default", c.fallback)
		c.persist(ctx)
	case errors.Is(err, prefs.ErrNotFound):
		c.persist(ctx)
	default:
		c.logger.Warn("preference store unavailable, theme is session-only", "err", err, "mode", c.mode)
	}

	c.finishInit()
	return c.mode
}

// Toggle flips the mode, persists it and re-applies the style flag. A failed
// write is logged; the in-memory mode and the scope still change.
func (c *Controller) Toggle(ctx context.Context) Mode {
	if !c.initialized {
		c.Initialize(ctx)
	}

	c.mode = c.mode.Opposite()
	if c.store != nil {
		c.persist(ctx)
	}
	c.apply()
	return c.mode
}

// Mode returns the active mode. Before Initialize it reports the default.
func (c *Controller) Mode() Mode { return c.mode }

// Initialized reports whether Initialize has run.
func (c *Controller) Initialized() bool { return c.initialized }

// Persistent reports whether the last store round-trip succeeded, i.e. the
// active mode is durable.
func (c *Controller) Persistent() bool { return c.persistent }

func (c *Controller) finishInit() {
	c.apply()
	c.initialized = true
}

func (c *Controller) persist(ctx context.Context) {
	if err := c.store.Set(ctx, c.key, c.mode.String()); err != nil {
		c.persistent = false
		c.logger.Warn("could not persist theme", "err", err, "mode", c.mode)
		return
	}
	c.persistent = true
}

func (c *Controller) apply() {
	if c.scope != nil {
		c.scope.SetDark(c.mode.IsDark())
	}
}
