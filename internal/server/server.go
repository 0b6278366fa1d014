// Package server runs the portfolio over SSH with wish.
package server

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	bm "github.com/charmbracelet/wish/bubbletea"
	gossh "golang.org/x/crypto/ssh"

	"portfolio-terminal/internal/config"
	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/prefs"
	"portfolio-terminal/internal/router"
	"portfolio-terminal/internal/theme"
)

const (
	version         = "dev"
	shutdownTimeout = 10 * time.Second
)

// Options wires the runtime to its dependencies.
type Options struct {
	Config config.Config
	// Store holds every client's preferences; each session gets its own
	// namespace. A nil store makes themes session-only.
	Store  prefs.Store
	Source *content.Source
	Logger *log.Logger
}

// Runtime wires config + middleware + Wish server as a testable unit.
type Runtime struct {
	cfg           config.Config
	middlewareIDs []string
	server        *ssh.Server
	sessions      *sessionGate
	logger        *log.Logger
}

func New(opts Options) (*Runtime, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	source := opts.Source
	if source == nil {
		source = content.Static(content.Default())
	}
	fallback, err := theme.ParseMode(cfg.DefaultTheme)
	if err != nil {
		fallback = theme.DefaultMode
	}

	handler := &sessionHandler{
		store:    opts.Store,
		source:   source,
		logger:   logger,
		fallback: fallback,
		resolve:  theme.ResolveOptions{ForceColor: cfg.ForceColor, ForceMono: cfg.ForceMono},
		now:      time.Now,
		renderer: defaultRenderer,
	}

	gate := newSessionGate(cfg.MaxSessions)
	chain := router.DefaultChain(router.ChainOptions{
		RateLimit:    RateLimitMiddleware(cfg.RateLimitPerMinute, cfg.RateBurst, logger),
		SessionLimit: gate.middleware(logger),
		Logger:       logger,
	})

	// The program handler is innermost, so it goes first.
	middleware := append([]wish.Middleware{bm.Middleware(handler.teaHandler)}, router.MiddlewareFromDescriptors(chain)...)

	sshServer, err := wish.NewServer(
		wish.WithAddress(cfg.SSHAddress()),
		wish.WithHostKeyPath(cfg.HostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithPublicKeyAuth(acceptPublicKey),
		wish.WithKeyboardInteractiveAuth(acceptKeyboardInteractive),
		wish.WithMiddleware(middleware...),
	)
	if err != nil {
		return nil, err
	}

	return &Runtime{
		cfg:           cfg,
		middlewareIDs: router.Names(chain),
		server:        sshServer,
		sessions:      gate,
		logger:        logger,
	}, nil
}

// Every client is let in; the offered key only scopes its preferences.
func acceptPublicKey(ssh.Context, ssh.PublicKey) bool { return true }

func acceptKeyboardInteractive(ssh.Context, gossh.KeyboardInteractiveChallenge) bool { return true }

func (r *Runtime) MiddlewareIDs() []string {
	out := make([]string, len(r.middlewareIDs))
	copy(out, r.middlewareIDs)
	return out
}

func (r *Runtime) Address() string {
	return r.server.Addr
}

// ActiveSessions reports the sessions admitted by the session cap.
func (r *Runtime) ActiveSessions() int { return r.sessions.Active() }

// Run serves until ctx is cancelled, then drains sessions.
func (r *Runtime) Run(ctx context.Context) error {
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		select {
		case <-ctx.Done():
		case <-stop:
			return
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := r.server.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("ssh shutdown", "err", err)
		}
	}()

	r.logger.Info("ssh listening",
		"event", "startup",
		"version", version,
		"addr", r.Address(),
		"middleware", r.middlewareIDs,
		"host_key_path", r.cfg.HostKeyPath,
		"idle_timeout", r.cfg.IdleTimeout,
		"max_sessions", r.cfg.MaxSessions,
	)
	err := r.server.ListenAndServe()
	if errors.Is(err, ssh.ErrServerClosed) || err == nil {
		return nil
	}

	return err
}
