package server

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	bm "github.com/charmbracelet/wish/bubbletea"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/prefs"
	"portfolio-terminal/internal/router"
	"portfolio-terminal/internal/theme"
	"portfolio-terminal/internal/tui"
)

// sessionHandler builds the portfolio program for each SSH session.
type sessionHandler struct {
	store    prefs.Store
	source   *content.Source
	logger   *log.Logger
	fallback theme.Mode
	resolve  theme.ResolveOptions
	now      func() time.Time
	renderer func(ssh.Session) *lipgloss.Renderer
}

// teaHandler initializes the client's theme before the model exists, so the
// first frame already uses the persisted palette.
func (h *sessionHandler) teaHandler(s ssh.Session) (tea.Model, []tea.ProgramOption) {
	ctx := s.Context()
	pty, _, _ := s.Pty()

	id, ok := router.IdentityFrom(ctx)
	if !ok {
		id = router.ClientIdentity(s.User(), s.PublicKey(), s.RemoteAddr())
	}

	opts := h.resolve
	opts.Term = pty.Term
	if opts.Term == "" {
		opts.Term = "dumb"
	}
	root := theme.NewStyleRoot(h.renderer(s), opts)

	logger := h.logger.With("client", id.Key)
	ctrl := theme.NewController(
		prefs.Namespace(h.store, id.Key),
		root,
		theme.WithDefault(h.fallback),
		theme.WithLogger(logger),
	)
	mode := ctrl.Initialize(ctx)
	logger.Debug("theme initialized", "mode", mode, "persistent", ctrl.Persistent())

	model := tui.New(h.source.Profile(), ctrl, root, tui.Options{
		Width:   pty.Window.Width,
		Height:  pty.Window.Height,
		Context: ctx,
		Now:     h.now,
	})
	return model, []tea.ProgramOption{tea.WithAltScreen(), tea.WithMouseCellMotion()}
}

func defaultRenderer(s ssh.Session) *lipgloss.Renderer {
	return bm.MakeRenderer(s)
}
