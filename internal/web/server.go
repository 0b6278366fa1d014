// Package web serves the portfolio page over HTTP with a cookie-backed theme
// preference.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"portfolio-terminal/internal/content"
	"portfolio-terminal/internal/logging"
	"portfolio-terminal/internal/theme"
)

//go:embed templates/*.html
var templateFS embed.FS

const shutdownTimeout = 5 * time.Second

// Options configures the HTTP surface.
type Options struct {
	Source  *content.Source
	Logger  *log.Logger
	Default theme.Mode
	// SecureCookies marks the theme cookie Secure when served behind TLS.
	SecureCookies bool
	Now           func() time.Time
}

// Server is the gin-backed portfolio site.
type Server struct {
	engine     *gin.Engine
	source     *content.Source
	logger     *log.Logger
	fallback   theme.Mode
	secure     bool
	now        func() time.Time
	stylesheet string
}

// New builds the router. A nil Source serves the embedded profile.
func New(opts Options) *Server {
	if opts.Source == nil {
		opts.Source = content.Static(content.Default())
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if _, err := theme.ParseMode(string(opts.Default)); err != nil {
		opts.Default = theme.DefaultMode
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	s := &Server{
		source:     opts.Source,
		logger:     opts.Logger,
		fallback:   opts.Default,
		secure:     opts.SecureCookies,
		now:        opts.Now,
		stylesheet: stylesheet(),
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), requestLogger(opts.Logger))
	engine.SetHTMLTemplate(template.Must(template.ParseFS(templateFS, "templates/*.html")))

	engine.GET("/", s.index)
	engine.GET("/theme", s.currentTheme)
	engine.POST("/theme", s.toggleTheme)
	engine.GET("/theme.css", s.themeCSS)
	engine.GET("/resume", s.resume)
	engine.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	s.engine = engine
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.engine }

// Run serves on addr until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// controller initializes a theme controller for this request. The returned
// root holds the class for <html>, set before any byte of the page is written.
func (s *Server) controller(c *gin.Context) (*theme.Controller, *htmlRoot) {
	root := &htmlRoot{}
	ctrl := theme.NewController(
		NewCookieStore(c, s.secure),
		root,
		theme.WithDefault(s.fallback),
		theme.WithLogger(s.logger),
	)
	ctrl.Initialize(c.Request.Context())
	return ctrl, root
}

type pageJob struct {
	content.Job
	Summary template.HTML
}

type pageProject struct {
	content.Project
	Description template.HTML
}

type page struct {
	Profile     content.Profile
	Class       string
	Dark        bool
	Icon        string
	ToggleLabel string
	About       template.HTML
	Experience  []pageJob
	Projects    []pageProject
	Resume      bool
	Copyright   string
}

func (s *Server) index(c *gin.Context) {
	ctrl, root := s.controller(c)
	profile := s.source.Profile()
	mode := ctrl.Mode()

	data := page{
		Profile:     profile,
		Class:       root.Class(),
		Dark:        mode.IsDark(),
		Icon:        theme.Icon(mode),
		ToggleLabel: theme.ToggleLabel(mode),
		About:       content.Markdown(profile.About),
		Resume:      profile.Resume.Available(),
		Copyright:   profile.Copyright(s.now().Year()),
	}
	for _, job := range profile.Experience {
		data.Experience = append(data.Experience, pageJob{Job: job, Summary: content.Markdown(job.Summary)})
	}
	for _, project := range profile.Projects {
		data.Projects = append(data.Projects, pageProject{Project: project, Description: content.Markdown(project.Description)})
	}

	c.Header("Cache-Control", "no-store")
	c.HTML(http.StatusOK, "index.html", data)
}

func (s *Server) currentTheme(c *gin.Context) {
	ctrl, _ := s.controller(c)
	c.JSON(http.StatusOK, gin.H{"theme": ctrl.Mode(), "persistent": ctrl.Persistent()})
}

func (s *Server) toggleTheme(c *gin.Context) {
	ctrl, _ := s.controller(c)
	mode := ctrl.Toggle(c.Request.Context())

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"theme": mode, "persistent": ctrl.Persistent()})
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

func wantsJSON(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}

func (s *Server) themeCSS(c *gin.Context) {
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(s.stylesheet))
}

func (s *Server) resume(c *gin.Context) {
	r := s.source.Profile().Resume
	if !r.Available() {
		c.String(http.StatusNotFound, "résumé not available")
		return
	}
	info, err := os.Stat(r.Path)
	if err != nil || info.IsDir() {
		s.logger.Warn("resume file missing", "path", r.Path, "err", err)
		c.String(http.StatusNotFound, "résumé not available")
		return
	}
	c.FileAttachment(r.Path, r.Filename)
}
