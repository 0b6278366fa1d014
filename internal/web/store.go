package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"portfolio-terminal/internal/prefs"
)

// CookieMaxAge keeps a preference for one year.
const CookieMaxAge = 365 * 24 * 60 * 60

// CookieStore keeps preferences in browser cookies. It lives for one request:
// reads see the request cookie or a value written earlier in the same request.
type CookieStore struct {
	c       *gin.Context
	secure  bool
	written map[string]string
}

// NewCookieStore binds a store to one request.
func NewCookieStore(c *gin.Context, secure bool) *CookieStore {
	return &CookieStore{c: c, secure: secure, written: make(map[string]string)}
}

func (s *CookieStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := s.written[key]; ok {
		return v, nil
	}
	v, err := s.c.Cookie(key)
	if errors.Is(err, http.ErrNoCookie) {
		return "", prefs.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading cookie %q: %w", key, err)
	}
	return v, nil
}

// Set writes the cookie readable by page scripts, so it is not HttpOnly.
func (s *CookieStore) Set(_ context.Context, key, value string) error {
	if key == "" {
		return prefs.ErrInvalidKey
	}
	if s.c.Writer.Written() {
		return fmt.Errorf("setting cookie %q: response already started", key)
	}
	s.c.SetSameSite(http.SameSiteLaxMode)
	s.c.SetCookie(key, value, CookieMaxAge, "/", "", s.secure, false)
	s.written[key] = value
	return nil
}
