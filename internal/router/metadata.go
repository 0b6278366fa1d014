package router

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

// SessionInfo describes a running session.
type SessionInfo struct {
	ID       string
	Identity Identity
	Term     string
	Width    int
	Height   int
	Started  time.Time
}

// SessionFrom returns the metadata stored by the session-metadata middleware.
func SessionFrom(ctx context.Context) (SessionInfo, bool) {
	if ctx == nil {
		return SessionInfo{}, false
	}
	info, ok := ctx.Value(metadataKey).(SessionInfo)
	return info, ok
}

func sessionMetadata(logger *log.Logger, now func() time.Time) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			ctx := s.Context()
			id, ok := IdentityFrom(ctx)
			if !ok {
				id = ClientIdentity(s.User(), s.PublicKey(), s.RemoteAddr())
			}
			info := SessionInfo{
				ID:       ctx.SessionID(),
				Identity: id,
				Started:  now(),
			}
			if pty, _, active := s.Pty(); active {
				info.Term = pty.Term
				info.Width = pty.Window.Width
				info.Height = pty.Window.Height
			}
			ctx.SetValue(metadataKey, info)

			logger.Info("session started",
				"event", "session_start",
				"session", shortID(info.ID),
				"client", id.Key,
				"user", id.User,
				"remote_ip", id.RemoteIP,
				"term", info.Term,
			)
			next(s)
			logger.Info("session ended",
				"event", "session_end",
				"session", shortID(info.ID),
				"client", id.Key,
				"duration_ms", now().Sub(info.Started).Milliseconds(),
			)
		}
	}
}

func shortID(id string) string {
	if len(id) > 12 {
		return id[:12]
	}
	return id
}
