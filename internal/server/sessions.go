package server

import (
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
)

// sessionGate caps concurrent sessions across all clients.
type sessionGate struct {
	slots  chan struct{}
	active atomic.Int64
}

func newSessionGate(limit int) *sessionGate {
	if limit <= 0 {
		limit = 1
	}
	return &sessionGate{slots: make(chan struct{}, limit)}
}

func (g *sessionGate) acquire() bool {
	select {
	case g.slots <- struct{}{}:
		g.active.Add(1)
		return true
	default:
		return false
	}
}

func (g *sessionGate) release() {
	g.active.Add(-1)
	<-g.slots
}

// Active returns the number of admitted sessions.
func (g *sessionGate) Active() int { return int(g.active.Load()) }

func (g *sessionGate) middleware(logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			if !g.acquire() {
				logger.Warn("session rejected", "event", "max_sessions_reached", "remote_ip", remoteIP(s), "max", cap(g.slots))
				wish.Println(s, "server busy, try again shortly")
				return
			}
			defer g.release()
			next(s)
		}
	}
}
