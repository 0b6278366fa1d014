// Package router assembles the SSH middleware chain that runs before the
// portfolio program starts.
package router

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"

	"portfolio-terminal/internal/logging"
)

// Descriptor names one middleware in the chain.
type Descriptor struct {
	Name       string
	Middleware wish.Middleware
}

// ChainOptions supplies the limiters owned by the server.
type ChainOptions struct {
	RateLimit    wish.Middleware
	SessionLimit wish.Middleware
	Logger       *log.Logger
	Now          func() time.Time
}

// DefaultChain returns the session chain in execution order: rate limiting,
// the session cap, PTY enforcement, client identity, then session metadata.
func DefaultChain(opts ChainOptions) []Descriptor {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return []Descriptor{
		{Name: "rate-limit", Middleware: orPassthrough(opts.RateLimit)},
		{Name: "session-limit", Middleware: orPassthrough(opts.SessionLimit)},
		{Name: "active-term", Middleware: activeterm.Middleware()},
		{Name: "client-identity", Middleware: clientIdentity()},
		{Name: "session-metadata", Middleware: sessionMetadata(opts.Logger, opts.Now)},
	}
}

// MiddlewareFromDescriptors converts an execution-ordered chain into the
// order wish.WithMiddleware expects, where the last middleware runs first.
func MiddlewareFromDescriptors(chain []Descriptor) []wish.Middleware {
	out := make([]wish.Middleware, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		out = append(out, orPassthrough(chain[i].Middleware))
	}
	return out
}

// Names lists descriptor names in execution order.
func Names(chain []Descriptor) []string {
	out := make([]string, 0, len(chain))
	for _, d := range chain {
		out = append(out, d.Name)
	}
	return out
}

func orPassthrough(m wish.Middleware) wish.Middleware {
	if m != nil {
		return m
	}
	return func(next ssh.Handler) ssh.Handler { return next }
}
