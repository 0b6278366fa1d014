package router

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"io"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gossh "golang.org/x/crypto/ssh"
)

type fakeContext struct {
	ssh.Context
	values map[any]any
}

func (c *fakeContext) Value(key any) any                       { return c.values[key] }
func (c *fakeContext) SetValue(key, value any)                 { c.values[key] = value }
func (c *fakeContext) SessionID() string                       { return "5f0c2b9e7a41d3c8aa90" }
func (c *fakeContext) Done() <-chan struct{}                   { return nil }
func (c *fakeContext) Err() error                              { return nil }
func (c *fakeContext) Deadline() (deadline time.Time, ok bool) { return time.Time{}, false }

type fakeSession struct {
	ssh.Session
	user   string
	remote net.Addr
	key    ssh.PublicKey
	pty    bool
	ctx    *fakeContext
	out    bytes.Buffer
	exit   int
}

func newFakeSession(user string) *fakeSession {
	return &fakeSession{
		user:   user,
		remote: &net.TCPAddr{IP: net.ParseIP("198.51.100.14"), Port: 2048},
		pty:    true,
		ctx:    &fakeContext{values: map[any]any{}},
		exit:   -1,
	}
}

func (f *fakeSession) User() string                { return f.user }
func (f *fakeSession) RemoteAddr() net.Addr        { return f.remote }
func (f *fakeSession) PublicKey() ssh.PublicKey    { return f.key }
func (f *fakeSession) Context() ssh.Context        { return f.ctx }
func (f *fakeSession) Write(p []byte) (int, error) { return f.out.Write(p) }
func (f *fakeSession) Stderr() io.ReadWriter       { return &f.out }
func (f *fakeSession) Exit(code int) error         { f.exit = code; return nil }
func (f *fakeSession) Pty() (ssh.Pty, <-chan ssh.Window, bool) {
	if !f.pty {
		return ssh.Pty{}, nil, false
	}
	return ssh.Pty{Term: "xterm-256color", Window: ssh.Window{Width: 120, Height: 40}}, nil, true
}

func testKey(t *testing.T) ssh.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	key, err := gossh.NewPublicKey(pub)
	require.NoError(t, err)
	return key
}

// compose applies middleware the way wish.WithMiddleware does.
func compose(h ssh.Handler, mw []wish.Middleware) ssh.Handler {
	for _, m := range mw {
		h = m(h)
	}
	return h
}

func TestDefaultChainOrder(t *testing.T) {
	chain := DefaultChain(ChainOptions{})
	assert.Equal(t, []string{"rate-limit", "session-limit", "active-term", "client-identity", "session-metadata"}, Names(chain))
}

func TestMiddlewareFromDescriptorsRunsInChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Descriptor {
		return Descriptor{Name: name, Middleware: func(next ssh.Handler) ssh.Handler {
			return func(s ssh.Session) {
				order = append(order, name)
				next(s)
			}
		}}
	}
	chain := []Descriptor{mark("first"), mark("second"), {Name: "nil"}, mark("third")}

	mw := MiddlewareFromDescriptors(chain)
	require.Len(t, mw, 4)

	compose(func(ssh.Session) { order = append(order, "handler") }, mw)(newFakeSession("guest"))

	assert.Equal(t, []string{"first", "second", "third", "handler"}, order)
}

func TestDefaultChainPopulatesContextBeforeHandler(t *testing.T) {
	var logs bytes.Buffer
	logger := log.NewWithOptions(&logs, log.Options{Formatter: log.LogfmtFormatter})
	s := newFakeSession("guest")
	s.key = testKey(t)

	called := false
	fns := MiddlewareFromDescriptors(DefaultChain(ChainOptions{Logger: logger}))
	compose(func(sess ssh.Session) {
		called = true
		id, ok := IdentityFrom(sess.Context())
		require.True(t, ok)
		assert.True(t, strings.HasPrefix(id.Key, "ssh:SHA256:"))

		info, ok := SessionFrom(sess.Context())
		require.True(t, ok)
		assert.Equal(t, id, info.Identity)
		assert.Equal(t, "xterm-256color", info.Term)
		assert.Equal(t, 120, info.Width)
		assert.Equal(t, 40, info.Height)
	}, fns)(s)

	assert.True(t, called)
	assert.Contains(t, logs.String(), "event=session_start")
	assert.Contains(t, logs.String(), "event=session_end")
	assert.Contains(t, logs.String(), "session=5f0c2b9e7a41")
}

func TestDefaultChainRejectsSessionsWithoutPTY(t *testing.T) {
	s := newFakeSession("guest")
	s.pty = false

	fns := MiddlewareFromDescriptors(DefaultChain(ChainOptions{}))
	called := false
	compose(func(ssh.Session) { called = true }, fns)(s)

	assert.False(t, called)
	assert.Equal(t, 1, s.exit)
}

func TestClientIdentity(t *testing.T) {
	remote := &net.TCPAddr{IP: net.ParseIP("2001:db8::1"), Port: 22}
	key := testKey(t)

	withKey := ClientIdentity("guest", key, remote)
	assert.Equal(t, "ssh:"+gossh.FingerprintSHA256(key), withKey.Key)
	assert.False(t, withKey.Anonymous())
	assert.Equal(t, "2001:db8::1", withKey.RemoteIP)

	sameKeyElsewhere := ClientIdentity("other", key, &net.TCPAddr{IP: net.ParseIP("192.0.2.1"), Port: 1})
	assert.Equal(t, withKey.Key, sameKeyElsewhere.Key, "key identity ignores user and address")

	anon := ClientIdentity("guest", nil, remote)
	assert.True(t, anon.Anonymous())
	assert.Equal(t, "anon:"+ObserverHash("guest@2001:db8::1"), anon.Key)
	assert.NotEqual(t, anon.Key, ClientIdentity("visitor", nil, remote).Key)

	assert.Equal(t, "unknown", ClientIdentity("guest", nil, nil).RemoteIP)
}

func TestObserverHash(t *testing.T) {
	assert.Equal(t, "E3B0C44298FC", ObserverHash(""))
	assert.Len(t, ObserverHash("guest@192.0.2.1"), 12)
	assert.Equal(t, ObserverHash("guest@192.0.2.1"), ObserverHash(" guest@192.0.2.1 "))
}

func TestContextAccessorsOnPlainContext(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)
	_, ok = SessionFrom(context.Background())
	assert.False(t, ok)
}
