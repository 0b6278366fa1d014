package server

import (
	"bytes"
	"io"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/ssh"
)

type fakeContext struct {
	ssh.Context
	mu     sync.Mutex
	values map[any]any
}

func (c *fakeContext) Value(key any) any {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.values[key]
}

func (c *fakeContext) SetValue(key, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.values[key] = value
}

func (c *fakeContext) SessionID() string                       { return "test-session" }
func (c *fakeContext) Done() <-chan struct{}                   { return nil }
func (c *fakeContext) Err() error                              { return nil }
func (c *fakeContext) Deadline() (deadline time.Time, ok bool) { return time.Time{}, false }

type fakeSession struct {
	ssh.Session
	user   string
	remote net.Addr
	key    ssh.PublicKey
	term   string
	ctx    *fakeContext

	mu  sync.Mutex
	out bytes.Buffer
}

func newFakeSession(remote net.Addr) *fakeSession {
	return &fakeSession{
		user:   "guest",
		remote: remote,
		term:   "xterm-256color",
		ctx:    &fakeContext{values: map[any]any{}},
	}
}

func (f *fakeSession) User() string             { return f.user }
func (f *fakeSession) RemoteAddr() net.Addr     { return f.remote }
func (f *fakeSession) PublicKey() ssh.PublicKey { return f.key }
func (f *fakeSession) Context() ssh.Context     { return f.ctx }
func (f *fakeSession) Stderr() io.ReadWriter    { return &f.out }

func (f *fakeSession) Write(p []byte) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.Write(p)
}

func (f *fakeSession) Output() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.out.String()
}

func (f *fakeSession) Pty() (ssh.Pty, <-chan ssh.Window, bool) {
	return ssh.Pty{Term: f.term, Window: ssh.Window{Width: 90, Height: 30}}, nil, true
}

type testAddr string

func (a testAddr) Network() string { return "test" }
func (a testAddr) String() string  { return string(a) }

func tcpAddr(ip string) net.Addr {
	return &net.TCPAddr{IP: net.ParseIP(ip), Port: 2222}
}
