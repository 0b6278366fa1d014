package server

import (
	"sync"
	"testing"

	"github.com/charmbracelet/ssh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionGateRejectsOverCapacity(t *testing.T) {
	gate := newSessionGate(1)
	handler := gate.middleware(quietLogger())

	entered := make(chan struct{})
	release := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		handler(func(ssh.Session) {
			close(entered)
			<-release
		})(newFakeSession(tcpAddr("192.0.2.1")))
	}()
	<-entered
	assert.Equal(t, 1, gate.Active())

	second := newFakeSession(tcpAddr("192.0.2.2"))
	called := false
	handler(func(ssh.Session) { called = true })(second)
	assert.False(t, called)
	assert.Contains(t, second.Output(), "server busy")

	close(release)
	wg.Wait()
	assert.Zero(t, gate.Active())

	third := newFakeSession(tcpAddr("192.0.2.3"))
	handler(func(ssh.Session) { called = true })(third)
	require.True(t, called, "slot is reusable after release")
}

func TestSessionGateMinimumOne(t *testing.T) {
	gate := newSessionGate(0)
	assert.True(t, gate.acquire())
	assert.False(t, gate.acquire())
	gate.release()
}
