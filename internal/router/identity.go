package router

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net"
	"strings"

	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	gossh "golang.org/x/crypto/ssh"
)

type contextKey string

const (
	identityKey contextKey = "client-identity"
	metadataKey contextKey = "session-metadata"
)

// Identity scopes per-client state such as the theme preference. It is not
// an authorization decision.
type Identity struct {
	// Key is "ssh:<fingerprint>" for public-key clients and
	// "anon:<observer hash>" otherwise.
	Key         string
	User        string
	RemoteIP    string
	Fingerprint string
}

// Anonymous reports whether the client offered no public key.
func (i Identity) Anonymous() bool { return i.Fingerprint == "" }

// ClientIdentity derives the identity of a client from what it presented.
func ClientIdentity(user string, key ssh.PublicKey, remote net.Addr) Identity {
	id := Identity{User: user, RemoteIP: remoteIP(remote)}
	if key != nil {
		id.Fingerprint = gossh.FingerprintSHA256(key)
		id.Key = "ssh:" + id.Fingerprint
		return id
	}
	id.Key = "anon:" + ObserverHash(user+"@"+id.RemoteIP)
	return id
}

// ObserverHash is a short stable digest used for clients without a key.
func ObserverHash(s string) string {
	sum := sha256.Sum256([]byte(strings.TrimSpace(s)))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:12]
}

// IdentityFrom returns the identity stored by the client-identity middleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

func clientIdentity() wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(s ssh.Session) {
			id := ClientIdentity(s.User(), s.PublicKey(), s.RemoteAddr())
			s.Context().SetValue(identityKey, id)
			next(s)
		}
	}
}

func remoteIP(addr net.Addr) string {
	if addr == nil {
		return "unknown"
	}
	raw := strings.TrimSpace(addr.String())
	host, _, err := net.SplitHostPort(raw)
	if err != nil {
		host = strings.Trim(raw, "[]")
	}
	if host == "" {
		return "unknown"
	}
	return host
}
