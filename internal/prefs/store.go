// Package prefs persists small per-client preferences such as the selected
// theme. Stores are durable key-value slots: Get reports ErrNotFound for keys
// that were never written, Set overwrites.
package prefs

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	// ErrNotFound is returned by Get when the key has never been set.
	ErrNotFound = errors.New("preference not found")
	// ErrUnknownDriver is returned by Open for an unsupported backend name.
	ErrUnknownDriver = errors.New("unknown preference store driver")
	// ErrInvalidKey is returned for empty keys.
	ErrInvalidKey = errors.New("invalid preference key")
)

// Store is a durable key-value slot.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// Entry is a stored preference as reported by List.
type Entry struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Lister is implemented by stores that can enumerate their keys.
type Lister interface {
	List(ctx context.Context, prefix string) ([]Entry, error)
}

// Namespace scopes every key of store under scope, so many clients can share
// one backend while each owns its own "theme" slot.
func Namespace(store Store, scope string) Store {
	scope = strings.Trim(scope, "/")
	if store == nil || scope == "" {
		return store
	}
	return &namespaced{store: store, prefix: scope + "/"}
}

type namespaced struct {
	store  Store
	prefix string
}

func (n *namespaced) Get(ctx context.Context, key string) (string, error) {
	return n.store.Get(ctx, n.prefix+key)
}

func (n *namespaced) Set(ctx context.Context, key, value string) error {
	return n.store.Set(ctx, n.prefix+key, value)
}

func (n *namespaced) List(ctx context.Context, prefix string) ([]Entry, error) {
	lister, ok := n.store.(Lister)
	if !ok {
		return nil, fmt.Errorf("list %q: backend does not support listing", n.prefix)
	}
	entries, err := lister.List(ctx, n.prefix+prefix)
	if err != nil {
		return nil, err
	}
	for i := range entries {
		entries[i].Key = strings.TrimPrefix(entries[i].Key, n.prefix)
	}
	return entries, nil
}

func validateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return ErrInvalidKey
	}
	return nil
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
}
