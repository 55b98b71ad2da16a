// Package clientstate holds state owned by the requesting client, not the
// server: the bookmark set, per-model vote flags, recent searches, and the
// subscription flag. Everything is built on a small key-value capability so
// the same logic runs against browser-style local storage, an in-process
// map, or Redis.
package clientstate

import (
	"context"
	"errors"
	"sync"
)

// ErrNoKey is returned by Get for absent keys.
var ErrNoKey = errors.New("clientstate: no such key")

// KV is the storage capability: string keys, string values, no scanning.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// MemoryKV is an in-process KV, one per client session.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]string
}

// NewMemoryKV returns an empty in-process KV.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]string)}
}

// Get implements KV.
func (m *MemoryKV) Get(ctx context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return "", ErrNoKey
	}
	return v, nil
}

// Set implements KV.
func (m *MemoryKV) Set(ctx context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

// Remove implements KV.
func (m *MemoryKV) Remove(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Prefixed namespaces a KV under a fixed key prefix, used to keep one
// shared backing store (Redis) partitioned per client id.
type Prefixed struct {
	kv     KV
	prefix string
}

// NewPrefixed wraps kv so every key gets the prefix.
func NewPrefixed(kv KV, prefix string) *Prefixed {
	return &Prefixed{kv: kv, prefix: prefix}
}

// Get implements KV.
func (p *Prefixed) Get(ctx context.Context, key string) (string, error) {
	return p.kv.Get(ctx, p.prefix+key)
}

// Set implements KV.
func (p *Prefixed) Set(ctx context.Context, key, value string) error {
	return p.kv.Set(ctx, p.prefix+key, value)
}

// Remove implements KV.
func (p *Prefixed) Remove(ctx context.Context, key string) error {
	return p.kv.Remove(ctx, p.prefix+key)
}
