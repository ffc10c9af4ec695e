// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 The go-pin-vault Authors

// Package session tracks the time-boxed "unlocked" state of the vault.
//
// A Manager is an explicit per-owner object, never a package-level
// singleton, so multiple owners or test instances do not interfere. It
// holds no key material: the session only gates whether vault operations
// are permitted without re-challenging the user, while the PIN itself is
// still required on every operation to derive the encryption key.
package session

import (
	"errors"
	"sync"
	"time"
)

// DefaultTTL is the sliding expiration window applied when the Manager is
// constructed with a non-positive ttl.
const DefaultTTL = 5 * time.Minute

// ErrSessionExpired is returned by Gate when no valid session is active:
// the vault was never unlocked, was explicitly locked, or the session
// timed out. Callers must re-unlock; no partial work happens after it.
var ErrSessionExpired = errors.New("vault session expired")

// Manager is the process-local session state machine. The zero value is
// not usable; construct via NewManager.
type Manager struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time

	unlocked  bool
	expiresAt time.Time
}

// Option configures a Manager.
type Option func(*Manager)

// WithClock replaces the time source, used by tests to advance time
// deterministically.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) {
		m.now = now
	}
}

// NewManager constructs a locked Manager with the given sliding ttl.
func NewManager(ttl time.Duration, opts ...Option) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	m := &Manager{ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Begin starts a new session expiring ttl from now. Called after a
// successful PIN setup or PIN verification.
func (m *Manager) Begin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unlocked = true
	m.expiresAt = m.now().Add(m.ttl)
}

// Gate returns nil when a valid session is active, ErrSessionExpired
// otherwise. Expiry is evaluated against the clock on every call rather
// than cached, since time advances between check and use. A session found
// expired is collapsed to the locked state.
func (m *Manager) Gate() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.unlocked {
		return ErrSessionExpired
	}
	if !m.now().Before(m.expiresAt) {
		m.unlocked = false
		m.expiresAt = time.Time{}
		return ErrSessionExpired
	}
	return nil
}

// Extend pushes the expiry forward by ttl. Called after every successful
// vault operation (sliding expiration). Extending a locked or expired
// session is a no-op: only Begin may resurrect a session.
func (m *Manager) Extend() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.unlocked || !m.now().Before(m.expiresAt) {
		return
	}
	m.expiresAt = m.now().Add(m.ttl)
}

// Lock clears the session immediately.
func (m *Manager) Lock() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.unlocked = false
	m.expiresAt = time.Time{}
}

// Unlocked reports whether a valid session is currently active.
func (m *Manager) Unlocked() bool {
	return m.Gate() == nil
}

// ExpiresAt returns the current session deadline, or the zero time when
// the vault is locked.
func (m *Manager) ExpiresAt() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.unlocked {
		return time.Time{}
	}
	return m.expiresAt
}
