// Copyright (c) 2026 vspaze
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"context"

	"github.com/alexedwards/scs/v2"
)

// Store wraps the session manager with typed accessors. The navigation
// state is stored as a JSON string so it survives the gob round trip
// without type registration.
type Store struct {
	sm *scs.SessionManager
}

// NewStore returns a Store over sm.
func NewStore(sm *scs.SessionManager) *Store {
	return &Store{sm: sm}
}

// Manager exposes the underlying session manager for middleware wiring.
func (s *Store) Manager() *scs.SessionManager {
	return s.sm
}

// IsAuthenticated reports whether the session belongs to a logged-in admin.
func (s *Store) IsAuthenticated(ctx context.Context) bool {
	return s.sm.GetBool(ctx, keyAuthenticated)
}

// AdminID returns the logged-in account's ID, zero when anonymous.
func (s *Store) AdminID(ctx context.Context) int64 {
	return s.sm.GetInt64(ctx, keyAdminID)
}

// Login marks the session authenticated. The caller must renew the session
// token first.
func (s *Store) Login(ctx context.Context, adminID int64) {
	s.sm.Put(ctx, keyAuthenticated, true)
	s.sm.Put(ctx, keyAdminID, adminID)
}

// Logout destroys all session state.
func (s *Store) Logout(ctx context.Context) error {
	return s.sm.Destroy(ctx)
}

// NavState returns the raw navigation state JSON, empty when unset.
func (s *Store) NavState(ctx context.Context) string {
	return s.sm.GetString(ctx, keyNavState)
}

// SetNavState stores the navigation state JSON.
func (s *Store) SetNavState(ctx context.Context, raw string) {
	s.sm.Put(ctx, keyNavState, raw)
}

// SetCredentials stashes freshly issued credentials JSON for the next
// page load. They are popped exactly once.
func (s *Store) SetCredentials(ctx context.Context, raw string) {
	s.sm.Put(ctx, keyCredentials, raw)
}

// PopCredentials returns and removes stashed credentials JSON, empty
// when none are pending disclosure.
func (s *Store) PopCredentials(ctx context.Context) string {
	return s.sm.PopString(ctx, keyCredentials)
}
