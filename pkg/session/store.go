package session

import (
	"context"
	"errors"
)

// ErrNoSession is returned when no game is running.
var ErrNoSession = errors.New("no active session")

// Store owns zero or one Session.
// Implementations must be thread-safe.
type Store interface {
	// Get returns a copy of the active session.
	Get(ctx context.Context) (*Session, error)
	// Set replaces the active session unconditionally.
	Set(ctx context.Context, s *Session) error
	// Update runs fn on the active session with exclusive access for the
	// whole call.
	Update(ctx context.Context, fn func(s *Session) error) error
	// Clear drops the active session.
	Clear(ctx context.Context) error
}
