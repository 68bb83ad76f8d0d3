package conversation

import (
	"context"
	"time"
)

// DefaultIdleTimeout is how long an untouched session survives.
const DefaultIdleTimeout = 30 * time.Minute

// SessionStore persists dialogue sessions keyed by phone number. Get
// returns (nil, nil) when no live session exists; expired sessions are
// treated as absent.
type SessionStore interface {
	Get(ctx context.Context, phone string) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, phone string) error

	// ActiveCount returns how many live sessions are tracked.
	ActiveCount(ctx context.Context) (int, error)
}
