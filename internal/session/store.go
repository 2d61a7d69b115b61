package session

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a session id is unknown or has expired.
var ErrNotFound = errors.New("session not found")

// Session binds a browser session to the auth token it obtained at
// login. The token is the only state the console persists; everything
// shown on a page is re-fetched from the EMS API on every navigation.
type Session struct {
	ID    string
	Token string
}

// Store persists sessions across console restarts.
type Store interface {
	Save(ctx context.Context, sess Session) error
	Get(ctx context.Context, id string) (Session, error)
	Delete(ctx context.Context, id string) error
}

// NewID generates an opaque session identifier.
func NewID() string {
	return uuid.NewString()
}
