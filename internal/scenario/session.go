package scenario

import (
	"errors"
	"time"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNotFound        = errors.New("scenario not found")
)

// Session scopes saved scenarios. Everything saved under it is discarded when it ends or idles out.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	LastSeen  time.Time `json:"last_seen"`
}
