package session

import (
	"context"
	"errors"
)

// Roles stored on user accounts. Role 0 sees all offices, role 1 is
// scoped to its own office trigram.
const (
	RoleAdmin   = 0
	RoleRegular = 1
)

// Account is the immutable per-request view of the logged-in user.
// Middleware builds it from the session cookie; handlers never mutate it.
type Account struct {
	UserID    string
	Name      string
	Role      int
	Office    string
	SessionID string
}

// IsAdmin reports whether the account has the administrator role.
func (a *Account) IsAdmin() bool {
	return a != nil && a.Role == RoleAdmin
}

// IsCentral reports whether the account belongs to the given central office.
func (a *Account) IsCentral(trigram string) bool {
	return a != nil && a.Office == trigram
}

// Flash levels rendered by the layout template.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
)

// Flash is a one-shot status message shown on the next rendered page.
type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// ErrSessionNotFound is returned when a session has no stored state.
var ErrSessionNotFound = errors.New("session not found")

// Store holds transient per-session state (flash messages) between the
// redirect and the next render.
type Store interface {
	// PushFlash appends a flash message to the session's queue.
	PushFlash(ctx context.Context, sessionID string, f Flash) error

	// PopFlashes drains and returns the session's queued flash messages.
	PopFlashes(ctx context.Context, sessionID string) ([]Flash, error)

	// Close releases backing resources.
	Close() error
}
