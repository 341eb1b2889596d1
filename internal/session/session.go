// Package session implements server-held login sessions. A session lives in
// Redis (or an in-process fallback store) keyed by an opaque id; the browser
// only ever holds that id, wrapped in a signed cookie so it cannot be
// tampered with. The resolved Identity is the single typed session context
// handlers consult instead of loose role flags.
package session

import (
	"context"
	"time"
)

// Roles carried by a session.
const (
	RoleAdmin     = "admin"
	RoleSubmitter = "submitter"
)

// Identity is the typed session context: Anonymous (zero value), a
// Submitter with their user id, or an Admin.
type Identity struct {
	Role   string
	UserID uint64
	Email  string
}

// IsAnonymous reports whether no one is logged in.
func (i Identity) IsAnonymous() bool { return i.Role == "" }

// IsAdmin reports whether the session belongs to an admin.
func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// IsSubmitter reports whether the session belongs to a submitter with a
// known user id.
func (i Identity) IsSubmitter() bool { return i.Role == RoleSubmitter && i.UserID != 0 }

// Store persists sessions server-side. Create returns the new opaque
// session id. Get reports (identity, found); an expired or unknown id is
// simply not found, never an error the caller must distinguish.
type Store interface {
	Create(ctx context.Context, ident Identity, ttl time.Duration) (string, error)
	Get(ctx context.Context, sid string) (Identity, bool, error)
	Delete(ctx context.Context, sid string) error
}
