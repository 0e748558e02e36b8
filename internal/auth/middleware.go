package auth

import (
	"context"
	"net/http"
	"strconv"
)

// Identifier resolves the acting user from request headers. A session token
// in X-Auth-Token wins; the legacy X-User-Id header is accepted for older
// frontends. Admin checks always read the user row so a revoked flag takes
// effect immediately, token claims notwithstanding.
type Identifier struct {
	users    UserStore
	sessions *Sessions
}

func NewIdentifier(users UserStore, sessions *Sessions) *Identifier {
	return &Identifier{users: users, sessions: sessions}
}

// UserID returns the internal id of the requesting user, if any.
func (i *Identifier) UserID(r *http.Request) (int64, bool) {
	if tok := r.Header.Get("X-Auth-Token"); tok != "" {
		if id, ok := i.sessions.UserID(tok); ok {
			return id, true
		}
	}
	if v := r.Header.Get("X-User-Id"); v != "" {
		if id, err := strconv.ParseInt(v, 10, 64); err == nil && id > 0 {
			return id, true
		}
	}
	return 0, false
}

// IsAdmin reports whether the requesting user holds the admin flag.
func (i *Identifier) IsAdmin(ctx context.Context, r *http.Request) bool {
	id, ok := i.UserID(r)
	if !ok {
		return false
	}
	admin, err := i.users.IsAdmin(ctx, id)
	if err != nil {
		return false
	}
	return admin
}
