// Package identity resolves the display name shown by the CLI. It is purely
// cosmetic: there is no authentication behind it.
package identity

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/recordkeeper/internal/client/repositories/slots"
)

const (
	DefaultUsername = "User"

	sessionKey = "username"
)

// Resolver picks the username from an explicit value, the session slot or
// the default, in that order.
type Resolver struct {
	session slots.Repository
}

// NewResolver keeps the session in session; pass a MemoryRepository for a
// per-process session.
func NewResolver(session slots.Repository) *Resolver {
	return &Resolver{session: session}
}

// Resolve returns the username to display. A non-empty explicit value other
// than the default is remembered in the session.
func (r *Resolver) Resolve(ctx context.Context, explicit string) (string, error) {
	explicit = strings.TrimSpace(explicit)
	if explicit != "" {
		if explicit != DefaultUsername {
			if err := r.session.Set(ctx, sessionKey, []byte(explicit)); err != nil {
				return "", fmt.Errorf("remember username: %w", err)
			}
		}
		return explicit, nil
	}

	saved, err := r.session.Get(ctx, sessionKey)
	if err != nil {
		return "", fmt.Errorf("read session: %w", err)
	}
	if len(saved) > 0 {
		return string(saved), nil
	}
	return DefaultUsername, nil
}

// Logout forgets the remembered username.
func (r *Resolver) Logout(ctx context.Context) error {
	return r.session.Delete(ctx, sessionKey)
}
