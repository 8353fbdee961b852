package auth

import "context"

// Identity is the authenticated caller, threaded through request context by
// the Authenticate middleware. Handlers read it; nothing mutates it.
type Identity struct {
	UserID string
	Role   Role
}

type contextKey struct{}

func ContextWithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, contextKey{}, id)
}

// IdentityFromContext returns the caller identity, if the request was
// authenticated.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(contextKey{}).(Identity)
	return id, ok
}

// OwnsOrAdmin reports whether the caller is the referenced owner or an admin.
func (id Identity) OwnsOrAdmin(ownerID string) bool {
	return id.UserID == ownerID || id.Role.IsAdmin()
}
