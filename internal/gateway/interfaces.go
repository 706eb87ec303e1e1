package gateway

import "context"

// Identity is an authenticated session as reported by the auth provider
type Identity struct {
	UID   string
	Email string
	Token string
}

// AuthStateFunc receives nil when signed out and the identity when signed in
type AuthStateFunc func(*Identity)

// Auth is the remote authentication provider.
type Auth interface {
	// Subscribe registers fn, invokes it once with the current state, and
	// again on every sign-in and sign-out. The returned func unsubscribes.
	Subscribe(fn AuthStateFunc) (unsubscribe func())
	SignIn(ctx context.Context, email, password string) (*Identity, error)
	// SignUp creates an account and signs it in.
	SignUp(ctx context.Context, email, password string) (*Identity, error)
	SignOut(ctx context.Context) error
	Current() *Identity
}

// Restorer is implemented by providers that keep sessions between runs.
// Restore resumes the saved session, if any, and reports it through the
// auth state subscribers.
type Restorer interface {
	Restore(ctx context.Context) error
}

// Store is the path-addressed document database.
type Store interface {
	Get(ctx context.Context, path string) (Document, error)
	Set(ctx context.Context, path string, data map[string]any) error
	Add(ctx context.Context, collection string, data map[string]any) (string, error)
	Update(ctx context.Context, path string, partial map[string]any) error
	Delete(ctx context.Context, path string) error
	Query(ctx context.Context, q Query) ([]Document, error)
}

// Gateway bundles the two remote collaborators
type Gateway struct {
	Auth  Auth
	Store Store

	closeFn func() error
}

// Close releases backend connections
func (g *Gateway) Close() error {
	if g.closeFn == nil {
		return nil
	}
	return g.closeFn()
}
