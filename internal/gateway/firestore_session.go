package gateway

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

// SessionAuth is an auth provider that can vouch for the signed-in user
type SessionAuth interface {
	Subscribe(fn AuthStateFunc) (unsubscribe func())
	TokenSource() oauth2.TokenSource
}

// UserFirestore is a Store that talks to Firestore as the signed-in user,
// so the project's security rules decide what each request may touch.
// The client is rebuilt on every sign-in and dropped on sign-out; while
// signed out every operation fails with an auth error.
type UserFirestore struct {
	projectID string
	opts      []option.ClientOption

	mu          sync.RWMutex
	store       *FirestoreStore
	err         error // why the last sign-in has no client
	unsubscribe func()
}

// NewUserFirestore binds a store to auth. Bind it before anything else
// subscribes to auth, so the client is ready when they are told.
func NewUserFirestore(projectID string, auth SessionAuth, opts ...option.ClientOption) *UserFirestore {
	s := &UserFirestore{projectID: projectID, opts: opts}
	s.unsubscribe = auth.Subscribe(func(id *Identity) {
		var source oauth2.TokenSource
		if id != nil {
			source = auth.TokenSource()
		}
		s.rebind(source)
	})
	return s
}

// rebind swaps the client for one authorized by source, or none
func (s *UserFirestore) rebind(source oauth2.TokenSource) {
	var next *FirestoreStore
	var err error
	if source != nil {
		opts := append([]option.ClientOption{option.WithTokenSource(source)}, s.opts...)
		next, err = NewFirestoreStore(context.Background(), s.projectID, opts...)
	}

	s.mu.Lock()
	prev := s.store
	s.store = next
	s.err = err
	s.mu.Unlock()

	if prev != nil {
		_ = prev.Close()
	}
}

// Close stops following auth and releases the client
func (s *UserFirestore) Close() error {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.mu.Lock()
	prev := s.store
	s.store = nil
	s.mu.Unlock()
	if prev == nil {
		return nil
	}
	return prev.Close()
}

func (s *UserFirestore) current(op string) (*FirestoreStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.err != nil {
		return nil, s.err
	}
	if s.store == nil {
		return nil, AuthError(op, MsgSignedOut)
	}
	return s.store, nil
}

// Get implements Store
func (s *UserFirestore) Get(ctx context.Context, path string) (Document, error) {
	store, err := s.current(OpGet)
	if err != nil {
		return Document{}, err
	}
	return store.Get(ctx, path)
}

// Set implements Store
func (s *UserFirestore) Set(ctx context.Context, path string, data map[string]any) error {
	store, err := s.current(OpSet)
	if err != nil {
		return err
	}
	return store.Set(ctx, path, data)
}

// Add implements Store
func (s *UserFirestore) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	store, err := s.current(OpAdd)
	if err != nil {
		return "", err
	}
	return store.Add(ctx, collection, data)
}

// Update implements Store
func (s *UserFirestore) Update(ctx context.Context, path string, partial map[string]any) error {
	store, err := s.current(OpUpdate)
	if err != nil {
		return err
	}
	return store.Update(ctx, path, partial)
}

// Delete implements Store
func (s *UserFirestore) Delete(ctx context.Context, path string) error {
	store, err := s.current(OpDelete)
	if err != nil {
		return err
	}
	return store.Delete(ctx, path)
}

// Query implements Store
func (s *UserFirestore) Query(ctx context.Context, q Query) ([]Document, error) {
	store, err := s.current(OpQuery)
	if err != nil {
		return nil, err
	}
	return store.Query(ctx, q)
}
