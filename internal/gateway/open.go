package gateway

import (
	"context"
	"strings"
)

// FirebaseConfig selects the Firebase project to talk to
type FirebaseConfig struct {
	APIKey    string
	ProjectID string
}

// OpenFirebase connects the Identity Toolkit auth and a Firestore store
// that acts as the signed-in user. tokens keeps the session between runs
// and may be nil.
func OpenFirebase(ctx context.Context, cfg FirebaseConfig, tokens TokenStore) (*Gateway, error) {
	if strings.TrimSpace(cfg.ProjectID) == "" {
		return nil, InvalidError("gateway.OpenFirebase", "missing project id")
	}
	auth, err := NewIdentityAuth(ctx, cfg.APIKey, tokens)
	if err != nil {
		return nil, err
	}
	store := NewUserFirestore(cfg.ProjectID, auth)
	return &Gateway{Auth: auth, Store: store, closeFn: store.Close}, nil
}
