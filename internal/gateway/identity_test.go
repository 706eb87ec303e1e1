package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
)

type savedTokens struct {
	mu    sync.Mutex
	token string
}

func (s *savedTokens) GetRefreshToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *savedTokens) SetRefreshToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

// identityServer answers like the Identity Toolkit and secure token
// endpoints for one account, ada@example.com / secret1.
type identityServer struct {
	*httptest.Server
	calls int32
}

func newIdentityServer(t *testing.T) *identityServer {
	t.Helper()
	srv := &identityServer{}

	reply := func(w http.ResponseWriter, code int, body any) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(body)
	}
	fail := func(w http.ResponseWriter, message string) {
		reply(w, http.StatusBadRequest, map[string]any{"error": map[string]any{"code": 400, "message": message}})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/verifyPassword", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&srv.calls, 1)
		var req struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.Email != "ada@example.com" || req.Password != "secret1" {
			fail(w, "INVALID_LOGIN_CREDENTIALS")
			return
		}
		reply(w, http.StatusOK, map[string]any{
			"localId": "u1", "email": "ada@example.com",
			"idToken": "id-1", "refreshToken": "refresh-1", "expiresIn": "3600",
		})
	})
	mux.HandleFunc("/getAccountInfo", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&srv.calls, 1)
		var req struct {
			IDToken string `json:"idToken"`
		}
		_ = json.NewDecoder(r.Body).Decode(&req)
		if req.IDToken != "id-2" {
			fail(w, "INVALID_ID_TOKEN")
			return
		}
		reply(w, http.StatusOK, map[string]any{
			"users": []map[string]any{{"localId": "u1", "email": "ada@example.com"}},
		})
	})
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&srv.calls, 1)
		_ = r.ParseForm()
		if r.Form.Get("grant_type") != "refresh_token" || r.Form.Get("refresh_token") != "refresh-1" {
			fail(w, "INVALID_REFRESH_TOKEN")
			return
		}
		reply(w, http.StatusOK, map[string]any{
			"access_token": "id-2", "id_token": "id-2", "token_type": "Bearer",
			"refresh_token": "refresh-1", "expires_in": "3600", "user_id": "u1",
		})
	})

	srv.Server = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestIdentityAuth(t *testing.T, srv *identityServer, tokens TokenStore) *IdentityAuth {
	t.Helper()
	a, err := NewIdentityAuth(context.Background(), "test-key", tokens, option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatalf("NewIdentityAuth: %v", err)
	}
	a.tokenURL = srv.URL + "/token"
	return a
}

func TestIdentityAuth_SessionIsSaved(t *testing.T) {
	ctx := context.Background()
	srv := newIdentityServer(t)
	tokens := &savedTokens{}
	a := newTestIdentityAuth(t, srv, tokens)

	if _, err := a.SignIn(ctx, "ada@example.com", "wrong"); !IsAuth(err) {
		t.Fatalf("expected auth error, got %v", err)
	}
	if tokens.GetRefreshToken() != "" || a.TokenSource() != nil {
		t.Error("a failed sign in must not save a session")
	}

	id, err := a.SignIn(ctx, "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	if id.UID != "u1" || id.Token != "id-1" {
		t.Errorf("unexpected identity %+v", id)
	}
	if tokens.GetRefreshToken() != "refresh-1" {
		t.Errorf("expected refresh token to be saved, got %q", tokens.GetRefreshToken())
	}

	tok, err := a.TokenSource().Token()
	if err != nil || tok.AccessToken != "id-1" {
		t.Errorf("expected the fresh ID token, got %v, %v", tok, err)
	}

	if err := a.SignOut(ctx); err != nil {
		t.Fatalf("SignOut: %v", err)
	}
	if tokens.GetRefreshToken() != "" || a.TokenSource() != nil || a.Current() != nil {
		t.Error("sign out should forget the session")
	}
}

func TestIdentityAuth_Restore(t *testing.T) {
	tests := []struct {
		name     string
		saved    string
		signedIn bool
		authErr  bool
		kept     string
	}{
		{"nothing saved", "", false, false, ""},
		{"valid session", "refresh-1", true, false, "refresh-1"},
		{"revoked session", "revoked", false, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := newIdentityServer(t)
			tokens := &savedTokens{token: tt.saved}
			a := newTestIdentityAuth(t, srv, tokens)

			var mu sync.Mutex
			var last *Identity
			a.Subscribe(func(id *Identity) {
				mu.Lock()
				defer mu.Unlock()
				last = id
			})

			err := a.Restore(context.Background())
			if tt.authErr != IsAuth(err) || (!tt.authErr && err != nil) {
				t.Fatalf("unexpected error %v", err)
			}

			cur := a.Current()
			if (cur != nil) != tt.signedIn {
				t.Fatalf("expected signed in %v, got %+v", tt.signedIn, cur)
			}
			if tt.signedIn {
				if cur.UID != "u1" || cur.Email != "ada@example.com" || cur.Token != "id-2" {
					t.Errorf("unexpected identity %+v", cur)
				}
				mu.Lock()
				if last == nil || last.UID != "u1" {
					t.Error("subscribers should learn about the resumed session")
				}
				mu.Unlock()
			}
			if tokens.GetRefreshToken() != tt.kept {
				t.Errorf("expected saved token %q, got %q", tt.kept, tokens.GetRefreshToken())
			}
			if tt.saved == "" && atomic.LoadInt32(&srv.calls) != 0 {
				t.Error("nothing saved means nothing to ask the provider")
			}
		})
	}
}

type fakeSession struct {
	authState
	source oauth2.TokenSource
}

func (f *fakeSession) Subscribe(fn AuthStateFunc) func() {
	return f.subscribe(fn)
}

func (f *fakeSession) TokenSource() oauth2.TokenSource {
	return f.source
}

func TestUserFirestore_FollowsSession(t *testing.T) {
	ctx := context.Background()
	auth := &fakeSession{source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: "id-1"})}
	store := NewUserFirestore("demo-project", auth)
	defer store.Close()

	bound := func() bool {
		store.mu.RLock()
		defer store.mu.RUnlock()
		return store.store != nil
	}

	if _, err := store.Get(ctx, UserPath("u1")); !IsAuth(err) {
		t.Errorf("signed out reads should fail with an auth error, got %v", err)
	}
	if _, err := store.Add(ctx, CollectionCourses, map[string]any{}); !IsAuth(err) {
		t.Errorf("signed out writes should fail with an auth error, got %v", err)
	}

	auth.set(&Identity{UID: "u1", Token: "id-1"})
	if !bound() {
		t.Fatalf("sign in should build a client, last error %v", store.err)
	}

	auth.set(nil)
	if bound() {
		t.Error("sign out should drop the client")
	}
	if _, err := store.Query(ctx, Query{Collection: CollectionCourses}); !IsAuth(err) {
		t.Errorf("expected auth error after sign out, got %v", err)
	}
}
