package gateway

import (
	"context"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"
)

// SecureTokenURL exchanges refresh tokens for fresh ID tokens
const SecureTokenURL = "https://securetoken.googleapis.com/v1/token"

// TokenStore keeps the refresh token of the signed-in user between runs
type TokenStore interface {
	GetRefreshToken() string
	SetRefreshToken(token string)
}

// IdentityAuth is an Auth backed by the Google Identity Toolkit, the REST
// surface of Firebase email/password authentication. ID tokens are renewed
// through the secure token endpoint, and the refresh token is kept in the
// TokenStore so Restore can resume the session on the next run.
type IdentityAuth struct {
	authState

	svc      *identitytoolkit.Service
	apiKey   string
	tokenURL string
	tokens   TokenStore

	mu     sync.Mutex
	source oauth2.TokenSource
}

// NewIdentityAuth creates an auth client for the project's web API key.
// tokens may be nil, in which case sessions end with the process.
func NewIdentityAuth(ctx context.Context, apiKey string, tokens TokenStore, opts ...option.ClientOption) (*IdentityAuth, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, InvalidError("identitytoolkit.NewService", "missing API key")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	svc, err := identitytoolkit.NewService(ctx, opts...)
	if err != nil {
		return nil, NetworkError("identitytoolkit.NewService", err)
	}
	return &IdentityAuth{svc: svc, apiKey: apiKey, tokenURL: SecureTokenURL, tokens: tokens}, nil
}

// TokenSource returns the signed-in user's ID token source, nil when signed out
func (a *IdentityAuth) TokenSource() oauth2.TokenSource {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.source
}

// Restore implements Restorer. A refresh token the provider rejects is
// forgotten.
func (a *IdentityAuth) Restore(ctx context.Context) error {
	if a.tokens == nil {
		return nil
	}
	refresh := a.tokens.GetRefreshToken()
	if refresh == "" {
		return nil
	}

	source := a.sessionSource(&oauth2.Token{RefreshToken: refresh})
	tok, err := source.Token()
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			a.tokens.SetRefreshToken("")
			return newError(KindAuth, OpRestore, MsgSessionExpired, err)
		}
		return NetworkError(OpRestore, err)
	}

	req := &identitytoolkit.IdentitytoolkitRelyingpartyGetAccountInfoRequest{IdToken: tok.AccessToken}
	resp, err := a.svc.Relyingparty.GetAccountInfo(req).Context(ctx).Do()
	if err != nil {
		err = classifyIdentity(OpRestore, err)
		if IsAuth(err) {
			a.tokens.SetRefreshToken("")
		}
		return err
	}
	if len(resp.Users) == 0 {
		a.tokens.SetRefreshToken("")
		return AuthError(OpRestore, MsgSessionExpired)
	}

	user := resp.Users[0]
	a.establish(&Identity{UID: user.LocalId, Email: user.Email, Token: tok.AccessToken}, source, tok.RefreshToken)
	return nil
}

// Subscribe implements Auth
func (a *IdentityAuth) Subscribe(fn AuthStateFunc) func() {
	return a.authState.subscribe(fn)
}

// Current implements Auth
func (a *IdentityAuth) Current() *Identity {
	return a.authState.get()
}

// SignIn implements Auth
func (a *IdentityAuth) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             strings.TrimSpace(email),
		Password:          password,
		ReturnSecureToken: true,
	}
	resp, err := a.svc.Relyingparty.VerifyPassword(req).Context(ctx).Do()
	if err != nil {
		return nil, classifyIdentity(OpSignIn, err)
	}

	id := &Identity{UID: resp.LocalId, Email: resp.Email, Token: resp.IdToken}
	a.establish(id, a.sessionSource(signedInToken(resp.IdToken, resp.RefreshToken, resp.ExpiresIn)), resp.RefreshToken)
	return copyIdentity(id), nil
}

// SignUp implements Auth
func (a *IdentityAuth) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartySignupNewUserRequest{
		Email:    strings.TrimSpace(email),
		Password: password,
	}
	resp, err := a.svc.Relyingparty.SignupNewUser(req).Context(ctx).Do()
	if err != nil {
		return nil, classifyIdentity(OpSignUp, err)
	}

	id := &Identity{UID: resp.LocalId, Email: resp.Email, Token: resp.IdToken}
	a.establish(id, a.sessionSource(signedInToken(resp.IdToken, resp.RefreshToken, resp.ExpiresIn)), resp.RefreshToken)
	return copyIdentity(id), nil
}

// SignOut implements Auth. Sessions are token based, so signing out only
// forgets the local identity and the saved refresh token.
func (a *IdentityAuth) SignOut(context.Context) error {
	a.establish(nil, nil, "")
	return nil
}

// establish records the session and its token source before subscribers
// learn about it, so stores bound to this auth can use the new token.
func (a *IdentityAuth) establish(id *Identity, source oauth2.TokenSource, refresh string) {
	a.mu.Lock()
	a.source = source
	a.mu.Unlock()

	if a.tokens != nil && (id == nil || refresh != "") {
		a.tokens.SetRefreshToken(refresh)
	}
	a.authState.set(id)
}

// sessionSource renews ID tokens from tok's refresh token
func (a *IdentityAuth) sessionSource(tok *oauth2.Token) oauth2.TokenSource {
	conf := &oauth2.Config{
		Endpoint: oauth2.Endpoint{
			TokenURL:  a.tokenURL + "?key=" + url.QueryEscape(a.apiKey),
			AuthStyle: oauth2.AuthStyleInParams,
		},
	}
	return conf.TokenSource(context.Background(), tok)
}

// signedInToken wraps the tokens of a sign-in response; the ID token is
// the bearer token for the document store
func signedInToken(idToken, refresh string, expiresIn int64) *oauth2.Token {
	tok := &oauth2.Token{AccessToken: idToken, TokenType: "Bearer", RefreshToken: refresh}
	if expiresIn > 0 {
		tok.Expiry = time.Now().Add(time.Duration(expiresIn) * time.Second)
	}
	return tok
}

// Provider error codes and their user-facing messages
var identityMessages = map[string]string{
	"EMAIL_EXISTS":                MsgEmailInUse,
	"EMAIL_NOT_FOUND":             MsgInvalidCredentials,
	"INVALID_PASSWORD":            MsgInvalidCredentials,
	"INVALID_LOGIN_CREDENTIALS":   MsgInvalidCredentials,
	"INVALID_EMAIL":               MsgInvalidEmail,
	"MISSING_PASSWORD":            MsgInvalidCredentials,
	"WEAK_PASSWORD":               MsgWeakPassword,
	"USER_DISABLED":               MsgUserDisabled,
	"TOO_MANY_ATTEMPTS_TRY_LATER": MsgTooManyAttempts,
}

// classifyIdentity maps Identity Toolkit errors onto gateway errors.
// Provider codes arrive as the message prefix, e.g. "WEAK_PASSWORD : ...".
func classifyIdentity(op string, err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return NetworkError(op, err)
	}
	code := strings.TrimSpace(strings.SplitN(apiErr.Message, ":", 2)[0])
	if msg, ok := identityMessages[code]; ok {
		return newError(KindAuth, op, msg, err)
	}
	if apiErr.Code >= 400 && apiErr.Code < 500 {
		return newError(KindAuth, op, "Authentication failed.", err)
	}
	return NetworkError(op, err)
}
