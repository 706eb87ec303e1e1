package session

import (
	"context"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/ytget/yt-classroom/internal/catalog"
	"github.com/ytget/yt-classroom/internal/editor"
	"github.com/ytget/yt-classroom/internal/gateway"
	"github.com/ytget/yt-classroom/internal/logger"
	"github.com/ytget/yt-classroom/internal/model"
	"github.com/ytget/yt-classroom/internal/notify"
	"github.com/ytget/yt-classroom/internal/router"
)

// Timeout constants
const (
	DefaultProfileTimeout = 15 * time.Second
)

// RoleApplier shows or hides role-gated elements
type RoleApplier interface {
	Apply(role model.Role)
}

// Controller binds auth state to the router
type Controller struct {
	auth     gateway.Auth
	catalog  *catalog.Service
	router   *router.Router
	roles    RoleApplier
	notifier notify.Notifier
	texts    notify.Texts
	log      *logger.Logger
	timeout  time.Duration

	mu          sync.Mutex
	seq         uint64 // bumped on every auth event; stale profile loads are dropped
	registering int
	unsubscribe func()
}

// NewController creates a controller. roles may be nil.
func NewController(auth gateway.Auth, cat *catalog.Service, r *router.Router, roles RoleApplier, notifier notify.Notifier, log *logger.Logger) *Controller {
	if log == nil {
		log = logger.Nop()
	}
	if notifier == nil {
		notifier = notify.Func(func(notify.Notice) {})
	}
	return &Controller{
		auth:     auth,
		catalog:  cat,
		router:   r,
		roles:    roles,
		notifier: notifier,
		texts:    notify.English,
		log:      log,
		timeout:  DefaultProfileTimeout,
	}
}

// SetTimeout bounds profile loads
func (c *Controller) SetTimeout(timeout time.Duration) {
	if timeout > 0 {
		c.timeout = timeout
	}
}

// SetTexts sets the translations used for notices
func (c *Controller) SetTexts(texts notify.Texts) {
	if texts != nil {
		c.texts = texts
	}
}

// Start subscribes to auth state. The current state is applied immediately.
// When the provider keeps sessions between runs, the saved session is
// resumed afterwards; a failed resume leaves the user signed out.
func (c *Controller) Start() {
	unsubscribe := c.auth.Subscribe(c.onAuthState)
	c.mu.Lock()
	c.unsubscribe = unsubscribe
	c.mu.Unlock()

	restorer, ok := c.auth.(gateway.Restorer)
	if !ok || c.auth.Current() != nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()
	if err := restorer.Restore(ctx); err != nil {
		c.log.Info("saved session not resumed", "error", err)
	}
}

// Stop unsubscribes from auth state
func (c *Controller) Stop() {
	c.mu.Lock()
	unsubscribe := c.unsubscribe
	c.unsubscribe = nil
	c.mu.Unlock()
	if unsubscribe != nil {
		unsubscribe()
	}
}

// SignIn validates the form and signs in. The session is established by the
// auth callback once the profile is loaded.
func (c *Controller) SignIn(ctx context.Context, form editor.LoginForm) error {
	form, err := form.Check()
	if err != nil {
		notify.Error(c.notifier, c.texts.GetText(notify.KeySignInFailed), err.Error())
		return err
	}
	if _, err := c.auth.SignIn(ctx, form.Email, form.Password); err != nil {
		c.log.Info("sign in rejected", "email", form.Email, "error", err)
		notify.Error(c.notifier, c.texts.GetText(notify.KeySignInFailed), gateway.UserMessage(err))
		return errors.Wrap(err, "sign in")
	}
	return nil
}

// Register creates an account, stores its profile and establishes the
// session. Auth callbacks are ignored meanwhile so the session is never
// established before the profile exists.
func (c *Controller) Register(ctx context.Context, form editor.RegisterForm) (*model.User, error) {
	form, err := form.Check()
	if err != nil {
		notify.Error(c.notifier, c.texts.GetText(notify.KeyRegisterFailed), err.Error())
		return nil, err
	}
	role, _ := model.ParseRole(form.Role)

	c.mu.Lock()
	c.registering++
	c.mu.Unlock()
	done := func() {
		c.mu.Lock()
		c.registering--
		c.seq++
		c.mu.Unlock()
	}

	id, err := c.auth.SignUp(ctx, form.Email, form.Password)
	if err != nil {
		done()
		c.log.Info("registration rejected", "email", form.Email, "error", err)
		notify.Error(c.notifier, c.texts.GetText(notify.KeyRegisterFailed), gateway.UserMessage(err))
		return nil, errors.Wrap(err, "register")
	}

	user := model.User{UID: id.UID, Email: id.Email, Name: form.Name, Role: role}
	if err := c.catalog.SaveProfile(ctx, user); err != nil {
		if signOutErr := c.auth.SignOut(context.Background()); signOutErr != nil {
			c.log.Warn("sign out after failed registration", "error", signOutErr)
		}
		done()
		c.log.Error("failed to store profile", "uid", id.UID, "error", err)
		notify.Error(c.notifier, c.texts.GetText(notify.KeyRegisterFailed), gateway.UserMessage(err))
		return nil, err
	}

	done()
	c.establish(user)
	return &user, nil
}

// SignOut ends the session; the auth callback returns the router to login
func (c *Controller) SignOut(ctx context.Context) error {
	if err := c.auth.SignOut(ctx); err != nil {
		notify.Error(c.notifier, c.texts.GetText(notify.KeySignOutFailed), gateway.UserMessage(err))
		return errors.Wrap(err, "sign out")
	}
	return nil
}

func (c *Controller) onAuthState(id *gateway.Identity) {
	c.mu.Lock()
	if c.registering > 0 {
		c.mu.Unlock()
		return
	}
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	if id == nil {
		c.log.Debug("session ended")
		c.router.SessionEnded()
		if c.roles != nil {
			c.roles.Apply(0)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	user, err := c.catalog.Profile(ctx, *id)

	c.mu.Lock()
	stale := c.seq != seq
	c.mu.Unlock()
	if stale {
		c.log.Debug("dropping stale profile load", "uid", id.UID)
		return
	}

	if err != nil {
		c.log.Error("failed to load profile", "uid", id.UID, "error", err)
		notify.Error(c.notifier, c.texts.GetText(notify.KeyProfileFailed), gateway.UserMessage(err))
		if signOutErr := c.auth.SignOut(context.Background()); signOutErr != nil {
			c.log.Warn("sign out after failed profile load", "error", signOutErr)
		}
		return
	}
	c.establish(*user)
}

func (c *Controller) establish(user model.User) {
	c.log.Info("session established", "uid", user.UID, "role", user.Role.String())
	c.router.SessionEstablished(user)
	if c.roles != nil {
		c.roles.Apply(user.Role)
	}
	notify.Info(c.notifier, c.texts.GetText(notify.KeyWelcome), user.GetDisplayName())
}
