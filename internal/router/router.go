package router

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/ytget/yt-classroom/internal/model"
)

// Transition errors
var (
	ErrNotAuthenticated     = errors.New("view requires a signed-in user")
	ErrAlreadyAuthenticated = errors.New("view is only available when signed out")
	ErrUnknownView          = errors.New("unknown view")
	ErrNoCourse             = errors.New("no course selected")
	ErrNoLesson             = errors.New("no lesson selected")
)

// EditTarget names the entity a modal form is open for
type EditTarget int

const (
	EditNone EditTarget = iota
	EditCourse
	EditLesson
)

// State is a snapshot of the session and view.
// Editing pointers are nil in create mode; Editing tells the two apart.
// EditSeq identifies the form opened last and survives sign-out.
type State struct {
	User          *model.User
	View          model.View
	Course        *model.Course
	Lesson        *model.Lesson
	Editing       EditTarget
	EditingCourse *model.Course
	EditingLesson *model.Lesson
	EditSeq       uint64
	Generation    uint64
}

// SignedIn reports whether a session is established
func (s State) SignedIn() bool {
	return s.User != nil
}

// Role returns the signed-in user's role, or the zero Role
func (s State) Role() model.Role {
	if s.User == nil {
		return 0
	}
	return s.User.Role
}

// Listener receives a snapshot after every transition
type Listener func(State)

// Router is the single owner of State. It is safe for concurrent use.
//
// Listeners run outside the lock, in subscription order, and see snapshots
// in transition order. Transitions made concurrently with a delivery, or by
// a listener itself, are queued and delivered by the goroutine already
// delivering, so such a transition may return before its listeners ran.
type Router struct {
	mu         sync.Mutex
	state      State
	listeners  []listenerEntry
	nextID     int
	pending    []State
	delivering bool
}

type listenerEntry struct {
	id int
	fn Listener
}

// New creates a router showing the login view
func New() *Router {
	return &Router{state: State{View: model.ViewLogin}}
}

// State returns a snapshot of the current state
func (r *Router) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.snapshot()
}

// Subscribe registers fn for state changes. The returned func unsubscribes.
func (r *Router) Subscribe(fn Listener) func() {
	r.mu.Lock()
	r.nextID++
	id := r.nextID
	r.listeners = append(r.listeners, listenerEntry{id: id, fn: fn})
	r.mu.Unlock()

	return func() {
		r.mu.Lock()
		defer r.mu.Unlock()
		for i, l := range r.listeners {
			if l.id == id {
				r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
				return
			}
		}
	}
}

// Token captures the current generation
func (r *Router) Token() Token {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.token()
}

// Snapshot returns the current state together with a token for it
func (r *Router) Snapshot() (State, Token) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state.snapshot(), r.token()
}

func (r *Router) token() Token {
	return Token{router: r, generation: r.state.Generation, view: r.state.View}
}

// SessionEstablished discards all navigation state and shows the landing view
func (r *Router) SessionEstablished(user model.User) {
	r.apply(func(s *State) error {
		*s = State{
			User:       &user,
			View:       model.DefaultLanding,
			EditSeq:    s.EditSeq,
			Generation: s.Generation + 1,
		}
		return nil
	})
}

// SessionEnded clears all session state and shows the login view
func (r *Router) SessionEnded() {
	r.apply(func(s *State) error {
		*s = State{
			View:       model.ViewLogin,
			EditSeq:    s.EditSeq,
			Generation: s.Generation + 1,
		}
		return nil
	})
}

// Navigate switches to view. Authenticated views need a session and the
// login and register views need its absence. Roles are not checked here.
func (r *Router) Navigate(view model.View) error {
	return r.apply(func(s *State) error {
		if !view.IsValid() {
			return errors.Wrapf(ErrUnknownView, "navigate to %q", view)
		}
		if view.RequiresAuth() && s.User == nil {
			return errors.Wrapf(ErrNotAuthenticated, "navigate to %s", view)
		}
		if !view.RequiresAuth() && s.User != nil {
			return errors.Wrapf(ErrAlreadyAuthenticated, "navigate to %s", view)
		}
		switch view {
		case model.ViewCourseDetail:
			if s.Course == nil {
				return errors.Wrapf(ErrNoCourse, "navigate to %s", view)
			}
		case model.ViewVideoPlayer:
			if s.Lesson == nil {
				return errors.Wrapf(ErrNoLesson, "navigate to %s", view)
			}
		}
		s.enter(view)
		return nil
	})
}

// Reload re-enters the current view so its loaders run again. Open forms
// stay open.
func (r *Router) Reload() error {
	return r.apply(func(s *State) error {
		if s.User == nil {
			return errors.Wrap(ErrNotAuthenticated, "reload")
		}
		s.Generation++
		return nil
	})
}

// OpenCourse selects course and shows its detail view
func (r *Router) OpenCourse(course model.Course) error {
	return r.apply(func(s *State) error {
		if s.User == nil {
			return errors.Wrap(ErrNotAuthenticated, "open course")
		}
		s.Course = &course
		s.Lesson = nil
		s.enter(model.ViewCourseDetail)
		return nil
	})
}

// PlayLesson selects lesson and shows the player
func (r *Router) PlayLesson(lesson model.Lesson) error {
	return r.apply(func(s *State) error {
		if s.User == nil {
			return errors.Wrap(ErrNotAuthenticated, "play lesson")
		}
		if s.Course == nil {
			return errors.Wrap(ErrNoCourse, "play lesson")
		}
		s.Lesson = &lesson
		s.enter(model.ViewVideoPlayer)
		return nil
	})
}

// UpdateCourse replaces the selected course after a rename, without
// changing the view.
func (r *Router) UpdateCourse(course model.Course) {
	r.apply(func(s *State) error {
		if s.Course != nil && s.Course.ID == course.ID {
			s.Course = &course
		}
		return nil
	})
}

// BeginEditCourse opens the course form; nil means create
func (r *Router) BeginEditCourse(course *model.Course) error {
	return r.apply(func(s *State) error {
		if s.User == nil {
			return errors.Wrap(ErrNotAuthenticated, "edit course")
		}
		s.clearEditing()
		s.Editing = EditCourse
		s.EditSeq++
		if course != nil {
			c := *course
			s.EditingCourse = &c
		}
		return nil
	})
}

// BeginEditLesson opens the lesson form for the selected course; nil means create
func (r *Router) BeginEditLesson(lesson *model.Lesson) error {
	return r.apply(func(s *State) error {
		if s.User == nil {
			return errors.Wrap(ErrNotAuthenticated, "edit lesson")
		}
		if s.Course == nil {
			return errors.Wrap(ErrNoCourse, "edit lesson")
		}
		s.clearEditing()
		s.Editing = EditLesson
		s.EditSeq++
		if lesson != nil {
			l := *lesson
			s.EditingLesson = &l
		}
		return nil
	})
}

// EndEditing closes any open form
func (r *Router) EndEditing() {
	r.apply(func(s *State) error {
		s.clearEditing()
		return nil
	})
}

// EditingSeq returns the sequence number of the open form, 0 when none is open
func (r *Router) EditingSeq() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state.Editing == EditNone {
		return 0
	}
	return r.state.EditSeq
}

// EndEditingIf closes the form only if it is still the one numbered seq.
// It reports whether a form was closed.
func (r *Router) EndEditingIf(seq uint64) bool {
	closed := false
	r.apply(func(s *State) error {
		if seq == 0 || s.Editing == EditNone || s.EditSeq != seq {
			return errUnchanged
		}
		s.clearEditing()
		closed = true
		return nil
	})
	return closed
}

// errUnchanged aborts a transition that has nothing to do
var errUnchanged = errors.New("state unchanged")

// apply runs fn on the state and queues a snapshot for the listeners if it
// succeeded. The first caller to find the queue idle drains it.
func (r *Router) apply(fn func(*State) error) error {
	r.mu.Lock()
	if err := fn(&r.state); err != nil {
		r.mu.Unlock()
		return err
	}
	r.pending = append(r.pending, r.state.snapshot())
	if r.delivering {
		r.mu.Unlock()
		return nil
	}
	r.delivering = true

	for len(r.pending) > 0 {
		snap := r.pending[0]
		r.pending = r.pending[1:]
		listeners := make([]Listener, 0, len(r.listeners))
		for _, l := range r.listeners {
			listeners = append(listeners, l.fn)
		}
		r.mu.Unlock()

		for _, fn := range listeners {
			fn(snap.snapshot())
		}

		r.mu.Lock()
	}
	r.delivering = false
	r.mu.Unlock()
	return nil
}

// enter switches view, closing forms and advancing the generation
func (s *State) enter(view model.View) {
	s.View = view
	s.clearEditing()
	s.Generation++
}

func (s *State) clearEditing() {
	s.Editing = EditNone
	s.EditingCourse = nil
	s.EditingLesson = nil
}

// snapshot deep-copies the state so listeners cannot mutate it
func (s State) snapshot() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.Course != nil {
		c := *s.Course
		out.Course = &c
	}
	if s.Lesson != nil {
		l := *s.Lesson
		out.Lesson = &l
	}
	if s.EditingCourse != nil {
		c := *s.EditingCourse
		out.EditingCourse = &c
	}
	if s.EditingLesson != nil {
		l := *s.EditingLesson
		out.EditingLesson = &l
	}
	return out
}

// Token identifies the view a request was issued for
type Token struct {
	router     *Router
	generation uint64
	view       model.View
}

// Valid reports whether no view transition happened since the token was taken
func (t Token) Valid() bool {
	if t.router == nil {
		return false
	}
	t.router.mu.Lock()
	defer t.router.mu.Unlock()
	return t.router.state.Generation == t.generation
}

// View returns the view the token was taken in
func (t Token) View() model.View {
	return t.view
}

// Generation returns the captured generation
func (t Token) Generation() uint64 {
	return t.generation
}
