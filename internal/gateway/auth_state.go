package gateway

import "sync"

// authState holds the current identity and fans changes out to subscribers.
// Subscribers are called outside the lock, in subscription order.
type authState struct {
	mu      sync.Mutex
	current *Identity
	subs    []subscriber
	nextID  int
}

type subscriber struct {
	id int
	fn AuthStateFunc
}

func (a *authState) subscribe(fn AuthStateFunc) func() {
	a.mu.Lock()
	a.nextID++
	id := a.nextID
	a.subs = append(a.subs, subscriber{id: id, fn: fn})
	cur := copyIdentity(a.current)
	a.mu.Unlock()
	fn(cur)

	var once sync.Once
	return func() {
		once.Do(func() {
			a.mu.Lock()
			defer a.mu.Unlock()
			for i, s := range a.subs {
				if s.id == id {
					a.subs = append(a.subs[:i], a.subs[i+1:]...)
					return
				}
			}
		})
	}
}

func (a *authState) set(id *Identity) {
	a.mu.Lock()
	a.current = copyIdentity(id)
	subs := append([]subscriber(nil), a.subs...)
	a.mu.Unlock()

	for _, s := range subs {
		s.fn(copyIdentity(id))
	}
}

func (a *authState) get() *Identity {
	a.mu.Lock()
	defer a.mu.Unlock()
	return copyIdentity(a.current)
}

func copyIdentity(id *Identity) *Identity {
	if id == nil {
		return nil
	}
	c := *id
	return &c
}
