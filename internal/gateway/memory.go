package gateway

import (
	"context"
	"fmt"
	"net/mail"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Operation names, used in errors and for fault injection
const (
	OpGet     = "get"
	OpSet     = "set"
	OpAdd     = "add"
	OpUpdate  = "update"
	OpDelete  = "delete"
	OpQuery   = "query"
	OpSignIn  = "signIn"
	OpSignUp  = "signUp"
	OpSignOut = "signOut"
	OpRestore = "restore"
)

// Auth messages shown to users
const (
	MsgInvalidEmail       = "The email address is badly formatted."
	MsgWeakPassword       = "Password should be at least 6 characters."
	MsgEmailInUse         = "The email address is already in use by another account."
	MsgInvalidCredentials = "The email or password is incorrect."
	MsgTooManyAttempts    = "Too many attempts. Try again later."
	MsgUserDisabled       = "This account has been disabled."
	MsgSessionExpired     = "Your session has expired. Please sign in again."
	MsgSignedOut          = "Please sign in to continue."
)

// MinPasswordLength mirrors the auth provider's password policy
const MinPasswordLength = 6

type memoryAccount struct {
	uid          string
	email        string
	passwordHash []byte
}

type memoryCollection struct {
	order []string // insertion order of ids
	docs  map[string]map[string]any
}

// Memory is an in-process Auth and Store. Writes are visible to the next read.
type Memory struct {
	authState

	mu          sync.RWMutex
	accounts    map[string]*memoryAccount // keyed by lower-cased email
	collections map[string]*memoryCollection
	faults      map[string][]error
	latency     time.Duration
}

// NewMemory creates an empty in-memory backend
func NewMemory() *Memory {
	return &Memory{
		accounts:    make(map[string]*memoryAccount),
		collections: make(map[string]*memoryCollection),
		faults:      make(map[string][]error),
	}
}

// NewMemoryGateway wraps a Memory backend as a Gateway
func NewMemoryGateway(m *Memory) *Gateway {
	return &Gateway{Auth: m, Store: m}
}

// FailNext makes the next call of op fail with err. Calls queue up.
func (m *Memory) FailNext(op string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.faults[op] = append(m.faults[op], err)
}

// SetLatency delays every operation, to exercise in-flight behavior
func (m *Memory) SetLatency(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.latency = d
}

// begin applies latency and fault injection for op
func (m *Memory) begin(ctx context.Context, op string) error {
	m.mu.Lock()
	latency := m.latency
	var fault error
	if queue := m.faults[op]; len(queue) > 0 {
		fault = queue[0]
		m.faults[op] = queue[1:]
	}
	m.mu.Unlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return NetworkError(op, ctx.Err())
		}
	}
	if err := ctx.Err(); err != nil {
		return NetworkError(op, err)
	}
	if fault != nil {
		if _, ok := KindOf(fault); ok {
			return fault
		}
		return NetworkError(op, fault)
	}
	return nil
}

// Subscribe implements Auth
func (m *Memory) Subscribe(fn AuthStateFunc) func() {
	return m.authState.subscribe(fn)
}

// Current implements Auth
func (m *Memory) Current() *Identity {
	return m.authState.get()
}

// SignUp implements Auth
func (m *Memory) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	if err := m.begin(ctx, OpSignUp); err != nil {
		return nil, err
	}
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, AuthError(OpSignUp, MsgInvalidEmail)
	}
	if len(password) < MinPasswordLength {
		return nil, AuthError(OpSignUp, MsgWeakPassword)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, newError(KindAuth, OpSignUp, MsgWeakPassword, err)
	}

	key := strings.ToLower(email)
	m.mu.Lock()
	if _, exists := m.accounts[key]; exists {
		m.mu.Unlock()
		return nil, AuthError(OpSignUp, MsgEmailInUse)
	}
	acc := &memoryAccount{uid: newID(), email: email, passwordHash: hash}
	m.accounts[key] = acc
	m.mu.Unlock()

	id := &Identity{UID: acc.uid, Email: acc.email, Token: newID()}
	m.authState.set(id)
	return copyIdentity(id), nil
}

// SignIn implements Auth
func (m *Memory) SignIn(ctx context.Context, email, password string) (*Identity, error) {
	if err := m.begin(ctx, OpSignIn); err != nil {
		return nil, err
	}
	m.mu.RLock()
	acc, ok := m.accounts[strings.ToLower(strings.TrimSpace(email))]
	m.mu.RUnlock()
	if !ok {
		return nil, AuthError(OpSignIn, MsgInvalidCredentials)
	}
	if err := bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(password)); err != nil {
		return nil, AuthError(OpSignIn, MsgInvalidCredentials)
	}

	id := &Identity{UID: acc.uid, Email: acc.email, Token: newID()}
	m.authState.set(id)
	return copyIdentity(id), nil
}

// SignOut implements Auth
func (m *Memory) SignOut(ctx context.Context) error {
	if err := m.begin(ctx, OpSignOut); err != nil {
		return err
	}
	m.authState.set(nil)
	return nil
}

// Get implements Store
func (m *Memory) Get(ctx context.Context, path string) (Document, error) {
	if err := m.begin(ctx, OpGet); err != nil {
		return Document{}, err
	}
	collection, id, ok := splitDocPath(path)
	if !ok {
		return Document{}, InvalidError(OpGet, "invalid document path "+path)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.collections[collection]
	if !ok {
		return Document{}, NotFoundError(OpGet, path)
	}
	data, ok := c.docs[id]
	if !ok {
		return Document{}, NotFoundError(OpGet, path)
	}
	return Document{ID: id, Path: path, Data: copyData(data)}, nil
}

// Set implements Store. It replaces the whole document.
func (m *Memory) Set(ctx context.Context, path string, data map[string]any) error {
	if err := m.begin(ctx, OpSet); err != nil {
		return err
	}
	collection, id, ok := splitDocPath(path)
	if !ok {
		return InvalidError(OpSet, "invalid document path "+path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(collection, id, copyData(data))
	return nil
}

// Add implements Store
func (m *Memory) Add(ctx context.Context, collection string, data map[string]any) (string, error) {
	if err := m.begin(ctx, OpAdd); err != nil {
		return "", err
	}
	if !validCollectionPath(collection) {
		return "", InvalidError(OpAdd, "invalid collection path "+collection)
	}

	id := newID()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.put(collection, id, copyData(data))
	return id, nil
}

// Update implements Store. Only the given fields change.
func (m *Memory) Update(ctx context.Context, path string, partial map[string]any) error {
	if err := m.begin(ctx, OpUpdate); err != nil {
		return err
	}
	collection, id, ok := splitDocPath(path)
	if !ok {
		return InvalidError(OpUpdate, "invalid document path "+path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		return NotFoundError(OpUpdate, path)
	}
	doc, ok := c.docs[id]
	if !ok {
		return NotFoundError(OpUpdate, path)
	}
	for k, v := range partial {
		doc[k] = v
	}
	return nil
}

// Delete implements Store. Deleting a missing document is not an error.
func (m *Memory) Delete(ctx context.Context, path string) error {
	if err := m.begin(ctx, OpDelete); err != nil {
		return err
	}
	collection, id, ok := splitDocPath(path)
	if !ok {
		return InvalidError(OpDelete, "invalid document path "+path)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.collections[collection]
	if !ok {
		return nil
	}
	if _, ok := c.docs[id]; !ok {
		return nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Query implements Store. Results keep insertion order unless OrderBy is set.
// As in Firestore, ordering by a field drops documents that lack it.
func (m *Memory) Query(ctx context.Context, q Query) ([]Document, error) {
	if err := m.begin(ctx, OpQuery); err != nil {
		return nil, err
	}
	if !validCollectionPath(q.Collection) {
		return nil, InvalidError(OpQuery, "invalid collection path "+q.Collection)
	}

	m.mu.RLock()
	c, ok := m.collections[q.Collection]
	if !ok {
		m.mu.RUnlock()
		return []Document{}, nil
	}
	docs := make([]Document, 0, len(c.order))
	for _, id := range c.order {
		data := c.docs[id]
		if !matches(data, q.Filters) {
			continue
		}
		if q.OrderBy != "" {
			if _, has := data[q.OrderBy]; !has {
				continue
			}
		}
		docs = append(docs, Document{ID: id, Path: JoinPath(q.Collection, id), Data: copyData(data)})
	}
	m.mu.RUnlock()

	if q.OrderBy != "" {
		sort.SliceStable(docs, func(i, j int) bool {
			return lessValue(docs[i].Data[q.OrderBy], docs[j].Data[q.OrderBy])
		})
	}
	return docs, nil
}

// put stores a document; callers hold m.mu
func (m *Memory) put(collection, id string, data map[string]any) {
	c, ok := m.collections[collection]
	if !ok {
		c = &memoryCollection{docs: make(map[string]map[string]any)}
		m.collections[collection] = c
	}
	if _, exists := c.docs[id]; !exists {
		c.order = append(c.order, id)
	}
	c.docs[id] = data
}

func matches(data map[string]any, filters []Filter) bool {
	for _, f := range filters {
		v, ok := data[f.Field]
		if !ok || !equalValue(v, f.Value) {
			return false
		}
	}
	return true
}

func equalValue(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa == fb
		}
		return false
	}
	return fmt.Sprint(a) == fmt.Sprint(b)
}

func lessValue(a, b any) bool {
	if fa, ok := toFloat(a); ok {
		if fb, ok := toFloat(b); ok {
			return fa < fb
		}
		// numbers sort before other types
		return true
	}
	if _, ok := toFloat(b); ok {
		return false
	}
	if ta, ok := a.(time.Time); ok {
		if tb, ok := b.(time.Time); ok {
			return ta.Before(tb)
		}
	}
	return fmt.Sprint(a) < fmt.Sprint(b)
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func copyData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

// newID generates a document id, time-ordered when possible
func newID() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
