package gateway

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestMemory_SignUpAndSignIn(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	var mu sync.Mutex
	var states []*Identity
	unsubscribe := m.Subscribe(func(id *Identity) {
		mu.Lock()
		defer mu.Unlock()
		states = append(states, id)
	})

	id, err := m.SignUp(ctx, "ada@example.com", "secret1")
	if err != nil {
		t.Fatalf("SignUp unexpected error: %v", err)
	}
	if id.UID == "" || id.Email != "ada@example.com" {
		t.Errorf("unexpected identity: %+v", id)
	}
	if cur := m.Current(); cur == nil || cur.UID != id.UID {
		t.Errorf("expected current identity %s, got %+v", id.UID, cur)
	}

	if err := m.SignOut(ctx); err != nil {
		t.Fatalf("SignOut unexpected error: %v", err)
	}
	if m.Current() != nil {
		t.Error("expected no current identity after sign out")
	}

	again, err := m.SignIn(ctx, "ADA@example.com", "secret1")
	if err != nil {
		t.Fatalf("SignIn unexpected error: %v", err)
	}
	if again.UID != id.UID {
		t.Errorf("expected same uid %s, got %s", id.UID, again.UID)
	}

	unsubscribe()
	_ = m.SignOut(ctx)

	mu.Lock()
	defer mu.Unlock()
	// initial nil, sign up, sign out, sign in; the last sign out is not seen
	if len(states) != 4 {
		t.Fatalf("expected 4 notifications, got %d", len(states))
	}
	if states[0] != nil || states[1] == nil || states[2] != nil || states[3] == nil {
		t.Errorf("unexpected notification sequence: %v", states)
	}
}

func TestMemory_AuthErrors(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	if _, err := m.SignUp(ctx, "taken@example.com", "secret1"); err != nil {
		t.Fatalf("seed SignUp: %v", err)
	}

	tests := []struct {
		name     string
		call     func() error
		expected string
	}{
		{
			name:     "weak password",
			call:     func() error { _, err := m.SignUp(ctx, "new@example.com", "123"); return err },
			expected: MsgWeakPassword,
		},
		{
			name:     "email in use",
			call:     func() error { _, err := m.SignUp(ctx, "taken@example.com", "secret2"); return err },
			expected: MsgEmailInUse,
		},
		{
			name:     "bad email",
			call:     func() error { _, err := m.SignUp(ctx, "not-an-email", "secret1"); return err },
			expected: MsgInvalidEmail,
		},
		{
			name:     "wrong password",
			call:     func() error { _, err := m.SignIn(ctx, "taken@example.com", "nope123"); return err },
			expected: MsgInvalidCredentials,
		},
		{
			name:     "unknown user",
			call:     func() error { _, err := m.SignIn(ctx, "ghost@example.com", "secret1"); return err },
			expected: MsgInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			if !IsAuth(err) {
				t.Fatalf("expected auth error, got %v", err)
			}
			if UserMessage(err) != tt.expected {
				t.Errorf("expected message %q, got %q", tt.expected, UserMessage(err))
			}
		})
	}
}

func TestMemory_DocumentCRUD(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	id, err := m.Add(ctx, CollectionCourses, map[string]any{FieldName: "Algebra I", FieldCreatedBy: "t1"})
	if err != nil {
		t.Fatalf("Add unexpected error: %v", err)
	}

	doc, err := m.Get(ctx, CoursePath(id))
	if err != nil {
		t.Fatalf("Get unexpected error: %v", err)
	}
	if doc.ID != id || doc.String(FieldName) != "Algebra I" {
		t.Errorf("unexpected document: %+v", doc)
	}

	// returned data is a copy
	doc.Data[FieldName] = "mutated"
	doc, _ = m.Get(ctx, CoursePath(id))
	if doc.String(FieldName) != "Algebra I" {
		t.Error("store data should not alias returned documents")
	}

	if err := m.Update(ctx, CoursePath(id), map[string]any{FieldName: "Algebra II"}); err != nil {
		t.Fatalf("Update unexpected error: %v", err)
	}
	doc, _ = m.Get(ctx, CoursePath(id))
	if doc.String(FieldName) != "Algebra II" || doc.String(FieldCreatedBy) != "t1" {
		t.Errorf("Update should merge fields, got %+v", doc.Data)
	}

	if err := m.Set(ctx, CoursePath(id), map[string]any{FieldName: "Replaced"}); err != nil {
		t.Fatalf("Set unexpected error: %v", err)
	}
	doc, _ = m.Get(ctx, CoursePath(id))
	if _, has := doc.Data[FieldCreatedBy]; has {
		t.Error("Set should replace the whole document")
	}

	if err := m.Delete(ctx, CoursePath(id)); err != nil {
		t.Fatalf("Delete unexpected error: %v", err)
	}
	if _, err := m.Get(ctx, CoursePath(id)); !IsNotFound(err) {
		t.Errorf("expected not found after delete, got %v", err)
	}
	if err := m.Update(ctx, CoursePath(id), map[string]any{FieldName: "x"}); !IsNotFound(err) {
		t.Errorf("expected not found on update of missing doc, got %v", err)
	}
	if err := m.Delete(ctx, CoursePath(id)); err != nil {
		t.Errorf("deleting a missing doc should succeed, got %v", err)
	}
}

func TestMemory_InvalidPaths(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	if _, err := m.Get(ctx, "courses"); err == nil {
		t.Error("expected error for collection path passed to Get")
	}
	if err := m.Set(ctx, "courses//x", nil); err == nil {
		t.Error("expected error for empty segment")
	}
	if _, err := m.Add(ctx, "courses/c1", nil); err == nil {
		t.Error("expected error for document path passed to Add")
	}
	if _, err := m.Query(ctx, Query{Collection: ""}); err == nil {
		t.Error("expected error for empty collection")
	}
}

func TestMemory_Query(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	courses := []map[string]any{
		{FieldName: "A", FieldCreatedBy: "t1"},
		{FieldName: "B", FieldCreatedBy: "t2"},
		{FieldName: "C", FieldCreatedBy: "t1"},
	}
	for _, c := range courses {
		if _, err := m.Add(ctx, CollectionCourses, c); err != nil {
			t.Fatalf("Add: %v", err)
		}
	}

	all, err := m.Query(ctx, Query{Collection: CollectionCourses})
	if err != nil {
		t.Fatalf("Query unexpected error: %v", err)
	}
	if len(all) != 3 || all[0].String(FieldName) != "A" || all[2].String(FieldName) != "C" {
		t.Errorf("expected insertion order A,B,C, got %v", all)
	}

	mine, _ := m.Query(ctx, Query{Collection: CollectionCourses}.Where(FieldCreatedBy, "t1"))
	if len(mine) != 2 {
		t.Errorf("expected 2 courses for t1, got %d", len(mine))
	}

	lessons := LessonsPath("c1")
	_ = m.Set(ctx, JoinPath(lessons, "l3"), map[string]any{FieldTitle: "third", FieldIndex: 3})
	_ = m.Set(ctx, JoinPath(lessons, "l1"), map[string]any{FieldTitle: "first", FieldIndex: int64(1)})
	_ = m.Set(ctx, JoinPath(lessons, "l2"), map[string]any{FieldTitle: "second", FieldIndex: 2.0})
	_ = m.Set(ctx, JoinPath(lessons, "lx"), map[string]any{FieldTitle: "no index"})

	ordered, _ := m.Query(ctx, Query{Collection: lessons, OrderBy: FieldIndex})
	if len(ordered) != 3 {
		t.Fatalf("expected 3 indexed lessons, got %d", len(ordered))
	}
	for i, id := range []string{"l1", "l2", "l3"} {
		if ordered[i].ID != id {
			t.Errorf("position %d: expected %s, got %s", i, id, ordered[i].ID)
		}
	}

	empty, err := m.Query(ctx, Query{Collection: LessonsPath("missing")})
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty result for missing collection, got %v, %v", empty, err)
	}
}

func TestMemory_FailNext(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	m.FailNext(OpQuery, errors.New("connection reset"))
	if _, err := m.Query(ctx, Query{Collection: CollectionCourses}); !IsNetwork(err) {
		t.Errorf("expected network error, got %v", err)
	}
	if _, err := m.Query(ctx, Query{Collection: CollectionCourses}); err != nil {
		t.Errorf("fault should apply once, got %v", err)
	}

	m.FailNext(OpSet, AuthError(OpSet, "denied"))
	if err := m.Set(ctx, UserPath("u1"), nil); !IsAuth(err) {
		t.Errorf("expected injected auth error, got %v", err)
	}
}

func TestMemory_LatencyRespectsContext(t *testing.T) {
	m := NewMemory()
	m.SetLatency(time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := m.Get(ctx, UserPath("u1"))
	if !IsNetwork(err) {
		t.Errorf("expected network error on timeout, got %v", err)
	}
	if time.Since(start) > 500*time.Millisecond {
		t.Error("cancelled call should return promptly")
	}
}
