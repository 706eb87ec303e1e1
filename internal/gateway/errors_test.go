package gateway

import (
	"net/http"
	"testing"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestErrorKinds(t *testing.T) {
	base := errors.New("dial tcp: i/o timeout")

	tests := []struct {
		name     string
		err      error
		auth     bool
		notFound bool
		network  bool
		message  string
	}{
		{"auth", AuthError(OpSignIn, MsgInvalidCredentials), true, false, false, MsgInvalidCredentials},
		{"not found", NotFoundError(OpGet, "users/u1"), false, true, false, "no document at users/u1"},
		{"network", NetworkError(OpQuery, base), false, false, true, "the service could not be reached"},
		{"wrapped", errors.Wrap(AuthError(OpSignUp, MsgWeakPassword), "register"), true, false, false, MsgWeakPassword},
		{"foreign", base, false, false, false, base.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if IsAuth(tt.err) != tt.auth {
				t.Errorf("IsAuth() = %v, expected %v", IsAuth(tt.err), tt.auth)
			}
			if IsNotFound(tt.err) != tt.notFound {
				t.Errorf("IsNotFound() = %v, expected %v", IsNotFound(tt.err), tt.notFound)
			}
			if IsNetwork(tt.err) != tt.network {
				t.Errorf("IsNetwork() = %v, expected %v", IsNetwork(tt.err), tt.network)
			}
			if UserMessage(tt.err) != tt.message {
				t.Errorf("UserMessage() = %q, expected %q", UserMessage(tt.err), tt.message)
			}
		})
	}

	if errors.Cause(NetworkError(OpGet, base)) != base {
		t.Error("Cause should reach the backend error")
	}
}

func TestClassifyIdentity(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		kind    Kind
		message string
	}{
		{"email exists", &googleapi.Error{Code: http.StatusBadRequest, Message: "EMAIL_EXISTS"}, KindAuth, MsgEmailInUse},
		{"weak password with detail", &googleapi.Error{Code: http.StatusBadRequest, Message: "WEAK_PASSWORD : Password should be at least 6 characters"}, KindAuth, MsgWeakPassword},
		{"invalid credentials", &googleapi.Error{Code: http.StatusBadRequest, Message: "INVALID_LOGIN_CREDENTIALS"}, KindAuth, MsgInvalidCredentials},
		{"unknown client error", &googleapi.Error{Code: http.StatusBadRequest, Message: "SOMETHING_NEW"}, KindAuth, "Authentication failed."},
		{"server error", &googleapi.Error{Code: http.StatusServiceUnavailable, Message: "backend down"}, KindNetwork, "the service could not be reached"},
		{"transport error", errors.New("no route to host"), KindNetwork, "the service could not be reached"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyIdentity(OpSignIn, tt.err)
			kind, ok := KindOf(err)
			if !ok || kind != tt.kind {
				t.Errorf("expected kind %v, got %v (%v)", tt.kind, kind, ok)
			}
			if UserMessage(err) != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, UserMessage(err))
			}
		})
	}
}

func TestClassifyRPC(t *testing.T) {
	tests := []struct {
		code codes.Code
		kind Kind
	}{
		{codes.NotFound, KindNotFound},
		{codes.PermissionDenied, KindAuth},
		{codes.Unauthenticated, KindAuth},
		{codes.InvalidArgument, KindInvalid},
		{codes.Unavailable, KindNetwork},
		{codes.DeadlineExceeded, KindNetwork},
	}

	for _, tt := range tests {
		err := classifyRPC(OpGet, "courses/c1", status.Error(tt.code, "rpc failed"))
		kind, _ := KindOf(err)
		if kind != tt.kind {
			t.Errorf("code %v: expected kind %v, got %v", tt.code, tt.kind, kind)
		}
	}
}

func TestToUpdates(t *testing.T) {
	updates := toUpdates(map[string]any{"title": "Intro", "index": 2, "youtubeId": "abc"})
	if len(updates) != 3 {
		t.Fatalf("expected 3 updates, got %d", len(updates))
	}
	expected := []string{"index", "title", "youtubeId"}
	for i, path := range expected {
		if updates[i].Path != path {
			t.Errorf("position %d: expected %s, got %s", i, path, updates[i].Path)
		}
	}
}

func TestDocumentAccessors(t *testing.T) {
	ts := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	doc := Document{Data: map[string]any{
		"s":   "text",
		"i":   3,
		"i64": int64(4),
		"f":   5.0,
		"t":   ts,
		"ts":  ts.Format(time.RFC3339Nano),
		"bad": []int{1},
	}}

	if doc.String("s") != "text" || doc.String("i") != "" {
		t.Error("String accessor mismatch")
	}
	if doc.Int("i") != 3 || doc.Int("i64") != 4 || doc.Int("f") != 5 || doc.Int("bad") != 0 {
		t.Error("Int accessor mismatch")
	}
	if !doc.Time("t").Equal(ts) || !doc.Time("ts").Equal(ts) || !doc.Time("missing").IsZero() {
		t.Error("Time accessor mismatch")
	}
}

func TestPaths(t *testing.T) {
	tests := []struct {
		got      string
		expected string
	}{
		{UserPath("u1"), "users/u1"},
		{CoursePath("c1"), "courses/c1"},
		{LessonsPath("c1"), "courses/c1/lessons"},
		{LessonPath("c1", "l1"), "courses/c1/lessons/l1"},
		{ProgressPath("u1", "l1"), "users/u1/progress/l1"},
	}
	for _, tt := range tests {
		if tt.got != tt.expected {
			t.Errorf("expected %s, got %s", tt.expected, tt.got)
		}
	}

	collection, id, ok := splitDocPath(LessonPath("c1", "l1"))
	if !ok || collection != "courses/c1/lessons" || id != "l1" {
		t.Errorf("splitDocPath() = %q, %q, %v", collection, id, ok)
	}
	if _, _, ok := splitDocPath("courses"); ok {
		t.Error("collection path is not a document path")
	}
}
