package logger

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestSanitizeKVs(t *testing.T) {
	tests := []struct {
		name     string
		input    []interface{}
		expected []interface{}
	}{
		{"empty", nil, nil},
		{"plain", []interface{}{"course_id", "c1"}, []interface{}{"course_id", "c1"}},
		{"password", []interface{}{"password", "hunter2"}, []interface{}{"password", redacted}},
		{"email mixed case", []interface{}{"UserEmail", "a@b.c"}, []interface{}{"UserEmail", redacted}},
		{"id token", []interface{}{"idToken", "x.y.z"}, []interface{}{"idToken", redacted}},
		{"dangling key", []interface{}{"uid", "u1", "orphan"}, []interface{}{"uid", "u1", "orphan"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := sanitizeKVs(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected %d values, got %d (%v)", len(tt.expected), len(got), got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("position %d: expected %v, got %v", i, tt.expected[i], got[i])
				}
			}
		})
	}
}

func TestLoggerRedactsFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	log := Wrap(zap.New(core)).With("email", "ada@example.com")

	log.Info("signed in", "uid", "u1", "password", "secret")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["uid"] != "u1" {
		t.Errorf("uid should be kept, got %v", fields["uid"])
	}
	if fields["password"] != redacted {
		t.Errorf("password should be redacted, got %v", fields["password"])
	}
	if fields["email"] != redacted {
		t.Errorf("email should be redacted, got %v", fields["email"])
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{ModeDevelopment, ModeProduction, ModeNop, ""} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("New(%q) unexpected error: %v", mode, err)
		}
		l.Debug("mode check")
	}
	Nop().Error("discarded")
}

func TestNewNop(t *testing.T) {
	l, err := New(" NOP ")
	if err != nil {
		t.Fatalf("New(nop) unexpected error: %v", err)
	}
	if l.SugaredLogger.Desugar().Core().Enabled(zap.ErrorLevel) {
		t.Error("nop mode should discard every level")
	}
}
