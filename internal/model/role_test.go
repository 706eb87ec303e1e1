package model

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		input       string
		expected    Role
		expectError bool
	}{
		{"teacher", RoleTeacher, false},
		{"student", RoleStudent, false},
		{"Teacher", 0, true},
		{"admin", 0, true},
		{"", 0, true},
	}

	for _, test := range tests {
		role, err := ParseRole(test.input)
		if test.expectError {
			if err == nil {
				t.Errorf("ParseRole(%q) expected error, got %v", test.input, role)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseRole(%q) unexpected error: %v", test.input, err)
		}
		if role != test.expected {
			t.Errorf("ParseRole(%q) = %v, expected %v", test.input, role, test.expected)
		}
	}
}

func TestRole_StringRoundTrip(t *testing.T) {
	for _, role := range AllRoles {
		parsed, err := ParseRole(role.String())
		if err != nil {
			t.Fatalf("ParseRole(%q) unexpected error: %v", role.String(), err)
		}
		if parsed != role {
			t.Errorf("round trip of %v gave %v", role, parsed)
		}
	}

	var zero Role
	if zero.IsValid() {
		t.Error("zero Role should not be valid")
	}
	if zero.String() != "unknown" {
		t.Errorf("zero Role String() = %q, expected unknown", zero.String())
	}
}

func TestRole_Capabilities(t *testing.T) {
	tests := []struct {
		role     Role
		author   bool
		progress bool
	}{
		{RoleTeacher, true, false},
		{RoleStudent, false, true},
		{Role(0), false, false},
	}

	for _, test := range tests {
		if got := test.role.CanAuthor(); got != test.author {
			t.Errorf("Role(%v).CanAuthor() = %v, expected %v", test.role, got, test.author)
		}
		if got := test.role.TracksProgress(); got != test.progress {
			t.Errorf("Role(%v).TracksProgress() = %v, expected %v", test.role, got, test.progress)
		}
	}
}
