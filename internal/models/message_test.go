// ABOUTME: Tests for Message and Role
// ABOUTME: Verifies the closed role set and transcript rendering

package models

import "testing"

func TestParseRole(t *testing.T) {
	tests := []struct {
		in      string
		want    Role
		wantErr bool
	}{
		{"user", RoleUser, false},
		{"assistant", RoleAssistant, false},
		{"system", "", true},
		{"", "", true},
		{"USER", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseRole(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRole(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseRole(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMessage_String(t *testing.T) {
	m := Message{Role: RoleUser, Body: "hello"}
	if got := m.String(); got != "user:hello" {
		t.Errorf("String() = %q, want user:hello", got)
	}
}
