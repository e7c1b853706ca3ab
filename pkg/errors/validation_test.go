package errors

import (
	"testing"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid short", "t1", false},
		{"valid prefixed uuid", "task_7f3a1c2e-9f52-4a2d-9b1e-0c8f3a6d2e91", false},
		{"valid with dash", "my-task", false},
		{"valid with underscore", "group_1", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 200)), true},
		{"spaces", "my task", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
		{"tab", "foo\tbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRoomID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid uuid", "7f3a1c2e-9f52-4a2d-9b1e-0c8f3a6d2e91", false},
		{"valid short code", "room42", false},

		{"empty", "", true},
		{"too short", "ab", true},
		{"redis key injection", "abc:def", true},
		{"spaces", "room 42", true},
		{"path chars", "room/42", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRoomID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateRoomID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateVersionLabel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid auto label", "V3", false},
		{"valid freeform", "Before the replan", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 100)), true},
		{"control char", "V1\x00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateVersionLabel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateVersionLabel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
