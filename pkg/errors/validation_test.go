package errors

import (
	"strings"
	"testing"
)

func TestIsRemoteRef(t *testing.T) {
	tests := []struct {
		ref  string
		want bool
	}{
		{"https://cdn.example.com/item.png", true},
		{"http://cdn.example.com/item.png", true},
		{"images/item.png", false},
		{"ftp://example.com/item.png", false},
		{"", false},
		{"httpsfoo.png", false},
	}

	for _, tt := range tests {
		if got := IsRemoteRef(tt.ref); got != tt.want {
			t.Errorf("IsRemoteRef(%q) = %v, want %v", tt.ref, got, tt.want)
		}
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple file", "cell.png", false},
		{"nested", "items/helmet/101.png", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 501), true},
		{"absolute", "/etc/passwd", true},
		{"traversal", "items/../../secret.png", true},
		{"backslash", "items\\a.png", true},
		{"null byte", "a\x00.png", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidPath)
			}
		})
	}
}

func TestValidateURL(t *testing.T) {
	if err := ValidateURL("https://example.com/a.png"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := ValidateURL(""); err == nil {
		t.Error("empty URL should be rejected")
	}
	if err := ValidateURL("file:///etc/passwd"); err == nil {
		t.Error("file scheme should be rejected")
	}
}

func TestValidateContainerKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"small_safe", false},
		{"bird_nest", false},
		{"", true},
		{"a b", true},
		{"a/b", true},
		{strings.Repeat("k", 129), true},
	}

	for _, tt := range tests {
		err := ValidateContainerKey(tt.key)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateContainerKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
		}
	}
}
