package normalize

import "testing"

func TestTag(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"AST-001", "AST-001"},
		{"  AST-001  ", "AST-001"},
		{"ast-001", "ast-001"}, // Tag preserves case
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Tag(tt.input); got != tt.want {
				t.Errorf("Tag(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSerial(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"sn-1234abc", "SN-1234ABC"},
		{"  SN-1234ABC  ", "SN-1234ABC"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Serial(tt.input); got != tt.want {
				t.Errorf("Serial(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"user@example.com", "user@example.com"},
		{"USER@EXAMPLE.COM", "user@example.com"},
		{"  User@Example.Com  ", "user@example.com"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := Email(tt.input); got != tt.want {
				t.Errorf("Email(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestVendorStatus(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"active", "active"},
		{"ACTIVE", "active"},
		{"  Inactive  ", "inactive"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := VendorStatus(tt.input); got != tt.want {
				t.Errorf("VendorStatus(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
