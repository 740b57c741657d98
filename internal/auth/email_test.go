package auth

import "testing"

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name  string
		email string
		valid bool
	}{
		{"simple", "alice@x.com", true},
		{"subdomain", "alice@mail.example.org", true},
		{"plus tag", "alice+tag@x.com", true},
		{"uppercase", "ALICE@X.COM", true},
		{"empty", "", false},
		{"no at", "alice.x.com", false},
		{"no domain", "alice@", false},
		{"spaces inside", "ali ce@x.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEmail(tt.email)
			if tt.valid && err != nil {
				t.Errorf("ValidateEmail(%q) = %v, want nil", tt.email, err)
			}
			if !tt.valid && err == nil {
				t.Errorf("ValidateEmail(%q) = nil, want error", tt.email)
			}
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Alice@X.com", "alice@x.com"},
		{"  alice@x.com  ", "alice@x.com"},
		{"already@lower.com", "already@lower.com"},
	}

	for _, tt := range tests {
		if got := NormalizeEmail(tt.in); got != tt.want {
			t.Errorf("NormalizeEmail(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
