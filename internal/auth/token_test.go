package auth

import (
	"strings"
	"testing"
)

func TestGenerateToken_Length(t *testing.T) {
	for _, length := range []int{1, 32, VerificationTokenLength} {
		token, err := GenerateToken(length)
		if err != nil {
			t.Fatalf("GenerateToken(%d) failed: %v", length, err)
		}
		if len(token) != length {
			t.Errorf("len = %d, want %d", len(token), length)
		}
	}
}

func TestGenerateToken_Alphabet(t *testing.T) {
	token, err := GenerateToken(200)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}
	for _, c := range token {
		if !strings.ContainsRune(tokenAlphabet, c) {
			t.Errorf("token contains %q, outside the alphanumeric alphabet", c)
		}
	}
}

func TestGenerateToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateToken(VerificationTokenLength)
		if err != nil {
			t.Fatalf("GenerateToken failed: %v", err)
		}
		if seen[token] {
			t.Fatal("duplicate token generated")
		}
		seen[token] = true
	}
}

func TestHashToken(t *testing.T) {
	h1 := HashToken("some-token")
	h2 := HashToken("some-token")
	h3 := HashToken("other-token")

	if h1 != h2 {
		t.Error("hash should be deterministic")
	}
	if h1 == h3 {
		t.Error("different tokens should hash differently")
	}
	if len(h1) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(h1))
	}
	if h1 == "some-token" {
		t.Error("hash must differ from the raw token")
	}
}
