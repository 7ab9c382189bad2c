// ABOUTME: Tests for credential hashing
// ABOUTME: Verifies bcrypt round trips, cost fallback and unverifiable hashes
package credentials

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestBcrypt_HashAndCompare(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)

	hash, err := h.Hash("pw1")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if hash == "pw1" {
		t.Fatal("Hash() returned the secret in the clear")
	}
	if !h.Compare(hash, "pw1") {
		t.Error("Compare() rejected the right secret")
	}
	if h.Compare(hash, "wrong") {
		t.Error("Compare() accepted a wrong secret")
	}
	if h.Compare("", "pw1") || h.Compare(hash, "") {
		t.Error("Compare() accepted an empty input")
	}
}

func TestBcrypt_EmptySecret(t *testing.T) {
	if _, err := NewBcrypt(bcrypt.MinCost).Hash(""); err == nil {
		t.Error("Hash(\"\") should fail")
	}
}

func TestNewBcrypt_CostFallback(t *testing.T) {
	if got := NewBcrypt(0).Cost; got != bcrypt.DefaultCost {
		t.Errorf("NewBcrypt(0).Cost = %d, want %d", got, bcrypt.DefaultCost)
	}
	if got := NewBcrypt(99).Cost; got != bcrypt.DefaultCost {
		t.Errorf("NewBcrypt(99).Cost = %d, want %d", got, bcrypt.DefaultCost)
	}
}

func TestUnverifiable(t *testing.T) {
	h := NewBcrypt(bcrypt.MinCost)
	a, err := Unverifiable(h)
	if err != nil {
		t.Fatalf("Unverifiable() error = %v", err)
	}
	b, _ := Unverifiable(h)
	if a == b {
		t.Error("Unverifiable() produced identical hashes")
	}
	if h.Compare(a, "") || h.Compare(a, "OAUTH_EXTERNAL_PROVIDER_VERIFIED") {
		t.Error("Unverifiable hash matched a guessable secret")
	}
}
