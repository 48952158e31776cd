package security

import (
	"testing"
)

func TestHasher_HashAndVerify(t *testing.T) {
	h := NewHasher(4)
	password := []byte("Passw0rd1")
	hash, err := h.Hash(password)
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "" {
		t.Fatal("Hash returned empty")
	}
	if hash == string(password) {
		t.Fatal("Hash must not equal plaintext")
	}
	if !h.Verify(hash, password) {
		t.Fatal("Verify should accept the original password")
	}
}

func TestHasher_VerifyWrongPassword(t *testing.T) {
	h := NewHasher(4)
	hash, _ := h.Hash([]byte("Passw0rd1"))
	if h.Verify(hash, []byte("wrong")) {
		t.Fatal("Verify with wrong password should fail")
	}
}

func TestHasher_VerifyMalformedHash(t *testing.T) {
	h := NewHasher(4)
	// Malformed verifier must read as a failed match, never a panic or error.
	if h.Verify("not-a-bcrypt-hash", []byte("anything")) {
		t.Fatal("Verify with malformed hash should fail")
	}
	if h.Verify("", []byte("anything")) {
		t.Fatal("Verify with empty hash should fail")
	}
}

func TestHasher_Cost(t *testing.T) {
	h := NewHasher(12)
	if h.Cost != 12 {
		t.Errorf("Cost want 12, got %d", h.Cost)
	}
	h0 := NewHasher(0)
	if h0.Cost < 4 {
		t.Errorf("zero cost should be clamped to at least MinCost, got %d", h0.Cost)
	}
	hBig := NewHasher(99)
	if hBig.Cost > 31 {
		t.Errorf("oversized cost should be clamped to MaxCost, got %d", hBig.Cost)
	}
}
