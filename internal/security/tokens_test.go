package security

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var testSecret = []byte("test-secret")

func testCodec(ttl time.Duration) *TokenCodec {
	return NewTokenCodec(testSecret, "notes-api", ttl)
}

func TestTokenCodec_IssueAndVerify(t *testing.T) {
	c := testCodec(time.Hour)
	token, expiresAt, err := c.Issue("account-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if token == "" {
		t.Fatal("Issue returned empty token")
	}
	if until := time.Until(expiresAt); until < 59*time.Minute || until > time.Hour {
		t.Errorf("expiresAt %v not ~1h out", expiresAt)
	}
	got, err := c.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != "account-1" {
		t.Errorf("Verify account = %q, want %q", got, "account-1")
	}
}

func TestTokenCodec_VerifyExpired(t *testing.T) {
	c := testCodec(time.Hour)
	// Hand-build a token signed with the right secret but already expired.
	claims := SessionClaims{RegisteredClaims: jwt.RegisteredClaims{
		Subject:   "account-1",
		Issuer:    "notes-api",
		IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	}}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(testSecret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := c.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expired token: got %v, want ErrInvalidToken", err)
	}
}

func TestTokenCodec_VerifyTamperedPayload(t *testing.T) {
	c := testCodec(time.Hour)
	token, _, err := c.Issue("account-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("token has %d parts", len(parts))
	}
	// Swap the payload for a re-encoded one; the signature no longer matches.
	other, _, err := c.Issue("account-2")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	otherParts := strings.Split(other, ".")
	forged := parts[0] + "." + otherParts[1] + "." + parts[2]
	if _, err := c.Verify(forged); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("tampered token: got %v, want ErrInvalidToken", err)
	}
}

func TestTokenCodec_VerifyWrongSecret(t *testing.T) {
	c := testCodec(time.Hour)
	other := NewTokenCodec([]byte("other-secret"), "notes-api", time.Hour)
	token, _, err := other.Issue("account-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := c.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong secret: got %v, want ErrInvalidToken", err)
	}
}

func TestTokenCodec_VerifyWrongIssuer(t *testing.T) {
	c := testCodec(time.Hour)
	other := NewTokenCodec(testSecret, "someone-else", time.Hour)
	token, _, err := other.Issue("account-1")
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := c.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("wrong issuer: got %v, want ErrInvalidToken", err)
	}
}

func TestTokenCodec_VerifyMalformed(t *testing.T) {
	c := testCodec(time.Hour)
	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d"} {
		if _, err := c.Verify(tok); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Verify(%q): got %v, want ErrInvalidToken", tok, err)
		}
	}
}
