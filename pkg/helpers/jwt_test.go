package helpers

import (
	"testing"
	"time"
)

func TestJWTRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute, time.Hour)

	token, exp, err := m.GenerateAccessToken(42)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !exp.After(time.Now()) {
		t.Fatalf("expiry in the past: %v", exp)
	}

	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	id, err := claims.UserID()
	if err != nil {
		t.Fatalf("user id: %v", err)
	}
	if id != 42 {
		t.Fatalf("user id = %d, want 42", id)
	}
}

func TestJWTExpiredRejected(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, time.Hour)
	token, _, err := m.GenerateAccessToken(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := m.Parse(token); err == nil {
		t.Fatalf("expired token accepted")
	}
}

func TestJWTWrongSecretRejected(t *testing.T) {
	issuer := NewJWTManager("secret-a", time.Minute, time.Hour)
	verifier := NewJWTManager("secret-b", time.Minute, time.Hour)

	token, _, err := issuer.GenerateAccessToken(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := verifier.Parse(token); err == nil {
		t.Fatalf("token signed with another secret accepted")
	}
}

func TestJWTGarbageRejected(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute, time.Hour)
	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Parse(tok); err == nil {
			t.Fatalf("garbage token %q accepted", tok)
		}
	}
}

func TestJWTRefreshAcceptedAsAccess(t *testing.T) {
	m := NewJWTManager("test-secret", time.Minute, time.Hour)
	token, _, err := m.GenerateRefreshToken(7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := m.Parse(token)
	if err != nil {
		t.Fatalf("refresh token must parse like any token: %v", err)
	}
	if id, _ := claims.UserID(); id != 7 {
		t.Fatalf("user id = %d, want 7", id)
	}
}
