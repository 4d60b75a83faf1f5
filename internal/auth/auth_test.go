package auth

import (
	"testing"
	"time"
)

func TestPasswordHashRoundTrip(t *testing.T) {
	hash, err := HashPassword("secret1")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPasswordHash("secret1", hash) {
		t.Error("correct password rejected")
	}
	if CheckPasswordHash("wrong", hash) {
		t.Error("wrong password accepted")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	signed, err := tokens.Issue("u1", "jane@example.com", time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := tokens.Parse(signed)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "u1" || claims.Email != "jane@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenExpired(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)

	signed, err := tokens.Issue("u1", "jane@example.com", time.Now().Add(-2*time.Hour))
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := tokens.Parse(signed); err == nil {
		t.Error("expired token accepted")
	}
}

func TestTokenWrongSecret(t *testing.T) {
	signed, err := NewTokens("secret-a", time.Hour).Issue("u1", "jane@example.com", time.Now())
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := NewTokens("secret-b", time.Hour).Parse(signed); err == nil {
		t.Error("token signed with another secret accepted")
	}
}

func TestTokenGarbage(t *testing.T) {
	tokens := NewTokens("test-secret", time.Hour)
	if _, err := tokens.Parse("not-a-token"); err == nil {
		t.Error("garbage token accepted")
	}
}
