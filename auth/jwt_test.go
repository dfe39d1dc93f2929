package auth

import (
	"testing"
	"time"
)

func TestSignAndParseToken(t *testing.T) {
	token, err := SignToken(42, "secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	claims, err := ParseToken(token, "secret")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != 42 {
		t.Fatalf("userID = %d, want 42", claims.UserID)
	}
}

func TestParseTokenWrongSecret(t *testing.T) {
	token, err := SignToken(42, "secret", time.Hour)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken(token, "other"); err == nil {
		t.Fatal("token signed with a different secret must not parse")
	}
}

func TestParseTokenExpired(t *testing.T) {
	token, err := SignToken(42, "secret", -time.Minute)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := ParseToken(token, "secret"); err == nil {
		t.Fatal("expired token must not parse")
	}
}

func TestParseTokenGarbage(t *testing.T) {
	if _, err := ParseToken("not-a-token", "secret"); err == nil {
		t.Fatal("garbage must not parse")
	}
	if _, err := ParseToken("", ""); err == nil {
		t.Fatal("empty secret must be rejected")
	}
}
