package services

import (
	"testing"
	"time"

	"stayhub/constants"
	"stayhub/errors"
)

func TestTokenRoundTrip(t *testing.T) {
	tokens := NewTokenService("test-secret")
	signed, err := tokens.Generate(constants.RoleVendor, "v-1", "v@example.com", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	claims, err := tokens.Parse(signed)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Role != constants.RoleVendor || claims.ID != "v-1" || claims.Email != "v@example.com" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestTokenRejected(t *testing.T) {
	tokens := NewTokenService("test-secret")
	signed, _ := tokens.Generate(constants.RoleStudent, "s-1", "s@example.com", time.Hour)

	if _, err := NewTokenService("other-secret").Parse(signed); !errors.HasCode(err, errors.ErrCodeUnauthorized) {
		t.Errorf("wrong secret: %v", err)
	}
	if _, err := tokens.Parse(signed + "x"); !errors.HasCode(err, errors.ErrCodeUnauthorized) {
		t.Errorf("tampered: %v", err)
	}

	expired, _ := tokens.Generate(constants.RoleStudent, "s-1", "s@example.com", -time.Minute)
	if _, err := tokens.Parse(expired); !errors.HasCode(err, errors.ErrCodeUnauthorized) {
		t.Errorf("expired: %v", err)
	}
	if _, err := tokens.Parse(""); err == nil {
		t.Error("empty token accepted")
	}
}
