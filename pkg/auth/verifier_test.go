package auth

import (
	"testing"
	"time"

	"theworks/pkg/model"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestVerifyValidToken(t *testing.T) {
	raw, err := Sign(testSecret, model.Identity{Subject: "user-1", Role: model.RoleUser}, time.Minute)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	verifier := NewJWTVerifier(testSecret)
	identity, err := verifier.Verify(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if identity.Subject != "user-1" {
		t.Errorf("expected subject user-1, got %s", identity.Subject)
	}
	if identity.Role != model.RoleUser {
		t.Errorf("expected role user, got %s", identity.Role)
	}
}

func TestVerifyRejections(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)

	expired, err := Sign(testSecret, model.Identity{Subject: "user-1", Role: model.RoleUser}, -time.Minute)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	wrongKey, err := Sign("ffffffffffffffffffffffffffffffff", model.Identity{Subject: "user-1", Role: model.RoleUser}, time.Minute)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	badRole, err := Sign(testSecret, model.Identity{Subject: "user-1", Role: model.Role("superuser")}, time.Minute)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	noSubject, err := Sign(testSecret, model.Identity{Role: model.RoleAdmin}, time.Minute)
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}

	tests := []struct {
		name string
		raw  string
	}{
		{"missing", ""},
		{"malformed", "not-a-jwt"},
		{"expired", expired},
		{"wrong signature", wrongKey},
		{"unknown role", badRole},
		{"missing subject", noSubject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := verifier.Verify(tt.raw); err == nil {
				t.Error("expected verification to fail")
			}
		})
	}
}
