package auth

import (
	"errors"
	"fmt"
	"time"

	"theworks/pkg/model"

	jwt "github.com/golang-jwt/jwt/v5"
)

// Verifier turns a raw bearer credential into a request-scoped Identity.
// Token issuing belongs to the external authentication flow; this side only
// consumes.
type Verifier interface {
	Verify(raw string) (model.Identity, error)
}

type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

type jwtVerifier struct {
	secret []byte
}

func NewJWTVerifier(secret string) Verifier {
	return &jwtVerifier{secret: []byte(secret)}
}

// Verify rejects missing, malformed, expired, and wrongly-signed tokens.
// Callers receive the error for server-side logging only; the client-facing
// failure stays generic.
func (v *jwtVerifier) Verify(raw string) (model.Identity, error) {
	if raw == "" {
		return model.Identity{}, errors.New("missing credential")
	}

	token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return model.Identity{}, fmt.Errorf("credential verification failed: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return model.Identity{}, errors.New("invalid credential claims")
	}

	if claims.Subject == "" {
		return model.Identity{}, errors.New("credential missing subject")
	}

	role := model.Role(claims.Role)
	if !role.Valid() {
		return model.Identity{}, fmt.Errorf("credential carries unknown role %q", claims.Role)
	}

	return model.Identity{
		Subject: claims.Subject,
		Role:    role,
	}, nil
}

// Sign issues a token for the given identity. Used by tests and local
// tooling; production tokens come from the external auth service.
func Sign(secret string, identity model.Identity, ttl time.Duration) (string, error) {
	claims := Claims{
		Role: string(identity.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Subject,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}
