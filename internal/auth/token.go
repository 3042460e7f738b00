package auth

// Package auth verifies bearer tokens issued by the external identity
// provider. The service never issues sessions of its own; it only derives a
// read-only model.Session from claims signed with the shared HS256 secret.

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"capsterapi/internal/config"
	"capsterapi/internal/model"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token has expired")
)

// Claims are the JWT claims the identity provider attaches to a session.
type Claims struct {
	Role     string `json:"role"`
	FullName string `json:"full_name"`
	jwt.RegisteredClaims
}

// Verifier parses and validates session tokens.
type Verifier struct {
	secret []byte
	issuer string
}

// NewVerifier builds a Verifier from configuration. An empty secret is a
// configuration error; it must be caught at startup, not per request.
func NewVerifier(cfg config.AuthConfig) (*Verifier, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("auth: JWT secret is required")
	}
	return &Verifier{secret: []byte(cfg.JWTSecret), issuer: cfg.Issuer}, nil
}

// ParseSession validates the token and returns the session it describes.
func (v *Verifier) ParseSession(tokenString string) (model.Session, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithIssuer(v.issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return model.Session{}, ErrTokenExpired
		}
		return model.Session{}, ErrTokenInvalid
	}
	if !token.Valid || claims.Subject == "" {
		return model.Session{}, ErrTokenInvalid
	}

	return model.Session{
		UserID:   claims.Subject,
		FullName: claims.FullName,
		Role:     model.UserRole(claims.Role),
	}, nil
}

// Sign mints a token for the given session. Used by tests and local tooling;
// in production tokens come from the identity provider.
func Sign(secret, issuer string, sess model.Session, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role:     string(sess.Role),
		FullName: sess.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sess.UserID,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}
