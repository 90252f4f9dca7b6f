// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package auth issues and verifies the bearer credentials that identify
// requests. A credential is an HMAC-signed JWT carrying the subject's
// user id and email.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// DefaultTTL is how long an issued credential stays valid.
const DefaultTTL = time.Hour

// Identity is the verified subject carried by a credential.
type Identity struct {
	UserID uuid.UUID
	Email  string
}

// claims is the JWT payload. Email rides along for display purposes;
// UserID is the authoritative subject.
type claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies credentials with a shared HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
}

// NewIssuer creates an Issuer for the given secret.
func NewIssuer(secret string) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: DefaultTTL}
}

// Issue creates a signed credential for the given subject.
func (i *Issuer) Issue(userID uuid.UUID, email string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	})

	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", fmt.Errorf("sign credential: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a credential, returning the subject
// identity. Expired, malformed, or foreign-signed tokens all fail.
func (i *Issuer) Verify(tokenString string) (*Identity, error) {
	var c claims
	token, err := jwt.ParseWithClaims(tokenString, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return i.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("verify credential: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("verify credential: token invalid")
	}
	if c.UserID == uuid.Nil {
		return nil, fmt.Errorf("verify credential: missing subject")
	}

	return &Identity{UserID: c.UserID, Email: c.Email}, nil
}
