// Package auth gates the admin console: a Provider checks credentials and
// Sessions carries the authenticated state in a signed cookie.
package auth

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Provider decides whether a login attempt succeeds.
type Provider interface {
	Authenticate(ctx context.Context, password string) bool
}

// SharedPassword accepts exactly one configured password. Only its bcrypt
// hash is kept in memory.
type SharedPassword struct {
	hash []byte
}

// NewSharedPassword uses hash when set, otherwise hashes password.
func NewSharedPassword(password, hash string) (*SharedPassword, error) {
	if hash != "" {
		if _, err := bcrypt.Cost([]byte(hash)); err != nil {
			return nil, fmt.Errorf("admin password hash: %w", err)
		}
		return &SharedPassword{hash: []byte(hash)}, nil
	}
	h, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	return &SharedPassword{hash: []byte(h)}, nil
}

func (p *SharedPassword) Authenticate(_ context.Context, password string) bool {
	return bcrypt.CompareHashAndPassword(p.hash, digest(password)) == nil
}

// HashPassword returns the bcrypt hash accepted by NewSharedPassword.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword(digest(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(h), nil
}

// digest maps any password to 64 hex bytes, inside bcrypt's 72 byte input
// limit, so every byte of the password takes part in the comparison.
func digest(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	dst := make([]byte, hex.EncodedLen(len(sum)))
	hex.Encode(dst, sum[:])
	return dst
}
