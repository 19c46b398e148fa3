// Package cryptox wraps the one-way password hashing primitive.
package cryptox

import (
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/bcrypt"
)

// maxBcryptInput is the longest input bcrypt accepts.
const maxBcryptInput = 72

// PasswordHasher hashes passwords and checks candidates against a stored hash.
type PasswordHasher interface {
	Hash(password []byte) ([]byte, error)
	Compare(hash, password []byte) bool
}

// BcryptHasher implements PasswordHasher with bcrypt.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher with the given cost. Costs outside bcrypt's
// accepted range fall back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash hashes password. Passwords longer than bcrypt accepts are first
// reduced to base64(SHA-256(password)).
func (h *BcryptHasher) Hash(password []byte) ([]byte, error) {
	return bcrypt.GenerateFromPassword(prehash(password), h.cost)
}

// Compare reports whether password matches hash. A malformed hash never matches.
func (h *BcryptHasher) Compare(hash, password []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, prehash(password)) == nil
}

func prehash(password []byte) []byte {
	if len(password) <= maxBcryptInput {
		return password
	}
	sum := sha256.Sum256(password)
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}
