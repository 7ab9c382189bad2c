// ABOUTME: Credential hashing for account secrets
// ABOUTME: bcrypt by default; secrets are never stored in the clear
package credentials

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Hasher turns secrets into stored hashes and checks candidates against them
type Hasher interface {
	Hash(secret string) (string, error)
	Compare(hash, secret string) bool
}

// Bcrypt implements Hasher with golang.org/x/crypto/bcrypt
type Bcrypt struct {
	Cost int
}

// NewBcrypt returns a bcrypt hasher. Costs outside bcrypt's range fall back
// to bcrypt.DefaultCost.
func NewBcrypt(cost int) *Bcrypt {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Bcrypt{Cost: cost}
}

// Hash implements Hasher
func (b *Bcrypt) Hash(secret string) (string, error) {
	if secret == "" {
		return "", errors.New("secret cannot be empty")
	}
	h, err := bcrypt.GenerateFromPassword([]byte(secret), b.Cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(h), nil
}

// Compare implements Hasher
func (b *Bcrypt) Compare(hash, secret string) bool {
	if hash == "" || secret == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(secret)) == nil
}

// Unverifiable returns a hash that no secret the user knows will match.
// Used for accounts created through federated sign-in.
func Unverifiable(h Hasher) (string, error) {
	return h.Hash("federated:" + uuid.NewString() + uuid.NewString())
}
