package cryptox

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultPasswordCost is the bcrypt work factor used for stored credentials.
const DefaultPasswordCost = 12

// MaxPasswordBytes is the longest input bcrypt will accept. Anything past
// this would be silently ignored by older implementations, so we refuse it.
const MaxPasswordBytes = 72

var ErrPasswordTooLong = errors.New("cryptox: password exceeds 72 bytes")

// Hasher hashes and verifies passwords with bcrypt. The zero value uses
// DefaultPasswordCost; tests set Cost to bcrypt.MinCost to stay fast.
type Hasher struct {
	Cost int
}

func (h Hasher) cost() int {
	if h.Cost == 0 {
		return DefaultPasswordCost
	}
	return h.Cost
}

// Hash returns a bcrypt digest of password. bcrypt generates a random salt on
// every call, so hashing the same password twice yields different digests.
func (h Hasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", ErrPasswordTooLong
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost())
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. A malformed digest is
// treated as a mismatch.
func (h Hasher) Verify(password, digest string) bool {
	if digest == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
