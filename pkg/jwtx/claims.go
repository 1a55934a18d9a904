package jwtx

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Token lifetimes used by TaskFlow.
const (
	// DefaultSessionTTL is how long a login stays valid. It matches the
	// Max-Age of the session cookie.
	DefaultSessionTTL = 30 * 24 * time.Hour

	// DefaultTwoFactorTTL bounds how long a passed 2FA challenge is honoured.
	DefaultTwoFactorTTL = time.Hour
)

// Purposes keep a token minted for one cookie from being replayed in another.
const (
	PurposeSession   = "session"
	PurposeTwoFactor = "2fa"
)

// Claims carried by every TaskFlow token.
type Claims struct {
	jwt.RegisteredClaims

	// Role is the system-wide role of the subject ("admin" or "user").
	Role string `json:"role,omitempty"`

	// Purpose is one of the Purpose constants.
	Purpose string `json:"purpose"`
}

// NewClaims builds claims for subject valid from now until now+ttl.
func NewClaims(subject, role, purpose, issuer string, ttl time.Duration, now time.Time) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        NewJTI(),
		},
		Role:    role,
		Purpose: purpose,
	}
}

// NewJTI returns a URL-safe random identifier for the "jti" claim.
func NewJTI() string {
	var b [20]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
