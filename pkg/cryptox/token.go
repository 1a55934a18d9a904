package cryptox

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
)

// Token sizes in bytes before encoding.
const (
	TokenSize128 = 16 // 22 chars base64url
	TokenSize256 = 32 // 43 chars base64url
)

// GenerateToken returns size random bytes encoded as unpadded base64url.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// FingerprintToken returns the SHA-256 of token as unpadded base64url
// (43 chars). Invitation tokens, session tokens and backup codes are stored
// only as fingerprints so a database leak does not leak usable credentials.
func FingerprintToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// crockford is Crockford's base32 alphabet: no I, L, O or U.
const crockford = "0123456789ABCDEFGHJKMNPQRSTVWXYZ"

// GenerateCode returns a human friendly one-time code made of groups of
// Crockford base32 characters joined by dashes, e.g. "7QK2M-0X4RT".
func GenerateCode(groups, groupLen int) (string, error) {
	if groups <= 0 || groupLen <= 0 {
		return "", fmt.Errorf("code shape must be positive, got %dx%d", groups, groupLen)
	}

	raw := make([]byte, groups*groupLen)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("failed to generate code: %w", err)
	}

	var b strings.Builder
	for i, v := range raw {
		if i > 0 && i%groupLen == 0 {
			b.WriteByte('-')
		}
		// 256 is a multiple of 32 so masking keeps the distribution uniform.
		b.WriteByte(crockford[v&31])
	}
	return b.String(), nil
}

// NormalizeCode canonicalises user input for a code produced by
// GenerateCode: case, dashes and whitespace are ignored and the usual
// Crockford look-alikes are folded.
func NormalizeCode(code string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(code) {
		switch r {
		case '-', ' ', '\t':
			continue
		case 'O':
			r = '0'
		case 'I', 'L':
			r = '1'
		}
		b.WriteRune(r)
	}
	return b.String()
}
