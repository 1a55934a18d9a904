package cryptox

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var fast = Hasher{Cost: bcrypt.MinCost}

func TestHashAndVerify(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "longenough1"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"max length password", strings.Repeat("a", MaxPasswordBytes)},
		{"empty password", ""},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			digest, err := fast.Hash(tt.password)
			require.NoError(t, err)
			require.True(t, strings.HasPrefix(digest, "$2a$"), "bcrypt digest expected")
			require.True(t, fast.Verify(tt.password, digest))
		})
	}
}

func TestHashUsesFreshSalt(t *testing.T) {
	a, err := fast.Hash("samepassword")
	require.NoError(t, err)
	b, err := fast.Hash("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
	require.True(t, fast.Verify("samepassword", a))
	require.True(t, fast.Verify("samepassword", b))
}

func TestVerifyWrongPassword(t *testing.T) {
	digest, err := fast.Hash("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{"wrong-password", "Correct-Password", "correct-password ", "", "correct-passwor"} {
		require.False(t, fast.Verify(wrong, digest), wrong)
	}
}

func TestVerifyMalformedDigest(t *testing.T) {
	for _, digest := range []string{"", "plain-text", "$2a$12$short", "$argon2id$v=19$m=19456,t=2,p=1$c2FsdA$aGFzaA"} {
		require.NotPanics(t, func() {
			require.False(t, fast.Verify("password", digest))
		})
	}
}

func TestHashRejectsOverlongPassword(t *testing.T) {
	_, err := fast.Hash(strings.Repeat("a", MaxPasswordBytes+1))
	require.ErrorIs(t, err, ErrPasswordTooLong)
}

func TestDefaultCost(t *testing.T) {
	require.Equal(t, 12, Hasher{}.cost())
	require.Equal(t, bcrypt.MinCost, fast.cost())
}
