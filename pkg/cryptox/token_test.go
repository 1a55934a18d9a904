package cryptox

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name string
		size int
		len  int
	}{
		{"128-bit token", TokenSize128, 22},
		{"256-bit token", TokenSize256, 43},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.Len(t, a, tt.len)

			b, err := GenerateToken(tt.size)
			require.NoError(t, err)
			require.NotEqual(t, a, b)
		})
	}
}

func TestGenerateToken_InvalidSize(t *testing.T) {
	for _, size := range []int{0, -1} {
		token, err := GenerateToken(size)
		require.Error(t, err)
		require.Empty(t, token)
	}
}

func TestFingerprintToken(t *testing.T) {
	a := FingerprintToken("test-token-1")
	require.Equal(t, a, FingerprintToken("test-token-1"))
	require.NotEqual(t, a, FingerprintToken("test-token-2"))
	require.Len(t, a, 43)
}

func TestGenerateCode(t *testing.T) {
	shape := regexp.MustCompile(`^[0-9A-HJKMNP-TV-Z]{5}-[0-9A-HJKMNP-TV-Z]{5}$`)

	seen := make(map[string]struct{})
	for range 200 {
		code, err := GenerateCode(2, 5)
		require.NoError(t, err)
		require.Regexp(t, shape, code)
		require.NotContains(t, seen, code)
		seen[code] = struct{}{}
	}

	_, err := GenerateCode(0, 5)
	require.Error(t, err)
}

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"7QK2M-0X4RT", "7QK2M0X4RT"},
		{"7qk2m-0x4rt", "7QK2M0X4RT"},
		{" 7QK2M 0X4RT ", "7QK2M0X4RT"},
		{"7QK2M-OX4RT", "7QK2M0X4RT"},
		{"ILIL0-00000", "1111000000"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, NormalizeCode(tt.in), tt.in)
	}
}
