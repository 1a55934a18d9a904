package jwtx_test

import (
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskflow/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var (
	secret = []byte("0123456789abcdef0123456789abcdef")
	other  = []byte("fedcba9876543210fedcba9876543210")
)

func mustSigner(t *testing.T, key []byte) *jwtx.HS256Signer {
	t.Helper()
	s, err := jwtx.NewSignerHS256(key)
	require.NoError(t, err)
	return s
}

func mustVerifier(t *testing.T, key []byte, opts jwtx.VerifyOptions) *jwtx.HS256Verifier {
	t.Helper()
	v, err := jwtx.NewVerifierHS256(key, opts)
	require.NoError(t, err)
	return v
}

func TestHS256RoundTrip(t *testing.T) {
	signer := mustSigner(t, secret)
	require.Equal(t, "HS256", signer.Alg())

	now := time.Now().UTC()
	token, err := signer.Sign(jwtx.NewClaims("user-1", "admin", jwtx.PurposeSession, "taskflow", jwtx.DefaultSessionTTL, now))
	require.NoError(t, err)

	claims, err := mustVerifier(t, secret, jwtx.VerifyOptions{Issuer: "taskflow", Purpose: jwtx.PurposeSession}).Verify(token)
	require.NoError(t, err)
	require.Equal(t, "user-1", claims.Subject)
	require.Equal(t, "admin", claims.Role)
	require.NotEmpty(t, claims.ID)
	require.WithinDuration(t, now.Add(30*24*time.Hour), claims.ExpiresAt.Time, time.Second)
}

func TestHS256Expiry(t *testing.T) {
	signer := mustSigner(t, secret)
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	token, err := signer.Sign(jwtx.NewClaims("user-1", "user", jwtx.PurposeSession, "taskflow", jwtx.DefaultSessionTTL, issued))
	require.NoError(t, err)

	at := func(t time.Time) func() time.Time { return func() time.Time { return t } }

	t.Run("valid right after issue", func(t *testing.T) {
		v := mustVerifier(t, secret, jwtx.VerifyOptions{Now: at(issued.Add(time.Minute))})
		_, err := v.Verify(token)
		require.NoError(t, err)
	})

	t.Run("valid a day before expiry", func(t *testing.T) {
		v := mustVerifier(t, secret, jwtx.VerifyOptions{Now: at(issued.Add(29 * 24 * time.Hour))})
		_, err := v.Verify(token)
		require.NoError(t, err)
	})

	t.Run("rejected past expiry", func(t *testing.T) {
		v := mustVerifier(t, secret, jwtx.VerifyOptions{Now: at(issued.Add(30*24*time.Hour + time.Second))})
		_, err := v.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrExpired)
	})
}

func TestHS256Rejections(t *testing.T) {
	now := time.Now().UTC()
	good, err := mustSigner(t, secret).Sign(jwtx.NewClaims("user-1", "user", jwtx.PurposeSession, "taskflow", time.Hour, now))
	require.NoError(t, err)

	t.Run("wrong secret", func(t *testing.T) {
		_, err := mustVerifier(t, other, jwtx.VerifyOptions{}).Verify(good)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("tampered payload", func(t *testing.T) {
		parts := strings.Split(good, ".")
		forged, err := mustSigner(t, other).Sign(jwtx.NewClaims("user-2", "admin", jwtx.PurposeSession, "taskflow", time.Hour, now))
		require.NoError(t, err)
		parts[1] = strings.Split(forged, ".")[1]
		_, err = mustVerifier(t, secret, jwtx.VerifyOptions{}).Verify(strings.Join(parts, "."))
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("wrong issuer", func(t *testing.T) {
		_, err := mustVerifier(t, secret, jwtx.VerifyOptions{Issuer: "someone-else"}).Verify(good)
		require.ErrorIs(t, err, jwtx.ErrIssuer)
	})

	t.Run("wrong purpose", func(t *testing.T) {
		_, err := mustVerifier(t, secret, jwtx.VerifyOptions{Purpose: jwtx.PurposeTwoFactor}).Verify(good)
		require.ErrorIs(t, err, jwtx.ErrPurpose)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := mustVerifier(t, secret, jwtx.VerifyOptions{}).Verify("not.a.jwt")
		require.Error(t, err)
	})

	t.Run("other algorithm", func(t *testing.T) {
		claims := jwtx.NewClaims("user-1", "admin", jwtx.PurposeSession, "taskflow", time.Hour, now)
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(secret)
		require.NoError(t, err)
		_, err = mustVerifier(t, secret, jwtx.VerifyOptions{}).Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := jwtx.NewClaims("user-1", "admin", jwtx.PurposeSession, "taskflow", time.Hour, now)
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = mustVerifier(t, secret, jwtx.VerifyOptions{}).Verify(token)
		require.Error(t, err)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := jwtx.NewClaims("user-1", "admin", jwtx.PurposeSession, "taskflow", time.Hour, now)
		claims.ExpiresAt = nil
		token, err := mustSigner(t, secret).Sign(claims)
		require.NoError(t, err)
		_, err = mustVerifier(t, secret, jwtx.VerifyOptions{}).Verify(token)
		require.Error(t, err)
	})
}

func TestWeakSecretRejected(t *testing.T) {
	_, err := jwtx.NewSignerHS256([]byte("short"))
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)

	_, err = jwtx.NewVerifierHS256(nil, jwtx.VerifyOptions{})
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}
