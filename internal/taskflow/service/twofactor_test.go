package service

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/require"
)

func currentCode(t *testing.T, e *env, secret string) string {
	t.Helper()
	code, err := totp.GenerateCode(secret, e.clock.Now())
	require.NoError(t, err)
	return code
}

// enableTwoFactor turns 2FA on for userID and returns the secret and codes.
func enableTwoFactor(t *testing.T, e *env, userID string) (string, []string) {
	t.Helper()
	ctx := context.Background()
	setup, err := e.twoFactor.GenerateSecret(ctx, userID, "user@x.com")
	require.NoError(t, err)
	codes, err := e.twoFactor.Enable(ctx, userID, setup.Secret, currentCode(t, e, setup.Secret))
	require.NoError(t, err)
	return setup.Secret, codes
}

func TestGenerateSecretPersistsNothing(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, _ := e.signup(t, "Ann", "ann@x.com")

	setup, err := e.twoFactor.GenerateSecret(ctx, ann.User.ID, "ann@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, setup.Secret)
	require.True(t, strings.HasPrefix(setup.URI, "otpauth://totp/"))
	require.Contains(t, setup.URI, "issuer=TaskFlow")

	enabled, err := e.twoFactor.IsEnabled(ctx, ann.User.ID)
	require.NoError(t, err)
	require.False(t, enabled)
}

func TestEnableTwoFactor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, _ := e.signup(t, "Ann", "ann@x.com")

	setup, err := e.twoFactor.GenerateSecret(ctx, ann.User.ID, "ann@x.com")
	require.NoError(t, err)

	_, err = e.twoFactor.Enable(ctx, ann.User.ID, setup.Secret, "000000")
	if err == nil {
		t.Skip("000000 happened to be the current code")
	}
	require.ErrorIs(t, err, ErrInvalidTwoFactorCode)

	codes, err := e.twoFactor.Enable(ctx, ann.User.ID, setup.Secret, currentCode(t, e, setup.Secret))
	require.NoError(t, err)
	require.Len(t, codes, backupCodeCount)
	seen := map[string]bool{}
	for _, c := range codes {
		require.Regexp(t, `^[0-9A-HJKMNP-TV-Z]{5}-[0-9A-HJKMNP-TV-Z]{5}$`, c)
		require.False(t, seen[c])
		seen[c] = true
	}

	settings, err := e.store.TwoFactor().GetSettings(ctx, ann.User.ID)
	require.NoError(t, err)
	require.NotContains(t, string(settings.Secret), setup.Secret, "secret is sealed at rest")

	_, err = e.twoFactor.GenerateSecret(ctx, ann.User.ID, "ann@x.com")
	require.ErrorIs(t, err, ErrTwoFactorAlreadyEnabled)

	_, err = e.twoFactor.Enable(ctx, ann.User.ID, setup.Secret, currentCode(t, e, setup.Secret))
	require.ErrorIs(t, err, ErrTwoFactorAlreadyEnabled)
}

func TestConcurrentEnableOnlyOneWins(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, _ := e.signup(t, "Ann", "ann@x.com")

	secrets := make([]string, 2)
	for i := range secrets {
		setup, err := e.twoFactor.GenerateSecret(ctx, ann.User.ID, "ann@x.com")
		require.NoError(t, err)
		secrets[i] = setup.Secret
	}

	errs := make([]error, len(secrets))
	var wg sync.WaitGroup
	for i, secret := range secrets {
		code := currentCode(t, e, secret)
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = e.twoFactor.Enable(ctx, ann.User.ID, secret, code)
		}()
	}
	wg.Wait()

	var ok, already int
	for _, err := range errs {
		switch {
		case err == nil:
			ok++
		case err == ErrTwoFactorAlreadyEnabled:
			already++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	require.Equal(t, 1, ok)
	require.Equal(t, 1, already)
}

func TestVerifyTOTP(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, _ := e.signup(t, "Ann", "ann@x.com")
	secret, _ := enableTwoFactor(t, e, ann.User.ID)

	require.NoError(t, e.twoFactor.Verify(ctx, ann.User.ID, currentCode(t, e, secret), false))

	// Codes from one step either side are accepted, older ones are not.
	prev, err := totp.GenerateCode(secret, e.clock.Now().Add(-30*time.Second))
	require.NoError(t, err)
	require.NoError(t, e.twoFactor.Verify(ctx, ann.User.ID, prev, false))

	stale, err := totp.GenerateCode(secret, e.clock.Now().Add(-5*time.Minute))
	require.NoError(t, err)
	if stale != currentCode(t, e, secret) && stale != prev {
		require.ErrorIs(t, e.twoFactor.Verify(ctx, ann.User.ID, stale, false), ErrInvalidTwoFactorCode)
	}

	for _, bad := range []string{"", "12345", "1234567", "abcdef"} {
		require.ErrorIs(t, e.twoFactor.Verify(ctx, ann.User.ID, bad, false), ErrInvalidTwoFactorCode, bad)
	}
}

func TestVerifyWithoutTwoFactor(t *testing.T) {
	e := newEnv(t)
	ann, _ := e.signup(t, "Ann", "ann@x.com")
	ctx := context.Background()
	require.ErrorIs(t, e.twoFactor.Verify(ctx, ann.User.ID, "123456", false), ErrInvalidTwoFactorCode)
	require.ErrorIs(t, e.twoFactor.Verify(ctx, ann.User.ID, "ZZZZZ-ZZZZZ", true), ErrInvalidTwoFactorCode)
}

func TestBackupCodesAreSingleUse(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, _ := e.signup(t, "Ann", "ann@x.com")
	_, codes := enableTwoFactor(t, e, ann.User.ID)

	// Lower case, no dash and confusable letters are accepted.
	typed := strings.ToLower(strings.ReplaceAll(codes[0], "-", " "))
	require.NoError(t, e.twoFactor.Verify(ctx, ann.User.ID, typed, true))
	require.ErrorIs(t, e.twoFactor.Verify(ctx, ann.User.ID, codes[0], true), ErrInvalidTwoFactorCode)

	require.ErrorIs(t, e.twoFactor.Verify(ctx, ann.User.ID, "ZZZZZ-ZZZZZ", true), ErrInvalidTwoFactorCode)
	require.ErrorIs(t, e.twoFactor.Verify(ctx, ann.User.ID, "", true), ErrInvalidTwoFactorCode)

	status, err := e.twoFactor.Status(ctx, ann.User.ID)
	require.NoError(t, err)
	require.True(t, status.Enabled)
	require.Equal(t, backupCodeCount-1, status.BackupCodesRemaining)
}

func TestConcurrentBackupCodeUse(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, _ := e.signup(t, "Ann", "ann@x.com")
	_, codes := enableTwoFactor(t, e, ann.User.ID)

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- e.twoFactor.Verify(ctx, ann.User.ID, codes[3], true)
		}()
	}
	wg.Wait()
	close(results)

	var ok int
	for err := range results {
		if err == nil {
			ok++
		} else {
			require.ErrorIs(t, err, ErrInvalidTwoFactorCode)
		}
	}
	require.Equal(t, 1, ok)
}

func TestRegenerateBackupCodes(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, _ := e.signup(t, "Ann", "ann@x.com")
	secret, old := enableTwoFactor(t, e, ann.User.ID)

	_, err := e.twoFactor.RegenerateBackupCodes(ctx, ann.User.ID, "bad")
	require.ErrorIs(t, err, ErrInvalidTwoFactorCode)

	fresh, err := e.twoFactor.RegenerateBackupCodes(ctx, ann.User.ID, currentCode(t, e, secret))
	require.NoError(t, err)
	require.Len(t, fresh, backupCodeCount)

	require.ErrorIs(t, e.twoFactor.Verify(ctx, ann.User.ID, old[0], true), ErrInvalidTwoFactorCode)
	require.NoError(t, e.twoFactor.Verify(ctx, ann.User.ID, fresh[0], true))
}

func TestDisableTwoFactor(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, _ := e.signup(t, "Ann", "ann@x.com")

	require.NoError(t, e.twoFactor.Disable(ctx, ann.User.ID, "", false), "disabling when off is a no-op")

	_, codes := enableTwoFactor(t, e, ann.User.ID)
	require.ErrorIs(t, e.twoFactor.Disable(ctx, ann.User.ID, "nope", true), ErrInvalidTwoFactorCode)

	require.NoError(t, e.twoFactor.Disable(ctx, ann.User.ID, codes[1], true))
	status, err := e.twoFactor.Status(ctx, ann.User.ID)
	require.NoError(t, err)
	require.False(t, status.Enabled)

	n, err := e.store.BackupCodes().CountUnusedBackupCodes(ctx, ann.User.ID)
	require.NoError(t, err)
	require.Zero(t, n)

	settings, err := e.store.TwoFactor().GetSettings(ctx, ann.User.ID)
	require.NoError(t, err)
	require.False(t, settings.Enabled)
	require.NotEmpty(t, settings.Secret, "the sealed secret is kept")

	require.NoError(t, e.twoFactor.Disable(ctx, ann.User.ID, "", false))

	// It can be enabled again afterwards.
	enableTwoFactor(t, e, ann.User.ID)
}

func TestDisableWithTOTP(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, _ := e.signup(t, "Ann", "ann@x.com")
	secret, _ := enableTwoFactor(t, e, ann.User.ID)

	require.NoError(t, e.twoFactor.Disable(ctx, ann.User.ID, currentCode(t, e, secret), false))
	enabled, err := e.twoFactor.IsEnabled(ctx, ann.User.ID)
	require.NoError(t, err)
	require.False(t, enabled)
}

func TestVerifyCodeAgainstPlainSecret(t *testing.T) {
	e := newEnv(t)
	setup, err := e.twoFactor.GenerateSecret(context.Background(), "someone", "someone@x.com")
	require.NoError(t, err)

	code := currentCode(t, e, setup.Secret)
	require.True(t, e.twoFactor.VerifyCode(code, setup.Secret))

	e.clock.Advance(-30 * time.Second)
	require.True(t, e.twoFactor.VerifyCode(code, setup.Secret), "previous step is accepted")
	e.clock.Advance(-60 * time.Second)
	require.False(t, e.twoFactor.VerifyCode(code, setup.Secret), "three steps away is rejected")

	require.False(t, e.twoFactor.VerifyCode(code, ""))
	require.False(t, e.twoFactor.VerifyCode("12345", setup.Secret))
}

func TestVerifyBackupCode(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	ann, _ := e.signup(t, "Ann", "ann@x.com")
	_, codes := enableTwoFactor(t, e, ann.User.ID)

	require.NoError(t, e.twoFactor.VerifyBackupCode(ctx, ann.User.ID, codes[3]))
	require.ErrorIs(t, e.twoFactor.VerifyBackupCode(ctx, ann.User.ID, codes[3]), ErrInvalidTwoFactorCode)

	bob, _ := e.signup(t, "Bob", "bob@x.com")
	require.ErrorIs(t, e.twoFactor.VerifyBackupCode(ctx, bob.User.ID, codes[4]), ErrInvalidTwoFactorCode)
}
