package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store"
	"github.com/aussiebroadwan/taskflow/pkg/cryptox"
	"github.com/aussiebroadwan/taskflow/pkg/idx"
	"github.com/aussiebroadwan/taskflow/pkg/slogx"
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	backupCodeCount  = 10
	backupCodeGroups = 2
	backupCodeGroup  = 5
)

// totpOpts are the parameters every authenticator app understands. Skew 1
// accepts the previous and next 30s step.
var totpOpts = totp.ValidateOpts{
	Period:    30,
	Skew:      1,
	Digits:    otp.DigitsSix,
	Algorithm: otp.AlgorithmSHA1,
}

// TwoFactorService manages TOTP secrets and single-use backup codes.
// Secrets are only stored once the user proves they can generate codes, and
// are sealed at rest. Every verification failure is ErrInvalidTwoFactorCode.
type TwoFactorService struct {
	Store  store.Store
	Issuer string
	Sealer *cryptox.Sealer

	// Now overrides the clock in tests.
	Now func() time.Time
}

func (s *TwoFactorService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// GenerateSecret creates a new secret for the user to scan. Nothing is
// persisted; the client sends the secret back to Enable.
func (s *TwoFactorService) GenerateSecret(ctx context.Context, userID, account string) (domain.TwoFactorSetup, error) {
	enabled, err := s.IsEnabled(ctx, userID)
	if err != nil {
		return domain.TwoFactorSetup{}, err
	}
	if enabled {
		return domain.TwoFactorSetup{}, ErrTwoFactorAlreadyEnabled
	}

	key, err := totp.Generate(totp.GenerateOpts{
		Issuer:      s.Issuer,
		AccountName: account,
		Period:      totpOpts.Period,
		Digits:      totpOpts.Digits,
		Algorithm:   totpOpts.Algorithm,
	})
	if err != nil {
		return domain.TwoFactorSetup{}, fmt.Errorf("generate totp key: %w", err)
	}
	return domain.TwoFactorSetup{Secret: key.Secret(), URI: key.URL()}, nil
}

// Enable stores secret after checking code against it and returns a fresh
// set of backup codes. Only one of two concurrent enables can succeed.
func (s *TwoFactorService) Enable(ctx context.Context, userID, secret, code string) ([]string, error) {
	if !s.VerifyCode(code, secret) {
		return nil, ErrInvalidTwoFactorCode
	}
	sealed, err := s.Sealer.Seal([]byte(secret))
	if err != nil {
		return nil, fmt.Errorf("seal totp secret: %w", err)
	}

	var codes []string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		changed, err := tx.TwoFactor().EnableSettings(ctx, userID, sealed, s.now())
		if err != nil {
			return err
		}
		if !changed {
			return ErrTwoFactorAlreadyEnabled
		}
		codes, err = replaceBackupCodes(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("two-factor enabled", slog.String("user_id", userID))
	return codes, nil
}

// Disable turns 2FA off after verifying a TOTP or backup code. Disabling
// when already off is not an error.
func (s *TwoFactorService) Disable(ctx context.Context, userID, code string, isBackupCode bool) error {
	settings, err := s.settings(ctx, userID)
	if errors.Is(err, ErrTwoFactorNotEnabled) {
		return nil
	}
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := s.check(ctx, tx, settings, code, isBackupCode); err != nil {
			return err
		}
		if err := tx.TwoFactor().DisableSettings(ctx, userID, s.now()); err != nil {
			return err
		}
		return tx.BackupCodes().DeleteAllBackupCodes(ctx, userID)
	})
	if err != nil {
		return err
	}

	slogx.FromContext(ctx).Info("two-factor disabled", slog.String("user_id", userID))
	return nil
}

// Verify checks a login challenge response. Backup codes are consumed. A
// user without 2FA gets the same ErrInvalidTwoFactorCode as a wrong code.
func (s *TwoFactorService) Verify(ctx context.Context, userID, code string, isBackupCode bool) error {
	settings, err := s.settings(ctx, userID)
	if errors.Is(err, ErrTwoFactorNotEnabled) {
		return ErrInvalidTwoFactorCode
	}
	if err != nil {
		return err
	}
	if err := s.check(ctx, s.Store, settings, code, isBackupCode); err != nil {
		slogx.FromContext(ctx).Warn("two-factor verification failed",
			slog.String("user_id", userID), slog.Bool("backup_code", isBackupCode))
		return err
	}
	return nil
}

// VerifyBackupCode consumes one unused backup code. A code can succeed
// only once, even under concurrent use.
func (s *TwoFactorService) VerifyBackupCode(ctx context.Context, userID, code string) error {
	settings, err := s.settings(ctx, userID)
	if errors.Is(err, ErrTwoFactorNotEnabled) {
		return ErrInvalidTwoFactorCode
	}
	if err != nil {
		return err
	}
	return s.check(ctx, s.Store, settings, code, true)
}

// RegenerateBackupCodes replaces all backup codes after a TOTP check.
func (s *TwoFactorService) RegenerateBackupCodes(ctx context.Context, userID, code string) ([]string, error) {
	settings, err := s.settings(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.check(ctx, s.Store, settings, code, false); err != nil {
		return nil, err
	}

	var codes []string
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		codes, err = replaceBackupCodes(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return codes, nil
}

func (s *TwoFactorService) Status(ctx context.Context, userID string) (domain.TwoFactorStatus, error) {
	enabled, err := s.IsEnabled(ctx, userID)
	if err != nil || !enabled {
		return domain.TwoFactorStatus{}, err
	}
	n, err := s.Store.BackupCodes().CountUnusedBackupCodes(ctx, userID)
	if err != nil {
		return domain.TwoFactorStatus{}, err
	}
	return domain.TwoFactorStatus{Enabled: true, BackupCodesRemaining: n}, nil
}

func (s *TwoFactorService) IsEnabled(ctx context.Context, userID string) (bool, error) {
	_, err := s.settings(ctx, userID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrTwoFactorNotEnabled):
		return false, nil
	default:
		return false, err
	}
}

func (s *TwoFactorService) settings(ctx context.Context, userID string) (domain.TwoFactorSettings, error) {
	settings, err := s.Store.TwoFactor().GetSettings(ctx, userID)
	if errors.Is(err, store.ErrNotFound) || (err == nil && !settings.Enabled) {
		return domain.TwoFactorSettings{}, ErrTwoFactorNotEnabled
	}
	return settings, err
}

// check verifies code against the stored secret or consumes a backup code
// through st, so it can run inside the caller's transaction.
func (s *TwoFactorService) check(ctx context.Context, st store.Store, settings domain.TwoFactorSettings, code string, isBackupCode bool) error {
	if isBackupCode {
		normalized := cryptox.NormalizeCode(code)
		if normalized == "" {
			return ErrInvalidTwoFactorCode
		}
		ok, err := st.BackupCodes().ConsumeBackupCode(ctx, settings.UserID, cryptox.FingerprintToken(normalized), s.now())
		if err != nil {
			return err
		}
		if !ok {
			return ErrInvalidTwoFactorCode
		}
		return nil
	}

	secret, err := s.Sealer.Open(settings.Secret)
	if err != nil {
		return fmt.Errorf("open totp secret: %w", err)
	}
	if !s.VerifyCode(code, string(secret)) {
		return ErrInvalidTwoFactorCode
	}
	return nil
}

// VerifyCode checks a TOTP code against a plaintext secret, accepting the
// adjacent 30s steps.
func (s *TwoFactorService) VerifyCode(code, secret string) bool {
	if len(code) != 6 || secret == "" {
		return false
	}
	ok, err := totp.ValidateCustom(code, secret, s.now(), totpOpts)
	return err == nil && ok
}

// replaceBackupCodes drops every existing code and returns backupCodeCount
// new ones. Only fingerprints are stored.
func replaceBackupCodes(ctx context.Context, tx store.Tx, userID string) ([]string, error) {
	if err := tx.BackupCodes().DeleteAllBackupCodes(ctx, userID); err != nil {
		return nil, err
	}
	codes := make([]string, backupCodeCount)
	for i := range codes {
		code, err := cryptox.GenerateCode(backupCodeGroups, backupCodeGroup)
		if err != nil {
			return nil, fmt.Errorf("generate backup code: %w", err)
		}
		err = tx.BackupCodes().CreateBackupCode(ctx, domain.BackupCode{
			ID:       idx.New().String(),
			UserID:   userID,
			CodeHash: cryptox.FingerprintToken(cryptox.NormalizeCode(code)),
		})
		if err != nil {
			return nil, err
		}
		codes[i] = code
	}
	return codes, nil
}
