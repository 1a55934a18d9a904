package sqlstore

import (
	"context"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
)

type twoFactorRepo struct {
	c conn
}

func (r *twoFactorRepo) GetSettings(ctx context.Context, userID string) (domain.TwoFactorSettings, error) {
	var s domain.TwoFactorSettings
	err := r.c.queryRow(ctx, `
		SELECT user_id, secret, enabled, created_at, updated_at
		FROM two_factor_settings WHERE user_id = ?`, userID).
		Scan(&s.UserID, &s.Secret, &s.Enabled, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return domain.TwoFactorSettings{}, mapNotFound(err)
	}
	s.CreatedAt = s.CreatedAt.UTC()
	s.UpdatedAt = s.UpdatedAt.UTC()
	return s, nil
}

func (r *twoFactorRepo) EnableSettings(ctx context.Context, userID string, secret []byte, now time.Time) (bool, error) {
	res, err := r.c.exec(ctx, `
		INSERT INTO two_factor_settings (user_id, secret, enabled, created_at, updated_at)
		VALUES (?, ?, TRUE, ?, ?)
		ON CONFLICT (user_id) DO UPDATE
		SET secret = excluded.secret, enabled = TRUE, updated_at = excluded.updated_at
		WHERE two_factor_settings.enabled = FALSE`,
		userID, secret, now.UTC(), now.UTC())
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

// DisableSettings clears the enabled flag and keeps the sealed secret.
func (r *twoFactorRepo) DisableSettings(ctx context.Context, userID string, now time.Time) error {
	_, err := r.c.exec(ctx, `
		UPDATE two_factor_settings SET enabled = FALSE, updated_at = ?
		WHERE user_id = ?`,
		now.UTC(), userID)
	return err
}

type backupCodesRepo struct {
	c conn
}

func (r *backupCodesRepo) CreateBackupCode(ctx context.Context, bc domain.BackupCode) error {
	_, err := r.c.exec(ctx, `
		INSERT INTO backup_codes (id, user_id, code_hash, used, used_at)
		VALUES (?, ?, ?, ?, ?)`,
		bc.ID, bc.UserID, bc.CodeHash, bc.Used, nullTime(bc.UsedAt))
	return err
}

func (r *backupCodesRepo) DeleteAllBackupCodes(ctx context.Context, userID string) error {
	_, err := r.c.exec(ctx, `DELETE FROM backup_codes WHERE user_id = ?`, userID)
	return err
}

func (r *backupCodesRepo) ConsumeBackupCode(ctx context.Context, userID, codeHash string, now time.Time) (bool, error) {
	res, err := r.c.exec(ctx, `
		UPDATE backup_codes SET used = TRUE, used_at = ?
		WHERE user_id = ? AND code_hash = ? AND used = FALSE`,
		now.UTC(), userID, codeHash)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n == 1, err
}

func (r *backupCodesRepo) CountUnusedBackupCodes(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.c.queryRow(ctx, `SELECT COUNT(*) FROM backup_codes WHERE user_id = ? AND used = FALSE`, userID).Scan(&n)
	return n, err
}
