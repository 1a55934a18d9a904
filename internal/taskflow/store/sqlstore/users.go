package sqlstore

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
)

type usersRepo struct {
	c conn
}

const userColumns = `id, name, email, password_hash, role, status, business_id,
	invitation_token, invitation_expires_at, last_login_at, created_at, updated_at`

func scanUser(s scanner) (domain.User, error) {
	var (
		u             domain.User
		businessID    sql.NullString
		inviteToken   sql.NullString
		inviteExpires sql.NullTime
		lastLogin     sql.NullTime
	)
	err := s.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.Status, &businessID,
		&inviteToken, &inviteExpires, &lastLogin, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.BusinessID = businessID.String
	u.InvitationToken = inviteToken.String
	u.InvitationExpiresAt = timePtr(inviteExpires)
	u.LastLoginAt = timePtr(lastLogin)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.c.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return scanUser(r.c.queryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	_, err := r.c.exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, strings.ToLower(strings.TrimSpace(u.Email)), u.PasswordHash, u.Role, u.Status,
		nullString(u.BusinessID), nullString(u.InvitationToken), nullTime(u.InvitationExpiresAt),
		nullTime(u.LastLoginAt), u.CreatedAt.UTC(), u.CreatedAt.UTC())
	return err
}

func (r *usersRepo) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := r.c.queryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *usersRepo) ActivateUser(ctx context.Context, userID, name, passwordHash string) error {
	return r.c.execOne(ctx, `
		UPDATE users
		SET name = ?, password_hash = ?, status = ?,
			invitation_token = NULL, invitation_expires_at = NULL, updated_at = ?
		WHERE id = ?`,
		name, passwordHash, domain.StatusActive, time.Now().UTC(), userID)
}

func (r *usersRepo) SetPendingInvitation(ctx context.Context, userID, tokenHash string, expiresAt time.Time) error {
	return r.c.execOne(ctx, `
		UPDATE users SET invitation_token = ?, invitation_expires_at = ?, updated_at = ?
		WHERE id = ? AND status = ?`,
		tokenHash, expiresAt.UTC(), time.Now().UTC(), userID, domain.StatusInvited)
}

func (r *usersRepo) SetPrimaryBusiness(ctx context.Context, userID, businessID string) error {
	_, err := r.c.exec(ctx, `
		UPDATE users SET business_id = ?, updated_at = ?
		WHERE id = ? AND business_id IS NULL`,
		businessID, time.Now().UTC(), userID)
	return err
}

func (r *usersRepo) UpdateLastLogin(ctx context.Context, userID string, at time.Time) error {
	return r.c.execOne(ctx, `UPDATE users SET last_login_at = ? WHERE id = ?`, at.UTC(), userID)
}
