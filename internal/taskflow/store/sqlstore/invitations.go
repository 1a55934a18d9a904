package sqlstore

import (
	"context"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
)

type invitationsRepo struct {
	c conn
}

func (r *invitationsRepo) CreateInvitation(ctx context.Context, inv domain.Invitation) error {
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}
	_, err := r.c.exec(ctx, `
		INSERT INTO invitations (id, email, token_hash, business_id, role, invited_by, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.Email, inv.TokenHash, inv.BusinessID, inv.Role, inv.InvitedBy, inv.ExpiresAt.UTC(), inv.CreatedAt.UTC())
	return err
}

func (r *invitationsRepo) GetInvitationByTokenHash(ctx context.Context, tokenHash string) (domain.Invitation, error) {
	var inv domain.Invitation
	err := r.c.queryRow(ctx, `
		SELECT id, email, token_hash, business_id, role, invited_by, expires_at, created_at
		FROM invitations WHERE token_hash = ?`, tokenHash).
		Scan(&inv.ID, &inv.Email, &inv.TokenHash, &inv.BusinessID, &inv.Role, &inv.InvitedBy, &inv.ExpiresAt, &inv.CreatedAt)
	if err != nil {
		return domain.Invitation{}, mapNotFound(err)
	}
	inv.ExpiresAt = inv.ExpiresAt.UTC()
	inv.CreatedAt = inv.CreatedAt.UTC()
	return inv, nil
}

func (r *invitationsRepo) DeleteInvitation(ctx context.Context, id string) error {
	return r.c.execOne(ctx, `DELETE FROM invitations WHERE id = ?`, id)
}

func (r *invitationsRepo) DeleteInvitationsFor(ctx context.Context, email, businessID string) (int64, error) {
	res, err := r.c.exec(ctx, `DELETE FROM invitations WHERE email = ? AND business_id = ?`, email, businessID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (r *invitationsRepo) DeleteExpiredInvitations(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.c.exec(ctx, `DELETE FROM invitations WHERE expires_at <= ?`, now.UTC())
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
