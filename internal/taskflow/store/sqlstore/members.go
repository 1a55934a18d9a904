package sqlstore

import (
	"context"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
)

type membersRepo struct {
	c conn
}

func (r *membersRepo) AddMember(ctx context.Context, m domain.BusinessUser) error {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	_, err := r.c.exec(ctx, `
		INSERT INTO business_users (business_id, user_id, role, created_at)
		VALUES (?, ?, ?, ?)`,
		m.BusinessID, m.UserID, m.Role, m.CreatedAt.UTC())
	return err
}

func (r *membersRepo) GetMember(ctx context.Context, businessID, userID string) (domain.BusinessUser, error) {
	var m domain.BusinessUser
	err := r.c.queryRow(ctx, `
		SELECT business_id, user_id, role, created_at
		FROM business_users WHERE business_id = ? AND user_id = ?`,
		businessID, userID).Scan(&m.BusinessID, &m.UserID, &m.Role, &m.CreatedAt)
	if err != nil {
		return domain.BusinessUser{}, mapNotFound(err)
	}
	m.CreatedAt = m.CreatedAt.UTC()
	return m, nil
}

func (r *membersRepo) ListMembers(ctx context.Context, businessID string) ([]domain.Member, error) {
	rows, err := r.c.query(ctx, `
		SELECT u.id, u.name, u.email, u.status, bu.role, bu.created_at
		FROM business_users bu
		JOIN users u ON u.id = bu.user_id
		WHERE bu.business_id = ?
		ORDER BY bu.created_at, u.id`, businessID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(s scanner) (domain.Member, error) {
		var m domain.Member
		err := s.Scan(&m.UserID, &m.Name, &m.Email, &m.Status, &m.Role, &m.JoinedAt)
		m.JoinedAt = m.JoinedAt.UTC()
		return m, err
	})
}

func (r *membersRepo) UpdateMemberRole(ctx context.Context, businessID, userID, role string) error {
	return r.c.execOne(ctx, `UPDATE business_users SET role = ? WHERE business_id = ? AND user_id = ?`,
		role, businessID, userID)
}

func (r *membersRepo) RemoveMember(ctx context.Context, businessID, userID string) error {
	return r.c.execOne(ctx, `DELETE FROM business_users WHERE business_id = ? AND user_id = ?`,
		businessID, userID)
}
