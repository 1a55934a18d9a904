package sqlstore

import (
	"context"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
)

type businessesRepo struct {
	c conn
}

const businessColumns = `b.id, b.name, b.slug, b.plan, b.owner_id, b.created_at, b.updated_at`

func scanBusiness(s scanner, extra ...any) (domain.Business, error) {
	var b domain.Business
	dest := append([]any{&b.ID, &b.Name, &b.Slug, &b.Plan, &b.OwnerID, &b.CreatedAt, &b.UpdatedAt}, extra...)
	if err := s.Scan(dest...); err != nil {
		return domain.Business{}, mapNotFound(err)
	}
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return b, nil
}

func (r *businessesRepo) CreateBusiness(ctx context.Context, b domain.Business) error {
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
	}
	_, err := r.c.exec(ctx, `
		INSERT INTO businesses (id, name, slug, plan, owner_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.Name, b.Slug, b.Plan, b.OwnerID, b.CreatedAt.UTC(), b.CreatedAt.UTC())
	return err
}

func (r *businessesRepo) GetBusinessByID(ctx context.Context, id string) (domain.Business, error) {
	return scanBusiness(r.c.queryRow(ctx, `SELECT `+businessColumns+` FROM businesses b WHERE b.id = ?`, id))
}

func (r *businessesRepo) GetBusinessBySlug(ctx context.Context, slug string) (domain.Business, error) {
	return scanBusiness(r.c.queryRow(ctx, `SELECT `+businessColumns+` FROM businesses b WHERE b.slug = ?`, slug))
}

func (r *businessesRepo) ListBusinesses(ctx context.Context) ([]domain.Business, error) {
	rows, err := r.c.query(ctx, `SELECT `+businessColumns+` FROM businesses b ORDER BY b.created_at DESC, b.id DESC`)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(s scanner) (domain.Business, error) { return scanBusiness(s) })
}

func (r *businessesRepo) ListBusinessesForUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	rows, err := r.c.query(ctx, `
		SELECT `+businessColumns+`, bu.role
		FROM businesses b
		JOIN business_users bu ON bu.business_id = b.id
		WHERE bu.user_id = ?
		ORDER BY b.name, b.id`, userID)
	if err != nil {
		return nil, err
	}
	return collect(rows, func(s scanner) (domain.Membership, error) {
		var m domain.Membership
		b, err := scanBusiness(s, &m.Role)
		m.Business = b
		return m, err
	})
}
