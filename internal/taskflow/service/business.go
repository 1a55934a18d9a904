package service

import (
	"context"
	"log/slog"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store"
	"github.com/aussiebroadwan/taskflow/pkg/slogx"
)

type BusinessService struct {
	Store store.Store
	Authz *Authorizer
}

// ListForUser returns the businesses userID belongs to with their role.
func (s *BusinessService) ListForUser(ctx context.Context, userID string) ([]domain.Membership, error) {
	return s.Store.Businesses().ListBusinessesForUser(ctx, userID)
}

// ListAll is the system admin view. Callers gate it on the system role.
func (s *BusinessService) ListAll(ctx context.Context) ([]domain.Business, error) {
	return s.Store.Businesses().ListBusinesses(ctx)
}

func (s *BusinessService) Members(ctx context.Context, userID, businessID string) ([]domain.Member, error) {
	if _, err := s.Authz.RequireMember(ctx, userID, businessID); err != nil {
		return nil, err
	}
	return s.Store.Members().ListMembers(ctx, businessID)
}

// UpdateMemberRole changes a member between admin and member. The owner's
// membership cannot be changed and nobody can be promoted to owner.
func (s *BusinessService) UpdateMemberRole(ctx context.Context, actorID, businessID, targetID, role string) error {
	if role != domain.MemberAdmin && role != domain.MemberMember {
		return ErrInvalidRole
	}
	target, err := s.manageable(ctx, actorID, businessID, targetID)
	if err != nil {
		return err
	}
	if err := s.Store.Members().UpdateMemberRole(ctx, businessID, target.UserID, role); err != nil {
		return notFound(err)
	}
	slogx.FromContext(ctx).Info("member role changed",
		slog.String("business_id", businessID),
		slog.String("user_id", targetID),
		slog.String("role", role),
	)
	return nil
}

func (s *BusinessService) RemoveMember(ctx context.Context, actorID, businessID, targetID string) error {
	target, err := s.manageable(ctx, actorID, businessID, targetID)
	if err != nil {
		return err
	}
	if err := s.Store.Members().RemoveMember(ctx, businessID, target.UserID); err != nil {
		return notFound(err)
	}
	slogx.FromContext(ctx).Info("member removed",
		slog.String("business_id", businessID),
		slog.String("user_id", targetID),
	)
	return nil
}

func (s *BusinessService) manageable(ctx context.Context, actorID, businessID, targetID string) (domain.BusinessUser, error) {
	if _, err := s.Authz.RequireManager(ctx, actorID, businessID); err != nil {
		return domain.BusinessUser{}, err
	}
	target, err := s.Store.Members().GetMember(ctx, businessID, targetID)
	if err != nil {
		return domain.BusinessUser{}, notFound(err)
	}
	if target.Role == domain.MemberOwner {
		return domain.BusinessUser{}, ErrOwnerImmutable
	}
	return target, nil
}
