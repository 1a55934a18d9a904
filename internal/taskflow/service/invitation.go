package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/mail"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store"
	"github.com/aussiebroadwan/taskflow/pkg/cryptox"
	"github.com/aussiebroadwan/taskflow/pkg/idx"
	"github.com/aussiebroadwan/taskflow/pkg/slogx"
)

const DefaultInvitationTTL = 7 * 24 * time.Hour

type InvitationService struct {
	Store  store.Store
	Authz  *Authorizer
	Auth   *AuthService
	Mailer mail.Mailer
	Hasher cryptox.Hasher

	// BaseURL is prepended to /invite/{token} in emails.
	BaseURL string
	TTL     time.Duration

	Now func() time.Time
}

// Invited is returned to the inviter. Token is the only copy of the
// plaintext; the database holds its fingerprint.
type Invited struct {
	Invitation domain.Invitation
	Token      string
	Link       string
}

type AcceptInput struct {
	Token    string
	Name     string
	Password string
}

func (s *InvitationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *InvitationService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultInvitationTTL
}

// Invite creates a pending user (unless one exists) and an invitation, then
// emails the invitee. Inviting a pending user again revokes their earlier
// links into the same business. Only owners and admins may invite. Email failures are
// logged and do not undo the invitation.
func (s *InvitationService) Invite(ctx context.Context, inviterID, businessID, email, role string) (Invited, error) {
	log := slogx.FromContext(ctx)

	if role != domain.MemberAdmin && role != domain.MemberMember {
		return Invited{}, ErrInvalidRole
	}
	if _, err := s.Authz.RequireManager(ctx, inviterID, businessID); err != nil {
		return Invited{}, err
	}
	email = normalizeEmail(email)

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return Invited{}, fmt.Errorf("generate invitation token: %w", err)
	}
	now := s.now()
	expires := now.Add(s.ttl())
	inv := domain.Invitation{
		ID:         idx.New().String(),
		Email:      email,
		TokenHash:  cryptox.FingerprintToken(token),
		BusinessID: businessID,
		Role:       role,
		InvitedBy:  inviterID,
		ExpiresAt:  expires,
		CreatedAt:  now,
	}

	var business domain.Business
	var inviter domain.User
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		existing, err := tx.Users().GetUserByEmail(ctx, email)
		switch {
		case err == nil:
			if _, err := tx.Members().GetMember(ctx, businessID, existing.ID); err == nil {
				return ErrAlreadyMember
			} else if !errors.Is(err, store.ErrNotFound) {
				return err
			}
			if existing.IsActive() {
				return ErrUserExists
			}
			// A re-invite replaces earlier links into this business.
			if _, err := tx.Invitations().DeleteInvitationsFor(ctx, email, businessID); err != nil {
				return err
			}
			if err := tx.Users().SetPendingInvitation(ctx, existing.ID, inv.TokenHash, expires); err != nil {
				return err
			}
		case errors.Is(err, store.ErrNotFound):
			pending := domain.User{
				ID:                  idx.New().String(),
				Email:               email,
				Role:                domain.RoleUser,
				Status:              domain.StatusInvited,
				InvitationToken:     inv.TokenHash,
				InvitationExpiresAt: &expires,
				CreatedAt:           now,
				UpdatedAt:           now,
			}
			if err := tx.Users().CreateUser(ctx, pending); err != nil {
				return err
			}
		default:
			return err
		}

		if err := tx.Invitations().CreateInvitation(ctx, inv); err != nil {
			return err
		}
		if business, err = tx.Businesses().GetBusinessByID(ctx, businessID); err != nil {
			return err
		}
		inviter, err = tx.Users().GetUserByID(ctx, inviterID)
		return err
	})
	if err != nil {
		return Invited{}, err
	}

	link := strings.TrimRight(s.BaseURL, "/") + "/invite/" + token
	log.Info("invitation created",
		slog.String("invitation_id", inv.ID),
		slog.String("business_id", businessID),
		slog.String("role", role),
	)

	msg := mail.InvitationMessage(email, inviter.Name, business.Name, link, expires)
	if err := s.Mailer.Send(ctx, msg); err != nil {
		log.Warn("failed to send invitation email", slog.String("invitation_id", inv.ID), slog.Any("err", err))
	}
	return Invited{Invitation: inv, Token: token, Link: link}, nil
}

// Preview describes a pending invitation without consuming it.
func (s *InvitationService) Preview(ctx context.Context, token string) (domain.InvitationPreview, error) {
	inv, err := s.lookup(ctx, s.Store, token)
	if err != nil {
		return domain.InvitationPreview{}, err
	}
	business, err := s.Store.Businesses().GetBusinessByID(ctx, inv.BusinessID)
	if err != nil {
		return domain.InvitationPreview{}, notFound(err)
	}
	preview := domain.InvitationPreview{
		Email:        inv.Email,
		BusinessName: business.Name,
		Role:         inv.Role,
		ExpiresAt:    inv.ExpiresAt,
	}
	if inviter, err := s.Store.Users().GetUserByID(ctx, inv.InvitedBy); err == nil {
		preview.InviterName = inviter.Name
	}
	return preview, nil
}

// Accept consumes the invitation, activates the invitee and links them to
// the business in one transaction, then signs them in. Deleting the
// invitation first makes a concurrent second accept fail.
func (s *InvitationService) Accept(ctx context.Context, in AcceptInput) (Session, error) {
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	var user domain.User
	var inv domain.Invitation
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		inv, err = s.lookup(ctx, tx, in.Token)
		if err != nil {
			return err
		}
		if err := tx.Invitations().DeleteInvitation(ctx, inv.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvitationInvalid
			}
			return err
		}

		user, err = tx.Users().GetUserByEmail(ctx, inv.Email)
		switch {
		case errors.Is(err, store.ErrNotFound):
			now := s.now()
			user = domain.User{
				ID:           idx.New().String(),
				Name:         strings.TrimSpace(in.Name),
				Email:        inv.Email,
				PasswordHash: hash,
				Role:         domain.RoleUser,
				Status:       domain.StatusActive,
				CreatedAt:    now,
				UpdatedAt:    now,
			}
			if err := tx.Users().CreateUser(ctx, user); err != nil {
				return err
			}
		case err != nil:
			return err
		case user.IsActive():
			// Already has an account; the invitation only adds a membership
			// and the existing password must be used.
			if !s.Hasher.Verify(in.Password, user.PasswordHash) {
				return ErrInvalidCredentials
			}
		default:
			if err := tx.Users().ActivateUser(ctx, user.ID, strings.TrimSpace(in.Name), hash); err != nil {
				return err
			}
			user.Name = strings.TrimSpace(in.Name)
			user.PasswordHash = hash
			user.Status = domain.StatusActive
			user.InvitationToken = ""
			user.InvitationExpiresAt = nil
		}

		_, err = tx.Members().GetMember(ctx, inv.BusinessID, user.ID)
		switch {
		case errors.Is(err, store.ErrNotFound):
			err = tx.Members().AddMember(ctx, domain.BusinessUser{
				BusinessID: inv.BusinessID, UserID: user.ID, Role: inv.Role, CreatedAt: s.now(),
			})
			if err != nil {
				return err
			}
		case err != nil:
			return err
		}
		if err := tx.Users().SetPrimaryBusiness(ctx, user.ID, inv.BusinessID); err != nil {
			return err
		}
		if user.BusinessID == "" {
			user.BusinessID = inv.BusinessID
		}
		return nil
	})
	if err != nil {
		return Session{}, err
	}

	slogx.FromContext(ctx).Info("invitation accepted",
		slog.String("invitation_id", inv.ID),
		slog.String("user_id", user.ID),
		slog.String("business_id", inv.BusinessID),
	)
	return s.Auth.StartSession(ctx, user)
}

func (s *InvitationService) lookup(ctx context.Context, st store.Store, token string) (domain.Invitation, error) {
	if token == "" {
		return domain.Invitation{}, ErrInvitationInvalid
	}
	inv, err := st.Invitations().GetInvitationByTokenHash(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return domain.Invitation{}, ErrInvitationInvalid
	}
	if err != nil {
		return domain.Invitation{}, err
	}
	if inv.Expired(s.now()) {
		return domain.Invitation{}, ErrInvitationExpired
	}
	return inv, nil
}
