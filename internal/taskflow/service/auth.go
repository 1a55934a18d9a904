package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/store"
	"github.com/aussiebroadwan/taskflow/pkg/cryptox"
	"github.com/aussiebroadwan/taskflow/pkg/idx"
	"github.com/aussiebroadwan/taskflow/pkg/slogx"
)

type AuthService struct {
	Store  store.Store
	Tokens *TokenService
	Hasher cryptox.Hasher

	// PersistSessions is resolved once at startup. When false no session
	// rows are read or written and the signed cookie alone authenticates.
	PersistSessions bool

	dummyOnce sync.Once
	dummyHash string
}

type SignupInput struct {
	Name         string
	Email        string
	Password     string
	Plan         string
	BusinessName string
}

// Session is a freshly issued login.
type Session struct {
	User      domain.User
	Token     string
	ExpiresAt time.Time
}

type LoginResult struct {
	Session
	RequiresTwoFactor bool
}

// Profile is the signed-in user with everything the client needs at boot.
type Profile struct {
	User        domain.User
	Memberships []domain.Membership
	TwoFactor   domain.TwoFactorStatus
}

// Signup creates the user, their business and the owner link atomically.
// The very first account in the system becomes a system admin.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (Session, domain.Business, error) {
	log := slogx.FromContext(ctx)

	email := normalizeEmail(in.Email)
	plan := in.Plan
	if plan == "" {
		plan = domain.PlanFree
	}
	switch plan {
	case domain.PlanFree, domain.PlanPro, domain.PlanEnterprise:
	default:
		return Session{}, domain.Business{}, ErrInvalidPlan
	}
	businessName := strings.TrimSpace(in.BusinessName)
	if businessName == "" {
		if plan != domain.PlanFree {
			return Session{}, domain.Business{}, ErrBusinessNameRequired
		}
		businessName = strings.TrimSpace(in.Name) + "'s Workspace"
	}

	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		return Session{}, domain.Business{}, fmt.Errorf("hash password: %w", err)
	}

	var (
		user     domain.User
		business domain.Business
	)
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().GetUserByEmail(ctx, email); err == nil {
			return ErrEmailTaken
		} else if !errors.Is(err, store.ErrNotFound) {
			return err
		}

		count, err := tx.Users().CountUsers(ctx)
		if err != nil {
			return err
		}
		role := domain.RoleUser
		if count == 0 {
			role = domain.RoleAdmin
		}

		now := time.Now().UTC()
		user = domain.User{
			ID:           idx.New().String(),
			Name:         strings.TrimSpace(in.Name),
			Email:        email,
			PasswordHash: hash,
			Role:         role,
			Status:       domain.StatusActive,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := tx.Users().CreateUser(ctx, user); err != nil {
			if errors.Is(err, store.ErrAlreadyExists) {
				return ErrEmailTaken
			}
			return err
		}

		slug, err := uniqueSlug(ctx, tx, businessName)
		if err != nil {
			return err
		}
		business = domain.Business{
			ID:        idx.New().String(),
			Name:      businessName,
			Slug:      slug,
			Plan:      plan,
			OwnerID:   user.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.Businesses().CreateBusiness(ctx, business); err != nil {
			return err
		}
		if err := tx.Members().AddMember(ctx, domain.BusinessUser{
			BusinessID: business.ID, UserID: user.ID, Role: domain.MemberOwner, CreatedAt: now,
		}); err != nil {
			return err
		}
		if err := tx.Users().SetPrimaryBusiness(ctx, user.ID, business.ID); err != nil {
			return err
		}
		user.BusinessID = business.ID
		return nil
	})
	if err != nil {
		return Session{}, domain.Business{}, err
	}

	log.Info("user signed up",
		slog.String("user_id", user.ID),
		slog.String("business_id", business.ID),
		slog.String("role", user.Role),
	)

	sess, err := s.StartSession(ctx, user)
	return sess, business, err
}

// Login checks credentials. Unknown emails, inactive accounts and wrong
// passwords all fail with ErrInvalidCredentials after comparable work.
func (s *AuthService) Login(ctx context.Context, email, password string) (LoginResult, error) {
	log := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return LoginResult{}, err
		}
		s.Hasher.Verify(password, s.timingHash())
		log.Debug("login for unknown email")
		return LoginResult{}, ErrInvalidCredentials
	}
	if !s.Hasher.Verify(password, user.PasswordHash) {
		log.Debug("login with wrong password", slog.String("user_id", user.ID))
		return LoginResult{}, ErrInvalidCredentials
	}
	if !user.IsActive() {
		log.Debug("login for inactive user", slog.String("user_id", user.ID), slog.String("status", user.Status))
		return LoginResult{}, ErrInvalidCredentials
	}

	now := time.Now().UTC()
	if err := s.Store.Users().UpdateLastLogin(ctx, user.ID, now); err != nil {
		log.Warn("failed to record last login", slog.String("user_id", user.ID), slog.Any("err", err))
	} else {
		user.LastLoginAt = &now
	}

	requires2FA := false
	settings, err := s.Store.TwoFactor().GetSettings(ctx, user.ID)
	switch {
	case err == nil:
		requires2FA = settings.Enabled
	case !errors.Is(err, store.ErrNotFound):
		return LoginResult{}, err
	}

	sess, err := s.StartSession(ctx, user)
	if err != nil {
		return LoginResult{}, err
	}
	log.Info("user logged in", slog.String("user_id", user.ID), slog.Bool("requires_2fa", requires2FA))
	return LoginResult{Session: sess, RequiresTwoFactor: requires2FA}, nil
}

// StartSession issues a token for user and, when enabled, records a session
// row. The row is best effort and never fails the login.
func (s *AuthService) StartSession(ctx context.Context, user domain.User) (Session, error) {
	token, expires, err := s.Tokens.Issue(user.ID, user.Role)
	if err != nil {
		return Session{}, err
	}
	if s.PersistSessions {
		row := domain.Session{
			ID:        idx.New().String(),
			UserID:    user.ID,
			TokenHash: cryptox.FingerprintToken(token),
			ExpiresAt: expires,
			CreatedAt: time.Now().UTC(),
		}
		if err := s.Store.Sessions().CreateSession(ctx, row); err != nil {
			slogx.FromContext(ctx).Warn("failed to persist session", slog.String("user_id", user.ID), slog.Any("err", err))
		}
	}
	return Session{User: user, Token: token, ExpiresAt: expires}, nil
}

// Logout forgets the persisted session for token, if any.
func (s *AuthService) Logout(ctx context.Context, token string) {
	if !s.PersistSessions || token == "" {
		return
	}
	if err := s.Store.Sessions().DeleteSessionByTokenHash(ctx, cryptox.FingerprintToken(token)); err != nil {
		slogx.FromContext(ctx).Warn("failed to delete session", slog.Any("err", err))
	}
}

// ResolveUser maps a session token to an active user. It never returns an
// error: anything wrong with the token, the user or the database is logged
// and reported as "no user".
func (s *AuthService) ResolveUser(ctx context.Context, token string) (domain.User, bool) {
	if token == "" {
		return domain.User{}, false
	}
	log := slogx.FromContext(ctx)

	principal, err := s.Tokens.Verify(token)
	if err != nil {
		log.Debug("session token rejected", slog.Any("err", err))
		return domain.User{}, false
	}
	user, err := s.Store.Users().GetUserByID(ctx, principal.UserID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			log.Warn("failed to load session user", slog.String("user_id", principal.UserID), slog.Any("err", err))
		}
		return domain.User{}, false
	}
	if !user.IsActive() {
		return domain.User{}, false
	}
	return user, true
}

// Profile loads the signed-in user's memberships and 2FA status.
func (s *AuthService) Profile(ctx context.Context, user domain.User) (Profile, error) {
	memberships, err := s.Store.Businesses().ListBusinessesForUser(ctx, user.ID)
	if err != nil {
		return Profile{}, err
	}
	p := Profile{User: user, Memberships: memberships}

	settings, err := s.Store.TwoFactor().GetSettings(ctx, user.ID)
	switch {
	case err == nil:
		p.TwoFactor.Enabled = settings.Enabled
	case !errors.Is(err, store.ErrNotFound):
		return Profile{}, err
	}
	if p.TwoFactor.Enabled {
		if p.TwoFactor.BackupCodesRemaining, err = s.Store.BackupCodes().CountUnusedBackupCodes(ctx, user.ID); err != nil {
			return Profile{}, err
		}
	}
	return p, nil
}

// timingHash is compared against when the email is unknown so the response
// time does not reveal whether an account exists.
func (s *AuthService) timingHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = s.Hasher.Hash("taskflow-timing-placeholder")
	})
	return s.dummyHash
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var slugInvalid = regexp.MustCompile(`[^a-z0-9]+`)

func slugify(name string) string {
	slug := strings.Trim(slugInvalid.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if len(slug) > 48 {
		slug = strings.TrimRight(slug[:48], "-")
	}
	if slug == "" {
		slug = "business"
	}
	return slug
}

// uniqueSlug appends -2, -3, ... until the slug is free.
func uniqueSlug(ctx context.Context, tx store.Tx, name string) (string, error) {
	base := slugify(name)
	slug := base
	for i := 2; ; i++ {
		_, err := tx.Businesses().GetBusinessBySlug(ctx, slug)
		if errors.Is(err, store.ErrNotFound) {
			return slug, nil
		}
		if err != nil {
			return "", err
		}
		if i > 100 {
			return base + "-" + strings.ToLower(idx.New().String()[20:]), nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}
