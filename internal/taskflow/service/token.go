package service

import (
	"fmt"
	"time"

	"github.com/aussiebroadwan/taskflow/pkg/jwtx"
)

// Principal is what a verified session token says about its bearer.
type Principal struct {
	UserID    string
	Role      string
	ExpiresAt time.Time
}

// TokenService mints and checks the HS256 tokens carried in cookies. Session
// tokens last 30 days; 2FA tokens prove a challenge was passed and last an hour.
type TokenService struct {
	Issuer       string
	SessionTTL   time.Duration
	TwoFactorTTL time.Duration

	signer    *jwtx.HS256Signer
	session   *jwtx.HS256Verifier
	twoFactor *jwtx.HS256Verifier
	now       func() time.Time
}

func NewTokenService(secret []byte, issuer string) (*TokenService, error) {
	return newTokenService(secret, issuer, time.Now)
}

func newTokenService(secret []byte, issuer string, now func() time.Time) (*TokenService, error) {
	signer, err := jwtx.NewSignerHS256(secret)
	if err != nil {
		return nil, err
	}
	session, err := jwtx.NewVerifierHS256(secret, jwtx.VerifyOptions{
		Issuer: issuer, Purpose: jwtx.PurposeSession, Leeway: 5 * time.Second, Now: now,
	})
	if err != nil {
		return nil, err
	}
	twoFactor, err := jwtx.NewVerifierHS256(secret, jwtx.VerifyOptions{
		Issuer: issuer, Purpose: jwtx.PurposeTwoFactor, Leeway: 5 * time.Second, Now: now,
	})
	if err != nil {
		return nil, err
	}
	return &TokenService{
		Issuer:       issuer,
		SessionTTL:   jwtx.DefaultSessionTTL,
		TwoFactorTTL: jwtx.DefaultTwoFactorTTL,
		signer:       signer,
		session:      session,
		twoFactor:    twoFactor,
		now:          now,
	}, nil
}

// Issue returns a session token for userID and its expiry.
func (s *TokenService) Issue(userID, role string) (string, time.Time, error) {
	claims := jwtx.NewClaims(userID, role, jwtx.PurposeSession, s.Issuer, s.SessionTTL, s.now().UTC())
	token, err := s.signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign session token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// Verify checks a session token. Any failure is reported as ErrInvalidToken
// wrapping the precise reason.
func (s *TokenService) Verify(token string) (Principal, error) {
	if token == "" {
		return Principal{}, ErrInvalidToken
	}
	claims, err := s.session.Verify(token)
	if err != nil {
		return Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	return Principal{UserID: claims.Subject, Role: claims.Role, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// IssueTwoFactor returns a token proving userID passed a 2FA challenge.
func (s *TokenService) IssueTwoFactor(userID string) (string, time.Time, error) {
	claims := jwtx.NewClaims(userID, "", jwtx.PurposeTwoFactor, s.Issuer, s.TwoFactorTTL, s.now().UTC())
	token, err := s.signer.Sign(claims)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign 2fa token: %w", err)
	}
	return token, claims.ExpiresAt.Time, nil
}

// VerifyTwoFactor checks that token is a live 2FA proof for userID.
func (s *TokenService) VerifyTwoFactor(token, userID string) error {
	if token == "" {
		return ErrInvalidToken
	}
	claims, err := s.twoFactor.Verify(token)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if claims.Subject != userID {
		return fmt.Errorf("%w: issued for another user", ErrInvalidToken)
	}
	return nil
}
