// Package session owns the auth cookies. Handlers never touch cookies
// directly: Middleware puts a *Session on the request context and
// everything goes through it.
package session

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	"github.com/aussiebroadwan/taskflow/pkg/httpx"
)

// UserResolver turns a session token into a user. It reports false for
// anything it cannot resolve and never returns an error.
type UserResolver interface {
	ResolveUser(ctx context.Context, token string) (domain.User, bool)
}

// TwoFactorTokens mints and checks the proof that a user passed 2FA.
type TwoFactorTokens interface {
	IssueTwoFactor(userID string) (string, time.Time, error)
	VerifyTwoFactor(token, userID string) error
}

// TwoFactorChecker reports whether a user must pass a second factor.
type TwoFactorChecker interface {
	IsEnabled(ctx context.Context, userID string) (bool, error)
}

type Manager struct {
	Policy    Policy
	Users     UserResolver
	Tokens    TwoFactorTokens
	TwoFactor TwoFactorChecker
}

type ctxKey struct{}

// Session is the per-request view of the auth cookies.
type Session struct {
	m *Manager
	w http.ResponseWriter
	r *http.Request

	once sync.Once
	user domain.User
	ok   bool
}

// FromContext returns the request's session or nil outside Middleware.
func FromContext(ctx context.Context) *Session {
	s, _ := ctx.Value(ctxKey{}).(*Session)
	return s
}

// Middleware attaches a Session to every request. When the cookie resolves
// to a user, the principal is also recorded for rate limiting and role
// checks.
func (m *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := &Session{m: m, w: w, r: r}
		ctx := context.WithValue(r.Context(), ctxKey{}, s)
		s.r = r.WithContext(ctx)

		if u, ok := s.User(); ok {
			ctx = httpx.WithPrincipal(ctx, u.ID, u.Role)
		}
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Read returns the raw session token, if the request carries one.
func (s *Session) Read() (string, bool) {
	c, err := s.r.Cookie(CookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	return c.Value, true
}

// Set stores token in the session cookie.
func (s *Session) Set(token string) {
	http.SetCookie(s.w, s.m.Policy.cookie(CookieName, token, s.m.Policy.MaxAge))
}

// Clear expires both auth cookies.
func (s *Session) Clear() {
	http.SetCookie(s.w, s.m.Policy.cookie(CookieName, "", 0))
	http.SetCookie(s.w, s.m.Policy.cookie(TwoFactorCookieName, "", 0))
}

// ClearTwoFactor drops any earlier second-factor proof, e.g. on a fresh login.
func (s *Session) ClearTwoFactor() {
	http.SetCookie(s.w, s.m.Policy.cookie(TwoFactorCookieName, "", 0))
}

// User resolves the current user once per request.
func (s *Session) User() (domain.User, bool) {
	s.once.Do(func() {
		token, ok := s.Read()
		if !ok {
			return
		}
		s.user, s.ok = s.m.Users.ResolveUser(s.r.Context(), token)
	})
	return s.user, s.ok
}

// SetTwoFactorVerified records that userID passed the second factor.
func (s *Session) SetTwoFactorVerified(userID string) error {
	token, _, err := s.m.Tokens.IssueTwoFactor(userID)
	if err != nil {
		return err
	}
	http.SetCookie(s.w, s.m.Policy.cookie(TwoFactorCookieName, token, s.m.Policy.TwoFactorMaxAge))
	return nil
}

// TwoFactorVerified reports whether the request proves userID passed 2FA.
func (s *Session) TwoFactorVerified(userID string) bool {
	c, err := s.r.Cookie(TwoFactorCookieName)
	if err != nil || c.Value == "" {
		return false
	}
	return s.m.Tokens.VerifyTwoFactor(c.Value, userID) == nil
}
