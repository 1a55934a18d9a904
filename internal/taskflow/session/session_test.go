package session_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aussiebroadwan/taskflow/internal/taskflow/domain"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/service"
	"github.com/aussiebroadwan/taskflow/internal/taskflow/session"
	"github.com/aussiebroadwan/taskflow/pkg/httpx"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	users map[string]domain.User
	calls int
}

func (f *fakeUsers) ResolveUser(_ context.Context, token string) (domain.User, bool) {
	f.calls++
	u, ok := f.users[token]
	return u, ok
}

type fakeTwoFactor map[string]bool

func (f fakeTwoFactor) IsEnabled(_ context.Context, userID string) (bool, error) {
	return f[userID], nil
}

func newManager(t *testing.T, env string) (*session.Manager, *fakeUsers) {
	t.Helper()
	tokens, err := service.NewTokenService([]byte("session-test-secret-0123456789abcdef"), "taskflow")
	require.NoError(t, err)
	users := &fakeUsers{users: map[string]domain.User{
		"ann-token": {ID: "ann", Role: domain.RoleAdmin, Status: domain.StatusActive},
		"bob-token": {ID: "bob", Role: domain.RoleUser, Status: domain.StatusActive},
	}}
	return &session.Manager{
		Policy:    session.PolicyFor(env),
		Users:     users,
		Tokens:    tokens,
		TwoFactor: fakeTwoFactor{"bob": true},
	}, users
}

func cookieNamed(res *http.Response, name string) *http.Cookie {
	for _, c := range res.Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestPolicyFor(t *testing.T) {
	dev := session.PolicyFor("development")
	require.False(t, dev.Secure)
	require.Equal(t, http.SameSiteLaxMode, dev.SameSite)

	prod := session.PolicyFor("production")
	require.True(t, prod.Secure)
	require.Equal(t, http.SameSiteLaxMode, prod.SameSite)

	for _, env := range []string{"preview", "staging"} {
		p := session.PolicyFor(env)
		require.True(t, p.Secure, env)
		require.Equal(t, http.SameSiteNoneMode, p.SameSite, env)
	}

	for _, env := range []string{"qa", "uat", "PROD", ""} {
		p := session.PolicyFor(env)
		require.True(t, p.Secure, "env %q", env)
		require.Equal(t, http.SameSiteLaxMode, p.SameSite, "env %q", env)
	}
	for _, env := range []string{"dev", "test", "local", "Development"} {
		require.False(t, session.PolicyFor(env).Secure, env)
	}
}

func TestSetAndClearCookies(t *testing.T) {
	m, _ := newManager(t, "production")

	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := session.FromContext(r.Context())
		require.NotNil(t, s)
		if r.URL.Path == "/set" {
			s.Set("abc")
		} else {
			s.Clear()
		}
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/set", nil))
	c := cookieNamed(rec.Result(), session.CookieName)
	require.NotNil(t, c)
	require.Equal(t, "abc", c.Value)
	require.True(t, c.HttpOnly)
	require.True(t, c.Secure)
	require.Equal(t, "/", c.Path)
	require.Equal(t, http.SameSiteLaxMode, c.SameSite)
	require.Equal(t, 30*24*60*60, c.MaxAge)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/clear", nil))
	res := rec.Result()
	for _, name := range []string{session.CookieName, session.TwoFactorCookieName} {
		c := cookieNamed(res, name)
		require.NotNil(t, c, name)
		require.Empty(t, c.Value)
		require.Less(t, c.MaxAge, 0)
	}
}

func TestMiddlewareResolvesOnce(t *testing.T) {
	m, users := newManager(t, "development")

	var gotUser domain.User
	h := m.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := session.FromContext(r.Context())
		u, ok := s.User()
		require.True(t, ok)
		_, _ = s.User()
		gotUser = u
		require.Equal(t, "ann", httpx.UserID(r.Context()))
		require.Equal(t, domain.RoleAdmin, httpx.Role(r.Context()))
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "ann-token"})
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "ann", gotUser.ID)
	require.Equal(t, 1, users.calls)
}

func TestRequireUser(t *testing.T) {
	m, _ := newManager(t, "development")
	h := m.Middleware(m.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "forged"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: session.CookieName, Value: "bob-token"})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusNoContent, rec.Code, "second factor is not checked")
}

func TestRequireVerified(t *testing.T) {
	m, _ := newManager(t, "development")

	verify := m.Middleware(m.RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := session.FromContext(r.Context())
		u, _ := s.User()
		require.NoError(t, s.SetTwoFactorVerified(u.ID))
	})))
	gated := m.Middleware(m.RequireVerified(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))

	send := func(cookies ...*http.Cookie) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		rec := httptest.NewRecorder()
		gated.ServeHTTP(rec, req)
		return rec
	}

	ann := &http.Cookie{Name: session.CookieName, Value: "ann-token"}
	bob := &http.Cookie{Name: session.CookieName, Value: "bob-token"}

	require.Equal(t, http.StatusNoContent, send(ann).Code, "2FA disabled")

	rec := send(bob)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	var body httpx.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Equal(t, "two_factor_required", body.Code)

	req := httptest.NewRequest(http.MethodPost, "/verify", nil)
	req.AddCookie(bob)
	vrec := httptest.NewRecorder()
	verify.ServeHTTP(vrec, req)
	proof := cookieNamed(vrec.Result(), session.TwoFactorCookieName)
	require.NotNil(t, proof)
	require.True(t, proof.HttpOnly)
	require.Equal(t, 60*60, proof.MaxAge)

	require.Equal(t, http.StatusNoContent, send(bob, proof).Code)

	// Proof minted for bob does not satisfy another user.
	m2, _ := newManager(t, "development")
	m2.TwoFactor = fakeTwoFactor{"ann": true}
	gated2 := m2.Middleware(m2.RequireVerified(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})))
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(ann)
	req.AddCookie(proof)
	rec = httptest.NewRecorder()
	gated2.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
