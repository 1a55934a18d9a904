package session

import (
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/taskflow/pkg/jwtx"
)

const (
	CookieName          = "auth_token"
	TwoFactorCookieName = "2fa_verified"
)

// Policy holds the attributes shared by every cookie the server sets.
type Policy struct {
	Secure          bool
	SameSite        http.SameSite
	MaxAge          time.Duration
	TwoFactorMaxAge time.Duration
}

// PolicyFor returns the cookie policy for a deployment environment.
// Cookies are Secure everywhere except local development and test.
// Preview and staging run behind another origin and need SameSite=None.
func PolicyFor(env string) Policy {
	p := Policy{
		Secure:          true,
		SameSite:        http.SameSiteLaxMode,
		MaxAge:          jwtx.DefaultSessionTTL,
		TwoFactorMaxAge: jwtx.DefaultTwoFactorTTL,
	}
	switch strings.ToLower(env) {
	case "dev", "development", "test", "local":
		p.Secure = false
	case "preview", "staging":
		p.SameSite = http.SameSiteNoneMode
	}
	return p
}

func (p Policy) cookie(name, value string, maxAge time.Duration) *http.Cookie {
	c := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   p.Secure || p.SameSite == http.SameSiteNoneMode,
		SameSite: p.SameSite,
	}
	if maxAge > 0 {
		c.MaxAge = int(maxAge.Seconds())
		c.Expires = time.Now().Add(maxAge)
	} else {
		c.MaxAge = -1
		c.Expires = time.Unix(0, 0)
	}
	return c
}
