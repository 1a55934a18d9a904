package httpx_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aussiebroadwan/taskflow/pkg/httpx"
	"github.com/stretchr/testify/require"
)

func TestIPKeyExtractorIgnoresForwardingHeaders(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.1:12345"
	req.Header.Set("X-Forwarded-For", "203.0.113.1")
	req.Header.Set("X-Real-IP", "203.0.113.2")
	require.Equal(t, "192.168.1.1", httpx.IPKeyExtractor(req))
}

func TestClientIPTrustedProxies(t *testing.T) {
	trusted, err := httpx.ParseTrustedProxies("10.0.0.0/8, 192.168.1.7")
	require.NoError(t, err)
	clientIP := httpx.ClientIP{TrustedProxies: trusted}

	tests := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{"untrusted peer", "198.51.100.9:1", map[string]string{"X-Forwarded-For": "203.0.113.1"}, "198.51.100.9"},
		{"trusted peer", "10.1.2.3:1", map[string]string{"X-Forwarded-For": "203.0.113.1"}, "203.0.113.1"},
		{"spoofed left hop", "10.1.2.3:1", map[string]string{"X-Forwarded-For": "1.1.1.1, 203.0.113.1, 10.0.0.2"}, "203.0.113.1"},
		{"single trusted address", "192.168.1.7:1", map[string]string{"X-Forwarded-For": "203.0.113.5"}, "203.0.113.5"},
		{"real ip fallback", "10.1.2.3:1", map[string]string{"X-Real-IP": " 203.0.113.2 "}, "203.0.113.2"},
		{"no headers", "10.1.2.3:1", nil, "10.1.2.3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			require.Equal(t, tt.want, clientIP.Key(req))
		})
	}
}

func TestParseTrustedProxies(t *testing.T) {
	got, err := httpx.ParseTrustedProxies("")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = httpx.ParseTrustedProxies("10.1.2.3/8,::1")
	require.NoError(t, err)
	require.Equal(t, "10.0.0.0/8", got[0].String())
	require.Equal(t, "::1/128", got[1].String())

	_, err = httpx.ParseTrustedProxies("not-an-ip")
	require.Error(t, err)
}

func TestJSONFieldKeyExtractor(t *testing.T) {
	t.Run("normalises and restores body", func(t *testing.T) {
		body := `{"email":" Ann@X.com ","password":"secret"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

		require.Equal(t, "ann@x.com", httpx.JSONFieldKeyExtractor("email")(req))

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.Equal(t, body, string(rest))
	})

	t.Run("large body is restored whole", func(t *testing.T) {
		body := `{"email":"ann@x.com","notes":"` + strings.Repeat("a", 100_000) + `"}`
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))

		require.Empty(t, httpx.JSONFieldKeyExtractor("email")(req))

		rest, err := io.ReadAll(req.Body)
		require.NoError(t, err)
		require.Equal(t, body, string(rest))
		require.NoError(t, req.Body.Close())
	})

	for name, body := range map[string]string{
		"missing field": `{"password":"x"}`,
		"not json":      "email=ann",
		"not a string":  `{"email":42}`,
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
			require.Empty(t, httpx.JSONFieldKeyExtractor("email")(req))
		})
	}
}

func TestCompositeKeyExtractor(t *testing.T) {
	extract := httpx.CompositeKeyExtractor(":", httpx.IPKeyExtractor, httpx.JSONFieldKeyExtractor("email"))

	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"email":"alice@example.com"}`))
	req.RemoteAddr = "192.168.1.1:12345"
	require.Equal(t, "192.168.1.1:alice@example.com", extract(req))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{}`))
	req.RemoteAddr = "192.168.1.1:12345"
	require.Equal(t, "192.168.1.1", extract(req))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
}

func hit(h http.Handler, remote string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(`{"email":"ann@example.com"}`))
	req.RemoteAddr = remote
	for _, m := range mutate {
		m(req)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRateLimitMiddleware(t *testing.T) {
	cfg := httpx.RateLimitConfig{RequestsPerWindow: 3, Window: time.Minute, Burst: 3}

	t.Run("blocks after burst", func(t *testing.T) {
		h := httpx.RateLimitByIP(cfg)(okHandler())
		for i := range 3 {
			require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1").Code, "request %d", i+1)
		}

		rec := hit(h, "10.0.0.1:1")
		require.Equal(t, http.StatusTooManyRequests, rec.Code)
		require.NotEmpty(t, rec.Header().Get("Retry-After"))
		require.Equal(t, "3", rec.Header().Get("X-RateLimit-Limit"))
		require.Equal(t, "1m0s", rec.Header().Get("X-RateLimit-Window"))

		var body httpx.ErrorBody
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
		require.False(t, body.Success)
		require.Equal(t, "rate_limit_exceeded", body.Code)
	})

	t.Run("keys are independent", func(t *testing.T) {
		h := httpx.RateLimitByIP(cfg)(okHandler())
		for range 3 {
			hit(h, "10.0.0.1:1")
		}
		require.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1").Code)
		require.Equal(t, http.StatusOK, hit(h, "10.0.0.2:1").Code)
	})

	t.Run("empty key is allowed", func(t *testing.T) {
		h := httpx.RateLimitMiddleware(cfg, func(*http.Request) string { return "" })(okHandler())
		for range 10 {
			require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1").Code)
		}
	})

	t.Run("login keyed by ip and email", func(t *testing.T) {
		h := httpx.RateLimitByIPAndJSONField(cfg, "email")(okHandler())
		for range 3 {
			hit(h, "10.0.0.1:1")
		}
		require.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1").Code)

		other := func(r *http.Request) {
			r.Body = io.NopCloser(strings.NewReader(`{"email":"bob@example.com"}`))
		}
		require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1", other).Code)
	})

	t.Run("signed-in users have their own bucket", func(t *testing.T) {
		h := httpx.RateLimitByUser(cfg)(okHandler())
		as := func(id string) func(*http.Request) {
			return func(r *http.Request) { *r = *r.WithContext(httpx.WithPrincipal(r.Context(), id, "user")) }
		}
		for range 3 {
			hit(h, "10.0.0.1:1", as("ann"))
		}
		require.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.1:1", as("ann")).Code)
		require.Equal(t, http.StatusOK, hit(h, "10.0.0.1:1", as("bob")).Code)
	})

	t.Run("forwarding headers do not open new buckets", func(t *testing.T) {
		h := httpx.RateLimitByIPAndJSONField(cfg, "email")(okHandler())
		for i := range 4 {
			rec := hit(h, "10.0.0.1:1", func(r *http.Request) {
				r.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i))
			})
			if i < 3 {
				require.Equal(t, http.StatusOK, rec.Code)
			} else {
				require.Equal(t, http.StatusTooManyRequests, rec.Code)
			}
		}
	})

	t.Run("users keep one bucket across addresses", func(t *testing.T) {
		h := httpx.RateLimitByUser(cfg)(okHandler())
		ann := func(r *http.Request) { *r = *r.WithContext(httpx.WithPrincipal(r.Context(), "ann", "user")) }
		for _, remote := range []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1"} {
			require.Equal(t, http.StatusOK, hit(h, remote, ann).Code)
		}
		require.Equal(t, http.StatusTooManyRequests, hit(h, "10.0.0.4:1", ann).Code)
	})
}

func TestRateLimitProfiles(t *testing.T) {
	profiles := []httpx.RateLimitConfig{httpx.StrictLimit, httpx.ModerateLimit, httpx.LenientLimit, httpx.PublicLimit}
	for i := 1; i < len(profiles); i++ {
		require.Less(t, profiles[i-1].RequestsPerWindow, profiles[i].RequestsPerWindow)
	}
	for _, p := range profiles {
		require.Positive(t, p.Window)
		require.Positive(t, p.Burst)
	}
}

func TestParseRateLimitFromEnv(t *testing.T) {
	def := httpx.RateLimitConfig{RequestsPerWindow: 10, Window: time.Minute, Burst: 10}

	t.Run("defaults when unset", func(t *testing.T) {
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("UNSET_TEST", def))
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("RATELIMIT_CUSTOM_REQUESTS", "50")
		t.Setenv("RATELIMIT_CUSTOM_WINDOW_SEC", "30")
		t.Setenv("RATELIMIT_CUSTOM_BURST", "7")
		got := httpx.ParseRateLimitFromEnv("CUSTOM", def)
		require.Equal(t, httpx.RateLimitConfig{RequestsPerWindow: 50, Window: 30 * time.Second, Burst: 7}, got)
	})

	t.Run("ignores invalid values", func(t *testing.T) {
		t.Setenv("RATELIMIT_BAD_REQUESTS", "lots")
		t.Setenv("RATELIMIT_BAD_WINDOW_SEC", "-5")
		t.Setenv("RATELIMIT_BAD_BURST", "0")
		require.Equal(t, def, httpx.ParseRateLimitFromEnv("BAD", def))
	})
}

func BenchmarkRateLimitManyIPs(b *testing.B) {
	h := httpx.RateLimitByIP(httpx.LenientLimit)(okHandler())
	ips := []string{"10.0.0.1:1", "10.0.0.2:1", "10.0.0.3:1", "10.0.0.4:1"}
	b.ResetTimer()
	for i := range b.N {
		hit(h, ips[i%len(ips)])
	}
}
