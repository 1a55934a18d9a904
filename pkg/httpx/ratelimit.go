package httpx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net"
	"net/http"
	"net/netip"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/aussiebroadwan/taskflow/pkg/slogx"
	"golang.org/x/time/rate"
)

// RateLimitConfig is a token bucket: RequestsPerWindow tokens refill evenly
// over Window and at most Burst can be spent at once.
type RateLimitConfig struct {
	RequestsPerWindow int
	Window            time.Duration
	Burst             int
}

func (c RateLimitConfig) limit() rate.Limit {
	if c.Window <= 0 || c.RequestsPerWindow <= 0 {
		return rate.Inf
	}
	return rate.Limit(float64(c.RequestsPerWindow) / c.Window.Seconds())
}

// Profiles used by the TaskFlow router. RATELIMIT_{STRICT,MODERATE,LENIENT,PUBLIC}_*
// variables override them at startup.
var (
	// StrictLimit guards login, signup, invitation accept and 2FA verify.
	StrictLimit = RateLimitConfig{RequestsPerWindow: 5, Window: time.Minute, Burst: 5}

	// ModerateLimit covers account mutations: 2FA setup, invitations, team changes.
	ModerateLimit = RateLimitConfig{RequestsPerWindow: 20, Window: time.Minute, Burst: 20}

	// LenientLimit covers everyday project, task and time traffic.
	LenientLimit = RateLimitConfig{RequestsPerWindow: 100, Window: time.Minute, Burst: 100}

	// PublicLimit covers health probes and docs.
	PublicLimit = RateLimitConfig{RequestsPerWindow: 1000, Window: time.Minute, Burst: 1000}
)

func init() {
	StrictLimit = ParseRateLimitFromEnv("STRICT", StrictLimit)
	ModerateLimit = ParseRateLimitFromEnv("MODERATE", ModerateLimit)
	LenientLimit = ParseRateLimitFromEnv("LENIENT", LenientLimit)
	PublicLimit = ParseRateLimitFromEnv("PUBLIC", PublicLimit)
}

// ParseRateLimitFromEnv overlays RATELIMIT_{prefix}_REQUESTS,
// RATELIMIT_{prefix}_WINDOW_SEC and RATELIMIT_{prefix}_BURST on def.
// Missing, malformed or non-positive values keep the default.
func ParseRateLimitFromEnv(prefix string, def RateLimitConfig) RateLimitConfig {
	positive := func(name string) (int, bool) {
		n, err := strconv.Atoi(os.Getenv("RATELIMIT_" + prefix + "_" + name))
		return n, err == nil && n > 0
	}

	cfg := def
	if n, ok := positive("REQUESTS"); ok {
		cfg.RequestsPerWindow = n
	}
	if n, ok := positive("WINDOW_SEC"); ok {
		cfg.Window = time.Duration(n) * time.Second
	}
	if n, ok := positive("BURST"); ok {
		cfg.Burst = n
	}
	return cfg
}

// KeyExtractor names the bucket a request draws from. An empty key means
// the request cannot be attributed and is let through.
type KeyExtractor func(*http.Request) string

// ClientIP resolves the address a request came from. Forwarding headers
// are only read when the connection comes from one of TrustedProxies.
type ClientIP struct {
	TrustedProxies []netip.Prefix
}

// Key returns the client address. X-Forwarded-For is walked from the
// right, skipping trusted hops, so the first untrusted hop wins.
func (c ClientIP) Key(r *http.Request) string {
	remote := remoteHost(r)
	if !c.trusted(remote) {
		return remote
	}

	hops := strings.Split(r.Header.Get("X-Forwarded-For"), ",")
	for i := len(hops) - 1; i >= 0; i-- {
		hop := strings.TrimSpace(hops[i])
		if hop != "" && !c.trusted(hop) {
			return hop
		}
	}
	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return xri
	}
	return remote
}

func (c ClientIP) trusted(ip string) bool {
	addr, err := netip.ParseAddr(ip)
	if err != nil {
		return false
	}
	addr = addr.Unmap()
	for _, p := range c.TrustedProxies {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

func remoteHost(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ParseTrustedProxies reads a comma separated list of CIDRs or single
// addresses, e.g. "10.0.0.0/8, 192.168.1.7".
func ParseTrustedProxies(s string) ([]netip.Prefix, error) {
	var out []netip.Prefix
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.Contains(part, "/") {
			p, err := netip.ParsePrefix(part)
			if err != nil {
				return nil, fmt.Errorf("trusted proxy %q: %w", part, err)
			}
			out = append(out, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(part)
		if err != nil {
			return nil, fmt.Errorf("trusted proxy %q: %w", part, err)
		}
		addr = addr.Unmap()
		out = append(out, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return out, nil
}

// IPKeyExtractor keys on the connection's remote address and ignores
// forwarding headers.
func IPKeyExtractor(r *http.Request) string {
	return ClientIP{}.Key(r)
}

// UserIDKeyExtractor keys on the authenticated user, or "" when anonymous.
func UserIDKeyExtractor(r *http.Request) string {
	return UserID(r.Context())
}

// CompositeKeyExtractor joins the non-empty keys of extractors with sep,
// e.g. "192.168.1.1:user123".
func CompositeKeyExtractor(sep string, extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(extractors))
		for _, extract := range extractors {
			if key := extract(r); key != "" {
				parts = append(parts, key)
			}
		}
		return strings.Join(parts, sep)
	}
}

// FirstKeyExtractor uses the first extractor that yields a key.
func FirstKeyExtractor(extractors ...KeyExtractor) KeyExtractor {
	return func(r *http.Request) string {
		for _, extract := range extractors {
			if key := extract(r); key != "" {
				return key
			}
		}
		return ""
	}
}

// maxPeekBytes caps how much of a body the limiter reads to find its key.
const maxPeekBytes = 1 << 16

// JSONFieldKeyExtractor keys on a top level string field of a JSON body,
// e.g. the email on a login attempt. Only the first maxPeekBytes are
// inspected; the handler still reads the whole body.
func JSONFieldKeyExtractor(field string) KeyExtractor {
	return func(r *http.Request) string {
		if r.Body == nil {
			return ""
		}
		body, err := io.ReadAll(io.LimitReader(r.Body, maxPeekBytes))
		r.Body = readCloser{io.MultiReader(bytes.NewReader(body), r.Body), r.Body}
		if err != nil {
			return ""
		}

		var fields map[string]json.RawMessage
		if err := json.Unmarshal(body, &fields); err != nil {
			return ""
		}
		var v string
		if err := json.Unmarshal(fields[field], &v); err != nil {
			return ""
		}
		return strings.ToLower(strings.TrimSpace(v))
	}
}

// readCloser replays the peeked bytes before the rest of the body.
type readCloser struct {
	io.Reader
	io.Closer
}

// bucket is one key's limiter and when it was last drawn from.
type bucket struct {
	lim  *rate.Limiter
	seen time.Time
}

// buckets holds a limiter per key. Keys idle for longer than idleTTL are
// swept at most once per idleTTL, so memory follows the active key set.
type buckets struct {
	cfg     RateLimitConfig
	idleTTL time.Duration
	now     func() time.Time

	mu        sync.Mutex
	byKey     map[string]*bucket
	lastSweep time.Time
}

func newBuckets(cfg RateLimitConfig, now func() time.Time) *buckets {
	// A bucket idle for two windows has refilled completely, so dropping it
	// loses nothing.
	idle := 2 * cfg.Window
	if idle < time.Minute {
		idle = time.Minute
	}
	return &buckets{cfg: cfg, idleTTL: idle, now: now, byKey: make(map[string]*bucket), lastSweep: now()}
}

// take spends one token for key. When none is left it reports how long
// until the next one.
func (b *buckets) take(key string) (bool, time.Duration) {
	now := b.now()

	b.mu.Lock()
	defer b.mu.Unlock()

	if now.Sub(b.lastSweep) >= b.idleTTL {
		for k, bk := range b.byKey {
			if now.Sub(bk.seen) >= b.idleTTL {
				delete(b.byKey, k)
			}
		}
		b.lastSweep = now
	}

	bk, ok := b.byKey[key]
	if !ok {
		bk = &bucket{lim: rate.NewLimiter(b.cfg.limit(), b.cfg.Burst)}
		b.byKey[key] = bk
	}
	bk.seen = now

	if bk.lim.AllowN(now, 1) {
		return true, 0
	}
	res := bk.lim.ReserveN(now, 1)
	wait := res.DelayFrom(now)
	res.CancelAt(now)
	return false, wait
}

// RateLimitMiddleware rejects requests over config with 429 and a
// Retry-After header. keyExtractor decides which requests share a bucket.
func RateLimitMiddleware(config RateLimitConfig, keyExtractor KeyExtractor) Middleware {
	return rateLimit(config, keyExtractor, time.Now)
}

func rateLimit(config RateLimitConfig, keyExtractor KeyExtractor, now func() time.Time) Middleware {
	b := newBuckets(config, now)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyExtractor(r)
			if key == "" {
				slogx.FromContext(r.Context()).Warn("rate limit: no key for request, allowing")
				next.ServeHTTP(w, r)
				return
			}

			ok, wait := b.take(key)
			if ok {
				next.ServeHTTP(w, r)
				return
			}

			retryAfter := max(int(math.Ceil(wait.Seconds())), 1)
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(config.RequestsPerWindow))
			w.Header().Set("X-RateLimit-Window", config.Window.String())

			slogx.FromContext(r.Context()).Warn("rate limit exceeded",
				"key", key,
				"path", r.URL.Path,
				"retry_after", retryAfter,
			)
			WriteJSON(w, http.StatusTooManyRequests, ErrorBody{
				Code:    "rate_limit_exceeded",
				Message: "Too many requests. Please try again later.",
			})
		})
	}
}

// ByIP limits each client address.
func (c ClientIP) ByIP(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, c.Key)
}

// ByUser limits each signed-in user across all of their addresses.
// Anonymous requests fall back to the address.
func (c ClientIP) ByUser(config RateLimitConfig) Middleware {
	return RateLimitMiddleware(config, FirstKeyExtractor(UserIDKeyExtractor, c.Key))
}

// ByIPAndJSONField limits by address plus a JSON body field, e.g. login
// attempts per address and email.
func (c ClientIP) ByIPAndJSONField(config RateLimitConfig, field string) Middleware {
	return RateLimitMiddleware(config, CompositeKeyExtractor(":", c.Key, JSONFieldKeyExtractor(field)))
}

// RateLimitByIP limits each remote address.
func RateLimitByIP(config RateLimitConfig) Middleware {
	return ClientIP{}.ByIP(config)
}

// RateLimitByUser limits each signed-in user, or each remote address for
// anonymous requests.
func RateLimitByUser(config RateLimitConfig) Middleware {
	return ClientIP{}.ByUser(config)
}

// RateLimitByIPAndJSONField limits by remote address plus a JSON body field.
func RateLimitByIPAndJSONField(config RateLimitConfig, field string) Middleware {
	return ClientIP{}.ByIPAndJSONField(config, field)
}
