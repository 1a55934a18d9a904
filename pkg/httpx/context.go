package httpx

import "context"

type ctxKey string

const (
	ctxKeyUserID ctxKey = "user_id"
	ctxKeyRole   ctxKey = "role"
)

// WithPrincipal records the authenticated user on ctx for rate limiting and
// role checks further down the chain.
func WithPrincipal(ctx context.Context, userID, role string) context.Context {
	ctx = context.WithValue(ctx, ctxKeyUserID, userID)
	return context.WithValue(ctx, ctxKeyRole, role)
}

// UserID returns the authenticated user id or "".
func UserID(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyUserID).(string)
	return v
}

// Role returns the authenticated user's system role or "".
func Role(ctx context.Context) string {
	v, _ := ctx.Value(ctxKeyRole).(string)
	return v
}
