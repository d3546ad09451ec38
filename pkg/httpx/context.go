package httpx

import "context"

type ctxKey string

const (
	CtxKeyUserID ctxKey = "user_id"
	CtxKeyEmail  ctxKey = "email"
	CtxKeyToken  ctxKey = "token" // raw session token, for sign-out on denial
)

// UserIDFromContext returns the authenticated user id, or "" when the
// request never passed AuthnMiddleware.
func UserIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyUserID).(string)
	return v
}

// TokenFromContext returns the raw session token carried by the request,
// or "".
func TokenFromContext(ctx context.Context) string {
	v, _ := ctx.Value(CtxKeyToken).(string)
	return v
}
