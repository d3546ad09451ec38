package httpx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vasudha-ag/gatekeeper/pkg/httpx"
)

func TestContextAccessors(t *testing.T) {
	ctx := t.Context()

	// Unauthenticated requests yield empty values, not panics.
	require.Empty(t, httpx.UserIDFromContext(ctx))
	require.Empty(t, httpx.TokenFromContext(ctx))

	ctx = context.WithValue(ctx, httpx.CtxKeyUserID, "user-1")
	ctx = context.WithValue(ctx, httpx.CtxKeyToken, "tok-1")

	require.Equal(t, "user-1", httpx.UserIDFromContext(ctx))
	require.Equal(t, "tok-1", httpx.TokenFromContext(ctx))
}
