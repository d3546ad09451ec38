package gatekeeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestHealthEndpoints verifies the health and probe endpoints on a fresh
// container before any accounts exist.
func TestHealthEndpoints(t *testing.T) {
	sdk := setupGatekeeperContainer(t, nil)
	ctx := t.Context()

	health, err := sdk.Health(ctx)
	require.NoError(t, err)
	require.True(t, health.OK)

	live, err := sdk.GetLiveness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", live.Status)
	require.NotEmpty(t, live.Version)

	ready, err := sdk.GetReadiness(ctx)
	require.NoError(t, err)
	require.Equal(t, "ok", ready.Status)
	require.NotNil(t, ready.Checks)
	require.Equal(t, "ok", ready.Checks.Database)

	t.Logf("Health, liveness and readiness probes all healthy")
}
