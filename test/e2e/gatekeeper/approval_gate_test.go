package gatekeeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vasudha-ag/gatekeeper/pkg/gatesdk"
)

// TestManualApprovalGate verifies that under the manual approval policy a
// fresh registration authenticates fine at the provider but is still
// refused a session until someone approves the profile.
func TestManualApprovalGate(t *testing.T) {
	sdk := setupGatekeeperContainer(t, map[string]string{
		"APPROVAL_POLICY": "manual",
	})
	ctx := t.Context()

	res, err := sdk.Register(ctx, registration("held@real.com", "heldback1", "buyer"))
	require.NoError(t, err)
	require.True(t, res.OK)

	// The credentials are valid, so the refusal is the approval gate,
	// not authentication. That distinction is the 403 vs 401 split.
	_, err = sdk.Login(ctx, "held@real.com", testPassword)
	var apiErr *gatesdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 403, apiErr.StatusCode)

	// Repeat attempts are refused identically.
	for range 3 {
		_, err = sdk.Login(ctx, "held@real.com", testPassword)
		require.ErrorAs(t, err, &apiErr)
		require.Equal(t, 403, apiErr.StatusCode)
	}

	t.Logf("Pending profile correctly held at the login gate")
}
