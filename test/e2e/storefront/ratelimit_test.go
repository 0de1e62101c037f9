package storefront_test

import (
	"net/http"
	"testing"

	sdk "github.com/aussiebroadwan/storefront/pkg/storefrontsdk"
	"github.com/stretchr/testify/require"
)

// TestRateLimitLogin verifies the strict profile (5 per minute) on login.
func TestRateLimitLogin(t *testing.T) {
	client := setupContainerWithDefaultRateLimits(t)
	ctx := t.Context()

	for i := range 5 {
		_, err := client.Login(ctx, "nobody@example.com", "wrong-password")
		require.Error(t, err)
		require.False(t, sdk.HasCode(err, http.StatusTooManyRequests, sdk.ErrorCodeRateLimited),
			"request %d should not be rate limited yet", i+1)
	}

	_, err := client.Login(ctx, "nobody@example.com", "wrong-password")
	assertAPIError(t, err, http.StatusTooManyRequests, sdk.ErrorCodeRateLimited)
}

// TestRateLimitBootstrap verifies the setup endpoint is limited too.
func TestRateLimitBootstrap(t *testing.T) {
	client := setupContainerWithDefaultRateLimits(t)
	ctx := t.Context()

	req := sdk.BootstrapRequest{AdminEmail: adminEmail, AdminName: adminName, AdminPassword: adminPassword}

	var lastErr error
	for range 6 {
		_, lastErr = client.Bootstrap(ctx, "wrong-token", req)
		require.Error(t, lastErr)
	}
	assertAPIError(t, lastErr, http.StatusTooManyRequests, sdk.ErrorCodeRateLimited)
}
