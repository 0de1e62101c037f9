package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/storefront/internal/storefront/domain"
	"github.com/stretchr/testify/require"
)

func TestBootstrap(t *testing.T) {
	ctx := context.Background()
	c := newClock()
	st := newTestStore(t, c)
	svc := &BootstrapService{Store: st, Hasher: newTestHasher(t), Token: "let-me-in", Now: c.Now}

	req := domain.BootstrapData{AdminEmail: "Root@Example.com", AdminName: "Root", AdminPassword: "super secret"}

	done, err := svc.IsBootstrapped(ctx)
	require.NoError(t, err)
	require.False(t, done)

	_, err = svc.Bootstrap(ctx, "wrong", req)
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)

	id, err := svc.Bootstrap(ctx, "let-me-in", req)
	require.NoError(t, err)

	admin, err := st.Users().GetUserByID(ctx, id)
	require.NoError(t, err)
	require.True(t, admin.IsAdmin)
	require.Equal(t, "root@example.com", admin.Email)

	_, err = svc.Bootstrap(ctx, "let-me-in", req)
	require.ErrorIs(t, err, ErrBootstrapAlready)
}

func TestBootstrapDisabledWithoutToken(t *testing.T) {
	c := newClock()
	svc := &BootstrapService{Store: newTestStore(t, c), Hasher: newTestHasher(t), Now: c.Now}

	_, err := svc.Bootstrap(context.Background(), "", domain.BootstrapData{
		AdminEmail: "root@example.com", AdminName: "Root", AdminPassword: "super secret",
	})
	require.ErrorIs(t, err, ErrBootstrapUnauthorized)
}
