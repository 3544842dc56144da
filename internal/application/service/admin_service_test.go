package service

import (
	"context"
	"testing"

	infraRepo "github.com/latia/admin-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAdminService(t *testing.T, superAdmin string) *AdminService {
	t.Helper()
	db := setupTestDB(t)
	return NewAdminService(infraRepo.NewAdminRepository(db), superAdmin)
}

func TestSuperAdminIsAlwaysAdmin(t *testing.T) {
	svc := newAdminService(t, "Owner@Example.com")
	ctx := context.Background()

	// Case-insensitive, works without any allow-list entries
	ok, err := svc.IsAdmin(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = svc.IsAdmin(ctx, "OWNER@EXAMPLE.COM")
	require.NoError(t, err)
	assert.True(t, ok)

	assert.True(t, svc.IsSuperAdmin("owner@example.com"))
	assert.False(t, svc.IsSuperAdmin("someone@example.com"))
}

func TestAllowListGrantAndRevoke(t *testing.T) {
	svc := newAdminService(t, "owner@example.com")
	ctx := context.Background()

	ok, err := svc.IsAdmin(ctx, "helper@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	admin, err := svc.AddAdmin(ctx, " Helper@Example.com ", "Helper")
	require.NoError(t, err)
	assert.Equal(t, "helper@example.com", admin.Email)

	ok, err = svc.IsAdmin(ctx, "helper@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, svc.RemoveAdmin(ctx, "helper@example.com"))

	ok, err = svc.IsAdmin(ctx, "helper@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddAdminIsIdempotent(t *testing.T) {
	svc := newAdminService(t, "owner@example.com")
	ctx := context.Background()

	_, err := svc.AddAdmin(ctx, "helper@example.com", "Helper")
	require.NoError(t, err)

	// Granting the same email again updates rather than fails
	_, err = svc.AddAdmin(ctx, "helper@example.com", "Helper Again")
	require.NoError(t, err)

	admins, err := svc.ListAdmins(ctx)
	require.NoError(t, err)
	assert.Len(t, admins, 1)
}

func TestAddAdminRequiresEmail(t *testing.T) {
	svc := newAdminService(t, "owner@example.com")

	_, err := svc.AddAdmin(context.Background(), "   ", "Nobody")
	require.Error(t, err)
}

func TestRemoveSuperAdminIsRejected(t *testing.T) {
	svc := newAdminService(t, "owner@example.com")

	err := svc.RemoveAdmin(context.Background(), "Owner@Example.com")
	require.Error(t, err)
}
