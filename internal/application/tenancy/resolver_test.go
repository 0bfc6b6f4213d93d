package tenancy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/org"
	"github.com/jhoicas/passport-api/internal/application/tenancy"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/infrastructure/memory"
)

func TestResolve_ClaveActivaEsEstable(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	orgs := org.NewUseCase(store, nil)

	o, err := orgs.CreateOrg(ctx, dto.CreateOrgRequest{Name: "Acme"})
	require.NoError(t, err)
	key, err := orgs.IssueKey(ctx, dto.CreateAPIKeyRequest{OrgID: o.ID, Name: "ci"})
	require.NoError(t, err)
	require.NotEmpty(t, key.Key)

	r := tenancy.NewResolver(store)
	first, err := r.Resolve(ctx, key.Key)
	require.NoError(t, err)
	second, err := r.Resolve(ctx, key.Key)
	require.NoError(t, err)

	assert.Equal(t, o.ID, first.OrgID())
	assert.Equal(t, "Acme", first.OrgName())
	assert.Equal(t, key.ID, first.CredentialID())
	assert.Equal(t, first, second)
}

func TestResolve_ClaveRevocada(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	orgs := org.NewUseCase(store, nil)

	o, err := orgs.CreateOrg(ctx, dto.CreateOrgRequest{Name: "Acme"})
	require.NoError(t, err)
	key, err := orgs.IssueKey(ctx, dto.CreateAPIKeyRequest{OrgID: o.ID, Name: "ci"})
	require.NoError(t, err)
	_, err = orgs.RevokeKey(ctx, key.ID)
	require.NoError(t, err)

	_, err = tenancy.NewResolver(store).Resolve(ctx, key.Key)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResolve_CredencialVaciaODesconocida(t *testing.T) {
	r := tenancy.NewResolver(memory.NewStore(nil))

	_, err := r.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = r.Resolve(context.Background(), "dpp_no-existe")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestHashKey(t *testing.T) {
	assert.Equal(t, tenancy.HashKey("abc"), tenancy.HashKey("abc"))
	assert.NotEqual(t, tenancy.HashKey("abc"), tenancy.HashKey("abd"))
	assert.Len(t, tenancy.HashKey("abc"), 64)
}
