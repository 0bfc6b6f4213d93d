package org_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/org"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/infrastructure/memory"
)

func TestCreateOrg_NombreDuplicado(t *testing.T) {
	ctx := context.Background()
	uc := org.NewUseCase(memory.NewStore(nil), nil)

	_, err := uc.CreateOrg(ctx, dto.CreateOrgRequest{Name: "Acme"})
	require.NoError(t, err)
	_, err = uc.CreateOrg(ctx, dto.CreateOrgRequest{Name: "Acme"})
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = uc.CreateOrg(ctx, dto.CreateOrgRequest{Name: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	uc := org.NewUseCase(memory.NewStore(nil), nil)
	o, err := uc.CreateOrg(ctx, dto.CreateOrgRequest{Name: "Acme"})
	require.NoError(t, err)

	u, err := uc.CreateUser(ctx, o.ID, dto.CreateUserRequest{Email: "Ana@Acme.Example"})
	require.NoError(t, err)
	assert.Equal(t, "ana@acme.example", u.Email)
	assert.Equal(t, "viewer", u.Role)

	_, err = uc.CreateUser(ctx, o.ID, dto.CreateUserRequest{Email: "sin-arroba"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateUser(ctx, "org-inexistente", dto.CreateUserRequest{Email: "a@b.c"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	users, err := uc.ListUsers(ctx, o.ID)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestIssueKey_SecretoSoloEnLaEmision(t *testing.T) {
	ctx := context.Background()
	uc := org.NewUseCase(memory.NewStore(nil), nil)
	o, err := uc.CreateOrg(ctx, dto.CreateOrgRequest{Name: "Acme"})
	require.NoError(t, err)

	k, err := uc.IssueKey(ctx, dto.CreateAPIKeyRequest{OrgID: o.ID, Name: "ci"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(k.Key, org.KeyPrefix))
	assert.True(t, strings.HasPrefix(k.Key, k.Prefix))

	keys, err := uc.ListKeys(ctx, o.ID)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.Empty(t, keys[0].Key)
	assert.False(t, keys[0].Revoked)
}

func TestRevokeKey_Idempotente(t *testing.T) {
	ctx := context.Background()
	uc := org.NewUseCase(memory.NewStore(nil), nil)
	o, err := uc.CreateOrg(ctx, dto.CreateOrgRequest{Name: "Acme"})
	require.NoError(t, err)
	k, err := uc.IssueKey(ctx, dto.CreateAPIKeyRequest{OrgID: o.ID, Name: "ci"})
	require.NoError(t, err)

	first, err := uc.RevokeKey(ctx, k.ID)
	require.NoError(t, err)
	require.True(t, first.Revoked)
	require.NotNil(t, first.RevokedAt)

	second, err := uc.RevokeKey(ctx, k.ID)
	require.NoError(t, err)
	assert.Equal(t, *first.RevokedAt, *second.RevokedAt)

	_, err = uc.RevokeKey(ctx, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
