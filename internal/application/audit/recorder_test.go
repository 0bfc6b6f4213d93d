package audit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/application/audit"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/internal/infrastructure/memory"
)

var scope = tenant.New("org-a", "Acme", "k-1", "ci")

func TestRecord_MismaTransaccion(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)

	require.NoError(t, store.Run(ctx, scope, func(r repository.Repos) error {
		return audit.Record(ctx, r, scope, "component.create", "component", "c-1", entity.JSONMap{"name": "Celda"})
	}))
	boom := errors.New("boom")
	err := store.Run(ctx, scope, func(r repository.Repos) error {
		require.NoError(t, audit.Record(ctx, r, scope, "component.update", "component", "c-1", nil))
		return boom
	})
	require.ErrorIs(t, err, boom)

	entries, err := audit.NewUseCase(store).List(ctx, scope)
	require.NoError(t, err)
	require.Len(t, entries, 1, "la entrada de la transacción revertida no persiste")
	assert.Equal(t, "component.create", entries[0].Action)
	assert.Equal(t, "api_key:ci", entries[0].Actor)
	assert.Equal(t, "Celda", entries[0].Detail["name"])

	other, err := audit.NewUseCase(store).List(ctx, tenant.New("org-b", "Beta", "k-2", "ci"))
	require.NoError(t, err)
	assert.Empty(t, other)
}
