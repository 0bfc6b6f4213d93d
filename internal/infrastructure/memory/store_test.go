package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/internal/infrastructure/memory"
)

var scope = tenant.New("org-a", "Acme", "k-1", "test")

func TestStore_RollbackDescartaEscrituras(t *testing.T) {
	store := memory.NewStore(nil)
	ctx := context.Background()
	boom := errors.New("boom")

	err := store.Run(ctx, scope, func(r repository.Repos) error {
		require.NoError(t, r.Components.Create(ctx, &entity.Component{ID: "c-1", OrgID: "org-a", Name: "Celda"}))
		require.NoError(t, r.Audit.Create(ctx, &entity.AuditLog{ID: "a-1", OrgID: "org-a", Action: "component.create"}))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, store.Run(ctx, scope, func(r repository.Repos) error {
		c, err := r.Components.GetByID(ctx, "c-1")
		require.NoError(t, err)
		assert.Nil(t, c)
		logs, err := r.Audit.ListByOrg(ctx, "org-a", 10)
		require.NoError(t, err)
		assert.Empty(t, logs)
		return nil
	}))
}

func TestStore_SerialUnicoEntreOrganizaciones(t *testing.T) {
	store := memory.NewStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Run(ctx, scope, func(r repository.Repos) error {
		return r.Passports.Create(ctx, &entity.BatteryPassport{ID: "p-1", OrgID: "org-a", SerialNumber: "SN-1"})
	}))

	err := store.Run(ctx, tenant.New("org-b", "Beta", "k-2", ""), func(r repository.Repos) error {
		return r.Passports.Create(ctx, &entity.BatteryPassport{ID: "p-2", OrgID: "org-b", SerialNumber: "SN-1"})
	})
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestStore_ListadosMasRecientePrimeroYSinGlobales(t *testing.T) {
	store := memory.NewStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Run(ctx, scope, func(r repository.Repos) error {
		for _, c := range []entity.Component{
			{ID: "c-1", OrgID: "org-a"},
			{ID: "c-global", OrgID: ""},
			{ID: "c-2", OrgID: "org-a"},
			{ID: "c-b", OrgID: "org-b"},
		} {
			c := c
			if err := r.Components.Create(ctx, &c); err != nil {
				return err
			}
		}
		return nil
	}))

	require.NoError(t, store.Run(ctx, scope, func(r repository.Repos) error {
		list, err := r.Components.ListByOrg(ctx, "org-a")
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "c-2", list[0].ID)
		assert.Equal(t, "c-1", list[1].ID)
		return nil
	}))
}

func TestStore_LasCopiasNoMutanElEstado(t *testing.T) {
	store := memory.NewStore(nil)
	ctx := context.Background()

	require.NoError(t, store.Run(ctx, scope, func(r repository.Repos) error {
		return r.Components.Create(ctx, &entity.Component{ID: "c-1", OrgID: "org-a", Name: "Celda"})
	}))
	require.NoError(t, store.Run(ctx, scope, func(r repository.Repos) error {
		c, _ := r.Components.GetByID(ctx, "c-1")
		c.Name = "mutado sin Update"
		return nil
	}))
	require.NoError(t, store.Run(ctx, scope, func(r repository.Repos) error {
		c, _ := r.Components.GetByID(ctx, "c-1")
		assert.Equal(t, "Celda", c.Name)
		return nil
	}))
}
