package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/application/catalog"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/internal/infrastructure/memory"
)

var (
	orgA = tenant.New("org-a", "Acme", "k-a", "ci")
	orgB = tenant.New("org-b", "Beta", "k-b", "ci")
)

func str(s string) *string   { return &s }
func num(f float64) *float64 { return &f }

func TestComponent_CrearActualizarYAislar(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewUseCase(memory.NewStore(nil))

	c, err := uc.CreateComponent(ctx, orgA, dto.CreateComponentRequest{Name: "Celda", Kind: "cell"})
	require.NoError(t, err)

	updated, err := uc.UpdateComponent(ctx, orgA, c.ID, dto.UpdateComponentRequest{Description: str("NMC 811")})
	require.NoError(t, err)
	assert.Equal(t, "Celda", updated.Name)
	assert.Equal(t, "NMC 811", updated.Description)

	_, err = uc.GetComponent(ctx, orgB, c.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.UpdateComponent(ctx, orgB, c.ID, dto.UpdateComponentRequest{Name: str("x")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	listB, err := uc.ListComponents(ctx, orgB)
	require.NoError(t, err)
	assert.Empty(t, listB)

	_, err = uc.CreateComponent(ctx, orgA, dto.CreateComponentRequest{Name: " "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTemplate_PatchYRangos(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewUseCase(memory.NewStore(nil))

	tpl, err := uc.CreateTemplate(ctx, orgA, dto.TemplateRequest{Name: str("Pack"), RatedCapacityKwh: num(50)})
	require.NoError(t, err)

	patched, err := uc.UpdateTemplate(ctx, orgA, tpl.ID, dto.TemplateRequest{GTIN: str("04012345678901")})
	require.NoError(t, err)
	assert.Equal(t, "Pack", patched.Name)
	require.NotNil(t, patched.RatedCapacityKwh)
	assert.Equal(t, 50.0, *patched.RatedCapacityKwh)
	assert.Equal(t, "04012345678901", patched.GTIN)

	_, err = uc.UpdateTemplate(ctx, orgA, tpl.ID, dto.TemplateRequest{RecycledContentCobalt: num(120)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.GetTemplate(ctx, orgB, tpl.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAttachComponent(t *testing.T) {
	ctx := context.Background()
	uc := catalog.NewUseCase(memory.NewStore(nil))

	tpl, err := uc.CreateTemplate(ctx, orgA, dto.TemplateRequest{Name: str("Pack")})
	require.NoError(t, err)
	c, err := uc.CreateComponent(ctx, orgA, dto.CreateComponentRequest{Name: "Celda"})
	require.NoError(t, err)
	foreign, err := uc.CreateComponent(ctx, orgB, dto.CreateComponentRequest{Name: "Ajena"})
	require.NoError(t, err)

	link, err := uc.AttachComponent(ctx, orgA, tpl.ID, dto.AttachComponentRequest{ComponentID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, 1, link.Quantity)

	_, err = uc.AttachComponent(ctx, orgA, tpl.ID, dto.AttachComponentRequest{ComponentID: c.ID, Quantity: -2})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AttachComponent(ctx, orgA, tpl.ID, dto.AttachComponentRequest{TemplateID: "otra", ComponentID: c.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.AttachComponent(ctx, orgA, tpl.ID, dto.AttachComponentRequest{ComponentID: foreign.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	bms, err := uc.CreateComponent(ctx, orgA, dto.CreateComponentRequest{Name: "BMS"})
	require.NoError(t, err)
	_, err = uc.AttachComponent(ctx, orgA, tpl.ID, dto.AttachComponentRequest{ComponentID: bms.ID})
	require.NoError(t, err)

	links, err := uc.ListTemplateComponents(ctx, orgA, tpl.ID)
	require.NoError(t, err)
	require.Len(t, links, 2)
	assert.Equal(t, bms.ID, links[0].ComponentID, "el enlace más reciente primero")
	assert.Equal(t, c.ID, links[1].ComponentID)
}
