package summary_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/application/catalog"
	"github.com/jhoicas/passport-api/internal/application/cbam"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/summary"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/internal/infrastructure/memory"
)

func TestTenant_ConteosYSumas(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(nil)
	orgA := tenant.New("org-a", "Acme", "k-a", "ci")
	orgB := tenant.New("org-b", "Beta", "k-b", "ci")

	_, err := catalog.NewUseCase(store).CreateComponent(ctx, orgA, dto.CreateComponentRequest{Name: "Celda"})
	require.NoError(t, err)
	qty, factor := decimal.NewFromInt(10), decimal.NewFromInt(2)
	_, err = cbam.NewUseCase(store, decimal.NewFromInt(80), nil).CreateDeclaration(ctx, orgA, dto.CreateCbamDeclarationRequest{
		Period: "2026-Q3",
		Items:  []dto.CbamItemRequest{{CNCode: "99990000", QuantityTonnes: &qty, DefaultEmissionFactor: &factor}},
	})
	require.NoError(t, err)

	s, err := summary.NewUseCase(store).Tenant(ctx, orgA)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Components)
	assert.Equal(t, 1, s.Declarations)
	assert.True(t, s.TotalEmissions.Equal(decimal.NewFromInt(20)))
	assert.True(t, s.CertificateCostEstimate.Equal(decimal.NewFromInt(1600)))

	other, err := summary.NewUseCase(store).Tenant(ctx, orgB)
	require.NoError(t, err)
	assert.Zero(t, other.Components)
	assert.True(t, other.TotalEmissions.IsZero())
}
