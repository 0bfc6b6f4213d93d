package cbam_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/application/cbam"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/internal/infrastructure/memory"
)

var (
	orgA = tenant.New("org-a", "Acme", "k-a", "ci")
	orgB = tenant.New("org-b", "Beta", "k-b", "ci")
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func newUseCase() *cbam.UseCase {
	return cbam.NewUseCase(memory.NewStore(nil), decimal.NewFromInt(80), nil)
}

func TestCreateDeclaration_TotalesYCosto(t *testing.T) {
	uc := newUseCase()
	d, err := uc.CreateDeclaration(context.Background(), orgA, dto.CreateCbamDeclarationRequest{
		Period: "2026-Q3",
		Items: []dto.CbamItemRequest{
			{CNCode: "99990001", QuantityTonnes: dec("10"), DefaultEmissionFactor: dec("2.0")},
			{CNCode: "99990002", QuantityTonnes: dec("5"), DefaultEmissionFactor: dec("2.0")},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.CbamStatusDraft, d.Status)
	assert.False(t, d.PricePinned)
	assert.True(t, d.TotalEmissions.Equal(decimal.NewFromInt(30)), d.TotalEmissions.String())
	assert.True(t, d.CertificateCostEstimate.Equal(decimal.NewFromInt(2400)), d.CertificateCostEstimate.String())
}

func TestCreateDeclaration_FactorVerificadoGana(t *testing.T) {
	uc := newUseCase()
	d, err := uc.CreateDeclaration(context.Background(), orgA, dto.CreateCbamDeclarationRequest{
		Period:                   "2026-Q3",
		CertificatePricePerTonne: dec("100"),
		Items: []dto.CbamItemRequest{
			{CNCode: "72081000", QuantityTonnes: dec("10"), VerifiedEmissionFactor: dec("1.5")},
		},
	})
	require.NoError(t, err)
	require.Len(t, d.Items, 1)

	assert.True(t, d.PricePinned)
	assert.True(t, d.Items[0].DefaultEmissionFactor.Equal(decimal.RequireFromString("2.1")))
	assert.True(t, d.Items[0].CalculatedEmissions.Equal(decimal.NewFromInt(15)))
	assert.True(t, d.CertificateCostEstimate.Equal(decimal.NewFromInt(1500)))
}

func TestCreateDeclaration_FactorIncorporadoAluminio(t *testing.T) {
	uc := newUseCase()
	d, err := uc.CreateDeclaration(context.Background(), orgA, dto.CreateCbamDeclarationRequest{
		Period: "2026-Q3",
		Items:  []dto.CbamItemRequest{{CNCode: "76011000", QuantityTonnes: dec("1")}},
	})
	require.NoError(t, err)
	assert.True(t, d.Items[0].DefaultEmissionFactor.Equal(decimal.RequireFromString("16.0")))
	assert.True(t, d.TotalEmissions.Equal(decimal.NewFromInt(16)))
}

func TestCreateDeclaration_FactorDeLaOrganizacionYProveedor(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()

	_, err := uc.CreateFactor(ctx, orgA, dto.CreateCbamFactorRequest{CNPrefix: "7208", EmissionFactor: decimal.RequireFromString("3.0")})
	require.NoError(t, err)
	_, err = uc.CreateFactor(ctx, orgA, dto.CreateCbamFactorRequest{CNPrefix: "7208", EmissionFactor: decimal.RequireFromString("3.1")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	own, err := uc.CreateSupplier(ctx, orgA, dto.CreateCbamSupplierRequest{Name: "Aceros A", DefaultEmissionFactor: dec("4.0")})
	require.NoError(t, err)
	foreign, err := uc.CreateSupplier(ctx, orgB, dto.CreateCbamSupplierRequest{Name: "Aceros B", DefaultEmissionFactor: dec("9.0")})
	require.NoError(t, err)

	d, err := uc.CreateDeclaration(ctx, orgA, dto.CreateCbamDeclarationRequest{
		Period: "2026-Q3",
		Items: []dto.CbamItemRequest{
			{CNCode: "72081000", QuantityTonnes: dec("1")},
			{CNCode: "99990000", QuantityTonnes: dec("1"), SupplierID: own.ID},
			{CNCode: "99990000", QuantityTonnes: dec("1"), SupplierID: foreign.ID, SupplierName: "Texto libre"},
		},
	})
	require.NoError(t, err)
	require.Len(t, d.Items, 3)

	assert.True(t, d.Items[0].DefaultEmissionFactor.Equal(decimal.RequireFromString("3.0")), "tabla de la organización antes que la incorporada")
	assert.True(t, d.Items[1].DefaultEmissionFactor.Equal(decimal.RequireFromString("4.0")), "proveedor cuando la cascada da cero")
	assert.Equal(t, "Aceros A", d.Items[1].SupplierName)
	assert.True(t, d.Items[2].DefaultEmissionFactor.IsZero(), "proveedor ajeno se ignora")
	assert.Empty(t, d.Items[2].SupplierID)
	assert.Equal(t, "Texto libre", d.Items[2].SupplierName)
}

func TestCreateDeclaration_Validacion(t *testing.T) {
	uc := newUseCase()
	_, err := uc.CreateDeclaration(context.Background(), orgA, dto.CreateCbamDeclarationRequest{
		Period: "",
		Items: []dto.CbamItemRequest{
			{CNCode: "72", QuantityTonnes: dec("-1")},
			{CNCode: "72081000", VerifiedEmissionFactor: dec("101")},
		},
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.GreaterOrEqual(t, len(verr.Fields), 3)

	_, err = uc.CreateDeclaration(context.Background(), orgA, dto.CreateCbamDeclarationRequest{
		Period: "2026-Q3", CertificatePricePerTonne: dec("-5"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestDeclaracion_AislamientoEstadoYRecalculo(t *testing.T) {
	ctx := context.Background()
	uc := newUseCase()
	d, err := uc.CreateDeclaration(ctx, orgA, dto.CreateCbamDeclarationRequest{
		Period: "2026-Q3",
		Items:  []dto.CbamItemRequest{{CNCode: "72081000", QuantityTonnes: dec("10")}},
	})
	require.NoError(t, err)

	_, err = uc.GetDeclaration(ctx, orgB, d.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.UpdateStatus(ctx, orgB, d.ID, dto.UpdateCbamStatusRequest{Status: "submitted"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateStatus(ctx, orgA, d.ID, dto.UpdateCbamStatusRequest{Status: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	updated, err := uc.UpdateStatus(ctx, orgA, d.ID, dto.UpdateCbamStatusRequest{Status: "submitted"})
	require.NoError(t, err)
	assert.Equal(t, "submitted", updated.Status)

	again, err := uc.Recompute(ctx, orgA, d.ID)
	require.NoError(t, err)
	assert.True(t, again.TotalEmissions.Equal(d.TotalEmissions))
	assert.True(t, again.CertificateCostEstimate.Equal(d.CertificateCostEstimate))

	list, err := uc.ListDeclarations(ctx, orgA)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	listB, err := uc.ListDeclarations(ctx, orgB)
	require.NoError(t, err)
	assert.Empty(t, listB)
}

func TestBuiltinFactors_Ordenados(t *testing.T) {
	factors := newUseCase().BuiltinFactors()
	require.NotEmpty(t, factors)
	for i := 1; i < len(factors); i++ {
		assert.Less(t, factors[i-1].CNPrefix, factors[i].CNPrefix)
	}
	assert.Equal(t, "builtin", factors[0].Source)
}

func TestCreateFactor_Validacion(t *testing.T) {
	uc := newUseCase()
	_, err := uc.CreateFactor(context.Background(), orgA, dto.CreateCbamFactorRequest{CNPrefix: "72", EmissionFactor: decimal.NewFromInt(1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.CreateFactor(context.Background(), orgA, dto.CreateCbamFactorRequest{CNPrefix: "7208", EmissionFactor: decimal.NewFromInt(500)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
