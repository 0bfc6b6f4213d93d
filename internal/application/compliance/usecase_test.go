package compliance_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/application/compliance"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/internal/infrastructure/memory"
)

var (
	orgA = tenant.New("org-a", "Acme", "k-a", "ci")
	orgB = tenant.New("org-b", "Beta", "k-b", "ci")
)

func TestCraProduct_CrearYAislar(t *testing.T) {
	ctx := context.Background()
	uc := compliance.NewUseCase(memory.NewStore(nil))

	end, err := dto.ParseDate("2031-12-31")
	require.NoError(t, err)
	p, err := uc.CreateCraProduct(ctx, orgA, dto.CreateCraProductRequest{Name: "Firmware BMS", Classification: "important", SupportEndDate: &end})
	require.NoError(t, err)
	require.NotNil(t, p.SupportEndDate)
	assert.Equal(t, "2031-12-31", p.SupportEndDate.Format(dto.DateLayout))

	got, err := uc.GetCraProduct(ctx, orgA, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Firmware BMS", got.Name)

	_, err = uc.GetCraProduct(ctx, orgB, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.CreateCraProduct(ctx, orgA, dto.CreateCraProductRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAiIncident_SistemaDebeSerVisible(t *testing.T) {
	ctx := context.Background()
	uc := compliance.NewUseCase(memory.NewStore(nil))

	sys, err := uc.CreateAiSystem(ctx, orgA, dto.CreateAiSystemRequest{Name: "Clasificador de celdas", RiskLevel: "high"})
	require.NoError(t, err)

	inc, err := uc.CreateAiIncident(ctx, orgA, dto.CreateAiIncidentRequest{SystemID: sys.ID, Severity: "minor"})
	require.NoError(t, err)
	assert.False(t, inc.OccurredAt.IsZero())

	_, err = uc.CreateAiIncident(ctx, orgB, dto.CreateAiIncidentRequest{SystemID: sys.ID})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.CreateAiIncident(ctx, orgA, dto.CreateAiIncidentRequest{SystemID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEpdRecord_GWPNoNegativo(t *testing.T) {
	uc := compliance.NewUseCase(memory.NewStore(nil))
	gwp := -1.0
	_, err := uc.CreateEpdRecord(context.Background(), orgA, dto.CreateEpdRecordRequest{ProductName: "Pack", GWPTotal: &gwp})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestBundle_SoloLaOrganizacion(t *testing.T) {
	ctx := context.Background()
	uc := compliance.NewUseCase(memory.NewStore(nil))

	_, err := uc.CreateEudrSupplier(ctx, orgA, dto.CreateEudrSupplierRequest{Name: "Caucho SA", Commodity: "rubber"})
	require.NoError(t, err)
	_, err = uc.CreateNis2Attestation(ctx, orgA, dto.CreateNis2AttestationRequest{SupplierName: "Cloud SA", Status: "attested"})
	require.NoError(t, err)
	_, err = uc.CreateEudrSupplier(ctx, orgB, dto.CreateEudrSupplierRequest{Name: "Ajeno"})
	require.NoError(t, err)

	b, err := uc.Bundle(ctx, orgA)
	require.NoError(t, err)
	assert.Equal(t, "org-a", b.OrgID)
	require.Len(t, b.EudrSuppliers, 1)
	assert.Equal(t, "Caucho SA", b.EudrSuppliers[0].Name)
	assert.Len(t, b.Nis2Attestations, 1)
	assert.Empty(t, b.CraProducts)
}
