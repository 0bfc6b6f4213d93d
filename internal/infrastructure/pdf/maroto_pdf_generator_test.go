package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/application/reports"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/infrastructure/pdf"
)

func TestGenerateCbamPDF(t *testing.T) {
	doc := reports.CbamDocument{
		Declaration: &entity.CbamDeclaration{
			ID: "d-1", Period: "2026-Q3", Status: "draft",
			CertificatePricePerTonne: decimal.NewFromInt(80),
			TotalEmissions:           decimal.NewFromInt(20),
			CertificateCostEstimate:  decimal.NewFromInt(1600),
			Items: []*entity.CbamItem{{
				CNCode:                "72081000",
				QuantityTonnes:        decimal.NewNullDecimal(decimal.NewFromInt(10)),
				DefaultEmissionFactor: decimal.NewFromInt(2),
				CalculatedEmissions:   decimal.NewFromInt(20),
			}},
		},
		OrgName:     "Acme",
		GeneratedAt: time.Now(),
	}
	out, err := pdf.NewMarotoPDFGenerator().GenerateCbamPDF(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateDopPDF(t *testing.T) {
	capacity := 50.0
	doc := reports.DopDocument{
		Template: &entity.ProductTemplate{
			ID: "t-1", Name: "Pack 50", ManufacturerName: "Acme", RatedCapacityKwh: &capacity,
		},
		Components: []reports.DopComponent{
			{Component: &entity.Component{ID: "c-1", Name: "Celda NMC"}, Quantity: 96},
			{Component: &entity.Component{ID: "c-2"}, Quantity: 1, Notes: "componente no disponible"},
		},
		OrgName:     "Acme",
		GeneratedAt: time.Now(),
	}
	out, err := pdf.NewMarotoPDFGenerator().GenerateDopPDF(doc)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
