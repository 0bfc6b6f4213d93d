package export_test

import (
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/application/reports"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/infrastructure/export"
)

func declaration() *entity.CbamDeclaration {
	return &entity.CbamDeclaration{
		ID:                       "d-1",
		OrgID:                    "org-a",
		Period:                   "2026-Q3",
		Status:                   entity.CbamStatusDraft,
		CertificatePricePerTonne: decimal.NewFromInt(80),
		TotalEmissions:           decimal.NewFromInt(30),
		CertificateCostEstimate:  decimal.NewFromInt(2400),
		Items: []*entity.CbamItem{
			{
				CNCode:                "72081000",
				ProductDescription:    "Acero laminado",
				QuantityTonnes:        decimal.NewNullDecimal(decimal.NewFromInt(10)),
				DefaultEmissionFactor: decimal.NewFromInt(2),
				CalculatedEmissions:   decimal.NewFromInt(20),
				SupplierName:          "Aceros Núñez",
				CountryOfOrigin:       "TR",
			},
			{
				CNCode:                 "72089000",
				QuantityTonnes:         decimal.NewNullDecimal(decimal.NewFromInt(5)),
				DefaultEmissionFactor:  decimal.NewFromInt(3),
				VerifiedEmissionFactor: decimal.NewNullDecimal(decimal.NewFromInt(2)),
				CalculatedEmissions:    decimal.NewFromInt(10),
			},
		},
	}
}

func TestCSV_CbamEncabezadoYFilasAlineadas(t *testing.T) {
	out, err := export.NewCSVRenderer().RenderCbamCSV(reports.CbamDocument{Declaration: declaration()}, reports.EncodingUTF8)
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "cn_code", records[0][0])
	assert.Equal(t, "certificate_cost_estimate", records[0][8])
	for _, r := range records {
		assert.Len(t, r, 9)
	}
	assert.Equal(t, "1600.00", records[1][8], "costo por ítem con el precio de la declaración")
	assert.Equal(t, "", records[1][4], "sin factor verificado")
	assert.Equal(t, "2", records[2][4])
}

func TestCSV_Latin1(t *testing.T) {
	out, err := export.NewCSVRenderer().RenderCbamCSV(reports.CbamDocument{Declaration: declaration()}, reports.EncodingLatin1)
	require.NoError(t, err)
	assert.Contains(t, string(out), "Aceros N\xfa\xf1ez")
}

func TestCSV_Pasaportes(t *testing.T) {
	out, err := export.NewCSVRenderer().RenderPassportsCSV([]*entity.BatteryPassport{
		{ID: "p-1", BatteryModel: "X1", SerialNumber: "SN-1", BatteryWeightKg: 12.5, RatedCapacityKwh: 50},
	}, reports.EncodingUTF8)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,battery_model,gtin,serial_number"))
	assert.Equal(t, "p-1,X1,,SN-1,,12.5,50,0", lines[1])
}

func TestXML_Cbam(t *testing.T) {
	out, err := export.NewCbamXMLRenderer().RenderCbamXML(reports.CbamDocument{
		Declaration: declaration(), OrgName: "Acme", GeneratedAt: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	root := doc.SelectElement("QReport")
	require.NotNil(t, root)
	assert.Equal(t, "2026-Q3", root.SelectAttrValue("period", ""))
	assert.Equal(t, "Acme", root.FindElement("Declarant/Name").Text())
	assert.Len(t, root.FindElements("Goods/Good"), 2)
	assert.Equal(t, "2", root.FindElement("Goods/Good[2]/EmbeddedEmissions/AppliedFactor").Text())
	assert.Equal(t, "2400.00", root.FindElement("Totals/CertificateCostEstimate").Text())
}

func TestJSONLD_SinDatosRestringidos(t *testing.T) {
	cobalt := 12.0
	p := &entity.BatteryPassport{
		ID:                    "p-1",
		BatteryModel:          "X1",
		SerialNumber:          "SN-1",
		GTIN:                  "04012345678901",
		ManufacturerName:      "Acme",
		ManufacturingDate:     time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC),
		RecycledContentCobalt: &cobalt,
		RestrictedData:        entity.JSONMap{"secreto": "x"},
	}
	doc, err := export.NewLinkedData().PassportJSONLD(p, "https://dpp.example/p-1")
	require.NoError(t, err)

	assert.Equal(t, "Product", doc["@type"])
	assert.Equal(t, "https://dpp.example/p-1", doc["@id"])
	assert.Equal(t, "2026-01-02", doc["productionDate"])
	assert.Equal(t, "04012345678901", doc["gtin"])
	assert.Equal(t, map[string]any{"cobalt": 12.0}, doc["dpp:recycledContent"])
	for k := range doc {
		assert.NotContains(t, strings.ToLower(k), "restricted")
	}
}
