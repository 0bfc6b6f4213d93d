package cbam_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/passport-api/internal/domain/cbam"
	"github.com/jhoicas/passport-api/internal/domain/entity"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func nd(s string) decimal.NullDecimal { return decimal.NewNullDecimal(dec(s)) }

func TestCNPrefix(t *testing.T) {
	assert.Equal(t, "7601", cbam.CNPrefix("76011000"))
	assert.Equal(t, "7208", cbam.CNPrefix(" 7208 "))
	assert.Equal(t, "72", cbam.CNPrefix("72"))
}

func TestResolveDefaultFactor_Cascada(t *testing.T) {
	tests := []struct {
		name string
		cn   string
		src  cbam.FactorSources
		want string
	}{
		{name: "tabla incorporada aluminio", cn: "76011000", want: "16"},
		{name: "sin ninguna fuente", cn: "99999999", want: "0"},
		{name: "tabla de la organización gana a la incorporada", cn: "76011000", src: cbam.FactorSources{Tenant: nd("12.5")}, want: "12.5"},
		{name: "pinned gana a la tabla de la organización", cn: "76011000", src: cbam.FactorSources{Pinned: nd("3"), Tenant: nd("12.5")}, want: "3"},
		{name: "proveedor no pisa un factor no nulo", cn: "7208", src: cbam.FactorSources{Supplier: nd("9")}, want: "2.1"},
		{name: "proveedor como último recurso", cn: "99999999", src: cbam.FactorSources{Supplier: nd("9")}, want: "9"},
		{name: "proveedor aplica si la organización fija cero", cn: "7208", src: cbam.FactorSources{Tenant: nd("0"), Supplier: nd("4")}, want: "4"},
		{name: "proveedor aplica si el caller fija cero", cn: "7208", src: cbam.FactorSources{Pinned: nd("0"), Supplier: nd("4")}, want: "4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cbam.ResolveDefaultFactor(tt.cn, tt.src)
			assert.True(t, dec(tt.want).Equal(got), "want %s got %s", tt.want, got)
		})
	}
}

func TestCalculateEmissions_VerificadoSiempreGana(t *testing.T) {
	item := &entity.CbamItem{
		CNCode:                 "76011000",
		QuantityTonnes:         nd("10"),
		DefaultEmissionFactor:  dec("16"),
		VerifiedEmissionFactor: nd("1.5"),
	}
	assert.True(t, dec("15").Equal(cbam.CalculateEmissions(item)))

	item.VerifiedEmissionFactor = nd("0")
	assert.True(t, cbam.CalculateEmissions(item).IsZero(), "un verificado en cero también gana")
}

func TestCalculateEmissions_FaltantesCuentanComoCero(t *testing.T) {
	assert.True(t, cbam.CalculateEmissions(&entity.CbamItem{DefaultEmissionFactor: dec("2")}).IsZero())
	assert.True(t, cbam.CalculateEmissions(&entity.CbamItem{QuantityTonnes: nd("5")}).IsZero())
}

func TestRecalculate_TotalesYCosto(t *testing.T) {
	d := &entity.CbamDeclaration{
		CertificatePricePerTonne: dec("80"),
		Items: []*entity.CbamItem{
			{QuantityTonnes: nd("10"), DefaultEmissionFactor: dec("2.0")},
			{QuantityTonnes: nd("5"), DefaultEmissionFactor: dec("2.0")},
		},
	}
	cbam.Recalculate(d)

	assert.True(t, dec("20").Equal(d.Items[0].CalculatedEmissions))
	assert.True(t, dec("10").Equal(d.Items[1].CalculatedEmissions))
	assert.True(t, dec("30").Equal(d.TotalEmissions))
	assert.True(t, dec("2400").Equal(d.CertificateCostEstimate))
}

func TestValidateItem(t *testing.T) {
	assert.Empty(t, cbam.ValidateItem("items[0]", cbam.ItemFigures{CNCode: "7208", QuantityTonnes: nd("0"), VerifiedEmissionFactor: nd("100")}))

	bad := cbam.ValidateItem("items[1]", cbam.ItemFigures{
		CNCode:                 "72",
		QuantityTonnes:         nd("-1"),
		DefaultEmissionFactor:  nd("101"),
		VerifiedEmissionFactor: nd("-0.1"),
	})
	assert.Equal(t, []string{
		"items[1].cn_code",
		"items[1].quantity_tonnes",
		"items[1].default_emission_factor",
		"items[1].verified_emission_factor",
	}, bad)
}
