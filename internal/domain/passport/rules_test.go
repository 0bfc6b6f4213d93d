package passport_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/passport"
)

func ptr[T any](v T) *T { return &v }

func evTemplate() *entity.ProductTemplate {
	return &entity.ProductTemplate{
		Name:                    "Pack EV 50",
		ManufacturerName:        "Acme Cells",
		ManufacturerAddress:     "Calle 1, Bogotá",
		BatteryCategory:         "EV",
		BatteryWeightKg:         ptr(320.0),
		RatedCapacityKwh:        ptr(50.0),
		CarbonFootprintKgPerKwh: ptr(61.5),
	}
}

func TestMerge_HeredaDeLaPlantilla(t *testing.T) {
	overrides := passport.Fields{
		SerialNumber:       ptr("SN-001"),
		ManufacturingDate:  ptr(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)),
		ManufacturingPlace: ptr("Medellín"),
		GTIN:               ptr("07701234567890"),
	}
	merged := passport.Merge(overrides, passport.FromTemplate(evTemplate()))

	p, err := passport.Build(merged)
	require.NoError(t, err)
	assert.Equal(t, 50.0, p.RatedCapacityKwh)
	assert.Equal(t, "EV", p.BatteryCategory)
	assert.Equal(t, "Pack EV 50", p.BatteryModel, "battery_model cae al nombre de la plantilla")
	assert.Equal(t, entity.BatteryStatusOriginal, p.BatteryStatus)
}

func TestMerge_OverrideVacioNoPisaElDefault(t *testing.T) {
	merged := passport.Merge(passport.Fields{ManufacturerName: ptr("  ")}, passport.FromTemplate(evTemplate()))
	assert.Equal(t, "Acme Cells", *merged.ManufacturerName)

	merged = passport.Merge(passport.Fields{ManufacturerName: ptr("Otra")}, passport.FromTemplate(evTemplate()))
	assert.Equal(t, "Otra", *merged.ManufacturerName)
}

func TestValidate_ListaTodosLosFaltantes(t *testing.T) {
	tpl := evTemplate()
	tpl.ManufacturerName = ""
	merged := passport.Merge(passport.Fields{SerialNumber: ptr("SN-2")}, passport.FromTemplate(tpl))

	_, err := passport.Build(merged)
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"manufacturer_name", "manufacturing_date", "manufacturing_place", "gtin"}, ve.Fields)
}

func TestValidate_Rangos(t *testing.T) {
	f := passport.Merge(passport.Fields{
		SerialNumber:          ptr("SN-3"),
		ManufacturingDate:     ptr(time.Now()),
		ManufacturingPlace:    ptr("x"),
		GTIN:                  ptr("1"),
		BatteryWeightKg:       ptr(-1.0),
		RecycledContentCobalt: ptr(120.0),
	}, passport.FromTemplate(evTemplate()))

	var ve *domain.ValidationError
	require.True(t, errors.As(passport.Validate(f), &ve))
	assert.Equal(t, []string{"battery_weight_kg", "recycled_content_cobalt"}, ve.Fields)
}

func TestApplyPatch_SoloCambiaLoPresente(t *testing.T) {
	base, err := passport.Build(passport.Merge(passport.Fields{
		SerialNumber:          ptr("SN-4"),
		ManufacturingDate:     ptr(time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)),
		ManufacturingPlace:    ptr("Cali"),
		GTIN:                  ptr("123"),
		RecycledContentNickel: ptr(7.0),
		HazardousSubstances:   ptr("Pb < 0.01%"),
	}, passport.FromTemplate(evTemplate())))
	require.NoError(t, err)
	base.ID = "p-1"
	base.OrgID = "org-a"
	base.ComponentSnapshot = []entity.ComponentSnapshot{{ComponentID: "c-1", Quantity: 2}}

	next, err := passport.ApplyPatch(base, passport.Fields{BatteryStatus: ptr(entity.BatteryStatusRepurposed)})
	require.NoError(t, err)

	assert.Equal(t, entity.BatteryStatusRepurposed, next.BatteryStatus)
	want := *base
	want.BatteryStatus = entity.BatteryStatusRepurposed
	assert.Equal(t, &want, next)
}

func TestApplyPatch_NoPermiteVaciarObligatorios(t *testing.T) {
	base, err := passport.Build(passport.Merge(passport.Fields{
		SerialNumber:       ptr("SN-5"),
		ManufacturingDate:  ptr(time.Now()),
		ManufacturingPlace: ptr("Cali"),
		GTIN:               ptr("123"),
	}, passport.FromTemplate(evTemplate())))
	require.NoError(t, err)

	_, err = passport.ApplyPatch(base, passport.Fields{GTIN: ptr("")})
	var ve *domain.ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, []string{"gtin"}, ve.Fields)
}

func TestSnapshot(t *testing.T) {
	links := []*entity.TemplateComponent{
		{ComponentID: "c-1", Quantity: 96, Notes: "celdas"},
		{ComponentID: "c-2", Quantity: 1},
	}
	assert.Equal(t, []entity.ComponentSnapshot{
		{ComponentID: "c-1", Quantity: 96, Notes: "celdas"},
		{ComponentID: "c-2", Quantity: 1},
	}, passport.Snapshot(links))
}
