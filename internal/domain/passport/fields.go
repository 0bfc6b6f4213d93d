// Package passport reglas de negocio del pasaporte de batería: campos obligatorios,
// fusión plantilla + overrides, rangos numéricos y actualización parcial.
package passport

import (
	"strings"
	"time"

	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// Fields conjunto de atributos candidatos de un pasaporte. nil = ausente.
// Se usa como payload de creación, como overrides de instanciación y como patch parcial.
type Fields struct {
	ManufacturerName        *string
	ManufacturerAddress     *string
	BatteryModel            *string
	BatteryCategory         *string
	ManufacturingDate       *time.Time
	ManufacturingPlace      *string
	SerialNumber            *string
	GTIN                    *string
	BatteryStatus           *string
	BatteryWeightKg         *float64
	CarbonFootprintKgPerKwh *float64
	CarbonFootprintClass    *string
	RecycledContentCobalt   *float64
	RecycledContentLead     *float64
	RecycledContentLithium  *float64
	RecycledContentNickel   *float64
	RatedCapacityKwh        *float64
	ExpectedLifetimeCycles  *int
	ExpectedLifetimeYears   *int
	HazardousSubstances     *string
	PerformanceClass        *string
	AdditionalPublicData    entity.JSONMap
	RestrictedData          entity.JSONMap
	EndOfLife               entity.JSONMap
}

// FromTemplate valores por defecto que aporta una plantilla.
// battery_model cae al nombre de la plantilla si no tiene modelo explícito.
func FromTemplate(t *entity.ProductTemplate) Fields {
	model := t.BatteryModel
	if isBlank(model) {
		model = t.Name
	}
	return Fields{
		ManufacturerName:        optString(t.ManufacturerName),
		ManufacturerAddress:     optString(t.ManufacturerAddress),
		BatteryModel:            optString(model),
		BatteryCategory:         optString(t.BatteryCategory),
		GTIN:                    optString(t.GTIN),
		BatteryWeightKg:         t.BatteryWeightKg,
		CarbonFootprintKgPerKwh: t.CarbonFootprintKgPerKwh,
		CarbonFootprintClass:    optString(t.CarbonFootprintClass),
		RecycledContentCobalt:   t.RecycledContentCobalt,
		RecycledContentLead:     t.RecycledContentLead,
		RecycledContentLithium:  t.RecycledContentLithium,
		RecycledContentNickel:   t.RecycledContentNickel,
		RatedCapacityKwh:        t.RatedCapacityKwh,
		ExpectedLifetimeCycles:  t.ExpectedLifetimeCycles,
		ExpectedLifetimeYears:   t.ExpectedLifetimeYears,
		HazardousSubstances:     optString(t.HazardousSubstances),
		PerformanceClass:        optString(t.PerformanceClass),
		AdditionalPublicData:    t.AdditionalPublicData.Clone(),
	}
}

// Merge cada atributo toma el override si está presente y no vacío; si no, el valor por defecto.
func Merge(overrides, defaults Fields) Fields {
	return Fields{
		ManufacturerName:        pickString(overrides.ManufacturerName, defaults.ManufacturerName),
		ManufacturerAddress:     pickString(overrides.ManufacturerAddress, defaults.ManufacturerAddress),
		BatteryModel:            pickString(overrides.BatteryModel, defaults.BatteryModel),
		BatteryCategory:         pickString(overrides.BatteryCategory, defaults.BatteryCategory),
		ManufacturingDate:       pick(overrides.ManufacturingDate, defaults.ManufacturingDate),
		ManufacturingPlace:      pickString(overrides.ManufacturingPlace, defaults.ManufacturingPlace),
		SerialNumber:            pickString(overrides.SerialNumber, defaults.SerialNumber),
		GTIN:                    pickString(overrides.GTIN, defaults.GTIN),
		BatteryStatus:           pickString(overrides.BatteryStatus, defaults.BatteryStatus),
		BatteryWeightKg:         pick(overrides.BatteryWeightKg, defaults.BatteryWeightKg),
		CarbonFootprintKgPerKwh: pick(overrides.CarbonFootprintKgPerKwh, defaults.CarbonFootprintKgPerKwh),
		CarbonFootprintClass:    pickString(overrides.CarbonFootprintClass, defaults.CarbonFootprintClass),
		RecycledContentCobalt:   pick(overrides.RecycledContentCobalt, defaults.RecycledContentCobalt),
		RecycledContentLead:     pick(overrides.RecycledContentLead, defaults.RecycledContentLead),
		RecycledContentLithium:  pick(overrides.RecycledContentLithium, defaults.RecycledContentLithium),
		RecycledContentNickel:   pick(overrides.RecycledContentNickel, defaults.RecycledContentNickel),
		RatedCapacityKwh:        pick(overrides.RatedCapacityKwh, defaults.RatedCapacityKwh),
		ExpectedLifetimeCycles:  pick(overrides.ExpectedLifetimeCycles, defaults.ExpectedLifetimeCycles),
		ExpectedLifetimeYears:   pick(overrides.ExpectedLifetimeYears, defaults.ExpectedLifetimeYears),
		HazardousSubstances:     pickString(overrides.HazardousSubstances, defaults.HazardousSubstances),
		PerformanceClass:        pickString(overrides.PerformanceClass, defaults.PerformanceClass),
		AdditionalPublicData:    pickMap(overrides.AdditionalPublicData, defaults.AdditionalPublicData),
		RestrictedData:          pickMap(overrides.RestrictedData, defaults.RestrictedData),
		EndOfLife:               pickMap(overrides.EndOfLife, defaults.EndOfLife),
	}
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }

func optString(s string) *string {
	if isBlank(s) {
		return nil
	}
	return &s
}

func pickString(override, def *string) *string {
	if override != nil && !isBlank(*override) {
		return override
	}
	return def
}

func pick[T any](override, def *T) *T {
	if override != nil {
		return override
	}
	return def
}

func pickMap(override, def entity.JSONMap) entity.JSONMap {
	if len(override) > 0 {
		return override
	}
	return def
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
