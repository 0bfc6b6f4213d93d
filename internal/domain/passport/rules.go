package passport

import (
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// MissingRequired nombres (snake_case) de los atributos obligatorios ausentes o vacíos, en orden fijo.
func MissingRequired(f Fields) []string {
	var missing []string
	check := func(name string, ok bool) {
		if !ok {
			missing = append(missing, name)
		}
	}
	check("manufacturer_name", f.ManufacturerName != nil && !isBlank(*f.ManufacturerName))
	check("manufacturer_address", f.ManufacturerAddress != nil && !isBlank(*f.ManufacturerAddress))
	check("battery_model", f.BatteryModel != nil && !isBlank(*f.BatteryModel))
	check("battery_category", f.BatteryCategory != nil && !isBlank(*f.BatteryCategory))
	check("manufacturing_date", f.ManufacturingDate != nil && !f.ManufacturingDate.IsZero())
	check("manufacturing_place", f.ManufacturingPlace != nil && !isBlank(*f.ManufacturingPlace))
	check("serial_number", f.SerialNumber != nil && !isBlank(*f.SerialNumber))
	check("gtin", f.GTIN != nil && !isBlank(*f.GTIN))
	check("battery_weight_kg", f.BatteryWeightKg != nil)
	check("carbon_footprint_kg_per_kwh", f.CarbonFootprintKgPerKwh != nil)
	check("rated_capacity_kwh", f.RatedCapacityKwh != nil)
	return missing
}

// OutOfRange atributos numéricos presentes con valores no admitidos: pesos, capacidades y huella
// negativos, contenido reciclado fuera de [0, 100] %, vida útil negativa.
func OutOfRange(f Fields) []string {
	var bad []string
	nonNegative := func(name string, v *float64) {
		if v != nil && *v < 0 {
			bad = append(bad, name)
		}
	}
	percent := func(name string, v *float64) {
		if v != nil && (*v < 0 || *v > 100) {
			bad = append(bad, name)
		}
	}
	nonNegative("battery_weight_kg", f.BatteryWeightKg)
	nonNegative("carbon_footprint_kg_per_kwh", f.CarbonFootprintKgPerKwh)
	nonNegative("rated_capacity_kwh", f.RatedCapacityKwh)
	percent("recycled_content_cobalt", f.RecycledContentCobalt)
	percent("recycled_content_lead", f.RecycledContentLead)
	percent("recycled_content_lithium", f.RecycledContentLithium)
	percent("recycled_content_nickel", f.RecycledContentNickel)
	if f.ExpectedLifetimeCycles != nil && *f.ExpectedLifetimeCycles < 0 {
		bad = append(bad, "expected_lifetime_cycles")
	}
	if f.ExpectedLifetimeYears != nil && *f.ExpectedLifetimeYears < 0 {
		bad = append(bad, "expected_lifetime_years")
	}
	return bad
}

// Validate faltantes primero, luego rangos. Un solo error con todos los campos afectados.
func Validate(f Fields) error {
	if missing := MissingRequired(f); len(missing) > 0 {
		return domain.NewValidationError("faltan campos obligatorios del pasaporte", missing...)
	}
	if bad := OutOfRange(f); len(bad) > 0 {
		return domain.NewValidationError("valores fuera de rango", bad...)
	}
	return nil
}

// Build valida y materializa un pasaporte nuevo (sin ID, organización ni timestamps).
func Build(f Fields) (*entity.BatteryPassport, error) {
	if err := Validate(f); err != nil {
		return nil, err
	}
	status := deref(f.BatteryStatus)
	if isBlank(status) {
		status = entity.BatteryStatusOriginal
	}
	return &entity.BatteryPassport{
		ManufacturerName:        *f.ManufacturerName,
		ManufacturerAddress:     *f.ManufacturerAddress,
		BatteryModel:            *f.BatteryModel,
		BatteryCategory:         *f.BatteryCategory,
		ManufacturingDate:       *f.ManufacturingDate,
		ManufacturingPlace:      *f.ManufacturingPlace,
		SerialNumber:            *f.SerialNumber,
		GTIN:                    *f.GTIN,
		BatteryStatus:           status,
		BatteryWeightKg:         *f.BatteryWeightKg,
		CarbonFootprintKgPerKwh: *f.CarbonFootprintKgPerKwh,
		CarbonFootprintClass:    deref(f.CarbonFootprintClass),
		RecycledContentCobalt:   f.RecycledContentCobalt,
		RecycledContentLead:     f.RecycledContentLead,
		RecycledContentLithium:  f.RecycledContentLithium,
		RecycledContentNickel:   f.RecycledContentNickel,
		RatedCapacityKwh:        *f.RatedCapacityKwh,
		ExpectedLifetimeCycles:  f.ExpectedLifetimeCycles,
		ExpectedLifetimeYears:   f.ExpectedLifetimeYears,
		HazardousSubstances:     deref(f.HazardousSubstances),
		PerformanceClass:        deref(f.PerformanceClass),
		AdditionalPublicData:    f.AdditionalPublicData,
		RestrictedData:          f.RestrictedData,
		EndOfLife:               f.EndOfLife,
	}, nil
}

// ToFields vista del pasaporte persistido como conjunto de atributos presentes.
func ToFields(p *entity.BatteryPassport) Fields {
	date := p.ManufacturingDate
	weight, footprint, capacity := p.BatteryWeightKg, p.CarbonFootprintKgPerKwh, p.RatedCapacityKwh
	return Fields{
		ManufacturerName:        optString(p.ManufacturerName),
		ManufacturerAddress:     optString(p.ManufacturerAddress),
		BatteryModel:            optString(p.BatteryModel),
		BatteryCategory:         optString(p.BatteryCategory),
		ManufacturingDate:       &date,
		ManufacturingPlace:      optString(p.ManufacturingPlace),
		SerialNumber:            optString(p.SerialNumber),
		GTIN:                    optString(p.GTIN),
		BatteryStatus:           optString(p.BatteryStatus),
		BatteryWeightKg:         &weight,
		CarbonFootprintKgPerKwh: &footprint,
		CarbonFootprintClass:    optString(p.CarbonFootprintClass),
		RecycledContentCobalt:   p.RecycledContentCobalt,
		RecycledContentLead:     p.RecycledContentLead,
		RecycledContentLithium:  p.RecycledContentLithium,
		RecycledContentNickel:   p.RecycledContentNickel,
		RatedCapacityKwh:        &capacity,
		ExpectedLifetimeCycles:  p.ExpectedLifetimeCycles,
		ExpectedLifetimeYears:   p.ExpectedLifetimeYears,
		HazardousSubstances:     optString(p.HazardousSubstances),
		PerformanceClass:        optString(p.PerformanceClass),
		AdditionalPublicData:    p.AdditionalPublicData,
		RestrictedData:          p.RestrictedData,
		EndOfLife:               p.EndOfLife,
	}
}

// ApplyPatch actualización parcial: solo cambian los atributos presentes en patch (no nil).
// El resultado se revalida completo, de modo que un patch no puede vaciar un obligatorio.
// Identidad, organización, plantilla de origen y snapshot de componentes nunca cambian.
func ApplyPatch(p *entity.BatteryPassport, patch Fields) (*entity.BatteryPassport, error) {
	merged := ToFields(p)
	overlay(&merged, patch)
	next, err := Build(merged)
	if err != nil {
		return nil, err
	}
	next.ID = p.ID
	next.OrgID = p.OrgID
	next.TemplateID = p.TemplateID
	next.ComponentSnapshot = p.ComponentSnapshot
	next.CreatedAt = p.CreatedAt
	next.UpdatedAt = p.UpdatedAt
	return next, nil
}

// overlay copia en dst los atributos presentes en src. A diferencia de Merge, un string vacío
// presente sí se aplica (y la validación posterior lo rechaza si es obligatorio).
func overlay(dst *Fields, src Fields) {
	set := func(d **string, s *string) {
		if s != nil {
			*d = s
		}
	}
	setF := func(d **float64, s *float64) {
		if s != nil {
			*d = s
		}
	}
	setI := func(d **int, s *int) {
		if s != nil {
			*d = s
		}
	}
	set(&dst.ManufacturerName, src.ManufacturerName)
	set(&dst.ManufacturerAddress, src.ManufacturerAddress)
	set(&dst.BatteryModel, src.BatteryModel)
	set(&dst.BatteryCategory, src.BatteryCategory)
	if src.ManufacturingDate != nil {
		dst.ManufacturingDate = src.ManufacturingDate
	}
	set(&dst.ManufacturingPlace, src.ManufacturingPlace)
	set(&dst.SerialNumber, src.SerialNumber)
	set(&dst.GTIN, src.GTIN)
	set(&dst.BatteryStatus, src.BatteryStatus)
	setF(&dst.BatteryWeightKg, src.BatteryWeightKg)
	setF(&dst.CarbonFootprintKgPerKwh, src.CarbonFootprintKgPerKwh)
	set(&dst.CarbonFootprintClass, src.CarbonFootprintClass)
	setF(&dst.RecycledContentCobalt, src.RecycledContentCobalt)
	setF(&dst.RecycledContentLead, src.RecycledContentLead)
	setF(&dst.RecycledContentLithium, src.RecycledContentLithium)
	setF(&dst.RecycledContentNickel, src.RecycledContentNickel)
	setF(&dst.RatedCapacityKwh, src.RatedCapacityKwh)
	setI(&dst.ExpectedLifetimeCycles, src.ExpectedLifetimeCycles)
	setI(&dst.ExpectedLifetimeYears, src.ExpectedLifetimeYears)
	set(&dst.HazardousSubstances, src.HazardousSubstances)
	set(&dst.PerformanceClass, src.PerformanceClass)
	if src.AdditionalPublicData != nil {
		dst.AdditionalPublicData = src.AdditionalPublicData
	}
	if src.RestrictedData != nil {
		dst.RestrictedData = src.RestrictedData
	}
	if src.EndOfLife != nil {
		dst.EndOfLife = src.EndOfLife
	}
}

// Snapshot congela los enlaces plantilla-componente en el momento de la creación.
func Snapshot(links []*entity.TemplateComponent) []entity.ComponentSnapshot {
	out := make([]entity.ComponentSnapshot, 0, len(links))
	for _, l := range links {
		out = append(out, entity.ComponentSnapshot{ComponentID: l.ComponentID, Quantity: l.Quantity, Notes: l.Notes})
	}
	return out
}
