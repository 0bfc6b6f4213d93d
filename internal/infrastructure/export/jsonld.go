package export

import (
	"github.com/jhoicas/passport-api/internal/application/reports"
	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// Vocabularios del documento JSON-LD.
const (
	contextSchemaOrg = "https://schema.org/"
	contextDPP       = "https://w3id.org/dpp/battery#"
)

// LinkedData implementa reports.PassportLinkedData con vocabulario schema.org Product
// más términos propios bajo el prefijo dpp:. Nunca incluye datos restringidos.
type LinkedData struct{}

var _ reports.PassportLinkedData = (*LinkedData)(nil)

// NewLinkedData construye el renderer.
func NewLinkedData() *LinkedData { return &LinkedData{} }

// PassportJSONLD vista pública del pasaporte.
func (l *LinkedData) PassportJSONLD(p *entity.BatteryPassport, publicURL string) (map[string]any, error) {
	doc := map[string]any{
		"@context": map[string]any{
			"@vocab": contextSchemaOrg,
			"dpp":    contextDPP,
		},
		"@type":          "Product",
		"@id":            publicURL,
		"url":            publicURL,
		"name":           p.BatteryModel,
		"model":          p.BatteryModel,
		"serialNumber":   p.SerialNumber,
		"category":       p.BatteryCategory,
		"productionDate": p.ManufacturingDate.Format("2006-01-02"),
		"manufacturer": map[string]any{
			"@type":   "Organization",
			"name":    p.ManufacturerName,
			"address": p.ManufacturerAddress,
		},
		"weight": map[string]any{
			"@type":    "QuantitativeValue",
			"value":    p.BatteryWeightKg,
			"unitCode": "KGM",
		},
		"dpp:ratedCapacity": map[string]any{
			"@type":    "QuantitativeValue",
			"value":    p.RatedCapacityKwh,
			"unitText": "kWh",
		},
		"dpp:carbonFootprint": map[string]any{
			"@type":    "QuantitativeValue",
			"value":    p.CarbonFootprintKgPerKwh,
			"unitText": "kg CO2e/kWh",
		},
		"dpp:batteryStatus":      p.BatteryStatus,
		"dpp:manufacturingPlace": p.ManufacturingPlace,
	}
	if p.GTIN != "" {
		doc["gtin"] = p.GTIN
	}
	setIfNotEmpty(doc, "dpp:carbonFootprintClass", p.CarbonFootprintClass)
	setIfNotEmpty(doc, "dpp:performanceClass", p.PerformanceClass)
	setIfNotEmpty(doc, "dpp:hazardousSubstances", p.HazardousSubstances)

	recycled := map[string]any{}
	for name, v := range map[string]*float64{
		"cobalt":  p.RecycledContentCobalt,
		"lead":    p.RecycledContentLead,
		"lithium": p.RecycledContentLithium,
		"nickel":  p.RecycledContentNickel,
	} {
		if v != nil {
			recycled[name] = *v
		}
	}
	if len(recycled) > 0 {
		doc["dpp:recycledContent"] = recycled
	}
	if p.ExpectedLifetimeCycles != nil {
		doc["dpp:expectedLifetimeCycles"] = *p.ExpectedLifetimeCycles
	}
	if p.ExpectedLifetimeYears != nil {
		doc["dpp:expectedLifetimeYears"] = *p.ExpectedLifetimeYears
	}
	if len(p.AdditionalPublicData) > 0 {
		doc["additionalProperty"] = map[string]any(p.AdditionalPublicData)
	}
	return doc, nil
}

func setIfNotEmpty(m map[string]any, key, value string) {
	if value != "" {
		m[key] = value
	}
}
