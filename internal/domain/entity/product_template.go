package entity

import "time"

// ProductTemplate valores por defecto reutilizables para crear pasaportes.
// Los numéricos son opcionales: nil significa "sin valor por defecto".
type ProductTemplate struct {
	ID                      string
	OrgID                   string
	Name                    string
	Description             string
	ManufacturerName        string
	ManufacturerAddress     string
	BatteryModel            string
	BatteryCategory         string
	GTIN                    string
	BatteryWeightKg         *float64
	RatedCapacityKwh        *float64
	CarbonFootprintKgPerKwh *float64
	CarbonFootprintClass    string
	RecycledContentCobalt   *float64
	RecycledContentLead     *float64
	RecycledContentLithium  *float64
	RecycledContentNickel   *float64
	ExpectedLifetimeCycles  *int
	ExpectedLifetimeYears   *int
	HazardousSubstances     string
	PerformanceClass        string
	AdditionalPublicData    JSONMap
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// TemplateComponent tabla de unión plantilla ↔ componente. Plantilla, componente y enlace
// pertenecen a la misma organización (o plantilla/componente son globales).
type TemplateComponent struct {
	ID          string
	OrgID       string
	TemplateID  string
	ComponentID string
	Quantity    int
	Notes       string
	CreatedAt   time.Time
}
