package entity

import "time"

// Estados de batería (Reglamento UE 2023/1542).
const (
	BatteryStatusOriginal       = "original"
	BatteryStatusRepurposed     = "repurposed"
	BatteryStatusReused         = "reused"
	BatteryStatusRemanufactured = "remanufactured"
	BatteryStatusWaste          = "waste"
)

// ComponentSnapshot copia congelada de un enlace plantilla-componente en el momento de crear el pasaporte.
// Nunca se recalcula aunque la plantilla cambie después.
type ComponentSnapshot struct {
	ComponentID string `json:"component_id"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes,omitempty"`
}

// BatteryPassport registro de cumplimiento de una unidad física de batería.
// SerialNumber es único globalmente (entre todas las organizaciones).
type BatteryPassport struct {
	ID                      string
	OrgID                   string
	TemplateID              string // "" si no se creó desde plantilla
	ManufacturerName        string
	ManufacturerAddress     string
	BatteryModel            string
	BatteryCategory         string
	ManufacturingDate       time.Time
	ManufacturingPlace      string
	SerialNumber            string
	GTIN                    string
	BatteryStatus           string
	BatteryWeightKg         float64
	CarbonFootprintKgPerKwh float64
	CarbonFootprintClass    string
	RecycledContentCobalt   *float64
	RecycledContentLead     *float64
	RecycledContentLithium  *float64
	RecycledContentNickel   *float64
	RatedCapacityKwh        float64
	ExpectedLifetimeCycles  *int
	ExpectedLifetimeYears   *int
	HazardousSubstances     string
	PerformanceClass        string
	AdditionalPublicData    JSONMap
	RestrictedData          JSONMap
	EndOfLife               JSONMap
	ComponentSnapshot       []ComponentSnapshot
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
