package dto

import (
	"time"

	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/passport"
)

// PassportFieldsRequest atributos de un pasaporte. Todos son opcionales en el transporte:
// en creación se exigen los obligatorios, en instanciación actúan como overrides y en PATCH
// solo cambian los presentes.
type PassportFieldsRequest struct {
	ManufacturerName        *string        `json:"manufacturer_name" mapstructure:"manufacturer_name"`
	ManufacturerAddress     *string        `json:"manufacturer_address" mapstructure:"manufacturer_address"`
	BatteryModel            *string        `json:"battery_model" mapstructure:"battery_model"`
	BatteryCategory         *string        `json:"battery_category" mapstructure:"battery_category"`
	ManufacturingDate       *Date          `json:"manufacturing_date" mapstructure:"manufacturing_date"`
	ManufacturingPlace      *string        `json:"manufacturing_place" mapstructure:"manufacturing_place"`
	SerialNumber            *string        `json:"serial_number" mapstructure:"serial_number"`
	GTIN                    *string        `json:"gtin" mapstructure:"gtin"`
	BatteryStatus           *string        `json:"battery_status" mapstructure:"battery_status"`
	BatteryWeightKg         *float64       `json:"battery_weight_kg" mapstructure:"battery_weight_kg"`
	CarbonFootprintKgPerKwh *float64       `json:"carbon_footprint_kg_per_kwh" mapstructure:"carbon_footprint_kg_per_kwh"`
	CarbonFootprintClass    *string        `json:"carbon_footprint_class" mapstructure:"carbon_footprint_class"`
	RecycledContentCobalt   *float64       `json:"recycled_content_cobalt" mapstructure:"recycled_content_cobalt"`
	RecycledContentLead     *float64       `json:"recycled_content_lead" mapstructure:"recycled_content_lead"`
	RecycledContentLithium  *float64       `json:"recycled_content_lithium" mapstructure:"recycled_content_lithium"`
	RecycledContentNickel   *float64       `json:"recycled_content_nickel" mapstructure:"recycled_content_nickel"`
	RatedCapacityKwh        *float64       `json:"rated_capacity_kwh" mapstructure:"rated_capacity_kwh"`
	ExpectedLifetimeCycles  *int           `json:"expected_lifetime_cycles" mapstructure:"expected_lifetime_cycles"`
	ExpectedLifetimeYears   *int           `json:"expected_lifetime_years" mapstructure:"expected_lifetime_years"`
	HazardousSubstances     *string        `json:"hazardous_substances" mapstructure:"hazardous_substances"`
	PerformanceClass        *string        `json:"performance_class" mapstructure:"performance_class"`
	AdditionalPublicData    entity.JSONMap `json:"additional_public_data" mapstructure:"additional_public_data"`
	RestrictedData          entity.JSONMap `json:"restricted_data" mapstructure:"restricted_data"`
	EndOfLife               entity.JSONMap `json:"end_of_life" mapstructure:"end_of_life"`
}

// ToFields convierte la petición al conjunto de atributos del dominio.
func (r PassportFieldsRequest) ToFields() passport.Fields {
	return passport.Fields{
		ManufacturerName:        r.ManufacturerName,
		ManufacturerAddress:     r.ManufacturerAddress,
		BatteryModel:            r.BatteryModel,
		BatteryCategory:         r.BatteryCategory,
		ManufacturingDate:       r.ManufacturingDate.TimePtr(),
		ManufacturingPlace:      r.ManufacturingPlace,
		SerialNumber:            r.SerialNumber,
		GTIN:                    r.GTIN,
		BatteryStatus:           r.BatteryStatus,
		BatteryWeightKg:         r.BatteryWeightKg,
		CarbonFootprintKgPerKwh: r.CarbonFootprintKgPerKwh,
		CarbonFootprintClass:    r.CarbonFootprintClass,
		RecycledContentCobalt:   r.RecycledContentCobalt,
		RecycledContentLead:     r.RecycledContentLead,
		RecycledContentLithium:  r.RecycledContentLithium,
		RecycledContentNickel:   r.RecycledContentNickel,
		RatedCapacityKwh:        r.RatedCapacityKwh,
		ExpectedLifetimeCycles:  r.ExpectedLifetimeCycles,
		ExpectedLifetimeYears:   r.ExpectedLifetimeYears,
		HazardousSubstances:     r.HazardousSubstances,
		PerformanceClass:        r.PerformanceClass,
		AdditionalPublicData:    r.AdditionalPublicData,
		RestrictedData:          r.RestrictedData,
		EndOfLife:               r.EndOfLife,
	}
}

// InstantiateRequest overrides para crear un pasaporte desde una plantilla.
type InstantiateRequest struct {
	PassportFieldsRequest
}

// PassportResponse salida completa de un pasaporte (incluye datos restringidos).
type PassportResponse struct {
	ID                      string                     `json:"id"`
	OrgID                   string                     `json:"org_id,omitempty"`
	TemplateID              string                     `json:"template_id,omitempty"`
	ManufacturerName        string                     `json:"manufacturer_name"`
	ManufacturerAddress     string                     `json:"manufacturer_address"`
	BatteryModel            string                     `json:"battery_model"`
	BatteryCategory         string                     `json:"battery_category"`
	ManufacturingDate       Date                       `json:"manufacturing_date"`
	ManufacturingPlace      string                     `json:"manufacturing_place"`
	SerialNumber            string                     `json:"serial_number"`
	GTIN                    string                     `json:"gtin"`
	BatteryStatus           string                     `json:"battery_status"`
	BatteryWeightKg         float64                    `json:"battery_weight_kg"`
	CarbonFootprintKgPerKwh float64                    `json:"carbon_footprint_kg_per_kwh"`
	CarbonFootprintClass    string                     `json:"carbon_footprint_class"`
	RecycledContentCobalt   *float64                   `json:"recycled_content_cobalt"`
	RecycledContentLead     *float64                   `json:"recycled_content_lead"`
	RecycledContentLithium  *float64                   `json:"recycled_content_lithium"`
	RecycledContentNickel   *float64                   `json:"recycled_content_nickel"`
	RatedCapacityKwh        float64                    `json:"rated_capacity_kwh"`
	ExpectedLifetimeCycles  *int                       `json:"expected_lifetime_cycles"`
	ExpectedLifetimeYears   *int                       `json:"expected_lifetime_years"`
	HazardousSubstances     string                     `json:"hazardous_substances"`
	PerformanceClass        string                     `json:"performance_class"`
	AdditionalPublicData    entity.JSONMap             `json:"additional_public_data,omitempty"`
	RestrictedData          entity.JSONMap             `json:"restricted_data,omitempty"`
	EndOfLife               entity.JSONMap             `json:"end_of_life,omitempty"`
	ComponentSnapshot       []entity.ComponentSnapshot `json:"component_snapshot,omitempty"`
	CreatedAt               time.Time                  `json:"created_at"`
	UpdatedAt               time.Time                  `json:"updated_at"`
}

// PublicPassportResponse vista pública de escaneo: sin datos restringidos ni organización.
type PublicPassportResponse struct {
	ID                      string                     `json:"id"`
	ManufacturerName        string                     `json:"manufacturer_name"`
	ManufacturerAddress     string                     `json:"manufacturer_address"`
	BatteryModel            string                     `json:"battery_model"`
	BatteryCategory         string                     `json:"battery_category"`
	ManufacturingDate       Date                       `json:"manufacturing_date"`
	ManufacturingPlace      string                     `json:"manufacturing_place"`
	SerialNumber            string                     `json:"serial_number"`
	GTIN                    string                     `json:"gtin"`
	BatteryStatus           string                     `json:"battery_status"`
	BatteryWeightKg         float64                    `json:"battery_weight_kg"`
	CarbonFootprintKgPerKwh float64                    `json:"carbon_footprint_kg_per_kwh"`
	CarbonFootprintClass    string                     `json:"carbon_footprint_class"`
	RecycledContentCobalt   *float64                   `json:"recycled_content_cobalt"`
	RecycledContentLead     *float64                   `json:"recycled_content_lead"`
	RecycledContentLithium  *float64                   `json:"recycled_content_lithium"`
	RecycledContentNickel   *float64                   `json:"recycled_content_nickel"`
	RatedCapacityKwh        float64                    `json:"rated_capacity_kwh"`
	ExpectedLifetimeCycles  *int                       `json:"expected_lifetime_cycles"`
	ExpectedLifetimeYears   *int                       `json:"expected_lifetime_years"`
	HazardousSubstances     string                     `json:"hazardous_substances"`
	PerformanceClass        string                     `json:"performance_class"`
	AdditionalPublicData    entity.JSONMap             `json:"additional_public_data,omitempty"`
	EndOfLife               entity.JSONMap             `json:"end_of_life,omitempty"`
	ComponentSnapshot       []entity.ComponentSnapshot `json:"component_snapshot,omitempty"`
	PublicURL               string                     `json:"public_url"`
}
