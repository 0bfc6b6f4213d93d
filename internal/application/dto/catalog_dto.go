package dto

import (
	"time"

	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// CreateComponentRequest entrada para crear un componente.
type CreateComponentRequest struct {
	Name                string         `json:"name" mapstructure:"name" validate:"required"`
	Kind                string         `json:"kind" mapstructure:"kind"`
	Description         string         `json:"description" mapstructure:"description"`
	Specs               entity.JSONMap `json:"specs" mapstructure:"specs"`
	RecycledContent     entity.JSONMap `json:"recycled_content" mapstructure:"recycled_content"`
	HazardousSubstances string         `json:"hazardous_substances" mapstructure:"hazardous_substances"`
	CarbonFootprintRef  string         `json:"carbon_footprint_ref" mapstructure:"carbon_footprint_ref"`
}

// UpdateComponentRequest actualización parcial: solo los campos no nulos cambian.
type UpdateComponentRequest struct {
	Name                *string        `json:"name"`
	Kind                *string        `json:"kind"`
	Description         *string        `json:"description"`
	Specs               entity.JSONMap `json:"specs"`
	RecycledContent     entity.JSONMap `json:"recycled_content"`
	HazardousSubstances *string        `json:"hazardous_substances"`
	CarbonFootprintRef  *string        `json:"carbon_footprint_ref"`
}

// ComponentResponse salida de un componente.
type ComponentResponse struct {
	ID                  string         `json:"id"`
	OrgID               string         `json:"org_id,omitempty"`
	Name                string         `json:"name"`
	Kind                string         `json:"kind"`
	Description         string         `json:"description"`
	Specs               entity.JSONMap `json:"specs,omitempty"`
	RecycledContent     entity.JSONMap `json:"recycled_content,omitempty"`
	HazardousSubstances string         `json:"hazardous_substances"`
	CarbonFootprintRef  string         `json:"carbon_footprint_ref"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           time.Time      `json:"updated_at"`
}

// TemplateRequest entrada para crear (todos los campos) o actualizar parcialmente (solo no nulos) una plantilla.
type TemplateRequest struct {
	Name                    *string        `json:"name" mapstructure:"name"`
	Description             *string        `json:"description" mapstructure:"description"`
	ManufacturerName        *string        `json:"manufacturer_name" mapstructure:"manufacturer_name"`
	ManufacturerAddress     *string        `json:"manufacturer_address" mapstructure:"manufacturer_address"`
	BatteryModel            *string        `json:"battery_model" mapstructure:"battery_model"`
	BatteryCategory         *string        `json:"battery_category" mapstructure:"battery_category"`
	GTIN                    *string        `json:"gtin" mapstructure:"gtin"`
	BatteryWeightKg         *float64       `json:"battery_weight_kg" mapstructure:"battery_weight_kg"`
	RatedCapacityKwh        *float64       `json:"rated_capacity_kwh" mapstructure:"rated_capacity_kwh"`
	CarbonFootprintKgPerKwh *float64       `json:"carbon_footprint_kg_per_kwh" mapstructure:"carbon_footprint_kg_per_kwh"`
	CarbonFootprintClass    *string        `json:"carbon_footprint_class" mapstructure:"carbon_footprint_class"`
	RecycledContentCobalt   *float64       `json:"recycled_content_cobalt" mapstructure:"recycled_content_cobalt"`
	RecycledContentLead     *float64       `json:"recycled_content_lead" mapstructure:"recycled_content_lead"`
	RecycledContentLithium  *float64       `json:"recycled_content_lithium" mapstructure:"recycled_content_lithium"`
	RecycledContentNickel   *float64       `json:"recycled_content_nickel" mapstructure:"recycled_content_nickel"`
	ExpectedLifetimeCycles  *int           `json:"expected_lifetime_cycles" mapstructure:"expected_lifetime_cycles"`
	ExpectedLifetimeYears   *int           `json:"expected_lifetime_years" mapstructure:"expected_lifetime_years"`
	HazardousSubstances     *string        `json:"hazardous_substances" mapstructure:"hazardous_substances"`
	PerformanceClass        *string        `json:"performance_class" mapstructure:"performance_class"`
	AdditionalPublicData    entity.JSONMap `json:"additional_public_data" mapstructure:"additional_public_data"`
}

// TemplateResponse salida de una plantilla.
type TemplateResponse struct {
	ID                      string         `json:"id"`
	OrgID                   string         `json:"org_id,omitempty"`
	Name                    string         `json:"name"`
	Description             string         `json:"description"`
	ManufacturerName        string         `json:"manufacturer_name"`
	ManufacturerAddress     string         `json:"manufacturer_address"`
	BatteryModel            string         `json:"battery_model"`
	BatteryCategory         string         `json:"battery_category"`
	GTIN                    string         `json:"gtin"`
	BatteryWeightKg         *float64       `json:"battery_weight_kg"`
	RatedCapacityKwh        *float64       `json:"rated_capacity_kwh"`
	CarbonFootprintKgPerKwh *float64       `json:"carbon_footprint_kg_per_kwh"`
	CarbonFootprintClass    string         `json:"carbon_footprint_class"`
	RecycledContentCobalt   *float64       `json:"recycled_content_cobalt"`
	RecycledContentLead     *float64       `json:"recycled_content_lead"`
	RecycledContentLithium  *float64       `json:"recycled_content_lithium"`
	RecycledContentNickel   *float64       `json:"recycled_content_nickel"`
	ExpectedLifetimeCycles  *int           `json:"expected_lifetime_cycles"`
	ExpectedLifetimeYears   *int           `json:"expected_lifetime_years"`
	HazardousSubstances     string         `json:"hazardous_substances"`
	PerformanceClass        string         `json:"performance_class"`
	AdditionalPublicData    entity.JSONMap `json:"additional_public_data,omitempty"`
	CreatedAt               time.Time      `json:"created_at"`
	UpdatedAt               time.Time      `json:"updated_at"`
}

// AttachComponentRequest enlaza un componente a una plantilla. TemplateID es opcional;
// si viene debe coincidir con el de la ruta.
type AttachComponentRequest struct {
	TemplateID  string `json:"template_id"`
	ComponentID string `json:"component_id" validate:"required"`
	Quantity    int    `json:"quantity"`
	Notes       string `json:"notes"`
}

// TemplateComponentResponse salida de un enlace plantilla-componente.
type TemplateComponentResponse struct {
	ID          string    `json:"id"`
	TemplateID  string    `json:"template_id"`
	ComponentID string    `json:"component_id"`
	Quantity    int       `json:"quantity"`
	Notes       string    `json:"notes"`
	CreatedAt   time.Time `json:"created_at"`
}
