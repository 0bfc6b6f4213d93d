package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CbamItemRequest línea de una declaración. Los factores nulos se resuelven con la cascada.
type CbamItemRequest struct {
	CNCode                 string           `json:"cn_code" validate:"required,min=4"`
	ProductDescription     string           `json:"product_description"`
	QuantityTonnes         *decimal.Decimal `json:"quantity_tonnes" swaggertype:"number"`
	DefaultEmissionFactor  *decimal.Decimal `json:"default_emission_factor" swaggertype:"number"`
	VerifiedEmissionFactor *decimal.Decimal `json:"verified_emission_factor" swaggertype:"number"`
	SupplierID             string           `json:"supplier_id"`
	SupplierName           string           `json:"supplier_name"`
	CountryOfOrigin        string           `json:"country_of_origin"`
}

// CreateCbamDeclarationRequest entrada para crear una declaración. Sin precio se captura el default del proceso.
type CreateCbamDeclarationRequest struct {
	Period                   string            `json:"period" validate:"required"`
	CertificatePricePerTonne *decimal.Decimal  `json:"certificate_price_per_tonne" swaggertype:"number"`
	Items                    []CbamItemRequest `json:"items"`
}

// UpdateCbamStatusRequest estado libre (no vacío).
type UpdateCbamStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// CbamItemResponse salida de una línea.
type CbamItemResponse struct {
	ID                     string           `json:"id"`
	CNCode                 string           `json:"cn_code"`
	ProductDescription     string           `json:"product_description"`
	QuantityTonnes         *decimal.Decimal `json:"quantity_tonnes" swaggertype:"number"`
	DefaultEmissionFactor  decimal.Decimal  `json:"default_emission_factor" swaggertype:"number"`
	VerifiedEmissionFactor *decimal.Decimal `json:"verified_emission_factor" swaggertype:"number"`
	SupplierID             string           `json:"supplier_id,omitempty"`
	SupplierName           string           `json:"supplier_name,omitempty"`
	CountryOfOrigin        string           `json:"country_of_origin"`
	CalculatedEmissions    decimal.Decimal  `json:"calculated_emissions" swaggertype:"number"`
}

// CbamDeclarationResponse salida de una declaración con sus líneas.
type CbamDeclarationResponse struct {
	ID                       string             `json:"id"`
	OrgID                    string             `json:"org_id,omitempty"`
	Period                   string             `json:"period"`
	Status                   string             `json:"status"`
	CertificatePricePerTonne decimal.Decimal    `json:"certificate_price_per_tonne" swaggertype:"number"`
	PricePinned              bool               `json:"price_pinned"`
	TotalEmissions           decimal.Decimal    `json:"total_emissions" swaggertype:"number"`
	CertificateCostEstimate  decimal.Decimal    `json:"certificate_cost_estimate" swaggertype:"number"`
	Items                    []CbamItemResponse `json:"items"`
	CreatedAt                time.Time          `json:"created_at"`
	UpdatedAt                time.Time          `json:"updated_at"`
}

// CreateCbamFactorRequest factor por defecto de la organización para un prefijo CN.
type CreateCbamFactorRequest struct {
	CNPrefix       string          `json:"cn_prefix" validate:"required,len=4"`
	EmissionFactor decimal.Decimal `json:"emission_factor" swaggertype:"number"`
	Source         string          `json:"source"`
}

// CbamFactorResponse salida de un factor. OrgID vacío = factor incorporado.
type CbamFactorResponse struct {
	ID             string          `json:"id,omitempty"`
	CNPrefix       string          `json:"cn_prefix"`
	EmissionFactor decimal.Decimal `json:"emission_factor" swaggertype:"number"`
	Source         string          `json:"source"`
	CreatedAt      *time.Time      `json:"created_at,omitempty"`
}

// CreateCbamSupplierRequest proveedor con factor por defecto opcional.
type CreateCbamSupplierRequest struct {
	Name                  string           `json:"name" validate:"required"`
	Country               string           `json:"country"`
	Contact               string           `json:"contact"`
	DefaultEmissionFactor *decimal.Decimal `json:"default_emission_factor" swaggertype:"number"`
}

// CbamSupplierResponse salida de un proveedor.
type CbamSupplierResponse struct {
	ID                    string           `json:"id"`
	Name                  string           `json:"name"`
	Country               string           `json:"country"`
	Contact               string           `json:"contact"`
	DefaultEmissionFactor *decimal.Decimal `json:"default_emission_factor" swaggertype:"number"`
	CreatedAt             time.Time        `json:"created_at"`
}
