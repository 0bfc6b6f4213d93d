package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estado inicial de toda declaración CBAM. El resto del ciclo de vida es libre (texto del caller).
const CbamStatusDraft = "draft"

// CbamDeclaration agregado de un período de declaración CBAM.
// TotalEmissions = Σ CalculatedEmissions de los ítems; CertificateCostEstimate = TotalEmissions × CertificatePricePerTonne.
type CbamDeclaration struct {
	ID                       string
	OrgID                    string
	Period                   string // ej. "2026-Q3"
	Status                   string
	CertificatePricePerTonne decimal.Decimal
	// PricePinned true si el caller fijó el precio; false si se capturó el default del proceso.
	PricePinned             bool
	TotalEmissions          decimal.Decimal
	CertificateCostEstimate decimal.Decimal
	Items                   []*CbamItem
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// CbamItem línea de una declaración. Cantidades en toneladas, factores en tCO2e/t.
type CbamItem struct {
	ID                 string
	OrgID              string
	DeclarationID      string
	CNCode             string
	ProductDescription string
	QuantityTonnes     decimal.NullDecimal
	// DefaultEmissionFactor factor por defecto resuelto por la cascada (o fijado por el caller).
	DefaultEmissionFactor  decimal.Decimal
	VerifiedEmissionFactor decimal.NullDecimal
	SupplierID             string
	SupplierName           string // desnormalizado al crear
	CountryOfOrigin        string
	CalculatedEmissions    decimal.Decimal
	CreatedAt              time.Time
}

// CbamFactor factor por defecto de la organización para un prefijo CN de 4 caracteres.
type CbamFactor struct {
	ID             string
	OrgID          string
	CNPrefix       string
	EmissionFactor decimal.Decimal
	Source         string
	CreatedAt      time.Time
}

// CbamSupplier proveedor con su propio factor por defecto (opcional).
type CbamSupplier struct {
	ID                    string
	OrgID                 string
	Name                  string
	Country               string
	Contact               string
	DefaultEmissionFactor decimal.NullDecimal
	CreatedAt             time.Time
}
