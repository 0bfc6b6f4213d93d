package entity

import "time"

// CraProduct producto con elementos digitales bajo el Cyber Resilience Act.
type CraProduct struct {
	ID             string
	OrgID          string
	Name           string
	Classification string // default, important, critical
	Version        string
	SbomURL        string
	SupportEndDate *time.Time
	CreatedAt      time.Time
}

// EudrSupplier proveedor sujeto a la regulación de deforestación (EUDR).
type EudrSupplier struct {
	ID             string
	OrgID          string
	Name           string
	Country        string
	Commodity      string
	GeolocationRef string
	RiskLevel      string
	CreatedAt      time.Time
}

// AiSystem sistema de IA inventariado bajo el AI Act.
type AiSystem struct {
	ID        string
	OrgID     string
	Name      string
	RiskLevel string
	Purpose   string
	Provider  string
	CreatedAt time.Time
}

// AiIncident incidente reportado sobre un AiSystem visible para la organización.
type AiIncident struct {
	ID          string
	OrgID       string
	SystemID    string
	Severity    string
	Description string
	OccurredAt  time.Time
	CreatedAt   time.Time
}

// EpdRecord declaración ambiental de producto.
type EpdRecord struct {
	ID           string
	OrgID        string
	ProductName  string
	PCRReference string
	GWPTotal     *float64 // kg CO2e
	ValidUntil   *time.Time
	DocumentURL  string
	CreatedAt    time.Time
}

// Nis2Attestation atestación de ciberseguridad de un proveedor (NIS2).
type Nis2Attestation struct {
	ID           string
	OrgID        string
	SupplierName string
	Status       string
	AttestedAt   *time.Time
	EvidenceURL  string
	CreatedAt    time.Time
}
