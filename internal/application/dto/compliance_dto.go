package dto

import "time"

// ── CRA ──────────────────────────────────────────────────────────────────────

type CreateCraProductRequest struct {
	Name           string `json:"name" validate:"required"`
	Classification string `json:"classification"`
	Version        string `json:"version"`
	SbomURL        string `json:"sbom_url"`
	SupportEndDate *Date  `json:"support_end_date"`
}

type CraProductResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Classification string    `json:"classification"`
	Version        string    `json:"version"`
	SbomURL        string    `json:"sbom_url"`
	SupportEndDate *Date     `json:"support_end_date"`
	CreatedAt      time.Time `json:"created_at"`
}

// ── EUDR ─────────────────────────────────────────────────────────────────────

type CreateEudrSupplierRequest struct {
	Name           string `json:"name" validate:"required"`
	Country        string `json:"country"`
	Commodity      string `json:"commodity"`
	GeolocationRef string `json:"geolocation_ref"`
	RiskLevel      string `json:"risk_level"`
}

type EudrSupplierResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Country        string    `json:"country"`
	Commodity      string    `json:"commodity"`
	GeolocationRef string    `json:"geolocation_ref"`
	RiskLevel      string    `json:"risk_level"`
	CreatedAt      time.Time `json:"created_at"`
}

// ── AI Act ───────────────────────────────────────────────────────────────────

type CreateAiSystemRequest struct {
	Name      string `json:"name" validate:"required"`
	RiskLevel string `json:"risk_level"`
	Purpose   string `json:"purpose"`
	Provider  string `json:"provider"`
}

type AiSystemResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	RiskLevel string    `json:"risk_level"`
	Purpose   string    `json:"purpose"`
	Provider  string    `json:"provider"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAiIncidentRequest OccurredAt vacío = momento del registro.
type CreateAiIncidentRequest struct {
	SystemID    string     `json:"system_id" validate:"required"`
	Severity    string     `json:"severity"`
	Description string     `json:"description"`
	OccurredAt  *time.Time `json:"occurred_at"`
}

type AiIncidentResponse struct {
	ID          string    `json:"id"`
	SystemID    string    `json:"system_id"`
	Severity    string    `json:"severity"`
	Description string    `json:"description"`
	OccurredAt  time.Time `json:"occurred_at"`
	CreatedAt   time.Time `json:"created_at"`
}

// ── EPD ──────────────────────────────────────────────────────────────────────

type CreateEpdRecordRequest struct {
	ProductName  string   `json:"product_name" validate:"required"`
	PCRReference string   `json:"pcr_reference"`
	GWPTotal     *float64 `json:"gwp_total"`
	ValidUntil   *Date    `json:"valid_until"`
	DocumentURL  string   `json:"document_url"`
}

type EpdRecordResponse struct {
	ID           string    `json:"id"`
	ProductName  string    `json:"product_name"`
	PCRReference string    `json:"pcr_reference"`
	GWPTotal     *float64  `json:"gwp_total"`
	ValidUntil   *Date     `json:"valid_until"`
	DocumentURL  string    `json:"document_url"`
	CreatedAt    time.Time `json:"created_at"`
}

// ── NIS2 ─────────────────────────────────────────────────────────────────────

type CreateNis2AttestationRequest struct {
	SupplierName string     `json:"supplier_name" validate:"required"`
	Status       string     `json:"status"`
	AttestedAt   *time.Time `json:"attested_at"`
	EvidenceURL  string     `json:"evidence_url"`
}

type Nis2AttestationResponse struct {
	ID           string     `json:"id"`
	SupplierName string     `json:"supplier_name"`
	Status       string     `json:"status"`
	AttestedAt   *time.Time `json:"attested_at"`
	EvidenceURL  string     `json:"evidence_url"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ComplianceBundleResponse exportación combinada de todos los registros de cumplimiento de la organización.
type ComplianceBundleResponse struct {
	OrgID            string                    `json:"org_id"`
	GeneratedAt      time.Time                 `json:"generated_at"`
	CraProducts      []CraProductResponse      `json:"cra_products"`
	EudrSuppliers    []EudrSupplierResponse    `json:"eudr_suppliers"`
	AiSystems        []AiSystemResponse        `json:"ai_systems"`
	AiIncidents      []AiIncidentResponse      `json:"ai_incidents"`
	EpdRecords       []EpdRecordResponse       `json:"epd_records"`
	Nis2Attestations []Nis2AttestationResponse `json:"nis2_attestations"`
}
