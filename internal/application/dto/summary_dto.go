package dto

import "github.com/shopspring/decimal"

// TenantSummaryResponse conteos y sumas simples de la organización.
type TenantSummaryResponse struct {
	OrgID                   string          `json:"org_id"`
	Passports               int             `json:"passports"`
	Templates               int             `json:"templates"`
	Components              int             `json:"components"`
	Declarations            int             `json:"cbam_declarations"`
	TotalEmissions          decimal.Decimal `json:"total_emissions" swaggertype:"number"`
	CertificateCostEstimate decimal.Decimal `json:"certificate_cost_estimate" swaggertype:"number"`
	FailedJobs              int             `json:"failed_jobs"`
}
