package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// TenantSummaryResult conteos y sumas simples de una organización. Lo produce la DB; el use case lo convierte en DTO.
type TenantSummaryResult struct {
	Passports               int
	Templates               int
	Components              int
	Declarations            int
	TotalEmissions          decimal.Decimal
	CertificateCostEstimate decimal.Decimal
	FailedJobs              int
}

// SummaryRepository consultas de solo lectura para el resumen de la organización.
type SummaryRepository interface {
	TenantSummary(ctx context.Context, orgID string) (*TenantSummaryResult, error)
}
