package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var _ repository.SummaryRepository = (*SummaryRepo)(nil)

// SummaryRepo consultas de solo lectura para el resumen de la organización.
type SummaryRepo struct {
	q Querier
}

// NewSummaryRepository construye el adaptador.
func NewSummaryRepository(q Querier) *SummaryRepo {
	return &SummaryRepo{q: q}
}

// TenantSummary conteos y sumas simples en una sola consulta.
// Usa COALESCE para devolver cero si la organización no tiene declaraciones.
func (r *SummaryRepo) TenantSummary(ctx context.Context, orgID string) (*repository.TenantSummaryResult, error) {
	const query = `
	SELECT
	    (SELECT COUNT(*) FROM battery_passports WHERE org_id = $1)                         AS passports,
	    (SELECT COUNT(*) FROM product_templates WHERE org_id = $1)                         AS templates,
	    (SELECT COUNT(*) FROM components        WHERE org_id = $1)                         AS components,
	    (SELECT COUNT(*) FROM cbam_declarations WHERE org_id = $1)                         AS declarations,
	    (SELECT COALESCE(SUM(total_emissions), 0) FROM cbam_declarations WHERE org_id = $1) AS total_emissions,
	    (SELECT COALESCE(SUM(certificate_cost_estimate), 0) FROM cbam_declarations WHERE org_id = $1) AS certificate_cost,
	    (SELECT COUNT(*) FROM jobs WHERE org_id = $1 AND status = 'failed')                AS failed_jobs`

	var res repository.TenantSummaryResult
	err := r.q.QueryRow(ctx, query, orgID).Scan(
		&res.Passports,
		&res.Templates,
		&res.Components,
		&res.Declarations,
		&res.TotalEmissions,
		&res.CertificateCostEstimate,
		&res.FailedJobs,
	)
	if err != nil {
		return nil, fmt.Errorf("summary.TenantSummary: %w", err)
	}
	return &res, nil
}
