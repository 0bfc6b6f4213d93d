// Package summary conteos y sumas simples por organización.
package summary

import (
	"context"

	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
)

// UseCase resumen de la organización.
type UseCase struct {
	tx repository.TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// Tenant resumen de la organización del scope.
func (uc *UseCase) Tenant(ctx context.Context, scope tenant.Scope) (*dto.TenantSummaryResponse, error) {
	var out *dto.TenantSummaryResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		s, err := repos.Summary.TenantSummary(ctx, scope.OrgID())
		if err != nil {
			return err
		}
		out = &dto.TenantSummaryResponse{
			OrgID:                   scope.OrgID(),
			Passports:               s.Passports,
			Templates:               s.Templates,
			Components:              s.Components,
			Declarations:            s.Declarations,
			TotalEmissions:          s.TotalEmissions,
			CertificateCostEstimate: s.CertificateCostEstimate,
			FailedJobs:              s.FailedJobs,
		}
		return nil
	})
	return out, err
}
