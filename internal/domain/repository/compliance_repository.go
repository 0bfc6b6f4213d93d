package repository

import (
	"context"

	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// ComplianceRepository registros de CRA, EUDR, AI Act, EPD y NIS2.
type ComplianceRepository interface {
	CreateCraProduct(ctx context.Context, p *entity.CraProduct) error
	GetCraProduct(ctx context.Context, id string) (*entity.CraProduct, error)
	ListCraProducts(ctx context.Context, orgID string) ([]*entity.CraProduct, error)

	CreateEudrSupplier(ctx context.Context, s *entity.EudrSupplier) error
	ListEudrSuppliers(ctx context.Context, orgID string) ([]*entity.EudrSupplier, error)

	CreateAiSystem(ctx context.Context, s *entity.AiSystem) error
	GetAiSystem(ctx context.Context, id string) (*entity.AiSystem, error)
	ListAiSystems(ctx context.Context, orgID string) ([]*entity.AiSystem, error)
	CreateAiIncident(ctx context.Context, i *entity.AiIncident) error
	ListAiIncidents(ctx context.Context, orgID string) ([]*entity.AiIncident, error)

	CreateEpdRecord(ctx context.Context, r *entity.EpdRecord) error
	ListEpdRecords(ctx context.Context, orgID string) ([]*entity.EpdRecord, error)

	CreateNis2Attestation(ctx context.Context, a *entity.Nis2Attestation) error
	ListNis2Attestations(ctx context.Context, orgID string) ([]*entity.Nis2Attestation, error)
}
