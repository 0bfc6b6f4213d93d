package memory

import (
	"context"

	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var _ repository.ComplianceRepository = (*complianceRepo)(nil)

type complianceRepo struct{ st *state }

func (r *complianceRepo) CreateCraProduct(_ context.Context, p *entity.CraProduct) error {
	r.st.craProducts.insert(*p)
	return nil
}

func (r *complianceRepo) GetCraProduct(_ context.Context, id string) (*entity.CraProduct, error) {
	return r.st.craProducts.find(func(x *entity.CraProduct) bool { return x.ID == id }), nil
}

func (r *complianceRepo) ListCraProducts(_ context.Context, orgID string) ([]*entity.CraProduct, error) {
	return r.st.craProducts.newestFirst(func(x *entity.CraProduct) bool { return x.OrgID == orgID }), nil
}

func (r *complianceRepo) CreateEudrSupplier(_ context.Context, s *entity.EudrSupplier) error {
	r.st.eudr.insert(*s)
	return nil
}

func (r *complianceRepo) ListEudrSuppliers(_ context.Context, orgID string) ([]*entity.EudrSupplier, error) {
	return r.st.eudr.newestFirst(func(x *entity.EudrSupplier) bool { return x.OrgID == orgID }), nil
}

func (r *complianceRepo) CreateAiSystem(_ context.Context, s *entity.AiSystem) error {
	r.st.aiSystems.insert(*s)
	return nil
}

func (r *complianceRepo) GetAiSystem(_ context.Context, id string) (*entity.AiSystem, error) {
	return r.st.aiSystems.find(func(x *entity.AiSystem) bool { return x.ID == id }), nil
}

func (r *complianceRepo) ListAiSystems(_ context.Context, orgID string) ([]*entity.AiSystem, error) {
	return r.st.aiSystems.newestFirst(func(x *entity.AiSystem) bool { return x.OrgID == orgID }), nil
}

func (r *complianceRepo) CreateAiIncident(_ context.Context, i *entity.AiIncident) error {
	r.st.aiIncidents.insert(*i)
	return nil
}

func (r *complianceRepo) ListAiIncidents(_ context.Context, orgID string) ([]*entity.AiIncident, error) {
	return r.st.aiIncidents.newestFirst(func(x *entity.AiIncident) bool { return x.OrgID == orgID }), nil
}

func (r *complianceRepo) CreateEpdRecord(_ context.Context, e *entity.EpdRecord) error {
	r.st.epd.insert(*e)
	return nil
}

func (r *complianceRepo) ListEpdRecords(_ context.Context, orgID string) ([]*entity.EpdRecord, error) {
	return r.st.epd.newestFirst(func(x *entity.EpdRecord) bool { return x.OrgID == orgID }), nil
}

func (r *complianceRepo) CreateNis2Attestation(_ context.Context, a *entity.Nis2Attestation) error {
	r.st.nis2.insert(*a)
	return nil
}

func (r *complianceRepo) ListNis2Attestations(_ context.Context, orgID string) ([]*entity.Nis2Attestation, error) {
	return r.st.nis2.newestFirst(func(x *entity.Nis2Attestation) bool { return x.OrgID == orgID }), nil
}
