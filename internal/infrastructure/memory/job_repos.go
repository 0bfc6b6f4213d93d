package memory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var (
	_ repository.JobRepository     = (*jobRepo)(nil)
	_ repository.SummaryRepository = (*summaryRepo)(nil)
)

type jobRepo struct{ st *state }

func (r *jobRepo) Create(_ context.Context, j *entity.Job) error {
	r.st.jobs.insert(*j)
	return nil
}

func (r *jobRepo) GetByID(_ context.Context, id string) (*entity.Job, error) {
	return r.st.jobs.find(func(x *entity.Job) bool { return x.ID == id }), nil
}

// GetForUpdate no necesita bloqueo: Store.Run ya serializa las transacciones.
func (r *jobRepo) GetForUpdate(ctx context.Context, id string) (*entity.Job, error) {
	return r.GetByID(ctx, id)
}

func (r *jobRepo) ListByOrg(_ context.Context, orgID, direction string) ([]*entity.Job, error) {
	return r.st.jobs.newestFirst(func(x *entity.Job) bool { return x.OrgID == orgID && x.Direction == direction }), nil
}

func (r *jobRepo) Update(_ context.Context, j *entity.Job) error {
	r.st.jobs.replace(func(x *entity.Job) bool { return x.ID == j.ID }, *j)
	return nil
}

type summaryRepo struct{ st *state }

func (r *summaryRepo) TenantSummary(_ context.Context, orgID string) (*repository.TenantSummaryResult, error) {
	res := &repository.TenantSummaryResult{
		Passports:  r.st.passports.count(func(x *entity.BatteryPassport) bool { return x.OrgID == orgID }),
		Templates:  r.st.templates.count(func(x *entity.ProductTemplate) bool { return x.OrgID == orgID }),
		Components: r.st.components.count(func(x *entity.Component) bool { return x.OrgID == orgID }),
		FailedJobs: r.st.jobs.count(func(x *entity.Job) bool { return x.OrgID == orgID && x.Status == entity.JobStatusFailed }),
	}
	res.TotalEmissions = decimal.Zero
	res.CertificateCostEstimate = decimal.Zero
	for _, d := range r.st.declarations.oldestFirst(func(x *entity.CbamDeclaration) bool { return x.OrgID == orgID }) {
		res.Declarations++
		res.TotalEmissions = res.TotalEmissions.Add(d.TotalEmissions)
		res.CertificateCostEstimate = res.CertificateCostEstimate.Add(d.CertificateCostEstimate)
	}
	return res, nil
}
