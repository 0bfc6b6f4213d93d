package memory

import (
	"context"

	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var (
	_ repository.PassportRepository = (*passportRepo)(nil)
	_ repository.ArtifactRepository = (*artifactRepo)(nil)
	_ repository.AuditRepository    = (*auditRepo)(nil)
)

type passportRepo struct{ st *state }

// serialTaken unicidad global del número de serie, excluyendo el propio registro.
func (r *passportRepo) serialTaken(serial, exceptID string) bool {
	return r.st.passports.exists(func(x *entity.BatteryPassport) bool {
		return x.SerialNumber == serial && x.ID != exceptID
	})
}

func (r *passportRepo) Create(_ context.Context, p *entity.BatteryPassport) error {
	if r.serialTaken(p.SerialNumber, p.ID) {
		return domain.ErrConflict
	}
	r.st.passports.insert(*p)
	return nil
}

func (r *passportRepo) GetByID(_ context.Context, id string) (*entity.BatteryPassport, error) {
	return r.st.passports.find(func(x *entity.BatteryPassport) bool { return x.ID == id }), nil
}

func (r *passportRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.BatteryPassport, error) {
	return r.st.passports.newestFirst(func(x *entity.BatteryPassport) bool { return x.OrgID == orgID }), nil
}

func (r *passportRepo) Update(_ context.Context, p *entity.BatteryPassport) error {
	if r.serialTaken(p.SerialNumber, p.ID) {
		return domain.ErrConflict
	}
	r.st.passports.replace(func(x *entity.BatteryPassport) bool { return x.ID == p.ID }, *p)
	return nil
}

type artifactRepo struct{ st *state }

func (r *artifactRepo) Create(_ context.Context, a *entity.RestrictedArtifact) error {
	r.st.artifacts.insert(*a)
	return nil
}

func (r *artifactRepo) ListByOrg(_ context.Context, orgID string) ([]*entity.RestrictedArtifact, error) {
	return r.st.artifacts.newestFirst(func(x *entity.RestrictedArtifact) bool { return x.OrgID == orgID }), nil
}

func (r *artifactRepo) ListByPassport(_ context.Context, passportID string) ([]*entity.RestrictedArtifact, error) {
	return r.st.artifacts.newestFirst(func(x *entity.RestrictedArtifact) bool { return x.PassportID == passportID }), nil
}

type auditRepo struct{ st *state }

func (r *auditRepo) Create(_ context.Context, e *entity.AuditLog) error {
	r.st.audit.insert(*e)
	return nil
}

func (r *auditRepo) ListByOrg(_ context.Context, orgID string, limit int) ([]*entity.AuditLog, error) {
	out := r.st.audit.newestFirst(func(x *entity.AuditLog) bool { return x.OrgID == orgID })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
