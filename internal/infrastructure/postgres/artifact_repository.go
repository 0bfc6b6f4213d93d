package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var (
	_ repository.ArtifactRepository = (*ArtifactRepo)(nil)
	_ repository.AuditRepository    = (*AuditRepo)(nil)
)

// ArtifactRepo metadatos de artefactos restringidos.
type ArtifactRepo struct {
	q Querier
}

// NewArtifactRepository construye el adaptador.
func NewArtifactRepository(q Querier) *ArtifactRepo {
	return &ArtifactRepo{q: q}
}

const artifactColumns = `id, COALESCE(org_id::text, ''), passport_id, kind, title, url, storage_key, created_at`

func scanArtifact(row pgx.Rows) (*entity.RestrictedArtifact, error) {
	var a entity.RestrictedArtifact
	return &a, row.Scan(&a.ID, &a.OrgID, &a.PassportID, &a.Kind, &a.Title, &a.URL, &a.StorageKey, &a.CreatedAt)
}

// Create persiste los metadatos de un artefacto.
func (r *ArtifactRepo) Create(ctx context.Context, a *entity.RestrictedArtifact) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO restricted_artifacts (id, org_id, passport_id, kind, title, url, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, nullID(a.OrgID), a.PassportID, a.Kind, a.Title, a.URL, a.StorageKey, a.CreatedAt,
	)
	return writeErr("insert artifact", err)
}

// ListByOrg artefactos de la organización, más reciente primero.
func (r *ArtifactRepo) ListByOrg(ctx context.Context, orgID string) ([]*entity.RestrictedArtifact, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+artifactColumns+` FROM restricted_artifacts WHERE org_id = $1 ORDER BY created_at DESC, id`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list artifacts: %w", err)
	}
	return collect(rows, "artifact", scanArtifact)
}

// ListByPassport artefactos de un pasaporte, más reciente primero.
func (r *ArtifactRepo) ListByPassport(ctx context.Context, passportID string) ([]*entity.RestrictedArtifact, error) {
	if !validID(passportID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx,
		`SELECT `+artifactColumns+` FROM restricted_artifacts WHERE passport_id = $1 ORDER BY created_at DESC, id`, passportID)
	if err != nil {
		return nil, fmt.Errorf("list artifacts by passport: %w", err)
	}
	return collect(rows, "artifact", scanArtifact)
}

// AuditRepo log de auditoría append-only: no expone Update ni Delete.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador.
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create inserta una entrada.
func (r *AuditRepo) Create(ctx context.Context, e *entity.AuditLog) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO audit_logs (id, org_id, actor, action, entity_type, entity_id, detail, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, nullID(e.OrgID), e.Actor, e.Action, e.EntityType, e.EntityID, e.Detail, e.CreatedAt,
	)
	return writeErr("insert audit log", err)
}

// ListByOrg últimas entradas de la organización, más reciente primero.
func (r *AuditRepo) ListByOrg(ctx context.Context, orgID string, limit int) ([]*entity.AuditLog, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, COALESCE(org_id::text, ''), actor, action, entity_type, entity_id, detail, created_at
		FROM audit_logs WHERE org_id = $1 ORDER BY created_at DESC, id LIMIT $2`, orgID, limit)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return collect(rows, "audit log", func(row pgx.Rows) (*entity.AuditLog, error) {
		var e entity.AuditLog
		return &e, row.Scan(&e.ID, &e.OrgID, &e.Actor, &e.Action, &e.EntityType, &e.EntityID, &e.Detail, &e.CreatedAt)
	})
}
