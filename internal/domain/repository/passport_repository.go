package repository

import (
	"context"

	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// PassportRepository define el puerto de persistencia para BatteryPassport (DIP).
// Create y Update devuelven domain.ErrConflict si el número de serie ya existe (en cualquier organización).
type PassportRepository interface {
	Create(ctx context.Context, p *entity.BatteryPassport) error
	GetByID(ctx context.Context, id string) (*entity.BatteryPassport, error)
	ListByOrg(ctx context.Context, orgID string) ([]*entity.BatteryPassport, error)
	Update(ctx context.Context, p *entity.BatteryPassport) error
}

// ArtifactRepository metadatos de artefactos restringidos.
type ArtifactRepository interface {
	Create(ctx context.Context, a *entity.RestrictedArtifact) error
	ListByOrg(ctx context.Context, orgID string) ([]*entity.RestrictedArtifact, error)
	ListByPassport(ctx context.Context, passportID string) ([]*entity.RestrictedArtifact, error)
}

// AuditRepository solo inserta y lista; el log es append-only.
type AuditRepository interface {
	Create(ctx context.Context, entry *entity.AuditLog) error
	ListByOrg(ctx context.Context, orgID string, limit int) ([]*entity.AuditLog, error)
}
