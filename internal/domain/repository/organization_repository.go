package repository

import (
	"context"
	"time"

	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// OrganizationRepository define el puerto de persistencia para Organization (DIP).
// Get* devuelven (nil, nil) cuando no existe.
type OrganizationRepository interface {
	Create(ctx context.Context, org *entity.Organization) error
	GetByID(ctx context.Context, id string) (*entity.Organization, error)
	List(ctx context.Context) ([]*entity.Organization, error)
}

// APIKeyRepository credenciales de acceso. La búsqueda es siempre por hash, nunca por el secreto.
type APIKeyRepository interface {
	Create(ctx context.Context, key *entity.APIKey) error
	GetByID(ctx context.Context, id string) (*entity.APIKey, error)
	// GetActiveByHash devuelve la credencial no revocada con ese hash, o (nil, nil).
	GetActiveByHash(ctx context.Context, keyHash string) (*entity.APIKey, error)
	// List filtra por organización cuando orgID != "".
	List(ctx context.Context, orgID string) ([]*entity.APIKey, error)
	Revoke(ctx context.Context, id string, at time.Time) error
}
