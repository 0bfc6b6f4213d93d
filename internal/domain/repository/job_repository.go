package repository

import (
	"context"

	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// JobRepository jobs de importación y exportación.
type JobRepository interface {
	Create(ctx context.Context, job *entity.Job) error
	GetByID(ctx context.Context, id string) (*entity.Job, error)
	// GetForUpdate como GetByID pero bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Job, error)
	// ListByOrg filtra por dirección (import/export).
	ListByOrg(ctx context.Context, orgID, direction string) ([]*entity.Job, error)
	// Update persiste estado, resultado y error.
	Update(ctx context.Context, job *entity.Job) error
}
