package repository

import (
	"context"

	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByEmail(ctx context.Context, orgID, email string) (*entity.User, error)
	ListByOrg(ctx context.Context, orgID string) ([]*entity.User, error)
}
