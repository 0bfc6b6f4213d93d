package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un usuario. Email repetido en la misma organización -> domain.ErrConflict.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO users (id, org_id, email, role, created_at) VALUES ($1, $2, $3, $4, $5)`,
		u.ID, u.OrgID, u.Email, u.Role, u.CreatedAt,
	)
	return writeErr("insert user", err)
}

// GetByEmail obtiene un usuario por organización y email.
func (r *UserRepo) GetByEmail(ctx context.Context, orgID, email string) (*entity.User, error) {
	if !validID(orgID) {
		return nil, nil
	}
	var u entity.User
	err := r.q.QueryRow(ctx,
		`SELECT id, org_id, email, role, created_at FROM users WHERE org_id = $1 AND email = $2`, orgID, email,
	).Scan(&u.ID, &u.OrgID, &u.Email, &u.Role, &u.CreatedAt)
	if err != nil {
		return notFound[entity.User]("get user by email", err)
	}
	return &u, nil
}

// ListByOrg usuarios de la organización, más reciente primero.
func (r *UserRepo) ListByOrg(ctx context.Context, orgID string) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, org_id, email, role, created_at FROM users WHERE org_id = $1 ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return collect(rows, "user", func(row pgx.Rows) (*entity.User, error) {
		var u entity.User
		return &u, row.Scan(&u.ID, &u.OrgID, &u.Email, &u.Role, &u.CreatedAt)
	})
}
