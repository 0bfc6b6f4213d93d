package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var (
	_ repository.OrganizationRepository = (*OrganizationRepo)(nil)
	_ repository.APIKeyRepository       = (*APIKeyRepo)(nil)
)

// OrganizationRepo implementación del puerto OrganizationRepository sobre PostgreSQL (usable con pool o tx).
type OrganizationRepo struct {
	q Querier
}

// NewOrganizationRepository construye el adaptador de persistencia para organizaciones.
func NewOrganizationRepository(q Querier) *OrganizationRepo {
	return &OrganizationRepo{q: q}
}

// Create persiste una organización. Nombre duplicado -> domain.ErrConflict.
func (r *OrganizationRepo) Create(ctx context.Context, org *entity.Organization) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO organizations (id, name, created_at) VALUES ($1, $2, $3)`,
		org.ID, org.Name, org.CreatedAt,
	)
	return writeErr("insert organization", err)
}

// GetByID obtiene una organización por ID.
func (r *OrganizationRepo) GetByID(ctx context.Context, id string) (*entity.Organization, error) {
	if !validID(id) {
		return nil, nil
	}
	var o entity.Organization
	err := r.q.QueryRow(ctx, `SELECT id, name, created_at FROM organizations WHERE id = $1`, id).
		Scan(&o.ID, &o.Name, &o.CreatedAt)
	if err != nil {
		return notFound[entity.Organization]("get organization", err)
	}
	return &o, nil
}

// List todas las organizaciones, más reciente primero.
func (r *OrganizationRepo) List(ctx context.Context) ([]*entity.Organization, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name, created_at FROM organizations ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list organizations: %w", err)
	}
	return collect(rows, "organization", func(row pgx.Rows) (*entity.Organization, error) {
		var o entity.Organization
		return &o, row.Scan(&o.ID, &o.Name, &o.CreatedAt)
	})
}

// APIKeyRepo credenciales de acceso sobre PostgreSQL.
type APIKeyRepo struct {
	q Querier
}

// NewAPIKeyRepository construye el adaptador de persistencia para API keys.
func NewAPIKeyRepository(q Querier) *APIKeyRepo {
	return &APIKeyRepo{q: q}
}

const apiKeyColumns = `id, org_id, name, key_hash, key_prefix, created_at, revoked_at`

func scanAPIKey(row pgx.Row) (*entity.APIKey, error) {
	var k entity.APIKey
	err := row.Scan(&k.ID, &k.OrgID, &k.Name, &k.KeyHash, &k.KeyPrefix, &k.CreatedAt, &k.RevokedAt)
	return &k, err
}

// Create persiste una credencial (solo hash y prefijo).
func (r *APIKeyRepo) Create(ctx context.Context, k *entity.APIKey) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO api_keys (`+apiKeyColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		k.ID, k.OrgID, k.Name, k.KeyHash, k.KeyPrefix, k.CreatedAt, k.RevokedAt,
	)
	return writeErr("insert api key", err)
}

// GetByID obtiene una credencial por ID.
func (r *APIKeyRepo) GetByID(ctx context.Context, id string) (*entity.APIKey, error) {
	if !validID(id) {
		return nil, nil
	}
	k, err := scanAPIKey(r.q.QueryRow(ctx, `SELECT `+apiKeyColumns+` FROM api_keys WHERE id = $1`, id))
	if err != nil {
		return notFound[entity.APIKey]("get api key", err)
	}
	return k, nil
}

// GetActiveByHash busca la credencial no revocada con ese hash.
func (r *APIKeyRepo) GetActiveByHash(ctx context.Context, keyHash string) (*entity.APIKey, error) {
	k, err := scanAPIKey(r.q.QueryRow(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE key_hash = $1 AND revoked_at IS NULL`, keyHash))
	if err != nil {
		return notFound[entity.APIKey]("get api key by hash", err)
	}
	return k, nil
}

// List credenciales, opcionalmente filtradas por organización.
func (r *APIKeyRepo) List(ctx context.Context, orgID string) ([]*entity.APIKey, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+apiKeyColumns+` FROM api_keys WHERE ($1::text = '' OR org_id::text = $1) ORDER BY created_at DESC`, orgID)
	if err != nil {
		return nil, fmt.Errorf("list api keys: %w", err)
	}
	return collect(rows, "api key", func(row pgx.Rows) (*entity.APIKey, error) { return scanAPIKey(row) })
}

// Revoke fija revoked_at solo la primera vez.
func (r *APIKeyRepo) Revoke(ctx context.Context, id string, at time.Time) error {
	_, err := r.q.Exec(ctx, `UPDATE api_keys SET revoked_at = COALESCE(revoked_at, $2) WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("revoke api key: %w", err)
	}
	return nil
}
