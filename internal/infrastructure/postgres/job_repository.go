package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
)

var _ repository.JobRepository = (*JobRepo)(nil)

// JobRepo jobs de importación y exportación (tabla única, columna direction).
type JobRepo struct {
	q Querier
}

// NewJobRepository construye el adaptador.
func NewJobRepository(q Querier) *JobRepo {
	return &JobRepo{q: q}
}

const jobColumns = `id, COALESCE(org_id::text, ''), direction, kind, status, payload, result, error, created_at, updated_at`

func scanJob(row pgx.Row) (*entity.Job, error) {
	var j entity.Job
	return &j, row.Scan(&j.ID, &j.OrgID, &j.Direction, &j.Kind, &j.Status, &j.Payload, &j.Result, &j.Error, &j.CreatedAt, &j.UpdatedAt)
}

// Create persiste un job nuevo.
func (r *JobRepo) Create(ctx context.Context, j *entity.Job) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO jobs (`+jobColumnsInsert+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		j.ID, nullID(j.OrgID), j.Direction, j.Kind, j.Status, j.Payload, j.Result, j.Error, j.CreatedAt, j.UpdatedAt,
	)
	return writeErr("insert job", err)
}

const jobColumnsInsert = `id, org_id, direction, kind, status, payload, result, error, created_at, updated_at`

// GetByID obtiene un job por ID.
func (r *JobRepo) GetByID(ctx context.Context, id string) (*entity.Job, error) {
	if !validID(id) {
		return nil, nil
	}
	j, err := scanJob(r.q.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id))
	if err != nil {
		return notFound[entity.Job]("get job", err)
	}
	return j, nil
}

// GetForUpdate obtiene el job con SELECT ... FOR UPDATE; una segunda ejecución concurrente espera
// a que la primera confirme y ve el estado resultante.
func (r *JobRepo) GetForUpdate(ctx context.Context, id string) (*entity.Job, error) {
	if !validID(id) {
		return nil, nil
	}
	j, err := scanJob(r.q.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return notFound[entity.Job]("lock job", err)
	}
	return j, nil
}

// ListByOrg jobs de la organización en una dirección, más reciente primero.
func (r *JobRepo) ListByOrg(ctx context.Context, orgID, direction string) ([]*entity.Job, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE org_id = $1 AND direction = $2 ORDER BY created_at DESC, id`, orgID, direction)
	if err != nil {
		return nil, fmt.Errorf("list jobs: %w", err)
	}
	return collect(rows, "job", func(row pgx.Rows) (*entity.Job, error) { return scanJob(row) })
}

// Update persiste estado, resultado y error.
func (r *JobRepo) Update(ctx context.Context, j *entity.Job) error {
	_, err := r.q.Exec(ctx,
		`UPDATE jobs SET status = $2, result = $3, error = $4, updated_at = $5 WHERE id = $1`,
		j.ID, j.Status, j.Result, j.Error, j.UpdatedAt,
	)
	return writeErr("update job", err)
}
