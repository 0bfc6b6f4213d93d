// Package jobs trabajos de importación y exportación. Se ejecutan de forma síncrona dentro de la
// petición que los dispara; el resultado o el error queda en el propio registro del job.
package jobs

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/passport-api/internal/application/audit"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/reports"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/pkg/logger"
)

// Tipos soportados.
const (
	KindComponents = "components"
	KindTemplates  = "templates"
	KindPassports  = "passports"
	KindCbam       = "cbam"
)

// UseCase crea, consulta y ejecuta jobs de una dirección (import o export).
type UseCase struct {
	tx  repository.TxRunner
	csv reports.PassportCSVRenderer
	log *logger.Logger
}

// NewUseCase construye el caso de uso. csv se usa en la exportación de pasaportes.
func NewUseCase(tx repository.TxRunner, csv reports.PassportCSVRenderer, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{tx: tx, csv: csv, log: log.Component("jobs")}
}

// Create registra un job pendiente. El tipo no se valida aquí: un tipo desconocido falla al ejecutarse.
func (uc *UseCase) Create(ctx context.Context, scope tenant.Scope, direction string, in dto.CreateJobRequest) (*dto.JobResponse, error) {
	if err := checkDirection(direction); err != nil {
		return nil, err
	}
	kind := strings.TrimSpace(in.Kind)
	if kind == "" {
		return nil, domain.NewValidationError("tipo de job requerido", "kind")
	}
	payload := in.Payload
	if payload == nil {
		payload = entity.JSONMap{}
	}
	now := time.Now().UTC()
	job := &entity.Job{
		ID:        uuid.New().String(),
		OrgID:     scope.OrgID(),
		Direction: direction,
		Kind:      kind,
		Status:    entity.JobStatusPending,
		Payload:   payload,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		if err := repos.Jobs.Create(ctx, job); err != nil {
			return err
		}
		return audit.Record(ctx, repos, scope, "job.create", direction+"_job", job.ID, entity.JSONMap{"kind": kind})
	})
	if err != nil {
		return nil, err
	}
	return toResponse(job), nil
}

// Get job visible de esa dirección.
func (uc *UseCase) Get(ctx context.Context, scope tenant.Scope, direction, id string) (*dto.JobResponse, error) {
	job, err := uc.load(ctx, scope, direction, id)
	if err != nil {
		return nil, err
	}
	return toResponse(job), nil
}

// List jobs de la organización en esa dirección, del más reciente al más antiguo.
func (uc *UseCase) List(ctx context.Context, scope tenant.Scope, direction string) ([]dto.JobResponse, error) {
	if err := checkDirection(direction); err != nil {
		return nil, err
	}
	var out []dto.JobResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		list, err := repos.Jobs.ListByOrg(ctx, scope.OrgID(), direction)
		if err != nil {
			return err
		}
		out = make([]dto.JobResponse, 0, len(list))
		for _, j := range list {
			out = append(out, *toResponse(j))
		}
		return nil
	})
	return out, err
}

// Run ejecuta el job si está pendiente o fallido; en cualquier otro estado devuelve el registro sin cambios.
// El estado se vuelve a leer con bloqueo dentro de la transacción de ejecución, así que dos llamadas
// simultáneas ejecutan el lote una sola vez.
// La ejecución es todo o nada en una transacción; si falla, el error se guarda en el job en una segunda
// transacción y Run no retorna error.
func (uc *UseCase) Run(ctx context.Context, scope tenant.Scope, direction, id string) (*dto.JobResponse, error) {
	job, err := uc.load(ctx, scope, direction, id)
	if err != nil {
		return nil, err
	}
	if !job.Runnable() {
		return toResponse(job), nil
	}

	var (
		settled *entity.Job
		gone    bool
	)
	runErr := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		current, err := repos.Jobs.GetForUpdate(ctx, job.ID)
		if err != nil {
			return err
		}
		if current == nil {
			gone = true
			return domain.ErrNotFound
		}
		if !current.Runnable() {
			settled = current
			return nil
		}
		job = current
		result, err := uc.execute(ctx, repos, scope, job)
		if err != nil {
			return err
		}
		job.Status = entity.JobStatusCompleted
		job.Result = result
		job.Error = ""
		job.UpdatedAt = time.Now().UTC()
		if err := repos.Jobs.Update(ctx, job); err != nil {
			return err
		}
		return audit.Record(ctx, repos, scope, "job.run", job.Direction+"_job", job.ID, entity.JSONMap{"kind": job.Kind, "status": job.Status})
	})
	if settled != nil {
		return toResponse(settled), nil
	}
	if gone {
		return nil, runErr
	}
	if runErr == nil {
		uc.log.Info().Str("org_id", scope.OrgID()).Str("job_id", job.ID).Str("kind", job.Kind).Msg("job completado")
		return toResponse(job), nil
	}

	// ── Registrar el fallo en el propio job ──
	job.Status = entity.JobStatusFailed
	job.Result = nil
	job.Error = runErr.Error()
	job.UpdatedAt = time.Now().UTC()
	err = uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		if err := repos.Jobs.Update(ctx, job); err != nil {
			return err
		}
		return audit.Record(ctx, repos, scope, "job.run", job.Direction+"_job", job.ID, entity.JSONMap{"kind": job.Kind, "status": job.Status})
	})
	if err != nil {
		uc.log.Error().Err(err).Str("job_id", job.ID).Msg("no se pudo registrar el fallo del job")
		return nil, fmt.Errorf("jobs: registrar fallo: %w", err)
	}
	uc.log.Warn().Str("org_id", scope.OrgID()).Str("job_id", job.ID).Str("kind", job.Kind).Str("error", job.Error).Msg("job fallido")
	return toResponse(job), nil
}

func (uc *UseCase) execute(ctx context.Context, repos repository.Repos, scope tenant.Scope, job *entity.Job) (entity.JSONMap, error) {
	if job.Direction == entity.JobDirectionImport {
		return runImport(ctx, repos, scope, job)
	}
	return uc.runExport(ctx, repos, scope, job)
}

func (uc *UseCase) load(ctx context.Context, scope tenant.Scope, direction, id string) (*entity.Job, error) {
	if err := checkDirection(direction); err != nil {
		return nil, err
	}
	var job *entity.Job
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		var err error
		job, err = repos.Jobs.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if job == nil || job.Direction != direction || !scope.CanSee(job.OrgID) {
			return domain.ErrNotFound
		}
		return nil
	})
	return job, err
}

func checkDirection(direction string) error {
	switch direction {
	case entity.JobDirectionImport, entity.JobDirectionExport:
		return nil
	default:
		return fmt.Errorf("%w: dirección de job %q", domain.ErrUnsupported, direction)
	}
}

func toResponse(j *entity.Job) *dto.JobResponse {
	return &dto.JobResponse{
		ID:        j.ID,
		Direction: j.Direction,
		Kind:      j.Kind,
		Status:    j.Status,
		Payload:   j.Payload,
		Result:    j.Result,
		Error:     j.Error,
		CreatedAt: j.CreatedAt,
		UpdatedAt: j.UpdatedAt,
	}
}
