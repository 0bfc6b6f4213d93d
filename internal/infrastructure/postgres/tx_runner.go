package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/pkg/logger"
)

var _ repository.TxRunner = (*TxRunner)(nil)

// tenantSetting variable de sesión leída por las políticas RLS (ver EnsureRLSPolicies).
const tenantSetting = "dpp.org_id"

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
	log  *logger.Logger
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool, log *logger.Logger) *TxRunner {
	return &TxRunner{pool: pool, log: log}
}

// Run inicia una transacción, aplica el hint de organización, ejecuta fn con repos atados a la tx
// y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, scope tenant.Scope, fn func(repos repository.Repos) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if !scope.IsSystem() {
		r.applyTenantHint(ctx, tx, scope.OrgID())
	}

	if err := fn(NewRepos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// applyTenantHint fija dpp.org_id como setting local a la transacción (is_local = true), así que
// desaparece en Commit/Rollback y no pasa a la siguiente petición que reutilice la conexión.
// Se ejecuta dentro de un savepoint: si falla, solo se deshace el savepoint y la transacción sigue viva.
func (r *TxRunner) applyTenantHint(ctx context.Context, tx pgx.Tx, orgID string) {
	sp, err := tx.Begin(ctx)
	if err != nil {
		r.log.Warn().Err(err).Str("org_id", orgID).Msg("postgres: no se pudo abrir savepoint para hint de organización")
		return
	}
	if _, err := sp.Exec(ctx, `SELECT set_config($1, $2, true)`, tenantSetting, orgID); err != nil {
		_ = sp.Rollback(ctx)
		r.log.Warn().Err(err).Str("org_id", orgID).Msg("postgres: hint de organización no aplicado")
		return
	}
	if err := sp.Commit(ctx); err != nil {
		r.log.Warn().Err(err).Str("org_id", orgID).Msg("postgres: hint de organización no aplicado")
	}
}

// NewRepos construye todos los repositorios sobre el mismo Querier (pool o tx).
func NewRepos(q Querier) repository.Repos {
	return repository.Repos{
		Organizations: NewOrganizationRepository(q),
		Users:         NewUserRepository(q),
		APIKeys:       NewAPIKeyRepository(q),
		Components:    NewComponentRepository(q),
		Templates:     NewTemplateRepository(q),
		Passports:     NewPassportRepository(q),
		Artifacts:     NewArtifactRepository(q),
		Audit:         NewAuditRepository(q),
		Cbam:          NewCbamRepository(q),
		Compliance:    NewComplianceRepository(q),
		Jobs:          NewJobRepository(q),
		Summary:       NewSummaryRepository(q),
	}
}
