package repository

import (
	"context"

	"github.com/jhoicas/passport-api/internal/domain/tenant"
)

// Repos agrupa todos los repositorios atados a una misma transacción.
type Repos struct {
	Organizations OrganizationRepository
	Users         UserRepository
	APIKeys       APIKeyRepository
	Components    ComponentRepository
	Templates     TemplateRepository
	Passports     PassportRepository
	Artifacts     ArtifactRepository
	Audit         AuditRepository
	Cbam          CbamRepository
	Compliance    ComplianceRepository
	Jobs          JobRepository
	Summary       SummaryRepository
}

// TxRunner ejecuta fn dentro de una transacción con repositorios atados a ella.
// Commit si fn retorna nil; Rollback en cualquier otro caso.
// El scope se propaga como hint de aislamiento al almacenamiento (best-effort, nunca falla la operación).
type TxRunner interface {
	Run(ctx context.Context, scope tenant.Scope, fn func(r Repos) error) error
}
