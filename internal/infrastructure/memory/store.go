// Package memory backend en memoria del almacenamiento (DB_DRIVER=memory). Cada transacción trabaja
// sobre una copia del estado y la publica solo si el callback termina sin error, de modo que
// rollback y aislamiento entre peticiones se comportan como en PostgreSQL.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/pkg/logger"
)

var _ repository.TxRunner = (*Store)(nil)

type state struct {
	orgs         table[entity.Organization]
	users        table[entity.User]
	apiKeys      table[entity.APIKey]
	components   table[entity.Component]
	templates    table[entity.ProductTemplate]
	links        table[entity.TemplateComponent]
	passports    table[entity.BatteryPassport]
	artifacts    table[entity.RestrictedArtifact]
	audit        table[entity.AuditLog]
	declarations table[entity.CbamDeclaration]
	items        table[entity.CbamItem]
	factors      table[entity.CbamFactor]
	suppliers    table[entity.CbamSupplier]
	craProducts  table[entity.CraProduct]
	eudr         table[entity.EudrSupplier]
	aiSystems    table[entity.AiSystem]
	aiIncidents  table[entity.AiIncident]
	epd          table[entity.EpdRecord]
	nis2         table[entity.Nis2Attestation]
	jobs         table[entity.Job]
}

func (s *state) clone() *state {
	return &state{
		orgs:         s.orgs.clone(),
		users:        s.users.clone(),
		apiKeys:      s.apiKeys.clone(),
		components:   s.components.clone(),
		templates:    s.templates.clone(),
		links:        s.links.clone(),
		passports:    s.passports.clone(),
		artifacts:    s.artifacts.clone(),
		audit:        s.audit.clone(),
		declarations: s.declarations.clone(),
		items:        s.items.clone(),
		factors:      s.factors.clone(),
		suppliers:    s.suppliers.clone(),
		craProducts:  s.craProducts.clone(),
		eudr:         s.eudr.clone(),
		aiSystems:    s.aiSystems.clone(),
		aiIncidents:  s.aiIncidents.clone(),
		epd:          s.epd.clone(),
		nis2:         s.nis2.clone(),
		jobs:         s.jobs.clone(),
	}
}

// Store almacenamiento en memoria. Las transacciones se serializan.
type Store struct {
	mu   sync.Mutex
	data *state
	log  *logger.Logger
}

// NewStore construye un almacén vacío.
func NewStore(log *logger.Logger) *Store {
	if log == nil {
		log = logger.Nop()
	}
	return &Store{data: &state{}, log: log}
}

// Run ejecuta fn sobre una copia del estado; la copia reemplaza al estado solo si fn retorna nil.
func (s *Store) Run(ctx context.Context, scope tenant.Scope, fn func(r repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.data.clone()
	if err := fn(reposFor(work)); err != nil {
		return err
	}
	s.data = work
	s.log.Trace().Str("org_id", scope.OrgID()).Msg("memory: transacción confirmada")
	return nil
}

func reposFor(st *state) repository.Repos {
	return repository.Repos{
		Organizations: &orgRepo{st: st},
		Users:         &userRepo{st: st},
		APIKeys:       &apiKeyRepo{st: st},
		Components:    &componentRepo{st: st},
		Templates:     &templateRepo{st: st},
		Passports:     &passportRepo{st: st},
		Artifacts:     &artifactRepo{st: st},
		Audit:         &auditRepo{st: st},
		Cbam:          &cbamRepo{st: st},
		Compliance:    &complianceRepo{st: st},
		Jobs:          &jobRepo{st: st},
		Summary:       &summaryRepo{st: st},
	}
}
