// Package compliance registros de cumplimiento adyacentes: CRA, EUDR, AI Act, EPD y NIS2.
package compliance

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/passport-api/internal/application/audit"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
)

// UseCase alta y consulta de registros de cumplimiento.
type UseCase struct {
	tx repository.TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return domain.NewValidationError("campo requerido", field)
	}
	return nil
}

// ── CRA ──────────────────────────────────────────────────────────────────────

func (uc *UseCase) CreateCraProduct(ctx context.Context, scope tenant.Scope, in dto.CreateCraProductRequest) (*dto.CraProductResponse, error) {
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	p := &entity.CraProduct{
		ID:             uuid.New().String(),
		OrgID:          scope.OrgID(),
		Name:           strings.TrimSpace(in.Name),
		Classification: in.Classification,
		Version:        in.Version,
		SbomURL:        in.SbomURL,
		SupportEndDate: in.SupportEndDate.TimePtr(),
		CreatedAt:      time.Now().UTC(),
	}
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		if err := repos.Compliance.CreateCraProduct(ctx, p); err != nil {
			return err
		}
		return audit.Record(ctx, repos, scope, "cra_product.create", "cra_product", p.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return toCraResponse(p), nil
}

func (uc *UseCase) GetCraProduct(ctx context.Context, scope tenant.Scope, id string) (*dto.CraProductResponse, error) {
	var out *dto.CraProductResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		p, err := repos.Compliance.GetCraProduct(ctx, id)
		if err != nil {
			return err
		}
		if p == nil || !scope.CanSee(p.OrgID) {
			return domain.ErrNotFound
		}
		out = toCraResponse(p)
		return nil
	})
	return out, err
}

func (uc *UseCase) ListCraProducts(ctx context.Context, scope tenant.Scope) ([]dto.CraProductResponse, error) {
	var out []dto.CraProductResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		list, err := repos.Compliance.ListCraProducts(ctx, scope.OrgID())
		out = mapAll(list, toCraResponse)
		return err
	})
	return out, err
}

// ── EUDR ─────────────────────────────────────────────────────────────────────

func (uc *UseCase) CreateEudrSupplier(ctx context.Context, scope tenant.Scope, in dto.CreateEudrSupplierRequest) (*dto.EudrSupplierResponse, error) {
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	s := &entity.EudrSupplier{
		ID:             uuid.New().String(),
		OrgID:          scope.OrgID(),
		Name:           strings.TrimSpace(in.Name),
		Country:        in.Country,
		Commodity:      in.Commodity,
		GeolocationRef: in.GeolocationRef,
		RiskLevel:      in.RiskLevel,
		CreatedAt:      time.Now().UTC(),
	}
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		if err := repos.Compliance.CreateEudrSupplier(ctx, s); err != nil {
			return err
		}
		return audit.Record(ctx, repos, scope, "eudr_supplier.create", "eudr_supplier", s.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return toEudrResponse(s), nil
}

func (uc *UseCase) ListEudrSuppliers(ctx context.Context, scope tenant.Scope) ([]dto.EudrSupplierResponse, error) {
	var out []dto.EudrSupplierResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		list, err := repos.Compliance.ListEudrSuppliers(ctx, scope.OrgID())
		out = mapAll(list, toEudrResponse)
		return err
	})
	return out, err
}

// ── AI Act ───────────────────────────────────────────────────────────────────

func (uc *UseCase) CreateAiSystem(ctx context.Context, scope tenant.Scope, in dto.CreateAiSystemRequest) (*dto.AiSystemResponse, error) {
	if err := required("name", in.Name); err != nil {
		return nil, err
	}
	s := &entity.AiSystem{
		ID:        uuid.New().String(),
		OrgID:     scope.OrgID(),
		Name:      strings.TrimSpace(in.Name),
		RiskLevel: in.RiskLevel,
		Purpose:   in.Purpose,
		Provider:  in.Provider,
		CreatedAt: time.Now().UTC(),
	}
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		if err := repos.Compliance.CreateAiSystem(ctx, s); err != nil {
			return err
		}
		return audit.Record(ctx, repos, scope, "ai_system.create", "ai_system", s.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return toAiSystemResponse(s), nil
}

func (uc *UseCase) ListAiSystems(ctx context.Context, scope tenant.Scope) ([]dto.AiSystemResponse, error) {
	var out []dto.AiSystemResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		list, err := repos.Compliance.ListAiSystems(ctx, scope.OrgID())
		out = mapAll(list, toAiSystemResponse)
		return err
	})
	return out, err
}

// CreateAiIncident el sistema referenciado debe ser visible para la organización.
func (uc *UseCase) CreateAiIncident(ctx context.Context, scope tenant.Scope, in dto.CreateAiIncidentRequest) (*dto.AiIncidentResponse, error) {
	if err := required("system_id", in.SystemID); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	occurred := now
	if in.OccurredAt != nil {
		occurred = in.OccurredAt.UTC()
	}
	inc := &entity.AiIncident{
		ID:          uuid.New().String(),
		OrgID:       scope.OrgID(),
		SystemID:    in.SystemID,
		Severity:    in.Severity,
		Description: in.Description,
		OccurredAt:  occurred,
		CreatedAt:   now,
	}
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		sys, err := repos.Compliance.GetAiSystem(ctx, in.SystemID)
		if err != nil {
			return err
		}
		if sys == nil || !scope.CanSee(sys.OrgID) {
			return domain.ErrNotFound
		}
		if err := repos.Compliance.CreateAiIncident(ctx, inc); err != nil {
			return err
		}
		return audit.Record(ctx, repos, scope, "ai_incident.create", "ai_incident", inc.ID, entity.JSONMap{"system_id": inc.SystemID})
	})
	if err != nil {
		return nil, err
	}
	return toAiIncidentResponse(inc), nil
}

func (uc *UseCase) ListAiIncidents(ctx context.Context, scope tenant.Scope) ([]dto.AiIncidentResponse, error) {
	var out []dto.AiIncidentResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		list, err := repos.Compliance.ListAiIncidents(ctx, scope.OrgID())
		out = mapAll(list, toAiIncidentResponse)
		return err
	})
	return out, err
}

// ── EPD ──────────────────────────────────────────────────────────────────────

func (uc *UseCase) CreateEpdRecord(ctx context.Context, scope tenant.Scope, in dto.CreateEpdRecordRequest) (*dto.EpdRecordResponse, error) {
	if err := required("product_name", in.ProductName); err != nil {
		return nil, err
	}
	if in.GWPTotal != nil && *in.GWPTotal < 0 {
		return nil, domain.NewValidationError("valores fuera de rango", "gwp_total")
	}
	r := &entity.EpdRecord{
		ID:           uuid.New().String(),
		OrgID:        scope.OrgID(),
		ProductName:  strings.TrimSpace(in.ProductName),
		PCRReference: in.PCRReference,
		GWPTotal:     in.GWPTotal,
		ValidUntil:   in.ValidUntil.TimePtr(),
		DocumentURL:  in.DocumentURL,
		CreatedAt:    time.Now().UTC(),
	}
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		if err := repos.Compliance.CreateEpdRecord(ctx, r); err != nil {
			return err
		}
		return audit.Record(ctx, repos, scope, "epd_record.create", "epd_record", r.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return toEpdResponse(r), nil
}

func (uc *UseCase) ListEpdRecords(ctx context.Context, scope tenant.Scope) ([]dto.EpdRecordResponse, error) {
	var out []dto.EpdRecordResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		list, err := repos.Compliance.ListEpdRecords(ctx, scope.OrgID())
		out = mapAll(list, toEpdResponse)
		return err
	})
	return out, err
}

// ── NIS2 ─────────────────────────────────────────────────────────────────────

func (uc *UseCase) CreateNis2Attestation(ctx context.Context, scope tenant.Scope, in dto.CreateNis2AttestationRequest) (*dto.Nis2AttestationResponse, error) {
	if err := required("supplier_name", in.SupplierName); err != nil {
		return nil, err
	}
	a := &entity.Nis2Attestation{
		ID:           uuid.New().String(),
		OrgID:        scope.OrgID(),
		SupplierName: strings.TrimSpace(in.SupplierName),
		Status:       in.Status,
		AttestedAt:   in.AttestedAt,
		EvidenceURL:  in.EvidenceURL,
		CreatedAt:    time.Now().UTC(),
	}
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		if err := repos.Compliance.CreateNis2Attestation(ctx, a); err != nil {
			return err
		}
		return audit.Record(ctx, repos, scope, "nis2_attestation.create", "nis2_attestation", a.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return toNis2Response(a), nil
}

func (uc *UseCase) ListNis2Attestations(ctx context.Context, scope tenant.Scope) ([]dto.Nis2AttestationResponse, error) {
	var out []dto.Nis2AttestationResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		list, err := repos.Compliance.ListNis2Attestations(ctx, scope.OrgID())
		out = mapAll(list, toNis2Response)
		return err
	})
	return out, err
}

// ── Exportación combinada ────────────────────────────────────────────────────

// Bundle todos los registros de cumplimiento de la organización, leídos en una sola transacción.
func (uc *UseCase) Bundle(ctx context.Context, scope tenant.Scope) (*dto.ComplianceBundleResponse, error) {
	out := &dto.ComplianceBundleResponse{OrgID: scope.OrgID(), GeneratedAt: time.Now().UTC()}
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		org := scope.OrgID()
		cra, err := repos.Compliance.ListCraProducts(ctx, org)
		if err != nil {
			return err
		}
		eudr, err := repos.Compliance.ListEudrSuppliers(ctx, org)
		if err != nil {
			return err
		}
		systems, err := repos.Compliance.ListAiSystems(ctx, org)
		if err != nil {
			return err
		}
		incidents, err := repos.Compliance.ListAiIncidents(ctx, org)
		if err != nil {
			return err
		}
		epd, err := repos.Compliance.ListEpdRecords(ctx, org)
		if err != nil {
			return err
		}
		nis2, err := repos.Compliance.ListNis2Attestations(ctx, org)
		if err != nil {
			return err
		}
		out.CraProducts = mapAll(cra, toCraResponse)
		out.EudrSuppliers = mapAll(eudr, toEudrResponse)
		out.AiSystems = mapAll(systems, toAiSystemResponse)
		out.AiIncidents = mapAll(incidents, toAiIncidentResponse)
		out.EpdRecords = mapAll(epd, toEpdResponse)
		out.Nis2Attestations = mapAll(nis2, toNis2Response)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func mapAll[E any, R any](list []*E, fn func(*E) *R) []R {
	out := make([]R, 0, len(list))
	for _, e := range list {
		out = append(out, *fn(e))
	}
	return out
}

func toCraResponse(p *entity.CraProduct) *dto.CraProductResponse {
	return &dto.CraProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		Classification: p.Classification,
		Version:        p.Version,
		SbomURL:        p.SbomURL,
		SupportEndDate: dto.DatePtr(p.SupportEndDate),
		CreatedAt:      p.CreatedAt,
	}
}

func toEudrResponse(s *entity.EudrSupplier) *dto.EudrSupplierResponse {
	return &dto.EudrSupplierResponse{
		ID:             s.ID,
		Name:           s.Name,
		Country:        s.Country,
		Commodity:      s.Commodity,
		GeolocationRef: s.GeolocationRef,
		RiskLevel:      s.RiskLevel,
		CreatedAt:      s.CreatedAt,
	}
}

func toAiSystemResponse(s *entity.AiSystem) *dto.AiSystemResponse {
	return &dto.AiSystemResponse{ID: s.ID, Name: s.Name, RiskLevel: s.RiskLevel, Purpose: s.Purpose, Provider: s.Provider, CreatedAt: s.CreatedAt}
}

func toAiIncidentResponse(i *entity.AiIncident) *dto.AiIncidentResponse {
	return &dto.AiIncidentResponse{
		ID:          i.ID,
		SystemID:    i.SystemID,
		Severity:    i.Severity,
		Description: i.Description,
		OccurredAt:  i.OccurredAt,
		CreatedAt:   i.CreatedAt,
	}
}

func toEpdResponse(r *entity.EpdRecord) *dto.EpdRecordResponse {
	return &dto.EpdRecordResponse{
		ID:           r.ID,
		ProductName:  r.ProductName,
		PCRReference: r.PCRReference,
		GWPTotal:     r.GWPTotal,
		ValidUntil:   dto.DatePtr(r.ValidUntil),
		DocumentURL:  r.DocumentURL,
		CreatedAt:    r.CreatedAt,
	}
}

func toNis2Response(a *entity.Nis2Attestation) *dto.Nis2AttestationResponse {
	return &dto.Nis2AttestationResponse{
		ID:           a.ID,
		SupplierName: a.SupplierName,
		Status:       a.Status,
		AttestedAt:   a.AttestedAt,
		EvidenceURL:  a.EvidenceURL,
		CreatedAt:    a.CreatedAt,
	}
}
