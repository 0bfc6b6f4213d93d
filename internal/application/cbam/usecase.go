// Package cbam casos de uso de declaraciones CBAM: alta con resolución de factores, consulta,
// cambio de estado, recálculo y registros de factores y proveedores de la organización.
package cbam

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/passport-api/internal/application/audit"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/domain"
	domaincbam "github.com/jhoicas/passport-api/internal/domain/cbam"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/pkg/logger"
)

// UseCase declaraciones CBAM de la organización.
type UseCase struct {
	tx           repository.TxRunner
	defaultPrice decimal.Decimal
	log          *logger.Logger
}

// NewUseCase construye el caso de uso. defaultPrice es el precio por tonelada configurado para el proceso.
func NewUseCase(tx repository.TxRunner, defaultPrice decimal.Decimal, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{tx: tx, defaultPrice: defaultPrice, log: log.Component("cbam")}
}

// DefaultPrice precio por tonelada que se captura en declaraciones sin precio propio.
func (uc *UseCase) DefaultPrice() decimal.Decimal { return uc.defaultPrice }

// ── Declaraciones ────────────────────────────────────────────────────────────

// CreateDeclaration crea la declaración en estado draft. Para cada ítem sin factor por defecto explícito
// se resuelve la cascada (tabla de la organización → tabla incorporada → proveedor si el resultado es cero).
func (uc *UseCase) CreateDeclaration(ctx context.Context, scope tenant.Scope, in dto.CreateCbamDeclarationRequest) (*dto.CbamDeclarationResponse, error) {
	if err := validateDeclaration(in); err != nil {
		return nil, err
	}
	price, pinned := uc.defaultPrice, false
	if in.CertificatePricePerTonne != nil {
		price, pinned = *in.CertificatePricePerTonne, true
	}

	now := time.Now().UTC()
	d := &entity.CbamDeclaration{
		ID:                       uuid.New().String(),
		OrgID:                    scope.OrgID(),
		Period:                   strings.TrimSpace(in.Period),
		Status:                   entity.CbamStatusDraft,
		CertificatePricePerTonne: price,
		PricePinned:              pinned,
		CreatedAt:                now,
		UpdatedAt:                now,
	}

	var out *dto.CbamDeclarationResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		for _, req := range in.Items {
			item, err := resolveItem(ctx, repos, scope, d, req)
			if err != nil {
				return err
			}
			d.Items = append(d.Items, item)
		}
		domaincbam.Recalculate(d)

		if err := repos.Cbam.CreateDeclaration(ctx, d); err != nil {
			return err
		}
		detail := entity.JSONMap{"period": d.Period, "items": len(d.Items), "total_emissions": d.TotalEmissions.String()}
		if err := audit.Record(ctx, repos, scope, "cbam.declaration.create", "cbam_declaration", d.ID, detail); err != nil {
			return err
		}
		out = ToDeclarationResponse(d)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("org_id", scope.OrgID()).Str("declaration_id", d.ID).Str("total_emissions", d.TotalEmissions.String()).Msg("declaración creada")
	return out, nil
}

// resolveItem construye el ítem con su factor por defecto resuelto y el nombre del proveedor desnormalizado.
// Un proveedor inexistente o de otra organización se ignora (no aporta factor ni nombre).
func resolveItem(ctx context.Context, repos repository.Repos, scope tenant.Scope, d *entity.CbamDeclaration, req dto.CbamItemRequest) (*entity.CbamItem, error) {
	cn := strings.TrimSpace(req.CNCode)
	var src domaincbam.FactorSources
	if req.DefaultEmissionFactor != nil {
		src.Pinned = decimal.NewNullDecimal(*req.DefaultEmissionFactor)
	} else {
		f, err := repos.Cbam.FactorByPrefix(ctx, scope.OrgID(), domaincbam.CNPrefix(cn))
		if err != nil {
			return nil, fmt.Errorf("cbam: factor de la organización: %w", err)
		}
		if f != nil {
			src.Tenant = decimal.NewNullDecimal(f.EmissionFactor)
		}
	}

	supplierID, supplierName := "", strings.TrimSpace(req.SupplierName)
	if req.SupplierID != "" {
		s, err := repos.Cbam.GetSupplier(ctx, req.SupplierID)
		if err != nil {
			return nil, fmt.Errorf("cbam: proveedor: %w", err)
		}
		if s != nil && s.OrgID != "" && s.OrgID == scope.OrgID() {
			supplierID, supplierName = s.ID, s.Name
			src.Supplier = s.DefaultEmissionFactor
		}
	}

	return &entity.CbamItem{
		ID:                     uuid.New().String(),
		OrgID:                  scope.OrgID(),
		DeclarationID:          d.ID,
		CNCode:                 cn,
		ProductDescription:     req.ProductDescription,
		QuantityTonnes:         nullable(req.QuantityTonnes),
		DefaultEmissionFactor:  domaincbam.ResolveDefaultFactor(cn, src),
		VerifiedEmissionFactor: nullable(req.VerifiedEmissionFactor),
		SupplierID:             supplierID,
		SupplierName:           supplierName,
		CountryOfOrigin:        req.CountryOfOrigin,
		CreatedAt:              d.CreatedAt,
	}, nil
}

// GetDeclaration declaración visible con sus ítems.
func (uc *UseCase) GetDeclaration(ctx context.Context, scope tenant.Scope, id string) (*dto.CbamDeclarationResponse, error) {
	var out *dto.CbamDeclarationResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		d, err := VisibleDeclaration(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		out = ToDeclarationResponse(d)
		return nil
	})
	return out, err
}

// ListDeclarations declaraciones de la organización con sus ítems, de la más reciente a la más antigua.
func (uc *UseCase) ListDeclarations(ctx context.Context, scope tenant.Scope) ([]dto.CbamDeclarationResponse, error) {
	var out []dto.CbamDeclarationResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		list, err := repos.Cbam.ListDeclarations(ctx, scope.OrgID())
		if err != nil {
			return err
		}
		out = make([]dto.CbamDeclarationResponse, 0, len(list))
		for _, d := range list {
			out = append(out, *ToDeclarationResponse(d))
		}
		return nil
	})
	return out, err
}

// UpdateStatus mueve la declaración a cualquier estado no vacío. No hay máquina de estados.
func (uc *UseCase) UpdateStatus(ctx context.Context, scope tenant.Scope, id string, in dto.UpdateCbamStatusRequest) (*dto.CbamDeclarationResponse, error) {
	status := strings.TrimSpace(in.Status)
	if status == "" {
		return nil, domain.NewValidationError("estado requerido", "status")
	}
	var out *dto.CbamDeclarationResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		d, err := VisibleDeclaration(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		previous := d.Status
		d.Status = status
		d.UpdatedAt = time.Now().UTC()
		if err := repos.Cbam.UpdateDeclaration(ctx, d); err != nil {
			return err
		}
		detail := entity.JSONMap{"from": previous, "to": status}
		if err := audit.Record(ctx, repos, scope, "cbam.declaration.status", "cbam_declaration", d.ID, detail); err != nil {
			return err
		}
		out = ToDeclarationResponse(d)
		return nil
	})
	return out, err
}

// Recompute recalcula las emisiones de los ítems guardados con su factor almacenado, refresca el precio
// con el default actual solo si no estaba fijado y vuelve a sumar los totales.
func (uc *UseCase) Recompute(ctx context.Context, scope tenant.Scope, id string) (*dto.CbamDeclarationResponse, error) {
	var out *dto.CbamDeclarationResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		d, err := VisibleDeclaration(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		if !d.PricePinned {
			d.CertificatePricePerTonne = uc.defaultPrice
		}
		domaincbam.Recalculate(d)
		for _, item := range d.Items {
			if err := repos.Cbam.UpdateItem(ctx, item); err != nil {
				return err
			}
		}
		d.UpdatedAt = time.Now().UTC()
		if err := repos.Cbam.UpdateDeclaration(ctx, d); err != nil {
			return err
		}
		detail := entity.JSONMap{"total_emissions": d.TotalEmissions.String(), "certificate_cost_estimate": d.CertificateCostEstimate.String()}
		if err := audit.Record(ctx, repos, scope, "cbam.declaration.recompute", "cbam_declaration", d.ID, detail); err != nil {
			return err
		}
		out = ToDeclarationResponse(d)
		return nil
	})
	return out, err
}

// ── Factores ─────────────────────────────────────────────────────────────────

// CreateFactor registra el factor de la organización para un prefijo CN. Prefijo repetido → Conflict.
func (uc *UseCase) CreateFactor(ctx context.Context, scope tenant.Scope, in dto.CreateCbamFactorRequest) (*dto.CbamFactorResponse, error) {
	prefix := strings.TrimSpace(in.CNPrefix)
	var bad []string
	if len(prefix) != domaincbam.CNPrefixLen {
		bad = append(bad, "cn_prefix")
	}
	if !domaincbam.ValidFactor(in.EmissionFactor) {
		bad = append(bad, "emission_factor")
	}
	if len(bad) > 0 {
		return nil, domain.NewValidationError("factor inválido", bad...)
	}
	f := &entity.CbamFactor{
		ID:             uuid.New().String(),
		OrgID:          scope.OrgID(),
		CNPrefix:       prefix,
		EmissionFactor: in.EmissionFactor,
		Source:         in.Source,
		CreatedAt:      time.Now().UTC(),
	}
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		if err := repos.Cbam.CreateFactor(ctx, f); err != nil {
			return err
		}
		return audit.Record(ctx, repos, scope, "cbam.factor.create", "cbam_factor", f.ID, entity.JSONMap{"cn_prefix": prefix})
	})
	if err != nil {
		return nil, err
	}
	return toFactorResponse(f), nil
}

// ListFactors tabla de factores de la organización.
func (uc *UseCase) ListFactors(ctx context.Context, scope tenant.Scope) ([]dto.CbamFactorResponse, error) {
	var out []dto.CbamFactorResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		list, err := repos.Cbam.ListFactors(ctx, scope.OrgID())
		if err != nil {
			return err
		}
		out = make([]dto.CbamFactorResponse, 0, len(list))
		for _, f := range list {
			out = append(out, *toFactorResponse(f))
		}
		return nil
	})
	return out, err
}

// BuiltinFactors tabla incorporada de factores por defecto, ordenada por prefijo.
func (uc *UseCase) BuiltinFactors() []dto.CbamFactorResponse {
	prefixes := domaincbam.BuiltinPrefixes()
	out := make([]dto.CbamFactorResponse, 0, len(prefixes))
	for _, p := range prefixes {
		out = append(out, dto.CbamFactorResponse{CNPrefix: p, EmissionFactor: domaincbam.BuiltinFactor(p), Source: "builtin"})
	}
	return out
}

// ── Proveedores ──────────────────────────────────────────────────────────────

// CreateSupplier registra un proveedor con factor por defecto opcional.
func (uc *UseCase) CreateSupplier(ctx context.Context, scope tenant.Scope, in dto.CreateCbamSupplierRequest) (*dto.CbamSupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	var bad []string
	if name == "" {
		bad = append(bad, "name")
	}
	if in.DefaultEmissionFactor != nil && !domaincbam.ValidFactor(*in.DefaultEmissionFactor) {
		bad = append(bad, "default_emission_factor")
	}
	if len(bad) > 0 {
		return nil, domain.NewValidationError("proveedor inválido", bad...)
	}
	s := &entity.CbamSupplier{
		ID:                    uuid.New().String(),
		OrgID:                 scope.OrgID(),
		Name:                  name,
		Country:               in.Country,
		Contact:               in.Contact,
		DefaultEmissionFactor: nullable(in.DefaultEmissionFactor),
		CreatedAt:             time.Now().UTC(),
	}
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		if err := repos.Cbam.CreateSupplier(ctx, s); err != nil {
			return err
		}
		return audit.Record(ctx, repos, scope, "cbam.supplier.create", "cbam_supplier", s.ID, nil)
	})
	if err != nil {
		return nil, err
	}
	return toSupplierResponse(s), nil
}

// ListSuppliers proveedores de la organización.
func (uc *UseCase) ListSuppliers(ctx context.Context, scope tenant.Scope) ([]dto.CbamSupplierResponse, error) {
	var out []dto.CbamSupplierResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		list, err := repos.Cbam.ListSuppliers(ctx, scope.OrgID())
		if err != nil {
			return err
		}
		out = make([]dto.CbamSupplierResponse, 0, len(list))
		for _, s := range list {
			out = append(out, *toSupplierResponse(s))
		}
		return nil
	})
	return out, err
}

// VisibleDeclaration carga la declaración con ítems o domain.ErrNotFound si no es visible.
func VisibleDeclaration(ctx context.Context, repos repository.Repos, scope tenant.Scope, id string) (*entity.CbamDeclaration, error) {
	d, err := repos.Cbam.GetDeclaration(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil || !scope.CanSee(d.OrgID) {
		return nil, domain.ErrNotFound
	}
	return d, nil
}

func validateDeclaration(in dto.CreateCbamDeclarationRequest) error {
	var bad []string
	if strings.TrimSpace(in.Period) == "" {
		bad = append(bad, "period")
	}
	if in.CertificatePricePerTonne != nil {
		if err := domaincbam.ValidatePrice(*in.CertificatePricePerTonne); err != nil {
			bad = append(bad, "certificate_price_per_tonne")
		}
	}
	for i, item := range in.Items {
		bad = append(bad, domaincbam.ValidateItem(fmt.Sprintf("items[%d]", i), domaincbam.ItemFigures{
			CNCode:                 item.CNCode,
			QuantityTonnes:         nullable(item.QuantityTonnes),
			DefaultEmissionFactor:  nullable(item.DefaultEmissionFactor),
			VerifiedEmissionFactor: nullable(item.VerifiedEmissionFactor),
		})...)
	}
	if len(bad) > 0 {
		return domain.NewValidationError("declaración CBAM inválida", bad...)
	}
	return nil
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

func ptr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	v := n.Decimal
	return &v
}

// ToDeclarationResponse entidad → DTO con ítems.
func ToDeclarationResponse(d *entity.CbamDeclaration) *dto.CbamDeclarationResponse {
	items := make([]dto.CbamItemResponse, 0, len(d.Items))
	for _, it := range d.Items {
		items = append(items, dto.CbamItemResponse{
			ID:                     it.ID,
			CNCode:                 it.CNCode,
			ProductDescription:     it.ProductDescription,
			QuantityTonnes:         ptr(it.QuantityTonnes),
			DefaultEmissionFactor:  it.DefaultEmissionFactor,
			VerifiedEmissionFactor: ptr(it.VerifiedEmissionFactor),
			SupplierID:             it.SupplierID,
			SupplierName:           it.SupplierName,
			CountryOfOrigin:        it.CountryOfOrigin,
			CalculatedEmissions:    it.CalculatedEmissions,
		})
	}
	return &dto.CbamDeclarationResponse{
		ID:                       d.ID,
		OrgID:                    d.OrgID,
		Period:                   d.Period,
		Status:                   d.Status,
		CertificatePricePerTonne: d.CertificatePricePerTonne,
		PricePinned:              d.PricePinned,
		TotalEmissions:           d.TotalEmissions,
		CertificateCostEstimate:  d.CertificateCostEstimate,
		Items:                    items,
		CreatedAt:                d.CreatedAt,
		UpdatedAt:                d.UpdatedAt,
	}
}

func toFactorResponse(f *entity.CbamFactor) *dto.CbamFactorResponse {
	created := f.CreatedAt
	return &dto.CbamFactorResponse{ID: f.ID, CNPrefix: f.CNPrefix, EmissionFactor: f.EmissionFactor, Source: f.Source, CreatedAt: &created}
}

func toSupplierResponse(s *entity.CbamSupplier) *dto.CbamSupplierResponse {
	return &dto.CbamSupplierResponse{
		ID:                    s.ID,
		Name:                  s.Name,
		Country:               s.Country,
		Contact:               s.Contact,
		DefaultEmissionFactor: ptr(s.DefaultEmissionFactor),
		CreatedAt:             s.CreatedAt,
	}
}
