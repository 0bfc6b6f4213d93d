// Package passport casos de uso del pasaporte de batería: alta directa, instanciación desde plantilla,
// lectura, actualización parcial y vistas públicas (JSON, JSON-LD, QR).
package passport

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/passport-api/internal/application/audit"
	"github.com/jhoicas/passport-api/internal/application/catalog"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/reports"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	domainpassport "github.com/jhoicas/passport-api/internal/domain/passport"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/pkg/logger"
)

// QRSize lado en píxeles del PNG del QR.
const QRSize = 256

// UseCase pasaportes de la organización.
type UseCase struct {
	tx            repository.TxRunner
	linked        reports.PassportLinkedData
	qr            reports.QRGenerator
	basePublicURL string
	log           *logger.Logger
}

// NewUseCase construye el caso de uso. basePublicURL es la raíz de la vista de escaneo.
func NewUseCase(tx repository.TxRunner, linked reports.PassportLinkedData, qr reports.QRGenerator, basePublicURL string, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{tx: tx, linked: linked, qr: qr, basePublicURL: basePublicURL, log: log.Component("passport")}
}

// PublicURL URL de escaneo del pasaporte.
func (uc *UseCase) PublicURL(id string) string {
	return uc.basePublicURL + "/" + id
}

// Create alta directa: todos los obligatorios deben venir en la petición.
func (uc *UseCase) Create(ctx context.Context, scope tenant.Scope, in dto.PassportFieldsRequest) (*dto.PassportResponse, error) {
	var out *dto.PassportResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		p, err := CreateTx(ctx, repos, scope, in.ToFields())
		if err != nil {
			return err
		}
		out = ToResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateTx valida y persiste un pasaporte dentro de una transacción existente (también usado por importaciones).
func CreateTx(ctx context.Context, repos repository.Repos, scope tenant.Scope, f domainpassport.Fields) (*entity.BatteryPassport, error) {
	p, err := domainpassport.Build(f)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p.ID = uuid.New().String()
	p.OrgID = scope.OrgID()
	p.CreatedAt = now
	p.UpdatedAt = now
	if err := repos.Passports.Create(ctx, p); err != nil {
		return nil, err
	}
	detail := entity.JSONMap{"serial_number": p.SerialNumber}
	if err := audit.Record(ctx, repos, scope, "passport.create", "battery_passport", p.ID, detail); err != nil {
		return nil, err
	}
	return p, nil
}

// InstantiateFromTemplate crea un pasaporte fusionando overrides > plantilla > ausente, congela los
// enlaces de componentes de la plantilla y registra el origen en el audit log.
func (uc *UseCase) InstantiateFromTemplate(ctx context.Context, scope tenant.Scope, templateID string, in dto.InstantiateRequest) (*dto.PassportResponse, error) {
	var out *dto.PassportResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		// ── 1. Plantilla visible ──
		tpl, err := catalog.VisibleTemplate(ctx, repos, scope, templateID)
		if err != nil {
			return err
		}

		// ── 2. Fusión y validación ──
		merged := domainpassport.Merge(in.ToFields(), domainpassport.FromTemplate(tpl))
		p, err := domainpassport.Build(merged)
		if err != nil {
			return err
		}

		// ── 3. Snapshot de componentes ──
		links, err := repos.Templates.ListComponents(ctx, tpl.ID)
		if err != nil {
			return fmt.Errorf("passport: enlaces de plantilla: %w", err)
		}
		p.ComponentSnapshot = domainpassport.Snapshot(links)

		// ── 4. Persistir + audit ──
		now := time.Now().UTC()
		p.ID = uuid.New().String()
		p.OrgID = scope.OrgID()
		p.TemplateID = tpl.ID
		p.CreatedAt = now
		p.UpdatedAt = now
		if err := repos.Passports.Create(ctx, p); err != nil {
			return err
		}
		detail := entity.JSONMap{"origin": "template", "template_id": tpl.ID}
		if err := audit.Record(ctx, repos, scope, "passport.create", "battery_passport", p.ID, detail); err != nil {
			return err
		}
		out = ToResponse(p)
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.Debug().Str("org_id", scope.OrgID()).Str("template_id", templateID).Str("passport_id", out.ID).Msg("pasaporte instanciado")
	return out, nil
}

// Get pasaporte visible para el scope (incluye datos restringidos).
func (uc *UseCase) Get(ctx context.Context, scope tenant.Scope, id string) (*dto.PassportResponse, error) {
	var out *dto.PassportResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		p, err := Visible(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		out = ToResponse(p)
		return nil
	})
	return out, err
}

// List pasaportes de la organización, del más reciente al más antiguo.
func (uc *UseCase) List(ctx context.Context, scope tenant.Scope) ([]dto.PassportResponse, error) {
	var out []dto.PassportResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		list, err := repos.Passports.ListByOrg(ctx, scope.OrgID())
		if err != nil {
			return err
		}
		out = make([]dto.PassportResponse, 0, len(list))
		for _, p := range list {
			out = append(out, *ToResponse(p))
		}
		return nil
	})
	return out, err
}

// Update actualización parcial: solo cambian los campos presentes. Un serial duplicado → Conflict.
func (uc *UseCase) Update(ctx context.Context, scope tenant.Scope, id string, in dto.PassportFieldsRequest) (*dto.PassportResponse, error) {
	var out *dto.PassportResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		current, err := Visible(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		next, err := domainpassport.ApplyPatch(current, in.ToFields())
		if err != nil {
			return err
		}
		next.UpdatedAt = time.Now().UTC()
		if err := repos.Passports.Update(ctx, next); err != nil {
			return err
		}
		if err := audit.Record(ctx, repos, scope, "passport.update", "battery_passport", next.ID, nil); err != nil {
			return err
		}
		out = ToResponse(next)
		return nil
	})
	return out, err
}

// Public vista de escaneo sin autenticación ni datos restringidos.
func (uc *UseCase) Public(ctx context.Context, id string) (*dto.PublicPassportResponse, error) {
	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.toPublic(p), nil
}

// JSONLD vista pública como JSON-LD.
func (uc *UseCase) JSONLD(ctx context.Context, id string) (map[string]any, error) {
	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	doc, err := uc.linked.PassportJSONLD(p, uc.PublicURL(p.ID))
	if err != nil {
		return nil, fmt.Errorf("passport: json-ld: %w", err)
	}
	return doc, nil
}

// QR PNG con la URL pública del pasaporte.
func (uc *UseCase) QR(ctx context.Context, id string) ([]byte, error) {
	p, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	png, err := uc.qr.QRPNG(uc.PublicURL(p.ID), QRSize)
	if err != nil {
		return nil, fmt.Errorf("passport: qr: %w", err)
	}
	return png, nil
}

// load lectura pública por ID: el escaneo no tiene organización.
func (uc *UseCase) load(ctx context.Context, id string) (*entity.BatteryPassport, error) {
	var p *entity.BatteryPassport
	err := uc.tx.Run(ctx, tenant.System(), func(repos repository.Repos) error {
		var err error
		p, err = repos.Passports.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		return nil
	})
	return p, err
}

// Visible carga el pasaporte o domain.ErrNotFound si no existe o es de otra organización.
func Visible(ctx context.Context, repos repository.Repos, scope tenant.Scope, id string) (*entity.BatteryPassport, error) {
	p, err := repos.Passports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil || !scope.CanSee(p.OrgID) {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

// ToResponse entidad → DTO completo.
func ToResponse(p *entity.BatteryPassport) *dto.PassportResponse {
	return &dto.PassportResponse{
		ID:                      p.ID,
		OrgID:                   p.OrgID,
		TemplateID:              p.TemplateID,
		ManufacturerName:        p.ManufacturerName,
		ManufacturerAddress:     p.ManufacturerAddress,
		BatteryModel:            p.BatteryModel,
		BatteryCategory:         p.BatteryCategory,
		ManufacturingDate:       dto.NewDate(p.ManufacturingDate),
		ManufacturingPlace:      p.ManufacturingPlace,
		SerialNumber:            p.SerialNumber,
		GTIN:                    p.GTIN,
		BatteryStatus:           p.BatteryStatus,
		BatteryWeightKg:         p.BatteryWeightKg,
		CarbonFootprintKgPerKwh: p.CarbonFootprintKgPerKwh,
		CarbonFootprintClass:    p.CarbonFootprintClass,
		RecycledContentCobalt:   p.RecycledContentCobalt,
		RecycledContentLead:     p.RecycledContentLead,
		RecycledContentLithium:  p.RecycledContentLithium,
		RecycledContentNickel:   p.RecycledContentNickel,
		RatedCapacityKwh:        p.RatedCapacityKwh,
		ExpectedLifetimeCycles:  p.ExpectedLifetimeCycles,
		ExpectedLifetimeYears:   p.ExpectedLifetimeYears,
		HazardousSubstances:     p.HazardousSubstances,
		PerformanceClass:        p.PerformanceClass,
		AdditionalPublicData:    p.AdditionalPublicData,
		RestrictedData:          p.RestrictedData,
		EndOfLife:               p.EndOfLife,
		ComponentSnapshot:       p.ComponentSnapshot,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

func (uc *UseCase) toPublic(p *entity.BatteryPassport) *dto.PublicPassportResponse {
	return &dto.PublicPassportResponse{
		ID:                      p.ID,
		ManufacturerName:        p.ManufacturerName,
		ManufacturerAddress:     p.ManufacturerAddress,
		BatteryModel:            p.BatteryModel,
		BatteryCategory:         p.BatteryCategory,
		ManufacturingDate:       dto.NewDate(p.ManufacturingDate),
		ManufacturingPlace:      p.ManufacturingPlace,
		SerialNumber:            p.SerialNumber,
		GTIN:                    p.GTIN,
		BatteryStatus:           p.BatteryStatus,
		BatteryWeightKg:         p.BatteryWeightKg,
		CarbonFootprintKgPerKwh: p.CarbonFootprintKgPerKwh,
		CarbonFootprintClass:    p.CarbonFootprintClass,
		RecycledContentCobalt:   p.RecycledContentCobalt,
		RecycledContentLead:     p.RecycledContentLead,
		RecycledContentLithium:  p.RecycledContentLithium,
		RecycledContentNickel:   p.RecycledContentNickel,
		RatedCapacityKwh:        p.RatedCapacityKwh,
		ExpectedLifetimeCycles:  p.ExpectedLifetimeCycles,
		ExpectedLifetimeYears:   p.ExpectedLifetimeYears,
		HazardousSubstances:     p.HazardousSubstances,
		PerformanceClass:        p.PerformanceClass,
		AdditionalPublicData:    p.AdditionalPublicData,
		EndOfLife:               p.EndOfLife,
		ComponentSnapshot:       p.ComponentSnapshot,
		PublicURL:               uc.PublicURL(p.ID),
	}
}
