// Package catalog casos de uso del catálogo reutilizable: componentes, plantillas y sus enlaces.
package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/passport-api/internal/application/audit"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/passport"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
)

// UseCase CRUD de componentes y plantillas de la organización.
type UseCase struct {
	tx repository.TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// ── Componentes ──────────────────────────────────────────────────────────────

// CreateComponent crea un componente de la organización del scope.
func (uc *UseCase) CreateComponent(ctx context.Context, scope tenant.Scope, in dto.CreateComponentRequest) (*dto.ComponentResponse, error) {
	var out *dto.ComponentResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		c, err := CreateComponentTx(ctx, repos, scope, in)
		if err != nil {
			return err
		}
		out = ToComponentResponse(c)
		return nil
	})
	return out, err
}

// CreateComponentTx alta dentro de una transacción existente (usado también por las importaciones).
func CreateComponentTx(ctx context.Context, repos repository.Repos, scope tenant.Scope, in dto.CreateComponentRequest) (*entity.Component, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("nombre de componente requerido", "name")
	}
	now := time.Now().UTC()
	c := &entity.Component{
		ID:                  uuid.New().String(),
		OrgID:               scope.OrgID(),
		Name:                name,
		Kind:                in.Kind,
		Description:         in.Description,
		Specs:               in.Specs,
		RecycledContent:     in.RecycledContent,
		HazardousSubstances: in.HazardousSubstances,
		CarbonFootprintRef:  in.CarbonFootprintRef,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if err := repos.Components.Create(ctx, c); err != nil {
		return nil, err
	}
	if err := audit.Record(ctx, repos, scope, "component.create", "component", c.ID, nil); err != nil {
		return nil, err
	}
	return c, nil
}

// GetComponent componente visible para el scope.
func (uc *UseCase) GetComponent(ctx context.Context, scope tenant.Scope, id string) (*dto.ComponentResponse, error) {
	var out *dto.ComponentResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		c, err := visibleComponent(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		out = ToComponentResponse(c)
		return nil
	})
	return out, err
}

// ListComponents componentes de la organización, del más reciente al más antiguo.
func (uc *UseCase) ListComponents(ctx context.Context, scope tenant.Scope) ([]dto.ComponentResponse, error) {
	var out []dto.ComponentResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		list, err := repos.Components.ListByOrg(ctx, scope.OrgID())
		if err != nil {
			return err
		}
		out = make([]dto.ComponentResponse, 0, len(list))
		for _, c := range list {
			out = append(out, *ToComponentResponse(c))
		}
		return nil
	})
	return out, err
}

// UpdateComponent actualización parcial.
func (uc *UseCase) UpdateComponent(ctx context.Context, scope tenant.Scope, id string, in dto.UpdateComponentRequest) (*dto.ComponentResponse, error) {
	var out *dto.ComponentResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		c, err := visibleComponent(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		if in.Name != nil {
			if strings.TrimSpace(*in.Name) == "" {
				return domain.NewValidationError("nombre de componente requerido", "name")
			}
			c.Name = strings.TrimSpace(*in.Name)
		}
		setString(&c.Kind, in.Kind)
		setString(&c.Description, in.Description)
		setString(&c.HazardousSubstances, in.HazardousSubstances)
		setString(&c.CarbonFootprintRef, in.CarbonFootprintRef)
		if in.Specs != nil {
			c.Specs = in.Specs
		}
		if in.RecycledContent != nil {
			c.RecycledContent = in.RecycledContent
		}
		c.UpdatedAt = time.Now().UTC()
		if err := repos.Components.Update(ctx, c); err != nil {
			return err
		}
		if err := audit.Record(ctx, repos, scope, "component.update", "component", c.ID, nil); err != nil {
			return err
		}
		out = ToComponentResponse(c)
		return nil
	})
	return out, err
}

// ── Plantillas ───────────────────────────────────────────────────────────────

// CreateTemplate crea una plantilla. Solo el nombre es obligatorio.
func (uc *UseCase) CreateTemplate(ctx context.Context, scope tenant.Scope, in dto.TemplateRequest) (*dto.TemplateResponse, error) {
	var out *dto.TemplateResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		t, err := CreateTemplateTx(ctx, repos, scope, in)
		if err != nil {
			return err
		}
		out = ToTemplateResponse(t)
		return nil
	})
	return out, err
}

// CreateTemplateTx alta dentro de una transacción existente.
func CreateTemplateTx(ctx context.Context, repos repository.Repos, scope tenant.Scope, in dto.TemplateRequest) (*entity.ProductTemplate, error) {
	if in.Name == nil || strings.TrimSpace(*in.Name) == "" {
		return nil, domain.NewValidationError("nombre de plantilla requerido", "name")
	}
	now := time.Now().UTC()
	t := &entity.ProductTemplate{ID: uuid.New().String(), OrgID: scope.OrgID(), CreatedAt: now, UpdatedAt: now}
	applyTemplate(t, in)
	if bad := templateOutOfRange(t); len(bad) > 0 {
		return nil, domain.NewValidationError("valores fuera de rango", bad...)
	}
	if err := repos.Templates.Create(ctx, t); err != nil {
		return nil, err
	}
	if err := audit.Record(ctx, repos, scope, "template.create", "product_template", t.ID, nil); err != nil {
		return nil, err
	}
	return t, nil
}

// GetTemplate plantilla visible para el scope.
func (uc *UseCase) GetTemplate(ctx context.Context, scope tenant.Scope, id string) (*dto.TemplateResponse, error) {
	var out *dto.TemplateResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		t, err := VisibleTemplate(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		out = ToTemplateResponse(t)
		return nil
	})
	return out, err
}

// ListTemplates plantillas de la organización.
func (uc *UseCase) ListTemplates(ctx context.Context, scope tenant.Scope) ([]dto.TemplateResponse, error) {
	var out []dto.TemplateResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		list, err := repos.Templates.ListByOrg(ctx, scope.OrgID())
		if err != nil {
			return err
		}
		out = make([]dto.TemplateResponse, 0, len(list))
		for _, t := range list {
			out = append(out, *ToTemplateResponse(t))
		}
		return nil
	})
	return out, err
}

// UpdateTemplate actualización parcial. Los pasaportes ya creados no cambian (su snapshot está congelado).
func (uc *UseCase) UpdateTemplate(ctx context.Context, scope tenant.Scope, id string, in dto.TemplateRequest) (*dto.TemplateResponse, error) {
	var out *dto.TemplateResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		t, err := VisibleTemplate(ctx, repos, scope, id)
		if err != nil {
			return err
		}
		if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
			return domain.NewValidationError("nombre de plantilla requerido", "name")
		}
		applyTemplate(t, in)
		if bad := templateOutOfRange(t); len(bad) > 0 {
			return domain.NewValidationError("valores fuera de rango", bad...)
		}
		t.UpdatedAt = time.Now().UTC()
		if err := repos.Templates.Update(ctx, t); err != nil {
			return err
		}
		if err := audit.Record(ctx, repos, scope, "template.update", "product_template", t.ID, nil); err != nil {
			return err
		}
		out = ToTemplateResponse(t)
		return nil
	})
	return out, err
}

// AttachComponent enlaza un componente a una plantilla. Ambos deben ser visibles para el scope
// (de la misma organización o globales). Cantidad ausente = 1.
func (uc *UseCase) AttachComponent(ctx context.Context, scope tenant.Scope, templateID string, in dto.AttachComponentRequest) (*dto.TemplateComponentResponse, error) {
	if in.TemplateID != "" && in.TemplateID != templateID {
		return nil, domain.NewValidationError("template_id no coincide con la ruta", "template_id")
	}
	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 {
		return nil, domain.NewValidationError("cantidad fuera de rango", "quantity")
	}
	var out *dto.TemplateComponentResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		if _, err := VisibleTemplate(ctx, repos, scope, templateID); err != nil {
			return err
		}
		if _, err := visibleComponent(ctx, repos, scope, in.ComponentID); err != nil {
			return err
		}
		link := &entity.TemplateComponent{
			ID:          uuid.New().String(),
			OrgID:       scope.OrgID(),
			TemplateID:  templateID,
			ComponentID: in.ComponentID,
			Quantity:    qty,
			Notes:       in.Notes,
			CreatedAt:   time.Now().UTC(),
		}
		if err := repos.Templates.AddComponent(ctx, link); err != nil {
			return err
		}
		detail := entity.JSONMap{"component_id": link.ComponentID, "quantity": link.Quantity}
		if err := audit.Record(ctx, repos, scope, "template.attach_component", "product_template", templateID, detail); err != nil {
			return err
		}
		out = toLinkResponse(link)
		return nil
	})
	return out, err
}

// ListTemplateComponents enlaces de la plantilla, del más reciente al más antiguo.
func (uc *UseCase) ListTemplateComponents(ctx context.Context, scope tenant.Scope, templateID string) ([]dto.TemplateComponentResponse, error) {
	var out []dto.TemplateComponentResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		if _, err := VisibleTemplate(ctx, repos, scope, templateID); err != nil {
			return err
		}
		links, err := repos.Templates.ListComponents(ctx, templateID)
		if err != nil {
			return err
		}
		out = make([]dto.TemplateComponentResponse, 0, len(links))
		for _, l := range links {
			out = append(out, *toLinkResponse(l))
		}
		return nil
	})
	return out, err
}

// VisibleTemplate carga la plantilla o domain.ErrNotFound si no existe o es de otra organización.
func VisibleTemplate(ctx context.Context, repos repository.Repos, scope tenant.Scope, id string) (*entity.ProductTemplate, error) {
	t, err := repos.Templates.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil || !scope.CanSee(t.OrgID) {
		return nil, domain.ErrNotFound
	}
	return t, nil
}

func visibleComponent(ctx context.Context, repos repository.Repos, scope tenant.Scope, id string) (*entity.Component, error) {
	c, err := repos.Components.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil || !scope.CanSee(c.OrgID) {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setPtr[T any](dst **T, src *T) {
	if src != nil {
		v := *src
		*dst = &v
	}
}

func applyTemplate(t *entity.ProductTemplate, in dto.TemplateRequest) {
	if in.Name != nil {
		t.Name = strings.TrimSpace(*in.Name)
	}
	setString(&t.Description, in.Description)
	setString(&t.ManufacturerName, in.ManufacturerName)
	setString(&t.ManufacturerAddress, in.ManufacturerAddress)
	setString(&t.BatteryModel, in.BatteryModel)
	setString(&t.BatteryCategory, in.BatteryCategory)
	setString(&t.GTIN, in.GTIN)
	setPtr(&t.BatteryWeightKg, in.BatteryWeightKg)
	setPtr(&t.RatedCapacityKwh, in.RatedCapacityKwh)
	setPtr(&t.CarbonFootprintKgPerKwh, in.CarbonFootprintKgPerKwh)
	setString(&t.CarbonFootprintClass, in.CarbonFootprintClass)
	setPtr(&t.RecycledContentCobalt, in.RecycledContentCobalt)
	setPtr(&t.RecycledContentLead, in.RecycledContentLead)
	setPtr(&t.RecycledContentLithium, in.RecycledContentLithium)
	setPtr(&t.RecycledContentNickel, in.RecycledContentNickel)
	setPtr(&t.ExpectedLifetimeCycles, in.ExpectedLifetimeCycles)
	setPtr(&t.ExpectedLifetimeYears, in.ExpectedLifetimeYears)
	setString(&t.HazardousSubstances, in.HazardousSubstances)
	setString(&t.PerformanceClass, in.PerformanceClass)
	if in.AdditionalPublicData != nil {
		t.AdditionalPublicData = in.AdditionalPublicData
	}
}

// templateOutOfRange aplica las reglas de rango del pasaporte a los valores por defecto.
func templateOutOfRange(t *entity.ProductTemplate) []string {
	return passport.OutOfRange(passport.FromTemplate(t))
}

func toLinkResponse(l *entity.TemplateComponent) *dto.TemplateComponentResponse {
	return &dto.TemplateComponentResponse{
		ID:          l.ID,
		TemplateID:  l.TemplateID,
		ComponentID: l.ComponentID,
		Quantity:    l.Quantity,
		Notes:       l.Notes,
		CreatedAt:   l.CreatedAt,
	}
}

// ToComponentResponse entidad → DTO.
func ToComponentResponse(c *entity.Component) *dto.ComponentResponse {
	return &dto.ComponentResponse{
		ID:                  c.ID,
		OrgID:               c.OrgID,
		Name:                c.Name,
		Kind:                c.Kind,
		Description:         c.Description,
		Specs:               c.Specs,
		RecycledContent:     c.RecycledContent,
		HazardousSubstances: c.HazardousSubstances,
		CarbonFootprintRef:  c.CarbonFootprintRef,
		CreatedAt:           c.CreatedAt,
		UpdatedAt:           c.UpdatedAt,
	}
}

// ToTemplateResponse entidad → DTO.
func ToTemplateResponse(t *entity.ProductTemplate) *dto.TemplateResponse {
	return &dto.TemplateResponse{
		ID:                      t.ID,
		OrgID:                   t.OrgID,
		Name:                    t.Name,
		Description:             t.Description,
		ManufacturerName:        t.ManufacturerName,
		ManufacturerAddress:     t.ManufacturerAddress,
		BatteryModel:            t.BatteryModel,
		BatteryCategory:         t.BatteryCategory,
		GTIN:                    t.GTIN,
		BatteryWeightKg:         t.BatteryWeightKg,
		RatedCapacityKwh:        t.RatedCapacityKwh,
		CarbonFootprintKgPerKwh: t.CarbonFootprintKgPerKwh,
		CarbonFootprintClass:    t.CarbonFootprintClass,
		RecycledContentCobalt:   t.RecycledContentCobalt,
		RecycledContentLead:     t.RecycledContentLead,
		RecycledContentLithium:  t.RecycledContentLithium,
		RecycledContentNickel:   t.RecycledContentNickel,
		ExpectedLifetimeCycles:  t.ExpectedLifetimeCycles,
		ExpectedLifetimeYears:   t.ExpectedLifetimeYears,
		HazardousSubstances:     t.HazardousSubstances,
		PerformanceClass:        t.PerformanceClass,
		AdditionalPublicData:    t.AdditionalPublicData,
		CreatedAt:               t.CreatedAt,
		UpdatedAt:               t.UpdatedAt,
	}
}
