package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
	"github.com/jhoicas/passport-api/pkg/logger"
)

// Renderers adaptadores de formato que usa el caso de uso.
type Renderers struct {
	CbamCSV CbamCSVRenderer
	CbamXML CbamXMLRenderer
	CbamPDF CbamPDFGenerator
	DopPDF  DopPDFGenerator
}

// UseCase genera los documentos descargables de la organización.
type UseCase struct {
	tx  repository.TxRunner
	r   Renderers
	log *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner, r Renderers, log *logger.Logger) *UseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{tx: tx, r: r, log: log.Component("reports")}
}

// CbamCSV una fila por ítem; el costo por ítem usa el precio propio de la declaración.
func (uc *UseCase) CbamCSV(ctx context.Context, scope tenant.Scope, declarationID string, enc Encoding) ([]byte, error) {
	doc, err := uc.cbamDocument(ctx, scope, declarationID)
	if err != nil {
		return nil, err
	}
	out, err := uc.r.CbamCSV.RenderCbamCSV(doc, enc)
	if err != nil {
		return nil, fmt.Errorf("reports: csv cbam: %w", err)
	}
	return out, nil
}

// CbamXML informe trimestral.
func (uc *UseCase) CbamXML(ctx context.Context, scope tenant.Scope, declarationID string) ([]byte, error) {
	doc, err := uc.cbamDocument(ctx, scope, declarationID)
	if err != nil {
		return nil, err
	}
	out, err := uc.r.CbamXML.RenderCbamXML(doc)
	if err != nil {
		return nil, fmt.Errorf("reports: xml cbam: %w", err)
	}
	return out, nil
}

// CbamPDF documento imprimible.
func (uc *UseCase) CbamPDF(ctx context.Context, scope tenant.Scope, declarationID string) ([]byte, error) {
	doc, err := uc.cbamDocument(ctx, scope, declarationID)
	if err != nil {
		return nil, err
	}
	out, err := uc.r.CbamPDF.GenerateCbamPDF(doc)
	if err != nil {
		return nil, fmt.Errorf("reports: pdf cbam: %w", err)
	}
	uc.log.Debug().Str("declaration_id", declarationID).Int("bytes", len(out)).Msg("pdf cbam generado")
	return out, nil
}

// DopPDF Declaración de Prestaciones de una plantilla con sus componentes enlazados.
func (uc *UseCase) DopPDF(ctx context.Context, scope tenant.Scope, templateID string) ([]byte, error) {
	var doc DopDocument
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		// ── 1. Plantilla ──
		tpl, err := repos.Templates.GetByID(ctx, templateID)
		if err != nil {
			return fmt.Errorf("reports: obtener plantilla: %w", err)
		}
		if tpl == nil || !scope.CanSee(tpl.OrgID) {
			return domain.ErrNotFound
		}

		// ── 2. Componentes enlazados ──
		links, err := repos.Templates.ListComponents(ctx, tpl.ID)
		if err != nil {
			return fmt.Errorf("reports: enlaces: %w", err)
		}
		comps := make([]DopComponent, 0, len(links))
		for _, l := range links {
			c, err := repos.Components.GetByID(ctx, l.ComponentID)
			if err != nil {
				return fmt.Errorf("reports: componente %s: %w", l.ComponentID, err)
			}
			if c == nil {
				c = &entity.Component{ID: l.ComponentID}
			}
			comps = append(comps, DopComponent{Component: c, Quantity: l.Quantity, Notes: l.Notes})
		}
		doc = DopDocument{Template: tpl, Components: comps, OrgName: scope.OrgName(), GeneratedAt: time.Now().UTC()}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out, err := uc.r.DopPDF.GenerateDopPDF(doc)
	if err != nil {
		return nil, fmt.Errorf("reports: pdf dop: %w", err)
	}
	return out, nil
}

// cbamDocument carga la declaración visible en la forma que consumen los renderers.
func (uc *UseCase) cbamDocument(ctx context.Context, scope tenant.Scope, declarationID string) (CbamDocument, error) {
	var doc CbamDocument
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		d, err := repos.Cbam.GetDeclaration(ctx, declarationID)
		if err != nil {
			return fmt.Errorf("reports: obtener declaración: %w", err)
		}
		if d == nil || !scope.CanSee(d.OrgID) {
			return domain.ErrNotFound
		}
		doc = CbamDocument{Declaration: d, OrgName: scope.OrgName(), GeneratedAt: time.Now().UTC()}
		return nil
	})
	return doc, err
}
