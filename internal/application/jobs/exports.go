package jobs

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/passport-api/internal/application/catalog"
	"github.com/jhoicas/passport-api/internal/application/cbam"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/reports"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
)

// runExport serializa la colección de la organización que indica el tipo del job.
func (uc *UseCase) runExport(ctx context.Context, repos repository.Repos, scope tenant.Scope, job *entity.Job) (entity.JSONMap, error) {
	org := scope.OrgID()
	switch job.Kind {
	case KindPassports:
		list, err := repos.Passports.ListByOrg(ctx, org)
		if err != nil {
			return nil, err
		}
		csv, err := uc.csv.RenderPassportsCSV(list, reports.EncodingUTF8)
		if err != nil {
			return nil, fmt.Errorf("csv de pasaportes: %w", err)
		}
		return entity.JSONMap{"csv": string(csv), "count": len(list)}, nil

	case KindCbam:
		list, err := repos.Cbam.ListDeclarations(ctx, org)
		if err != nil {
			return nil, err
		}
		out := make([]dto.CbamDeclarationResponse, 0, len(list))
		for _, d := range list {
			out = append(out, *cbam.ToDeclarationResponse(d))
		}
		return jsonResult(out, len(list))

	case KindComponents:
		list, err := repos.Components.ListByOrg(ctx, org)
		if err != nil {
			return nil, err
		}
		out := make([]dto.ComponentResponse, 0, len(list))
		for _, c := range list {
			out = append(out, *catalog.ToComponentResponse(c))
		}
		return jsonResult(out, len(list))

	case KindTemplates:
		list, err := repos.Templates.ListByOrg(ctx, org)
		if err != nil {
			return nil, err
		}
		out := make([]dto.TemplateResponse, 0, len(list))
		for _, t := range list {
			out = append(out, *catalog.ToTemplateResponse(t))
		}
		return jsonResult(out, len(list))

	default:
		return nil, fmt.Errorf("%w: tipo de exportación %q", domain.ErrUnsupported, job.Kind)
	}
}

// jsonResult guarda los registros como JSON genérico, igual que quedan tras pasar por jsonb.
func jsonResult(v any, count int) (entity.JSONMap, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic []any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return entity.JSONMap{"json": generic, "count": count}, nil
}
