package jobs

import (
	"context"
	"fmt"
	"reflect"

	"github.com/mitchellh/mapstructure"

	"github.com/jhoicas/passport-api/internal/application/catalog"
	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/application/passport"
	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
)

// runImport inserta cada registro de payload["records"] con la organización del scope.
// El primer error aborta el lote completo.
func runImport(ctx context.Context, repos repository.Repos, scope tenant.Scope, job *entity.Job) (entity.JSONMap, error) {
	var create func(rec any) error
	switch job.Kind {
	case KindComponents:
		create = func(rec any) error {
			var in dto.CreateComponentRequest
			if err := decodeRecord(rec, &in); err != nil {
				return err
			}
			_, err := catalog.CreateComponentTx(ctx, repos, scope, in)
			return err
		}
	case KindTemplates:
		create = func(rec any) error {
			var in dto.TemplateRequest
			if err := decodeRecord(rec, &in); err != nil {
				return err
			}
			_, err := catalog.CreateTemplateTx(ctx, repos, scope, in)
			return err
		}
	case KindPassports:
		create = func(rec any) error {
			var in dto.PassportFieldsRequest
			if err := decodeRecord(rec, &in); err != nil {
				return err
			}
			_, err := passport.CreateTx(ctx, repos, scope, in.ToFields())
			return err
		}
	default:
		return nil, fmt.Errorf("%w: tipo de importación %q", domain.ErrUnsupported, job.Kind)
	}

	records, err := importRecords(job.Payload)
	if err != nil {
		return nil, err
	}
	for i, rec := range records {
		if err := create(rec); err != nil {
			return nil, fmt.Errorf("registro %d: %w", i, err)
		}
	}
	return entity.JSONMap{"created": len(records)}, nil
}

// importRecords payload["records"] debe ser una lista (ausente = lista vacía).
func importRecords(payload entity.JSONMap) ([]any, error) {
	raw, ok := payload["records"]
	if !ok || raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, domain.NewValidationError("payload.records debe ser una lista", "payload.records")
	}
	return list, nil
}

// decodeRecord decodifica un registro genérico en el DTO. Claves desconocidas son error.
func decodeRecord(rec any, out any) error {
	if _, ok := rec.(map[string]any); !ok {
		return domain.NewValidationError("el registro debe ser un objeto", "record")
	}
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  dateHook,
		ErrorUnused: true,
		TagName:     "mapstructure",
		Result:      out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(rec)
}

var dateType = reflect.TypeOf(dto.Date{})

// dateHook acepta fechas como "2006-01-02" o RFC 3339.
func dateHook(from, to reflect.Type, data any) (any, error) {
	if to != dateType || from.Kind() != reflect.String {
		return data, nil
	}
	return dto.ParseDate(data.(string))
}
