// Package audit registra y consulta el audit log append-only.
package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/passport-api/internal/application/dto"
	"github.com/jhoicas/passport-api/internal/domain/entity"
	"github.com/jhoicas/passport-api/internal/domain/repository"
	"github.com/jhoicas/passport-api/internal/domain/tenant"
)

// MaxEntries límite de entradas devueltas por List.
const MaxEntries = 200

// Record agrega una entrada usando los repositorios de la transacción en curso: si la escritura
// del audit falla, el caller debe retornar el error para que la mutación principal también se revierta.
func Record(ctx context.Context, repos repository.Repos, scope tenant.Scope, action, entityType, entityID string, detail entity.JSONMap) error {
	entry := &entity.AuditLog{
		ID:         uuid.New().String(),
		OrgID:      scope.OrgID(),
		Actor:      scope.Actor(),
		Action:     action,
		EntityType: entityType,
		EntityID:   entityID,
		Detail:     detail.Clone(),
		CreatedAt:  time.Now().UTC(),
	}
	if err := repos.Audit.Create(ctx, entry); err != nil {
		return fmt.Errorf("audit: registrar %s: %w", action, err)
	}
	return nil
}

// UseCase consulta del audit log de la organización.
type UseCase struct {
	tx repository.TxRunner
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx repository.TxRunner) *UseCase {
	return &UseCase{tx: tx}
}

// List entradas de la organización, de la más reciente a la más antigua (máximo MaxEntries).
func (uc *UseCase) List(ctx context.Context, scope tenant.Scope) ([]dto.AuditLogResponse, error) {
	var out []dto.AuditLogResponse
	err := uc.tx.Run(ctx, scope, func(repos repository.Repos) error {
		entries, err := repos.Audit.ListByOrg(ctx, scope.OrgID(), MaxEntries)
		if err != nil {
			return err
		}
		out = make([]dto.AuditLogResponse, 0, len(entries))
		for _, e := range entries {
			out = append(out, dto.AuditLogResponse{
				ID:         e.ID,
				Actor:      e.Actor,
				Action:     e.Action,
				EntityType: e.EntityType,
				EntityID:   e.EntityID,
				Detail:     e.Detail,
				CreatedAt:  e.CreatedAt,
			})
		}
		return nil
	})
	return out, err
}
