package dto

import (
	"time"

	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// AuditLogResponse entrada del audit log.
type AuditLogResponse struct {
	ID         string         `json:"id"`
	Actor      string         `json:"actor"`
	Action     string         `json:"action"`
	EntityType string         `json:"entity_type"`
	EntityID   string         `json:"entity_id"`
	Detail     entity.JSONMap `json:"detail,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
}
