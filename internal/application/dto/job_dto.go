package dto

import (
	"time"

	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// CreateJobRequest crea un job de importación o exportación.
// Para importaciones, Payload["records"] contiene la lista de registros.
type CreateJobRequest struct {
	Kind    string         `json:"kind" validate:"required"`
	Payload entity.JSONMap `json:"payload"`
}

// JobResponse salida de un job.
type JobResponse struct {
	ID        string         `json:"id"`
	Direction string         `json:"direction"`
	Kind      string         `json:"kind"`
	Status    string         `json:"status"`
	Payload   entity.JSONMap `json:"payload,omitempty"`
	Result    entity.JSONMap `json:"result,omitempty"`
	Error     string         `json:"error,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
