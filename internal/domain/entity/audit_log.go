package entity

import "time"

// AuditLog evento inmutable de una operación de escritura. Solo se inserta; nunca se actualiza ni borra.
type AuditLog struct {
	ID         string
	OrgID      string
	Actor      string
	Action     string // ej. "passport.create", "cbam.declaration.status"
	EntityType string
	EntityID   string
	Detail     JSONMap
	CreatedAt  time.Time
}
