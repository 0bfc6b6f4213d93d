package entity

import "time"

// Organization es la raíz del aislamiento multi-tenant: todo registro de negocio pertenece a una.
type Organization struct {
	ID        string
	Name      string // único
	CreatedAt time.Time
}

// APIKey credencial de una organización. Solo se guarda el hash SHA-256 del secreto.
type APIKey struct {
	ID        string
	OrgID     string
	Name      string
	KeyHash   string
	KeyPrefix string // primeros caracteres del secreto, para mostrar
	CreatedAt time.Time
	RevokedAt *time.Time
}

// Active indica si la credencial no ha sido revocada.
func (k *APIKey) Active() bool { return k.RevokedAt == nil }
