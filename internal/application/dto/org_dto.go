package dto

import "time"

// CreateOrgRequest entrada para crear una organización.
type CreateOrgRequest struct {
	Name string `json:"name" validate:"required"`
}

// OrgResponse salida de una organización.
type OrgResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateUserRequest entrada para crear un usuario en una organización.
type CreateUserRequest struct {
	Email string `json:"email" validate:"required,email"`
	Role  string `json:"role" validate:"oneof=admin editor viewer"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID        string    `json:"id"`
	OrgID     string    `json:"org_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateAPIKeyRequest entrada para emitir una API key.
type CreateAPIKeyRequest struct {
	OrgID string `json:"org_id" validate:"required"`
	Name  string `json:"name" validate:"required"`
}

// APIKeyResponse salida de una API key. Key (el secreto) solo viaja en la respuesta de emisión.
type APIKeyResponse struct {
	ID        string     `json:"id"`
	OrgID     string     `json:"org_id"`
	Name      string     `json:"name"`
	Prefix    string     `json:"prefix"`
	Key       string     `json:"key,omitempty"`
	Revoked   bool       `json:"revoked"`
	RevokedAt *time.Time `json:"revoked_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}
