package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// User representa un usuario de una Organization. No autentica: la API se consume con API keys.
type User struct {
	ID        string
	OrgID     string
	Email     string
	Role      string // admin, editor, viewer
	CreatedAt time.Time
}
