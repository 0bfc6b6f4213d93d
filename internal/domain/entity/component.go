package entity

import "time"

// Component descripción reutilizable de una pieza (celda, módulo, BMS...) del catálogo de la organización.
type Component struct {
	ID                  string
	OrgID               string
	Name                string
	Kind                string
	Description         string
	Specs               JSONMap
	RecycledContent     JSONMap // ej. {"cobalt": 12.5, "lithium": 4}
	HazardousSubstances string
	CarbonFootprintRef  string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
