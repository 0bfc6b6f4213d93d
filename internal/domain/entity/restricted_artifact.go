package entity

import "time"

// RestrictedArtifact metadatos de un archivo asociado a un pasaporte (ensayos, certificados, SDS).
// El binario vive en el object store; aquí solo se guarda el puntero.
type RestrictedArtifact struct {
	ID         string
	OrgID      string
	PassportID string
	Kind       string
	Title      string
	URL        string
	StorageKey string
	CreatedAt  time.Time
}
