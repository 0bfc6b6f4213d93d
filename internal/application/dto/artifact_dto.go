package dto

import "time"

// CreateArtifactRequest metadatos de un archivo restringido de un pasaporte.
type CreateArtifactRequest struct {
	PassportID string `json:"passport_id" validate:"required"`
	Kind       string `json:"kind" validate:"required"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	StorageKey string `json:"storage_key"`
}

// UploadArtifactRequest subida directa: el contenido viaja como multipart.
type UploadArtifactRequest struct {
	Kind        string
	Title       string
	FileName    string
	ContentType string
	Content     []byte
}

// PresignRequest solicita una URL de subida para un archivo del pasaporte.
type PresignRequest struct {
	FileName string `json:"file_name" validate:"required"`
}

// PresignResponse URL de subida y la clave de almacenamiento a registrar después.
type PresignResponse struct {
	UploadURL  string `json:"upload_url"`
	StorageKey string `json:"storage_key"`
	ExpiresIn  int    `json:"expires_in_seconds"`
}

// ArtifactResponse salida de un artefacto.
type ArtifactResponse struct {
	ID         string    `json:"id"`
	PassportID string    `json:"passport_id"`
	Kind       string    `json:"kind"`
	Title      string    `json:"title"`
	URL        string    `json:"url"`
	StorageKey string    `json:"storage_key,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
