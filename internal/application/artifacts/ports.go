// Package artifacts metadatos y archivos restringidos asociados a un pasaporte.
package artifacts

import (
	"context"
	"time"
)

// ObjectStore almacenamiento de archivos: disco local o un object store compatible S3.
type ObjectStore interface {
	// Put guarda el contenido bajo key y devuelve la URL con la que se podrá descargar.
	Put(ctx context.Context, key, contentType string, data []byte) (string, error)
	// Presign devuelve una URL de subida temporal para key y su vigencia.
	Presign(ctx context.Context, key string) (string, time.Duration, error)
}
