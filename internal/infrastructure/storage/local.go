// Package storage implementaciones de artifacts.ObjectStore: disco local (con URLs de subida
// firmadas por JWT) y S3 compatible vía minio-go.
package storage

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/jhoicas/passport-api/internal/application/artifacts"
	"github.com/jhoicas/passport-api/internal/domain"
	pkgjwt "github.com/jhoicas/passport-api/pkg/jwt"
	"github.com/jhoicas/passport-api/pkg/logger"
)

// tokenIssuer emisor de los tokens de subida.
const tokenIssuer = "passport-api"

// LocalStore guarda los objetos bajo root. Las URLs prefirmadas apuntan a
// {publicAPIURL}/api/uploads/{token}, que vuelve a entrar por WriteWithToken.
type LocalStore struct {
	root         string
	publicAPIURL string
	secret       string
	ttl          time.Duration
	log          *logger.Logger
}

var _ artifacts.ObjectStore = (*LocalStore)(nil)

// NewLocalStore crea el directorio raíz si no existe.
func NewLocalStore(root, publicAPIURL, secret string, ttl time.Duration, log *logger.Logger) (*LocalStore, error) {
	if root == "" {
		return nil, fmt.Errorf("storage: ruta local vacía")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage: crear %s: %w", root, err)
	}
	if ttl <= 0 {
		ttl = 15 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	return &LocalStore{
		root:         root,
		publicAPIURL: strings.TrimRight(publicAPIURL, "/"),
		secret:       secret,
		ttl:          ttl,
		log:          log.Component("storage.local"),
	}, nil
}

// Put escribe el objeto y devuelve una URL file:// a su ubicación.
func (s *LocalStore) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	path, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("storage: crear directorio: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("storage: escribir %s: %w", key, err)
	}
	s.log.Debug().Str("key", key).Str("content_type", contentType).Int("bytes", len(data)).Msg("objeto guardado")
	return (&url.URL{Scheme: "file", Path: path}).String(), nil
}

// Presign firma un token que autoriza a escribir exactamente key durante ttl.
func (s *LocalStore) Presign(ctx context.Context, key string) (string, time.Duration, error) {
	if _, err := s.path(key); err != nil {
		return "", 0, err
	}
	tok, err := pkgjwt.GenerateUpload(s.secret, key, orgFromKey(key), tokenIssuer, s.ttl)
	if err != nil {
		return "", 0, fmt.Errorf("storage: firmar subida: %w", err)
	}
	return s.publicAPIURL + "/api/uploads/" + tok, s.ttl, nil
}

// WriteWithToken valida el token de una URL prefirmada y escribe el cuerpo recibido.
// Devuelve la clave escrita.
func (s *LocalStore) WriteWithToken(ctx context.Context, token, contentType string, data []byte) (string, error) {
	key, _, err := pkgjwt.ParseUpload(s.secret, token)
	if err != nil {
		return "", fmt.Errorf("%w: token de subida: %v", domain.ErrUnauthorized, err)
	}
	if _, err := s.Put(ctx, key, contentType, data); err != nil {
		return "", err
	}
	return key, nil
}

// path resuelve key dentro de root y rechaza rutas que escapan del directorio.
func (s *LocalStore) path(key string) (string, error) {
	if key == "" || strings.Contains(key, "..") {
		return "", fmt.Errorf("storage: clave inválida %q", key)
	}
	return filepath.Join(s.root, filepath.Clean("/"+key)), nil
}

// orgFromKey primer segmento de la clave ({org}/{passport}/{archivo}).
func orgFromKey(key string) string {
	if i := strings.IndexByte(key, '/'); i > 0 {
		return key[:i]
	}
	return ""
}
