package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/jhoicas/passport-api/internal/application/artifacts"
	"github.com/jhoicas/passport-api/pkg/logger"
)

// S3Config parámetros del bucket S3 compatible (AWS, MinIO, R2).
type S3Config struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	UseSSL     bool
	Bucket     string
	// PublicURL base para construir la URL pública de un objeto; vacío → endpoint/bucket.
	PublicURL  string
	PresignTTL time.Duration
}

// S3Store implementa artifacts.ObjectStore con minio-go.
type S3Store struct {
	client *minio.Client
	cfg    S3Config
	log    *logger.Logger
}

var _ artifacts.ObjectStore = (*S3Store)(nil)

// NewS3Store crea el cliente y verifica que el bucket exista.
func NewS3Store(ctx context.Context, cfg S3Config, log *logger.Logger) (*S3Store, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("storage: S3_ENDPOINT y STORAGE_BUCKET son obligatorios en modo s3")
	}
	if cfg.PresignTTL <= 0 {
		cfg.PresignTTL = 15 * time.Minute
	}
	if log == nil {
		log = logger.Nop()
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("storage: cliente s3: %w", err)
	}
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("storage: verificar bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		return nil, fmt.Errorf("storage: el bucket %s no existe", cfg.Bucket)
	}
	return &S3Store{client: client, cfg: cfg, log: log.Component("storage.s3")}, nil
}

// Put sube el objeto y devuelve su URL pública.
func (s *S3Store) Put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	info, err := s.client.PutObject(ctx, s.cfg.Bucket, key, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return "", fmt.Errorf("storage: subir %s: %w", key, err)
	}
	s.log.Debug().Str("key", key).Str("etag", info.ETag).Int64("bytes", info.Size).Msg("objeto subido")
	return s.objectURL(key), nil
}

// Presign URL PUT firmada por el proveedor.
func (s *S3Store) Presign(ctx context.Context, key string) (string, time.Duration, error) {
	u, err := s.client.PresignedPutObject(ctx, s.cfg.Bucket, key, s.cfg.PresignTTL)
	if err != nil {
		return "", 0, fmt.Errorf("storage: prefirmar %s: %w", key, err)
	}
	return u.String(), s.cfg.PresignTTL, nil
}

func (s *S3Store) objectURL(key string) string {
	if s.cfg.PublicURL != "" {
		return strings.TrimRight(s.cfg.PublicURL, "/") + "/" + key
	}
	scheme := "http"
	if s.cfg.UseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.Endpoint, s.cfg.Bucket, key)
}
