package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/domain"
	"github.com/jhoicas/passport-api/internal/infrastructure/storage"
)

func TestLocalStore_PutEscribeArchivo(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewLocalStore(dir, "http://api.test", "secret", time.Minute, nil)
	require.NoError(t, err)

	u, err := s.Put(context.Background(), "org-a/p-1/informe.pdf", "application/pdf", []byte("%PDF"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(u, "file://"))

	data, err := os.ReadFile(filepath.Join(dir, "org-a", "p-1", "informe.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(data))
}

func TestLocalStore_PresignYSubida(t *testing.T) {
	dir := t.TempDir()
	s, err := storage.NewLocalStore(dir, "http://api.test/", "secret", time.Minute, nil)
	require.NoError(t, err)
	ctx := context.Background()

	u, ttl, err := s.Presign(ctx, "org-a/p-1/sds.pdf")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)
	require.True(t, strings.HasPrefix(u, "http://api.test/api/uploads/"))

	token := strings.TrimPrefix(u, "http://api.test/api/uploads/")
	key, err := s.WriteWithToken(ctx, token, "application/pdf", []byte("contenido"))
	require.NoError(t, err)
	assert.Equal(t, "org-a/p-1/sds.pdf", key)

	data, err := os.ReadFile(filepath.Join(dir, "org-a", "p-1", "sds.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "contenido", string(data))
}

func TestLocalStore_TokenInvalido(t *testing.T) {
	s, err := storage.NewLocalStore(t.TempDir(), "http://api.test", "secret", time.Minute, nil)
	require.NoError(t, err)
	_, err = s.WriteWithToken(context.Background(), "no-es-un-token", "", []byte("x"))
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLocalStore_ClaveConEscape(t *testing.T) {
	s, err := storage.NewLocalStore(t.TempDir(), "http://api.test", "secret", time.Minute, nil)
	require.NoError(t, err)
	_, err = s.Put(context.Background(), "../fuera.txt", "", []byte("x"))
	assert.Error(t, err)
}
