package jwt_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/passport-api/pkg/jwt"
)

const testSecret = "test-upload-secret"

func TestUploadToken_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.GenerateUpload(testSecret, "org-1/passport-1/report.pdf", "org-1", "passport-api-test", time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	key, orgID, err := pkgjwt.ParseUpload(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "org-1/passport-1/report.pdf", key)
	assert.Equal(t, "org-1", orgID)
}

func TestUploadToken_Expirado(t *testing.T) {
	tok, err := pkgjwt.GenerateUpload(testSecret, "k", "org-1", "passport-api-test", -time.Minute)
	require.NoError(t, err)

	_, _, err = pkgjwt.ParseUpload(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestUploadToken_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.GenerateUpload(testSecret, "k", "org-1", "passport-api-test", time.Minute)
	require.NoError(t, err)

	_, _, err = pkgjwt.ParseUpload("otro-secret", tok)
	assert.Error(t, err)
}

func TestUploadToken_SecretVacio(t *testing.T) {
	_, err := pkgjwt.GenerateUpload("", "k", "org-1", "x", time.Minute)
	assert.Error(t, err)
}
