package qr_test

import (
	"bytes"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/passport-api/internal/infrastructure/qr"
)

func TestQRPNG(t *testing.T) {
	out, err := qr.NewGenerator().QRPNG("https://dpp.example/p-1", 200)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 200, img.Bounds().Dx())
	assert.Equal(t, 200, img.Bounds().Dy())
}

func TestQRPNG_ContenidoVacio(t *testing.T) {
	_, err := qr.NewGenerator().QRPNG("", 200)
	assert.Error(t, err)
}
