// Package qr genera los códigos QR de los pasaportes con boombuler/barcode.
package qr

import (
	"bytes"
	"fmt"
	"image/png"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/qr"

	"github.com/jhoicas/passport-api/internal/application/reports"
)

// Generator implementa reports.QRGenerator.
type Generator struct{}

var _ reports.QRGenerator = (*Generator)(nil)

// NewGenerator construye el generador.
func NewGenerator() *Generator { return &Generator{} }

// QRPNG codifica content con corrección de errores M y escala la imagen a size×size píxeles.
func (g *Generator) QRPNG(content string, size int) ([]byte, error) {
	if content == "" {
		return nil, fmt.Errorf("qr: contenido vacío")
	}
	if size <= 0 {
		size = 256
	}
	code, err := qr.Encode(content, qr.M, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("qr: codificar: %w", err)
	}
	scaled, err := barcode.Scale(code, size, size)
	if err != nil {
		return nil, fmt.Errorf("qr: escalar: %w", err)
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return nil, fmt.Errorf("qr: png: %w", err)
	}
	return buf.Bytes(), nil
}
