// Package reports exportaciones de documentos: CBAM (CSV, PDF, XML, JSON) y Declaración de Prestaciones.
// Los formatos de bytes los implementan adaptadores de infraestructura detrás de estos puertos.
package reports

import (
	"time"

	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// Encoding codificación de salida de los CSV.
type Encoding string

const (
	EncodingUTF8   Encoding = "utf-8"
	EncodingLatin1 Encoding = "latin1"
)

// ParseEncoding "" o desconocido → UTF-8.
func ParseEncoding(s string) Encoding {
	switch s {
	case "latin1", "latin-1", "iso-8859-1":
		return EncodingLatin1
	default:
		return EncodingUTF8
	}
}

// CbamDocument datos que recibe cualquier renderer de una declaración CBAM.
type CbamDocument struct {
	Declaration *entity.CbamDeclaration
	OrgName     string
	GeneratedAt time.Time
}

// DopComponent componente enlazado a la plantilla tal como aparece en la DoP.
type DopComponent struct {
	Component *entity.Component
	Quantity  int
	Notes     string
}

// DopDocument datos de la Declaración de Prestaciones de una plantilla.
type DopDocument struct {
	Template    *entity.ProductTemplate
	Components  []DopComponent
	OrgName     string
	GeneratedAt time.Time
}

// CbamCSVRenderer CSV de una declaración (una fila por ítem).
type CbamCSVRenderer interface {
	RenderCbamCSV(doc CbamDocument, enc Encoding) ([]byte, error)
}

// PassportCSVRenderer CSV de un conjunto de pasaportes (exportaciones).
type PassportCSVRenderer interface {
	RenderPassportsCSV(passports []*entity.BatteryPassport, enc Encoding) ([]byte, error)
}

// CbamXMLRenderer informe trimestral CBAM en XML.
type CbamXMLRenderer interface {
	RenderCbamXML(doc CbamDocument) ([]byte, error)
}

// CbamPDFGenerator PDF imprimible de una declaración.
type CbamPDFGenerator interface {
	GenerateCbamPDF(doc CbamDocument) ([]byte, error)
}

// DopPDFGenerator PDF de la Declaración de Prestaciones.
type DopPDFGenerator interface {
	GenerateDopPDF(doc DopDocument) ([]byte, error)
}

// PassportLinkedData representación JSON-LD de un pasaporte público.
type PassportLinkedData interface {
	PassportJSONLD(p *entity.BatteryPassport, publicURL string) (map[string]any, error)
}

// QRGenerator imagen PNG de un código QR.
type QRGenerator interface {
	QRPNG(content string, size int) ([]byte, error)
}
