// Package pdf genera los documentos imprimibles con Maroto v2: la declaración CBAM y la
// Declaración de Prestaciones (DoP) de una plantilla.
//
// Layout de la declaración CBAM (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Organización        │  Período + Estado            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: CN | Descripción | t | Factor | Emisiones | Prov.    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Emisiones / Precio €/t / Costo estimado            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: fecha de generación + leyenda                       │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/passport-api/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 92, Blue: 75}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa reports.CbamPDFGenerator y reports.DopPDFGenerator.
type MarotoPDFGenerator struct{}

var (
	_ reports.CbamPDFGenerator = (*MarotoPDFGenerator)(nil)
	_ reports.DopPDFGenerator  = (*MarotoPDFGenerator)(nil)
)

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

func newDocument(title, author string) core.Maroto {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
	return maroto.New(cfg)
}

func render(m core.Maroto) ([]byte, error) {
	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones comunes ─────────────────────────────────────────────────────────

// titleRow: título (izq) y subtítulo con dos líneas (der).
func titleRow(left, leftSub, right, rightSub string) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(left, props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1}),
			text.New(leftSub, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(5).Add(
			text.New(right, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 2}),
			text.New(rightSub, props.Text{Size: 8, Align: align.Right, Top: 10, Color: colorGray}),
		),
	)
}

func sectionRow(label string) core.Row {
	return row.New(8).Add(col.New(12).Add(
		text.New(label, props.Text{Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2}),
	))
}

// keyValueRow: etiqueta en negrita y valor a la derecha.
func keyValueRow(label, value string) core.Row {
	return row.New(6).Add(
		col.New(5).Add(text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Top: 1})),
		col.New(7).Add(text.New(value, props.Text{Size: 8, Top: 1})),
	)
}

func footerRow(legend string) core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New(legend, props.Text{Size: 6.5, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if strings.TrimSpace(s) != "" {
		return s
	}
	return fallback
}

func optFloat(v *float64, unit string) string {
	if v == nil {
		return "N/A"
	}
	return strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.3f", *v), "0"), ".") + unit
}

func optInt(v *int) string {
	if v == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *v)
}
