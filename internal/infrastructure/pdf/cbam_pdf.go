package pdf

import (
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/passport-api/internal/application/reports"
	domaincbam "github.com/jhoicas/passport-api/internal/domain/cbam"
	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// GenerateCbamPDF genera el PDF de una declaración con sus ítems y totales.
func (g *MarotoPDFGenerator) GenerateCbamPDF(doc reports.CbamDocument) ([]byte, error) {
	d := doc.Declaration
	m := newDocument("Declaración CBAM "+d.Period, nonEmpty(doc.OrgName, "passport-api"))

	m.AddRows(titleRow(nonEmpty(doc.OrgName, "Organización"), "Mecanismo de Ajuste en Frontera por Carbono",
		"DECLARACIÓN CBAM "+d.Period, "Estado: "+d.Status))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(cbamTableHeaderRow())
	for _, r := range cbamItemRows(d.Items) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(cbamTotalsRow(d))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow("Generado el " + doc.GeneratedAt.Format("02/01/2006 15:04") + " UTC. " +
		"Emisiones en tCO2e = cantidad (t) × factor efectivo (verificado si existe; si no, por defecto). " +
		"El costo estimado usa el precio por tonelada registrado en la declaración."))

	return render(m)
}

func cbamTableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("CN", 1, align.Left),
		h("Descripción", 4, align.Left),
		h("t", 1, align.Right),
		h("Factor", 2, align.Right),
		h("Emisiones", 2, align.Right),
		h("Proveedor", 2, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func cbamItemRows(items []*entity.CbamItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		qty := "-"
		if it.QuantityTonnes.Valid {
			qty = it.QuantityTonnes.Decimal.StringFixed(3)
		}
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(it.CNCode, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(nonEmpty(it.ProductDescription, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(qty, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(domaincbam.EffectiveFactor(it).StringFixed(3), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(it.CalculatedEmissions.StringFixed(3), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(nonEmpty(it.SupplierName, "N/A"), props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return out
}

func cbamTotalsRow(d *entity.CbamDeclaration) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	grand := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 12})
	}
	return row.New(20).Add(
		col.New(4),
		col.New(4).Add(
			label("Emisiones totales (tCO2e):"),
			text.New("Precio certificado (€/t):", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
			text.New("COSTO ESTIMADO (€):", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12}),
		),
		col.New(4).Add(
			value(d.TotalEmissions.StringFixed(3)),
			text.New(priceLabel(d.CertificatePricePerTonne, d.PricePinned), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 6}),
			grand(d.CertificateCostEstimate.StringFixed(2)),
		),
	)
}

func priceLabel(price decimal.Decimal, pinned bool) string {
	if pinned {
		return price.StringFixed(2) + " (fijado)"
	}
	return price.StringFixed(2)
}
