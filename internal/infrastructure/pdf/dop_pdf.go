package pdf

import (
	"fmt"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/passport-api/internal/application/reports"
)

// GenerateDopPDF genera la Declaración de Prestaciones de una plantilla.
func (g *MarotoPDFGenerator) GenerateDopPDF(doc reports.DopDocument) ([]byte, error) {
	t := doc.Template
	product := nonEmpty(t.BatteryModel, t.Name)
	m := newDocument("Declaración de Prestaciones "+product, nonEmpty(t.ManufacturerName, doc.OrgName))

	m.AddRows(titleRow("DECLARACIÓN DE PRESTACIONES", "Reglamento (UE) 2023/1542", product, "GTIN: "+nonEmpty(t.GTIN, "N/A")))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(sectionRow("FABRICANTE"))
	m.AddRows(keyValueRow("Nombre:", nonEmpty(t.ManufacturerName, "N/A")))
	m.AddRows(keyValueRow("Dirección:", nonEmpty(t.ManufacturerAddress, "N/A")))
	m.AddRows(keyValueRow("Categoría:", nonEmpty(t.BatteryCategory, "N/A")))

	m.AddRows(sectionRow("CARACTERÍSTICAS DE PRESTACIÓN"))
	m.AddRows(keyValueRow("Capacidad nominal:", optFloat(t.RatedCapacityKwh, " kWh")))
	m.AddRows(keyValueRow("Peso:", optFloat(t.BatteryWeightKg, " kg")))
	m.AddRows(keyValueRow("Huella de carbono:", optFloat(t.CarbonFootprintKgPerKwh, " kg CO2e/kWh")))
	m.AddRows(keyValueRow("Clase de huella de carbono:", nonEmpty(t.CarbonFootprintClass, "N/A")))
	m.AddRows(keyValueRow("Clase de rendimiento:", nonEmpty(t.PerformanceClass, "N/A")))
	m.AddRows(keyValueRow("Vida útil esperada (ciclos):", optInt(t.ExpectedLifetimeCycles)))
	m.AddRows(keyValueRow("Vida útil esperada (años):", optInt(t.ExpectedLifetimeYears)))
	m.AddRows(keyValueRow("Sustancias peligrosas:", nonEmpty(t.HazardousSubstances, "N/A")))

	m.AddRows(sectionRow("CONTENIDO RECICLADO"))
	m.AddRows(keyValueRow("Cobalto:", optFloat(t.RecycledContentCobalt, " %")))
	m.AddRows(keyValueRow("Plomo:", optFloat(t.RecycledContentLead, " %")))
	m.AddRows(keyValueRow("Litio:", optFloat(t.RecycledContentLithium, " %")))
	m.AddRows(keyValueRow("Níquel:", optFloat(t.RecycledContentNickel, " %")))

	if len(doc.Components) > 0 {
		m.AddRows(sectionRow("COMPONENTES"))
		m.AddRows(componentHeaderRow())
		for _, r := range componentRows(doc.Components) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow("Generado el " + doc.GeneratedAt.Format("02/01/2006 15:04") + " UTC a partir de la plantilla " + t.ID + "."))

	return render(m)
}

func componentHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Componente", 4, align.Left),
		h("Tipo", 2, align.Left),
		h("Sustancias", 3, align.Left),
		h("Notas", 2, align.Left),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func componentRows(comps []reports.DopComponent) []core.Row {
	out := make([]core.Row, 0, len(comps))
	for _, c := range comps {
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", c.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(nonEmpty(c.Component.Name, c.Component.ID), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(c.Component.Kind, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(3).Add(text.New(nonEmpty(c.Component.HazardousSubstances, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(nonEmpty(c.Notes, "-"), props.Text{Size: 8, Top: 1, Left: 1})),
		))
	}
	return out
}
