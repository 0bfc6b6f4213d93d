package export

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/passport-api/internal/application/reports"
	domaincbam "github.com/jhoicas/passport-api/internal/domain/cbam"
)

// NsCbamReport namespace del informe trimestral.
const NsCbamReport = "urn:passport-api:cbam:quarterly-report:1"

// CbamXMLRenderer implementa reports.CbamXMLRenderer con etree.
type CbamXMLRenderer struct{}

var _ reports.CbamXMLRenderer = (*CbamXMLRenderer)(nil)

// NewCbamXMLRenderer construye el renderer.
func NewCbamXMLRenderer() *CbamXMLRenderer { return &CbamXMLRenderer{} }

// RenderCbamXML genera:
//
//	<QReport xmlns="..." period="2026-Q3" status="draft">
//	  <Declarant><Name>...</Name></Declarant>
//	  <Goods><Good><CNCode/>...</Good></Goods>
//	  <Totals>...</Totals>
//	</QReport>
func (r *CbamXMLRenderer) RenderCbamXML(doc reports.CbamDocument) ([]byte, error) {
	d := doc.Declaration
	if d == nil {
		return nil, fmt.Errorf("export: declaración vacía")
	}
	x := etree.NewDocument()
	x.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := x.CreateElement("QReport")
	root.CreateAttr("xmlns", NsCbamReport)
	root.CreateAttr("id", d.ID)
	root.CreateAttr("period", d.Period)
	root.CreateAttr("status", d.Status)
	root.CreateAttr("generatedAt", doc.GeneratedAt.UTC().Format("2006-01-02T15:04:05Z"))

	declarant := root.CreateElement("Declarant")
	declarant.CreateElement("OrganizationID").SetText(d.OrgID)
	declarant.CreateElement("Name").SetText(doc.OrgName)

	goods := root.CreateElement("Goods")
	for i, it := range d.Items {
		g := goods.CreateElement("Good")
		g.CreateAttr("line", fmt.Sprintf("%d", i+1))
		g.CreateElement("CNCode").SetText(it.CNCode)
		g.CreateElement("Description").SetText(it.ProductDescription)
		g.CreateElement("CountryOfOrigin").SetText(it.CountryOfOrigin)
		q := g.CreateElement("Quantity")
		q.CreateAttr("unit", "t")
		q.SetText(decimalOrZero(it.QuantityTonnes))

		em := g.CreateElement("EmbeddedEmissions")
		em.CreateElement("DefaultFactor").SetText(it.DefaultEmissionFactor.String())
		if it.VerifiedEmissionFactor.Valid {
			em.CreateElement("VerifiedFactor").SetText(it.VerifiedEmissionFactor.Decimal.String())
		}
		em.CreateElement("AppliedFactor").SetText(domaincbam.EffectiveFactor(it).String())
		em.CreateElement("Total").SetText(it.CalculatedEmissions.String())

		if it.SupplierName != "" || it.SupplierID != "" {
			s := g.CreateElement("Installation")
			if it.SupplierID != "" {
				s.CreateAttr("supplierId", it.SupplierID)
			}
			s.CreateElement("Name").SetText(it.SupplierName)
		}
	}

	totals := root.CreateElement("Totals")
	totals.CreateElement("Emissions").SetText(d.TotalEmissions.String())
	price := totals.CreateElement("CertificatePricePerTonne")
	price.CreateAttr("currency", "EUR")
	price.CreateAttr("pinned", fmt.Sprintf("%t", d.PricePinned))
	price.SetText(d.CertificatePricePerTonne.String())
	cost := totals.CreateElement("CertificateCostEstimate")
	cost.CreateAttr("currency", "EUR")
	cost.SetText(d.CertificateCostEstimate.StringFixed(2))

	x.Indent(2)
	out, err := x.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("export: serializar xml: %w", err)
	}
	return out, nil
}

func decimalOrZero(d decimal.NullDecimal) string {
	if !d.Valid {
		return decimal.Zero.String()
	}
	return d.Decimal.String()
}
