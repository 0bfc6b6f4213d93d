// Package export renderers de bytes para las exportaciones: CSV (UTF-8 o Latin-1),
// XML del informe CBAM y JSON-LD de pasaportes públicos.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/passport-api/internal/application/reports"
	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// ── Columnas ──────────────────────────────────────────────────────────────────

var cbamColumns = []string{
	"cn_code", "product_description", "quantity_tonnes",
	"default_emission_factor", "verified_emission_factor", "calculated_emissions",
	"supplier_name", "country_of_origin", "certificate_cost_estimate",
}

var passportColumns = []string{
	"id", "battery_model", "gtin", "serial_number", "battery_category",
	"battery_weight_kg", "rated_capacity_kwh", "carbon_footprint_kg_per_kwh",
}

// CSVRenderer implementa reports.CbamCSVRenderer y reports.PassportCSVRenderer.
type CSVRenderer struct{}

var (
	_ reports.CbamCSVRenderer     = (*CSVRenderer)(nil)
	_ reports.PassportCSVRenderer = (*CSVRenderer)(nil)
)

// NewCSVRenderer construye el renderer.
func NewCSVRenderer() *CSVRenderer { return &CSVRenderer{} }

// RenderCbamCSV una fila por ítem. El costo por ítem usa el precio registrado en la declaración.
func (r *CSVRenderer) RenderCbamCSV(doc reports.CbamDocument, enc reports.Encoding) ([]byte, error) {
	if doc.Declaration == nil {
		return nil, fmt.Errorf("export: declaración vacía")
	}
	price := doc.Declaration.CertificatePricePerTonne
	rows := make([][]string, 0, len(doc.Declaration.Items))
	for _, it := range doc.Declaration.Items {
		rows = append(rows, []string{
			it.CNCode,
			it.ProductDescription,
			nullDecimal(it.QuantityTonnes),
			it.DefaultEmissionFactor.String(),
			nullDecimal(it.VerifiedEmissionFactor),
			it.CalculatedEmissions.String(),
			it.SupplierName,
			it.CountryOfOrigin,
			it.CalculatedEmissions.Mul(price).Round(2).StringFixed(2),
		})
	}
	return writeCSV(cbamColumns, rows, enc)
}

// RenderPassportsCSV una fila por pasaporte con los campos de identificación y rendimiento.
func (r *CSVRenderer) RenderPassportsCSV(passports []*entity.BatteryPassport, enc reports.Encoding) ([]byte, error) {
	rows := make([][]string, 0, len(passports))
	for _, p := range passports {
		rows = append(rows, []string{
			p.ID,
			p.BatteryModel,
			p.GTIN,
			p.SerialNumber,
			p.BatteryCategory,
			formatFloat(p.BatteryWeightKg),
			formatFloat(p.RatedCapacityKwh),
			formatFloat(p.CarbonFootprintKgPerKwh),
		})
	}
	return writeCSV(passportColumns, rows, enc)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func writeCSV(header []string, rows [][]string, enc reports.Encoding) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("export: escribir encabezado: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return nil, fmt.Errorf("export: escribir filas: %w", err)
	}
	if enc != reports.EncodingLatin1 {
		return buf.Bytes(), nil
	}
	// Caracteres fuera de ISO-8859-1 se sustituyen en vez de abortar la exportación.
	latin1 := encoding.ReplaceUnsupported(charmap.ISO8859_1.NewEncoder())
	out, _, err := transform.Bytes(latin1, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("export: convertir a latin1: %w", err)
	}
	return out, nil
}

func nullDecimal(d decimal.NullDecimal) string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
