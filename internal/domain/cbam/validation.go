package cbam

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/passport-api/internal/domain"
)

// ItemFigures valores numéricos de un ítem a validar antes de persistir.
type ItemFigures struct {
	CNCode                 string
	QuantityTonnes         decimal.NullDecimal
	DefaultEmissionFactor  decimal.NullDecimal
	VerifiedEmissionFactor decimal.NullDecimal
}

// ValidateItem comprueba el código CN y los rangos: cantidad ≥ 0, factores en [0, MaxEmissionFactor].
// field es el prefijo de los nombres de campo en el error (ej. "items[2]").
func ValidateItem(field string, in ItemFigures) []string {
	var bad []string
	if len(strings.TrimSpace(in.CNCode)) < CNPrefixLen {
		bad = append(bad, field+".cn_code")
	}
	if in.QuantityTonnes.Valid && in.QuantityTonnes.Decimal.IsNegative() {
		bad = append(bad, field+".quantity_tonnes")
	}
	if in.DefaultEmissionFactor.Valid && !ValidFactor(in.DefaultEmissionFactor.Decimal) {
		bad = append(bad, field+".default_emission_factor")
	}
	if in.VerifiedEmissionFactor.Valid && !ValidFactor(in.VerifiedEmissionFactor.Decimal) {
		bad = append(bad, field+".verified_emission_factor")
	}
	return bad
}

// ValidFactor indica si un factor está dentro de [0, MaxEmissionFactor].
func ValidFactor(f decimal.Decimal) bool {
	return !f.IsNegative() && f.LessThanOrEqual(MaxEmissionFactor)
}

// ValidatePrice el precio por tonelada no puede ser negativo.
func ValidatePrice(price decimal.Decimal) error {
	if price.IsNegative() {
		return domain.NewValidationError("precio de certificado fuera de rango", "certificate_price_per_tonne")
	}
	return nil
}
