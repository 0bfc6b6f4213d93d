package cbam

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/passport-api/internal/domain/entity"
)

// FactorSources factores candidatos para resolver el factor por defecto de un ítem.
// Un campo sin Valid significa "no hay factor de esa fuente".
type FactorSources struct {
	// Pinned factor por defecto enviado explícitamente por el caller en el ítem.
	Pinned decimal.NullDecimal
	// Tenant factor de la tabla de la organización para el prefijo CN.
	Tenant decimal.NullDecimal
	// Supplier factor por defecto del proveedor, solo si el proveedor pertenece a la organización.
	Supplier decimal.NullDecimal
}

// ResolveDefaultFactor aplica la cascada de factores por defecto:
//
//	pinned → tabla de la organización → tabla incorporada → 0
//
// y, si el resultado es cero, el factor del proveedor como último recurso.
// El factor verificado no participa aquí: se aplica en EffectiveFactor.
func ResolveDefaultFactor(cnCode string, src FactorSources) decimal.Decimal {
	var factor decimal.Decimal
	switch {
	case src.Pinned.Valid:
		factor = src.Pinned.Decimal
	case src.Tenant.Valid:
		factor = src.Tenant.Decimal
	default:
		factor = BuiltinFactor(CNPrefix(cnCode))
	}
	if factor.IsZero() && src.Supplier.Valid {
		factor = src.Supplier.Decimal
	}
	return factor
}

// EffectiveFactor factor usado para las emisiones: el verificado siempre gana si está presente
// (incluso si vale cero); si no, el factor por defecto del ítem.
func EffectiveFactor(item *entity.CbamItem) decimal.Decimal {
	if item.VerifiedEmissionFactor.Valid {
		return item.VerifiedEmissionFactor.Decimal
	}
	return item.DefaultEmissionFactor
}

// CalculateEmissions emisiones del ítem = cantidad × factor efectivo. Cantidad ausente cuenta como cero.
func CalculateEmissions(item *entity.CbamItem) decimal.Decimal {
	if !item.QuantityTonnes.Valid {
		return decimal.Zero
	}
	return item.QuantityTonnes.Decimal.Mul(EffectiveFactor(item))
}

// CertificateCost costo de certificados para unas emisiones a un precio por tonelada.
func CertificateCost(emissions, pricePerTonne decimal.Decimal) decimal.Decimal {
	return emissions.Mul(pricePerTonne)
}

// Recalculate recomputa las emisiones de cada ítem y los agregados de la declaración
// con su precio actual. Modifica d e items in-place.
func Recalculate(d *entity.CbamDeclaration) {
	total := decimal.Zero
	for _, item := range d.Items {
		item.CalculatedEmissions = CalculateEmissions(item)
		total = total.Add(item.CalculatedEmissions)
	}
	d.TotalEmissions = total
	d.CertificateCostEstimate = CertificateCost(total, d.CertificatePricePerTonne)
}
