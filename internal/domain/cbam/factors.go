// Package cbam contiene el motor de cálculo CBAM: cascada de resolución de factores de emisión,
// emisiones por ítem, totales de la declaración y costo estimado de certificados.
// No depende de infraestructura; lo consumen el caso de uso y los jobs de recálculo.
package cbam

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// CNPrefixLen caracteres del código CN usados como clave de la tabla de factores.
const CNPrefixLen = 4

// MaxEmissionFactor cota superior aceptada para un factor (tCO2e por tonelada).
var MaxEmissionFactor = decimal.NewFromInt(100)

// builtinFactors factores por defecto de la jurisdicción (tCO2e/t), por prefijo CN.
var builtinFactors = map[string]decimal.Decimal{
	"7208": decimal.RequireFromString("2.1"),  // laminados planos de hierro/acero
	"7207": decimal.RequireFromString("2.4"),  // semiproductos de hierro/acero
	"7210": decimal.RequireFromString("1.9"),  // laminados revestidos
	"7601": decimal.RequireFromString("16.0"), // aluminio en bruto
	"2523": decimal.RequireFromString("0.8"),  // cemento
}

// CNPrefix devuelve los primeros 4 caracteres del código CN (o el código completo si es más corto).
func CNPrefix(cnCode string) string {
	code := strings.TrimSpace(cnCode)
	if len(code) <= CNPrefixLen {
		return code
	}
	return code[:CNPrefixLen]
}

// BuiltinFactor factor de la tabla incorporada para el prefijo; cero si no hay entrada.
func BuiltinFactor(cnPrefix string) decimal.Decimal {
	if f, ok := builtinFactors[cnPrefix]; ok {
		return f
	}
	return decimal.Zero
}

// BuiltinPrefixes prefijos cubiertos por la tabla incorporada, ordenados.
func BuiltinPrefixes() []string {
	out := make([]string, 0, len(builtinFactors))
	for k := range builtinFactors {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
