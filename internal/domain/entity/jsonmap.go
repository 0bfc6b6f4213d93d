package entity

// JSONMap bolsa clave-valor libre (datos públicos adicionales, datos restringidos, fin de vida,
// especificaciones, payloads de jobs). Las claves están documentadas pero no se validan;
// se persiste como jsonb.
type JSONMap map[string]any

// Clone copia superficial; los valores anidados se comparten.
func (m JSONMap) Clone() JSONMap {
	if m == nil {
		return nil
	}
	out := make(JSONMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
