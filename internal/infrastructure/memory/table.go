package memory

// table filas de un tipo en orden de inserción. Guarda valores (no punteros) para que clonar el
// estado sea una copia de slices y ningún caller pueda mutar una fila sin pasar por el repositorio.
type table[T any] struct {
	rows []T
}

func (t table[T]) clone() table[T] {
	rows := make([]T, len(t.rows))
	copy(rows, t.rows)
	return table[T]{rows: rows}
}

func (t *table[T]) insert(v T) { t.rows = append(t.rows, v) }

// find devuelve una copia de la primera fila que cumple match.
func (t *table[T]) find(match func(*T) bool) *T {
	for i := range t.rows {
		if match(&t.rows[i]) {
			c := t.rows[i]
			return &c
		}
	}
	return nil
}

func (t *table[T]) exists(match func(*T) bool) bool {
	for i := range t.rows {
		if match(&t.rows[i]) {
			return true
		}
	}
	return false
}

// replace sustituye la primera fila que cumple match. false si no hay ninguna.
func (t *table[T]) replace(match func(*T) bool, v T) bool {
	for i := range t.rows {
		if match(&t.rows[i]) {
			t.rows[i] = v
			return true
		}
	}
	return false
}

// newestFirst copias de las filas que cumplen match, de la más reciente a la más antigua.
func (t *table[T]) newestFirst(match func(*T) bool) []*T {
	var out []*T
	for i := len(t.rows) - 1; i >= 0; i-- {
		if match(&t.rows[i]) {
			c := t.rows[i]
			out = append(out, &c)
		}
	}
	return out
}

// oldestFirst igual que newestFirst en orden de inserción.
func (t *table[T]) oldestFirst(match func(*T) bool) []*T {
	var out []*T
	for i := range t.rows {
		if match(&t.rows[i]) {
			c := t.rows[i]
			out = append(out, &c)
		}
	}
	return out
}

func (t *table[T]) count(match func(*T) bool) int {
	n := 0
	for i := range t.rows {
		if match(&t.rows[i]) {
			n++
		}
	}
	return n
}
