package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	// ErrNotFound cubre tanto "no existe" como "pertenece a otra organización": el caller no debe poder distinguirlos.
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
	// ErrConflict violación de unicidad (ej. número de serie duplicado).
	ErrConflict = errors.New("conflicto con el estado actual")
	// ErrUnsupported tipo de job, importación o exportación desconocido.
	ErrUnsupported = errors.New("operación no soportada")
)

// ValidationError enumera todos los campos faltantes o fuera de rango, no solo el primero.
type ValidationError struct {
	Fields  []string
	Message string
}

// NewValidationError construye el error con la lista de campos afectados.
func NewValidationError(message string, fields ...string) *ValidationError {
	return &ValidationError{Fields: fields, Message: message}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	return e.Message + ": " + strings.Join(e.Fields, ", ")
}

// Unwrap permite errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
