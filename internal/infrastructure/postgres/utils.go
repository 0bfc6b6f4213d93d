package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/passport-api/internal/domain"
)

// Querier operaciones comunes a *pgxpool.Pool y pgx.Tx; los repositorios aceptan cualquiera de los dos.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// writeErr traduce violaciones de unicidad a domain.ErrConflict y envuelve el resto con contexto.
func writeErr(op string, err error) error {
	if err == nil {
		return nil
	}
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

// nullID convierte "" (fila global / referencia ausente) en NULL.
func nullID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

// validID indica si id es un UUID. Las columnas id son UUID y un valor mal formado haría fallar
// la consulta con 22P02 y abortaría la transacción; los repositorios lo tratan como fila inexistente.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}

// notFound (nil, nil) cuando no hay filas; el resto se envuelve.
func notFound[T any](op string, err error) (*T, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return nil, fmt.Errorf("%s: %w", op, err)
}

// collect recorre rows aplicando scan y cierra el cursor.
func collect[T any](rows pgx.Rows, op string, scan func(pgx.Rows) (*T, error)) ([]*T, error) {
	defer rows.Close()
	var list []*T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", op, err)
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}
