package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que el motor traduce a errores de dominio.
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// isUniqueViolation verifica si un error es una violación de clave única.
func isUniqueViolation(err error) bool {
	return hasSQLState(err, codeUniqueViolation)
}

// isCheckViolation verifica si un error rompió un CHECK del esquema (por
// ejemplo quantity >= 0, última línea de defensa bajo el motor).
func isCheckViolation(err error) bool {
	return hasSQLState(err, codeCheckViolation)
}

func hasSQLState(err error, code string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == code
}
