package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos SQLSTATE que el almacén traduce a errores de dominio.
const (
	codeUniqueViolation  = "23505"
	codeLockNotAvailable = "55P03" // lock_timeout vencido
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// isUniqueViolation número de documento o fila de inventario ya existente.
func isUniqueViolation(err error) bool {
	return pgCode(err) == codeUniqueViolation
}

// isLockTimeout otra transacción retuvo la fila más que lock_timeout.
func isLockTimeout(err error) bool {
	return pgCode(err) == codeLockNotAvailable
}
