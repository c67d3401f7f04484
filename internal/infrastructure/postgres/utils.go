package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código de error de PostgreSQL para violación de constraint único.
const uniqueViolationCode = "23505"

// isUniqueViolation indica si err proviene de un UNIQUE violado (el SKU de
// products es el único constraint de este tipo en el esquema).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
