package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de violación de constraint único.
const pgUniqueViolation = "23505"

// isUniqueViolation detecta una violación de constraint único. Lo usan los
// repos de repuestos, bodegas y usuarios para traducirla a ErrDuplicate /
// ErrEmailAlreadyExists en vez de propagar el *pgconn.PgError crudo.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
