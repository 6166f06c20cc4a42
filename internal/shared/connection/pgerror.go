package connection

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// UniqueViolation reports whether err is a Postgres unique violation and, if
// so, the name of the violated constraint. The string fallback covers drivers
// that flatten the error before it reaches us.
func UniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == uniqueViolation {
			return pgErr.ConstraintName, true
		}
		return "", false
	}
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") || strings.Contains(msg, "sqlstate 23505") {
		return "", true
	}
	return "", false
}
