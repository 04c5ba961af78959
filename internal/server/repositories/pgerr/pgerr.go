// Package pgerr translates Postgres driver errors into common sentinels.
package pgerr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation  = "23505"
	checkViolation   = "23514"
	notNullViolation = "23502"
	invalidTextRepr  = "22P02"
)

// IsUniqueViolation reports whether err is a duplicate key error.
func IsUniqueViolation(err error) bool {
	return hasCode(err, uniqueViolation)
}

// IsInvalidInput reports constraint or cast failures caused by caller input
// such as an empty title or a malformed uuid.
func IsInvalidInput(err error) bool {
	return hasCode(err, checkViolation, notNullViolation, invalidTextRepr)
}

func hasCode(err error, codes ...string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	for _, c := range codes {
		if pgErr.Code == c {
			return true
		}
	}
	return false
}
