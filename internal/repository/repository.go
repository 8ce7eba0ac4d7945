// Package repository is the persistence adapter: keyed lookups and writes over gorm.
// Storage failures come back as ErrNotFound, ErrDuplicate, or a wrapped driver error.
package repository

import (
	stderrors "errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when no record matches the key.
	ErrNotFound = stderrors.New("record not found")
	// ErrDuplicate is returned when a write trips a unique constraint.
	ErrDuplicate = stderrors.New("duplicate key")
	// ErrReferenced is returned when a write trips a foreign key: the row
	// points at a missing parent, or a parent is still referenced.
	ErrReferenced = stderrors.New("foreign key violation")
)

// translate maps driver errors onto the package sentinels and wraps the rest.
func translate(err error, msg string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case isUniqueViolation(err):
		return errors.Wrap(ErrDuplicate, msg)
	case isForeignKeyViolation(err):
		return errors.Wrap(ErrReferenced, msg)
	default:
		return errors.Wrap(err, msg)
	}
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite without error translation
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
