package repository

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/unas-org/unas-backend/pkg/domain"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var (
	// Key (unit_id)=(6f1c...) is not present in table "units".
	fkDetailColumn = regexp.MustCompile(`Key \(([a-z_]+)\)=`)
	// orders_budget_id_fkey
	fkConstraintColumn = regexp.MustCompile(`_([a-z]+_id)_fkey$`)
	// any *_id mentioned in a driver message
	fkTextColumn = regexp.MustCompile(`\b([a-z]+_id)\b`)
)

// MapGormErrorToDomain converts driver and GORM errors to domain errors,
// walking the error chain so wrapped errors are recognised too.
func MapGormErrorToDomain(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, pgErr.Detail)
		case pgForeignKeyViolation:
			return &domain.ReferenceError{
				Column:     referencedColumn(pgErr.Detail, pgErr.ConstraintName, pgErr.Message),
				Constraint: pgErr.ConstraintName,
				Err:        err,
			}
		}
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domain.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domain.ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return &domain.ReferenceError{Column: referencedColumn(err.Error(), "", ""), Err: err}
	}

	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "foreign key") {
		return &domain.ReferenceError{Column: referencedColumn(msg, "", ""), Err: err}
	}
	return err
}

// referencedColumn extracts the failing reference column from a foreign key
// violation, trying the detail first, then the constraint name, then any
// *_id word in the message.
func referencedColumn(detail, constraint, message string) string {
	if m := fkDetailColumn.FindStringSubmatch(detail); m != nil {
		return m[1]
	}
	if m := fkConstraintColumn.FindStringSubmatch(constraint); m != nil {
		return m[1]
	}
	for _, text := range []string{detail, message} {
		if m := fkTextColumn.FindStringSubmatch(strings.ToLower(text)); m != nil {
			return m[1]
		}
	}
	return ""
}

// WrapError runs a GORM operation and maps its error.
func WrapError(op func() error) error {
	return MapGormErrorToDomain(op())
}
