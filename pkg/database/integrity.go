package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	apperrors "academy-manager/pkg/errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrIntegrityViolation = errors.New("violação de integridade")

type ViolationKind string

const (
	UniqueViolation     ViolationKind = "unique"
	ForeignKeyViolation ViolationKind = "foreign_key"
	NotNullViolation    ViolationKind = "not_null"
	CheckViolation      ViolationKind = "check"
)

// IntegrityViolation é o erro único para restrições violadas, qualquer que seja o banco.
type IntegrityViolation struct {
	Kind   ViolationKind
	Detail string
	Err    error
}

func (e *IntegrityViolation) Error() string {
	return fmt.Sprintf("violação de integridade (%s): %s", e.Kind, e.Detail)
}

func (e *IntegrityViolation) Unwrap() error { return e.Err }

func (e *IntegrityViolation) Is(target error) bool { return target == ErrIntegrityViolation }

// Mentions diz se a restrição violada cita a coluna (ex.: "cpf", "email").
func (e *IntegrityViolation) Mentions(column string) bool {
	return strings.Contains(strings.ToLower(e.Detail), strings.ToLower(column))
}

// AsIntegrityViolation extrai a violação de uma cadeia de erros.
func AsIntegrityViolation(err error) (*IntegrityViolation, bool) {
	var v *IntegrityViolation
	if errors.As(err, &v) {
		return v, true
	}
	return nil, false
}

// Normalize converte erros específicos de driver nos erros do adaptador.
func Normalize(err error) error {
	if err == nil || errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if _, ok := AsIntegrityViolation(err); ok {
		return err
	}

	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		switch myErr.Number {
		case 1062:
			return &IntegrityViolation{Kind: UniqueViolation, Detail: myErr.Message, Err: err}
		case 1451, 1452:
			return &IntegrityViolation{Kind: ForeignKeyViolation, Detail: myErr.Message, Err: err}
		case 1048:
			return &IntegrityViolation{Kind: NotNullViolation, Detail: myErr.Message, Err: err}
		}
		return err
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if strings.HasPrefix(pgErr.Code, "23") {
			detail := pgErr.ConstraintName + " " + pgErr.Message + " " + pgErr.Detail
			switch pgErr.Code {
			case "23505":
				return &IntegrityViolation{Kind: UniqueViolation, Detail: detail, Err: err}
			case "23503":
				return &IntegrityViolation{Kind: ForeignKeyViolation, Detail: detail, Err: err}
			case "23502":
				return &IntegrityViolation{Kind: NotNullViolation, Detail: detail, Err: err}
			default:
				return &IntegrityViolation{Kind: CheckViolation, Detail: detail, Err: err}
			}
		}
		return err
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return &IntegrityViolation{Kind: UniqueViolation, Detail: msg, Err: err}
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return &IntegrityViolation{Kind: ForeignKeyViolation, Detail: msg, Err: err}
	case strings.Contains(msg, "NOT NULL constraint failed"):
		return &IntegrityViolation{Kind: NotNullViolation, Detail: msg, Err: err}
	case strings.Contains(msg, "constraint failed"):
		return &IntegrityViolation{Kind: CheckViolation, Detail: msg, Err: err}
	}

	var opErr *net.OpError
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, mysql.ErrInvalidConn) || errors.As(err, &opErr) {
		return fmt.Errorf("%w: %v", apperrors.ErrDatabaseUnavailable, err)
	}
	return err
}
