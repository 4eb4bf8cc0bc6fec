package database

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	apperrors "academy-manager/pkg/errors"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	testCases := []struct {
		name string
		err  error
		kind ViolationKind
	}{
		{"mysql duplicate", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'S1' for key 'numero_serie'"}, UniqueViolation},
		{"mysql fk", &mysql.MySQLError{Number: 1451, Message: "Cannot delete or update a parent row"}, ForeignKeyViolation},
		{"mysql not null", &mysql.MySQLError{Number: 1048, Message: "Column 'nome' cannot be null"}, NotNullViolation},
		{"postgres unique", &pgconn.PgError{Code: "23505", ConstraintName: "alunos_email_key"}, UniqueViolation},
		{"postgres fk", &pgconn.PgError{Code: "23503"}, ForeignKeyViolation},
		{"postgres check", &pgconn.PgError{Code: "23514"}, CheckViolation},
		{"sqlite unique", errors.New("constraint failed: UNIQUE constraint failed: alunos.cpf (2067)"), UniqueViolation},
		{"sqlite fk", errors.New("constraint failed: FOREIGN KEY constraint failed (787)"), ForeignKeyViolation},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Normalize(fmt.Errorf("wrap: %w", tc.err))
			require.ErrorIs(t, err, ErrIntegrityViolation)
			v, ok := AsIntegrityViolation(err)
			require.True(t, ok)
			assert.Equal(t, tc.kind, v.Kind)
		})
	}
}

func TestNormalize_Passthrough(t *testing.T) {
	assert.Nil(t, Normalize(nil))
	assert.ErrorIs(t, Normalize(sql.ErrNoRows), sql.ErrNoRows)

	plain := errors.New("syntax error")
	assert.Equal(t, plain, Normalize(plain))

	assert.ErrorIs(t, Normalize(driver.ErrBadConn), apperrors.ErrDatabaseUnavailable)
	assert.NotErrorIs(t, Normalize(&mysql.MySQLError{Number: 1064}), ErrIntegrityViolation)
}

func TestIntegrityViolation_Mentions(t *testing.T) {
	err := Normalize(&pgconn.PgError{Code: "23505", ConstraintName: "alunos_cpf_key", Detail: "Key (cpf)=(123) already exists."})
	v, ok := AsIntegrityViolation(err)
	require.True(t, ok)
	assert.True(t, v.Mentions("cpf"))
	assert.False(t, v.Mentions("email"))
}
