package database

import (
	"context"
	"database/sql"
	"errors"

	apperrors "academy-manager/pkg/errors"

	sq "github.com/Masterminds/squirrel"
)

// Querier é o contrato comum a *DB e *Tx. Repositórios dependem só dele,
// assim a mesma consulta roda dentro ou fora de uma transação.
type Querier interface {
	Dialect() Dialect
	Builder() sq.StatementBuilderType
	Exec(ctx context.Context, q sq.Sqlizer) (int64, error)
	ExecRaw(ctx context.Context, query string, args ...interface{}) (int64, error)
	Query(ctx context.Context, q sq.Sqlizer) ([]Row, error)
	QueryRaw(ctx context.Context, query string, args ...interface{}) ([]Row, error)
	Get(ctx context.Context, q sq.Sqlizer) (Row, error)
	Insert(ctx context.Context, q sq.InsertBuilder) (uint64, error)
}

type runner interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
}

type session struct {
	run     runner
	dialect Dialect
	builder sq.StatementBuilderType
}

func (s session) Dialect() Dialect { return s.dialect }

func (s session) Builder() sq.StatementBuilderType { return s.builder }

// Exec devolve o número de linhas afetadas.
func (s session) Exec(ctx context.Context, q sq.Sqlizer) (int64, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	return s.exec(ctx, query, args...)
}

func (s session) ExecRaw(ctx context.Context, query string, args ...interface{}) (int64, error) {
	query, err := s.dialect.Rebind(query)
	if err != nil {
		return 0, err
	}
	return s.exec(ctx, query, args...)
}

func (s session) exec(ctx context.Context, query string, args ...interface{}) (int64, error) {
	res, err := s.run.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, Normalize(err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, Normalize(err)
	}
	return affected, nil
}

func (s session) Query(ctx context.Context, q sq.Sqlizer) ([]Row, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, err
	}
	return s.query(ctx, query, args...)
}

func (s session) QueryRaw(ctx context.Context, query string, args ...interface{}) ([]Row, error) {
	query, err := s.dialect.Rebind(query)
	if err != nil {
		return nil, err
	}
	return s.query(ctx, query, args...)
}

func (s session) query(ctx context.Context, query string, args ...interface{}) ([]Row, error) {
	rows, err := s.run.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, Normalize(err)
	}
	result, err := scanRows(rows)
	if err != nil {
		return nil, Normalize(err)
	}
	return result, nil
}

// Get devolve a primeira linha ou apperrors.ErrNotFound.
func (s session) Get(ctx context.Context, q sq.Sqlizer) (Row, error) {
	rows, err := s.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, apperrors.ErrNotFound
	}
	return rows[0], nil
}

// Insert executa o insert e devolve o id gerado.
func (s session) Insert(ctx context.Context, q sq.InsertBuilder) (uint64, error) {
	if s.dialect == Postgres {
		query, args, err := q.Suffix("RETURNING id").ToSql()
		if err != nil {
			return 0, err
		}
		rows, err := s.query(ctx, query, args...)
		if err != nil {
			return 0, err
		}
		if len(rows) == 0 {
			return 0, nil
		}
		return rows[0].Uint64("id"), nil
	}

	query, args, err := q.ToSql()
	if err != nil {
		return 0, err
	}
	res, err := s.run.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, Normalize(err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func IsNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}
