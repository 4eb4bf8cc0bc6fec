package repositories

import (
	"context"
	"errors"
	"fmt"

	"academy-manager/pkg/database"
)

// TxManagerInterface agrupa as escritas de um caso de uso numa transação só:
// empréstimo, status do device e log de eventos entram ou saem juntos.
type TxManagerInterface interface {
	RunInTransaction(ctx context.Context, fn func(tx database.Querier) error) error
}

type TxManager struct {
	db *database.DB
}

func NewTxManager(db *database.DB) TxManagerInterface {
	return &TxManager{db: db}
}

func (m *TxManager) RunInTransaction(ctx context.Context, fn func(tx database.Querier) error) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("não foi possível iniciar a transação: %w", err)
	}

	committed := false
	defer func() {
		// panic ou erro: desfaz tudo
		if !committed {
			_ = tx.Rollback()
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.Join(errors.New("transação cancelada"), err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("erro ao confirmar a transação: %w", err)
	}
	committed = true
	return nil
}
