package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

const (
	LoanActive   = "Ativo"
	LoanFinished = "Finalizado"
	LoanOverdue  = "Atrasado"
)

type Loan struct {
	ID            uint64      `db:"id"`
	AlunoID       uint64      `db:"aluno_id"`
	DeviceID      uint64      `db:"device_id"`
	Acessorios    null.String `db:"acessorios"`
	DataRetirada  time.Time   `db:"data_retirada"`
	DataDevolucao null.Time   `db:"data_devolucao"`
	Assinatura    null.String `db:"assinatura"`
	Status        string      `db:"status"`

	// Campos do JOIN, não são colunas de emprestimos.
	AlunoNome   string      `db:"-"`
	DeviceNome  null.String `db:"-"`
	DeviceTipo  string      `db:"-"`
	Modelo      null.String `db:"-"`
	NumeroSerie string      `db:"-"`
}
