package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

type BookLoan struct {
	ID                    uint64      `db:"id"`
	ExemplarID            uint64      `db:"exemplar_id"`
	AlunoID               uint64      `db:"aluno_id"`
	DataRetirada          time.Time   `db:"data_retirada"`
	DataPrevisaoDevolucao time.Time   `db:"data_previsao_devolucao"`
	DataDevolucaoReal     null.Time   `db:"data_devolucao_real"`
	Status                string      `db:"status"`
	Renovacoes            int         `db:"renovacoes"`
	Observacao            null.String `db:"observacao"`
	CriadoPor             null.Uint64 `db:"criado_por"`
	Assinatura            null.String `db:"assinatura"`

	AlunoNome     string      `db:"-"`
	AlunoEmail    string      `db:"-"`
	LivroTitulo   string      `db:"-"`
	LivroAutor    string      `db:"-"`
	CodigoBarras  string      `db:"-"`
	CriadoPorNome null.String `db:"-"`
}

// IsOpen diz se o exemplar ainda está com o aluno.
func (l BookLoan) IsOpen() bool {
	return l.Status == LoanActive || l.Status == LoanOverdue
}
