package dto

import "github.com/aarondl/null/v8"

type CreateBookLoanDTO struct {
	AlunoID      uint64 `json:"aluno_id" validate:"required"`
	CodigoBarras string `json:"codigo_barras" validate:"required"`
	DataRetirada string `json:"data_retirada" validate:"date_ymd"`
	Observacao   string `json:"observacao"`
	Assinatura   string `json:"assinatura"`
}

// ReturnBookDTO identifica o empréstimo pelo id ou pelo código de barras lido.
type ReturnBookDTO struct {
	EmprestimoID uint64 `json:"emprestimo_id" validate:"required_without=CodigoBarras"`
	CodigoBarras string `json:"codigo_barras" validate:"required_without=EmprestimoID"`
}

type BookLoanDTO struct {
	ID                    uint64      `json:"id"`
	AlunoID               uint64      `json:"aluno_id"`
	ExemplarID            uint64      `json:"exemplar_id"`
	DataRetirada          string      `json:"data_retirada"`
	DataPrevisaoDevolucao string      `json:"data_previsao_devolucao"`
	DataDevolucaoReal     null.String `json:"data_devolucao_real"`
	Status                string      `json:"status"`
	Renovacoes            int         `json:"renovacoes"`
	Observacao            null.String `json:"observacao"`
	Titulo                string      `json:"titulo"`
	Autor                 string      `json:"autor"`
	CodigoBarras          string      `json:"codigo_barras"`
	AlunoNome             string      `json:"aluno_nome"`
	CriadoPorNome         null.String `json:"criado_por_nome"`
}
