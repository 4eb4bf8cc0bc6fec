package dto

import "github.com/aarondl/null/v8"

type CreateLoanDTO struct {
	AlunoID       uint64 `json:"aluno_id" validate:"required"`
	DeviceID      uint64 `json:"device_id" validate:"required"`
	Acessorios    string `json:"acessorios"`
	DataRetirada  string `json:"data_retirada" validate:"date_ymd"`
	DataDevolucao string `json:"data_devolucao" validate:"date_ymd"`
	Assinatura    string `json:"assinatura"`
}

type LoanSignatureDTO struct {
	EmprestimoID   uint64 `json:"emprestimo_id" validate:"required"`
	TipoAssinatura string `json:"tipo_assinatura" validate:"omitempty,oneof=retirada devolucao"`
	Assinatura     string `json:"assinatura" validate:"required"`
}

type LoanDTO struct {
	ID            uint64      `json:"id"`
	AlunoID       uint64      `json:"aluno_id"`
	DeviceID      uint64      `json:"device_id"`
	Acessorios    null.String `json:"acessorios"`
	DataRetirada  string      `json:"data_retirada"`
	DataDevolucao null.String `json:"data_devolucao"`
	Assinatura    null.String `json:"assinatura"`
	Status        string      `json:"status"`
	AlunoNome     string      `json:"aluno_nome"`
	DeviceNome    null.String `json:"device_nome"`
	DeviceTipo    string      `json:"device_tipo"`
	Modelo        null.String `json:"modelo"`
	NumeroSerie   string      `json:"numero_serie"`
}
