package dto

import (
	"academy-manager/pkg/coerce"

	"github.com/aarondl/null/v8"
)

type CreateDeviceDTO struct {
	Tipo           string      `json:"tipo" validate:"required,max=100"`
	Modelo         string      `json:"modelo" validate:"omitempty,max=100"`
	Cor            string      `json:"cor" validate:"omitempty,max=50"`
	Polegadas      coerce.Text `json:"polegadas" validate:"omitempty,max=10"`
	Ano            coerce.Text `json:"ano" validate:"omitempty,max=10"`
	Nome           string      `json:"nome" validate:"omitempty,max=255"`
	Chip           string      `json:"chip" validate:"omitempty,max=100"`
	Memoria        string      `json:"memoria" validate:"omitempty,max=50"`
	NumeroSerie    string      `json:"numero_serie" validate:"required,max=255"`
	VersaoOS       string      `json:"versao_os" validate:"omitempty,max=100"`
	Status         string      `json:"status" validate:"omitempty,oneof=Disponível Emprestado Manutenção Reservado"`
	ParaEmprestimo coerce.Flag `json:"para_emprestimo"`
	Observacao     string      `json:"observacao"`
}

// UpdateDeviceDTO: para_emprestimo=false tira o device da lista de empréstimos (remove o registro).
type UpdateDeviceDTO CreateDeviceDTO

type DeviceDTO struct {
	ID             uint64      `json:"id"`
	Tipo           string      `json:"tipo"`
	Modelo         null.String `json:"modelo"`
	Cor            null.String `json:"cor"`
	Polegadas      null.String `json:"polegadas"`
	Ano            null.String `json:"ano"`
	Nome           null.String `json:"nome"`
	Chip           null.String `json:"chip"`
	Memoria        null.String `json:"memoria"`
	NumeroSerie    string      `json:"numero_serie"`
	VersaoOS       null.String `json:"versao_os"`
	Status         string      `json:"status"`
	ParaEmprestimo bool        `json:"para_emprestimo"`
	Observacao     null.String `json:"observacao"`
	DataCadastro   null.String `json:"data_cadastro"`
}
