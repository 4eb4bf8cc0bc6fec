package dto

import (
	"academy-manager/pkg/coerce"

	"github.com/aarondl/null/v8"
)

type CreateEquipmentDTO struct {
	TipoDevice     string      `json:"tipo_device" validate:"required,max=100"`
	NumeroSerie    string      `json:"numero_serie" validate:"required,max=255"`
	Modelo         string      `json:"modelo" validate:"omitempty,max=100"`
	Cor            string      `json:"cor" validate:"omitempty,max=50"`
	Status         string      `json:"status" validate:"omitempty,oneof=Disponível Emprestado Manutenção Reservado"`
	ParaEmprestimo coerce.Flag `json:"para_emprestimo"`
	Responsavel    string      `json:"responsavel" validate:"omitempty,max=255"`
	Local          string      `json:"local" validate:"omitempty,max=255"`
	Convenio       string      `json:"convenio" validate:"omitempty,max=255"`
	Observacao     string      `json:"observacao"`
	Processador    string      `json:"processador" validate:"omitempty,max=100"`
	Memoria        string      `json:"memoria" validate:"omitempty,max=50"`
	Armazenamento  string      `json:"armazenamento" validate:"omitempty,max=50"`
	Tela           string      `json:"tela" validate:"omitempty,max=50"`
}

type UpdateEquipmentDTO CreateEquipmentDTO

type EquipmentDTO struct {
	ID             uint64      `json:"id"`
	TipoDevice     string      `json:"tipo_device"`
	NumeroSerie    string      `json:"numero_serie"`
	Modelo         null.String `json:"modelo"`
	Cor            null.String `json:"cor"`
	Status         string      `json:"status"`
	ParaEmprestimo bool        `json:"para_emprestimo"`
	Responsavel    null.String `json:"responsavel"`
	Local          null.String `json:"local"`
	Convenio       null.String `json:"convenio"`
	Observacao     null.String `json:"observacao"`
	Processador    null.String `json:"processador"`
	Memoria        null.String `json:"memoria"`
	Armazenamento  null.String `json:"armazenamento"`
	Tela           null.String `json:"tela"`
	DataCadastro   null.String `json:"data_cadastro"`
}
