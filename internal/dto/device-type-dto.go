package dto

import (
	"academy-manager/pkg/coerce"

	"github.com/aarondl/null/v8"
)

type CreateDeviceTypeDTO struct {
	Nome           string      `json:"nome" validate:"required,max=255"`
	Categoria      string      `json:"categoria" validate:"required,max=100"`
	Descricao      string      `json:"descricao"`
	ParaEmprestimo coerce.Flag `json:"para_emprestimo"`
}

type UpdateDeviceTypeDTO CreateDeviceTypeDTO

type DeviceTypeDTO struct {
	ID             uint64      `json:"id"`
	Nome           string      `json:"nome"`
	Categoria      null.String `json:"categoria"`
	Descricao      null.String `json:"descricao"`
	ParaEmprestimo bool        `json:"para_emprestimo"`
	DataCadastro   null.String `json:"data_cadastro"`
}
