package dto

import (
	"academy-manager/pkg/coerce"

	"github.com/aarondl/null/v8"
)

type CreateStudentDTO struct {
	Nome       string      `json:"nome" form:"nome" validate:"required,max=255"`
	CPF        string      `json:"cpf" form:"cpf" validate:"omitempty,max=14"`
	Telefone   string      `json:"telefone" form:"telefone" validate:"omitempty,max=20"`
	Email      string      `json:"email" form:"email" validate:"required,email,max=255"`
	Endereco   string      `json:"endereco" form:"endereco"`
	TemAppleID coerce.Flag `json:"tem_apple_id" form:"tem_apple_id"`
	AppleID    string      `json:"apple_id" form:"apple_id" validate:"omitempty,max=255"`
	TipoAluno  string      `json:"tipo_aluno" form:"tipo_aluno" validate:"student_type"`
	DataInicio string      `json:"data_inicio" form:"data_inicio" validate:"date_ymd"`
}

// UpdateStudentDTO substitui todos os campos, como o formulário de edição envia.
type UpdateStudentDTO CreateStudentDTO

type StudentDTO struct {
	ID           uint64      `json:"id"`
	Nome         string      `json:"nome"`
	CPF          null.String `json:"cpf"`
	Telefone     null.String `json:"telefone"`
	Email        string      `json:"email"`
	Endereco     null.String `json:"endereco"`
	TemAppleID   bool        `json:"tem_apple_id"`
	AppleID      null.String `json:"apple_id"`
	TipoAluno    string      `json:"tipo_aluno"`
	DataInicio   null.String `json:"data_inicio"`
	FotoPath     null.String `json:"foto_path"`
	DataCadastro null.String `json:"data_cadastro"`
}
