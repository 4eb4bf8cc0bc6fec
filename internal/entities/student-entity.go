package entities

import "github.com/aarondl/null/v8"

const (
	StudentRegular    = "Regular"
	StudentFoundation = "Foundation"
)

type Student struct {
	ID           uint64      `db:"id"`
	Nome         string      `db:"nome"`
	CPF          null.String `db:"cpf"`
	Telefone     null.String `db:"telefone"`
	Email        string      `db:"email"`
	Endereco     null.String `db:"endereco"`
	TemAppleID   bool        `db:"tem_apple_id"`
	AppleID      null.String `db:"apple_id"`
	TipoAluno    string      `db:"tipo_aluno"`
	DataInicio   null.Time   `db:"data_inicio"`
	FotoPath     null.String `db:"foto_path"`
	DataCadastro null.Time   `db:"data_cadastro"`
}
