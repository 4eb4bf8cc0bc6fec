package entities

import "github.com/aarondl/null/v8"

type DeviceType struct {
	ID             uint64      `db:"id"`
	Nome           string      `db:"nome"`
	Categoria      null.String `db:"categoria"`
	Descricao      null.String `db:"descricao"`
	ParaEmprestimo bool        `db:"para_emprestimo"`
	DataCadastro   null.Time   `db:"data_cadastro"`
}
