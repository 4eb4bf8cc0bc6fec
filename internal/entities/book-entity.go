package entities

import "github.com/aarondl/null/v8"

type Book struct {
	ID           uint64      `db:"id"`
	Titulo       string      `db:"titulo"`
	Autor        string      `db:"autor"`
	ISBN         null.String `db:"isbn"`
	Categoria    null.String `db:"categoria"`
	Ano          null.Int    `db:"ano"`
	Editora      null.String `db:"editora"`
	Edicao       null.String `db:"edicao"`
	Descricao    null.String `db:"descricao"`
	FotoPath     null.String `db:"foto_path"`
	DataCadastro null.Time   `db:"data_cadastro"`

	TotalExemplares int64 `db:"-"`
	Disponiveis     int64 `db:"-"`
}
