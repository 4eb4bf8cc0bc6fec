package entities

import "github.com/aarondl/null/v8"

const (
	CopyAvailable = "Disponível"
	CopyLoaned    = "Emprestado"
)

type Copy struct {
	ID            uint64      `db:"id"`
	LivroID       uint64      `db:"livro_id"`
	CodigoBarras  string      `db:"codigo_barras"`
	Status        string      `db:"status"`
	Localizacao   null.String `db:"localizacao"`
	Observacao    null.String `db:"observacao"`
	DataAquisicao null.Time   `db:"data_aquisicao"`

	LivroTitulo string `db:"-"`
	LivroAutor  string `db:"-"`
}
