package dto

import (
	"academy-manager/pkg/coerce"

	"github.com/aarondl/null/v8"
)

type CreateBookDTO struct {
	Titulo    string      `json:"titulo" form:"titulo" validate:"required,max=255"`
	Autor     string      `json:"autor" form:"autor" validate:"required,max=255"`
	ISBN      string      `json:"isbn" form:"isbn" validate:"omitempty,max=20"`
	Categoria string      `json:"categoria" form:"categoria" validate:"omitempty,max=100"`
	Ano       coerce.Text `json:"ano" form:"ano" validate:"omitempty,numeric"`
	Editora   string      `json:"editora" form:"editora" validate:"omitempty,max=100"`
	Edicao    string      `json:"edicao" form:"edicao" validate:"omitempty,max=50"`
	Descricao string      `json:"descricao" form:"descricao"`
}

type UpdateBookDTO CreateBookDTO

type BookDTO struct {
	ID              uint64      `json:"id"`
	Titulo          string      `json:"titulo"`
	Autor           string      `json:"autor"`
	ISBN            null.String `json:"isbn"`
	Categoria       null.String `json:"categoria"`
	Ano             null.Int    `json:"ano"`
	Editora         null.String `json:"editora"`
	Edicao          null.String `json:"edicao"`
	Descricao       null.String `json:"descricao"`
	FotoPath        null.String `json:"foto_path"`
	DataCadastro    null.String `json:"data_cadastro"`
	TotalExemplares int64       `json:"total_exemplares"`
	Disponiveis     int64       `json:"disponiveis"`
}

type CreateCopyDTO struct {
	LivroID       uint64 `json:"livro_id" validate:"required"`
	CodigoBarras  string `json:"codigo_barras" validate:"required,max=50"`
	Localizacao   string `json:"localizacao" validate:"omitempty,max=100"`
	Observacao    string `json:"observacao"`
	DataAquisicao string `json:"data_aquisicao" validate:"date_ymd"`
}

// UpdateCopyDTO altera só os campos enviados.
type UpdateCopyDTO struct {
	CodigoBarras *string `json:"codigo_barras" validate:"omitempty,min=1,max=50"`
	Localizacao  *string `json:"localizacao" validate:"omitempty,max=100"`
	Observacao   *string `json:"observacao"`
	Status       *string `json:"status" validate:"omitempty,oneof=Disponível Emprestado"`
}

type CopyDTO struct {
	ID            uint64      `json:"id"`
	LivroID       uint64      `json:"livro_id"`
	CodigoBarras  string      `json:"codigo_barras"`
	Status        string      `json:"status"`
	Localizacao   null.String `json:"localizacao"`
	Observacao    null.String `json:"observacao"`
	DataAquisicao null.String `json:"data_aquisicao"`
	LivroTitulo   string      `json:"titulo"`
	LivroAutor    string      `json:"autor"`
}
