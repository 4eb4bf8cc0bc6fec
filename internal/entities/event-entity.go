package entities

import (
	"time"

	"github.com/aarondl/null/v8"
)

const DefaultEventColor = "#007bff"

type Event struct {
	ID            uint64      `db:"id"`
	Titulo        string      `db:"titulo"`
	Descricao     null.String `db:"descricao"`
	DataInicio    time.Time   `db:"data_inicio"`
	DataFim       time.Time   `db:"data_fim"`
	Local         null.String `db:"local"`
	Cor           string      `db:"cor"`
	Tipo          null.String `db:"tipo"`
	Participantes null.String `db:"participantes"`
	CriadoPor     null.Uint64 `db:"criado_por"`
	DataCriacao   null.Time   `db:"data_criacao"`

	CriadoPorNome null.String `db:"-"`
}
