package entities

import "github.com/aarondl/null/v8"

type InventoryItem struct {
	ID           uint64      `db:"id"`
	Tombamento   string      `db:"tombamento"`
	Equipamento  string      `db:"equipamento"`
	Carga        null.String `db:"carga"`
	Local        null.String `db:"local"`
	Etiquetado   bool        `db:"etiquetado"`
	DataCadastro null.Time   `db:"data_cadastro"`
}
