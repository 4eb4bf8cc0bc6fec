package dto

import (
	"academy-manager/pkg/coerce"

	"github.com/aarondl/null/v8"
)

type CreateInventoryDTO struct {
	Tombamento  string      `json:"tombamento" validate:"required,max=100"`
	Equipamento string      `json:"equipamento" validate:"required,max=255"`
	Carga       string      `json:"carga" validate:"omitempty,max=255"`
	Local       string      `json:"local" validate:"omitempty,max=255"`
	Etiquetado  coerce.Flag `json:"etiquetado"`
}

type UpdateInventoryDTO CreateInventoryDTO

type InventoryDTO struct {
	ID           uint64      `json:"id"`
	Tombamento   string      `json:"tombamento"`
	Equipamento  string      `json:"equipamento"`
	Carga        null.String `json:"carga"`
	Local        null.String `json:"local"`
	Etiquetado   bool        `json:"etiquetado"`
	DataCadastro null.String `json:"data_cadastro"`
}
