package dto

// IDsDTO é o corpo das exclusões em massa.
type IDsDTO struct {
	IDs []uint64 `json:"ids" validate:"required,min=1"`
}

type CreatedDTO struct {
	ID uint64 `json:"id"`
}

// BulkDeleteResultDTO informa quantos registros saíram de fato.
type BulkDeleteResultDTO struct {
	Excluidos int `json:"excluidos"`
}

// ImportResultDTO resume uma importação de planilha.
type ImportResultDTO struct {
	Sucessos    int      `json:"sucessos"`
	Erros       []string `json:"erros"`
	TotalLinhas int      `json:"total_linhas"`
}
