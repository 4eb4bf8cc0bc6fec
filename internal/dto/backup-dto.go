package dto

type BackupFileDTO struct {
	Nome        string `json:"nome"`
	Tamanho     string `json:"tamanho"`
	DataCriacao string `json:"data_criacao"`
}

type BackupNamesDTO struct {
	Arquivos []string `json:"arquivos" validate:"required,min=1"`
}

type RestoreResultDTO struct {
	Executados int      `json:"executados"`
	Erros      []string `json:"erros"`
}
