package dto

import "github.com/aarondl/null/v8"

type CreateEventDTO struct {
	Titulo        string `json:"titulo" validate:"required,max=255"`
	Descricao     string `json:"descricao"`
	DataInicio    string `json:"data_inicio" validate:"required"`
	DataFim       string `json:"data_fim" validate:"required"`
	Local         string `json:"local" validate:"omitempty,max=255"`
	Cor           string `json:"cor" validate:"omitempty,max=20"`
	Tipo          string `json:"tipo" validate:"omitempty,max=50"`
	Participantes string `json:"participantes"`
}

type UpdateEventDTO CreateEventDTO

// EventRangeDTO filtra a agenda pelo intervalo visível no calendário.
type EventRangeDTO struct {
	Start string `query:"start"`
	End   string `query:"end"`
}

type EventDTO struct {
	ID            uint64      `json:"id"`
	Titulo        string      `json:"titulo"`
	Descricao     null.String `json:"descricao"`
	DataInicio    string      `json:"data_inicio"`
	DataFim       string      `json:"data_fim"`
	Local         null.String `json:"local"`
	Cor           string      `json:"cor"`
	Tipo          null.String `json:"tipo"`
	Participantes null.String `json:"participantes"`
	CriadoPor     null.Uint64 `json:"criado_por"`
	CriadoPorNome null.String `json:"criado_por_nome"`
	DataCriacao   null.String `json:"data_criacao"`
}
