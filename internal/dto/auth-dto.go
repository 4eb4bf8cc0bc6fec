package dto

import "academy-manager/pkg/types"

type LoginDTO struct {
	Username string `json:"username" form:"username" validate:"required"`
	Password string `json:"password" form:"password" validate:"required"`
}

type ChangePasswordDTO struct {
	SenhaAtual string `json:"senha_atual" validate:"required"`
	NovaSenha  string `json:"nova_senha" validate:"required,min=6"`
}

type MeDTO struct {
	Authenticated bool             `json:"authenticated"`
	User          *types.Principal `json:"user"`
}
