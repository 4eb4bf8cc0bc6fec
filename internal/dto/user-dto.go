package dto

import "github.com/aarondl/null/v8"

type CreateUserDTO struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,academy_role"`
	Email    string `json:"email" validate:"omitempty,email"`
}

// UpdateUserDTO: senha vazia mantém a atual.
type UpdateUserDTO struct {
	Username string `json:"username" validate:"required,max=255"`
	Password string `json:"password" validate:"omitempty,min=6"`
	Role     string `json:"role" validate:"required,academy_role"`
	Email    string `json:"email" validate:"omitempty,email"`
}

type ResetPasswordDTO struct {
	NovaSenha string `json:"nova_senha" validate:"omitempty,min=6"`
}

type UserDTO struct {
	ID          uint64      `json:"id"`
	Username    string      `json:"username"`
	Role        string      `json:"role"`
	Email       null.String `json:"email"`
	FotoPath    null.String `json:"foto_path"`
	DataCriacao null.String `json:"data_criacao"`
}
