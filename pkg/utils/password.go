package utils

import (
	"errors"
	"fmt"

	apperrors "academy-manager/pkg/errors"

	"golang.org/x/crypto/bcrypt"
)

// custo do bcrypt usado em todo hash novo
const passwordHashCost = bcrypt.DefaultCost

func HashPassword(password string) (string, error) {
	if password == "" {
		return "", apperrors.NewInvalidInputError("A senha não pode ser vazia")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", fmt.Errorf("não foi possível gerar o hash da senha: %w", err)
	}
	return string(hash), nil
}

// ComparePasswords devolve apperrors.ErrInvalidCredentials quando a senha não confere.
func ComparePasswords(hashedPassword string, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return apperrors.ErrInvalidCredentials
	}
	return err
}
