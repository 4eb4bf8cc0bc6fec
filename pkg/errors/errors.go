package errors

import (
	"errors"
	"fmt"
)

var (
	// Sessão e tokens
	ErrInvalidSigningMethod = fmt.Errorf("método de assinatura do token inválido")
	ErrInvalidToken         = fmt.Errorf("token inválido")
	ErrTokenExpired         = fmt.Errorf("sessão expirada")
	ErrTokenNotYetValid     = fmt.Errorf("token ainda não é válido")

	// Autenticação e autorização
	ErrInvalidCredentials = fmt.Errorf("usuário ou senha inválidos")
	ErrUnauthorized       = fmt.Errorf("autenticação necessária")
	ErrForbidden          = fmt.Errorf("acesso não autorizado")
	ErrTooManyAttempts    = fmt.Errorf("muitas tentativas de login, tente novamente mais tarde")

	// Contexto
	ErrUserNotFound = fmt.Errorf("usuário não encontrado")

	// Gerais
	ErrNotFound            = fmt.Errorf("registro não encontrado")
	ErrBadRequest          = fmt.Errorf("requisição inválida")
	ErrConflict            = fmt.Errorf("conflito com dados existentes")
	ErrDatabaseUnavailable = fmt.Errorf("erro de conexão com o banco de dados")
)

type InvalidInputError struct {
	Message string
}

func (e *InvalidInputError) Error() string { return e.Message }

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError cobre violações de unicidade e de dependência entre entidades.
type ConflictError struct {
	Message string
	Details interface{}
}

func (e *ConflictError) Error() string { return e.Message }
func (e *ConflictError) Unwrap() error { return ErrConflict }

func NewConflictError(format string, args ...interface{}) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

type BusinessRuleError struct {
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }

func NewBusinessRuleError(format string, args ...interface{}) error {
	return &BusinessRuleError{Message: fmt.Sprintf(format, args...)}
}

type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

func NewNotFoundError(format string, args ...interface{}) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// HttpError carrega um status HTTP explícito. Err vai só para o log, nunca para o cliente.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Context map[string]interface{}
	Details interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, ctx map[string]interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err, Context: ctx}
}

func NewHttpErrorWithDetails(code int, message string, details interface{}) *HttpError {
	return &HttpError{Code: code, Message: message, Details: details}
}

func Is(err, target error) bool { return errors.Is(err, target) }

func As(err error, target interface{}) bool { return errors.As(err, target) }
