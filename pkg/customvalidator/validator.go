package customvalidator

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// RegisterCustomValidations registra as regras próprias do sistema no validador.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("academy_role", isAcademyRole); err != nil {
		return err
	}
	if err := v.RegisterValidation("date_ymd", isDateYMD); err != nil {
		return err
	}
	if err := v.RegisterValidation("student_type", isStudentType); err != nil {
		return err
	}
	if err := v.RegisterValidation("email", isGoodEmailFormat); err != nil {
		return err
	}

	return nil
}

func isGoodEmailFormat(fl validator.FieldLevel) bool {
	return emailRegex.MatchString(strings.TrimSpace(fl.Field().String()))
}

func isAcademyRole(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "admin", "professor", "user":
		return true
	}
	return false
}

// date_ymd aceita vazio; use junto com required quando a data for obrigatória.
func isDateYMD(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	if len(s) > 10 {
		s = s[:10]
	}
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}

func isStudentType(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "", "Regular", "Foundation":
		return true
	}
	return false
}
