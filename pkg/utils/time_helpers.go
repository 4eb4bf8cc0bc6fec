package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
)

const DateLayout = "2006-01-02"

// DateOnly descarta o horário e fixa o dia em UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseDate aceita "YYYY-MM-DD" e também datas com horário (ISO ou "YYYY-MM-DD HH:MM:SS").
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("data vazia")
	}
	if len(s) >= 10 {
		if t, err := time.Parse(DateLayout, s[:10]); err == nil {
			return t, nil
		}
	}
	for _, layout := range []string{"02/01/2006", "2/1/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("data inválida: %s", s)
}

// ParseDateTime aceita "YYYY-MM-DDTHH:MM", RFC3339 e variantes com espaço; devolve sempre UTC.
func ParseDateTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	layouts := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
		DateLayout,
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("data/hora inválida: %s", s)
}

// FormatSize devolve o tamanho em B, KB ou MB.
func FormatSize(size int64) string {
	switch {
	case size < 1024:
		return fmt.Sprintf("%d B", size)
	case size < 1024*1024:
		return fmt.Sprintf("%.1f KB", float64(size)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(size)/(1024*1024))
	}
}

const DateTimeLayout = "2006-01-02 15:04:05"

// NullDate formata uma data opcional como "YYYY-MM-DD"; ausente vira null no JSON.
func NullDate(t null.Time) null.String {
	if !t.Valid || t.Time.IsZero() {
		return null.String{}
	}
	return null.StringFrom(t.Time.Format(DateLayout))
}

func NullDateTime(t null.Time) null.String {
	if !t.Valid || t.Time.IsZero() {
		return null.String{}
	}
	return null.StringFrom(t.Time.Format(DateTimeLayout))
}

// OptionalDate converte o texto do formulário em data; vazio vira null.
func OptionalDate(s string) (null.Time, error) {
	if strings.TrimSpace(s) == "" {
		return null.Time{}, nil
	}
	t, err := ParseDate(s)
	if err != nil {
		return null.Time{}, err
	}
	return null.TimeFrom(DateOnly(t)), nil
}

// NullIfEmpty grava texto vazio como NULL.
func NullIfEmpty(s string) null.String {
	s = strings.TrimSpace(s)
	if s == "" {
		return null.String{}
	}
	return null.StringFrom(s)
}
