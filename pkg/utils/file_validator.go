package utils

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"slices"
	"strings"

	"academy-manager/config"
	apperrors "academy-manager/pkg/errors"
)

// ValidateFile aplica as regras de config.UploadContexts (extensão e tamanho).
func ValidateFile(fileHeader *multipart.FileHeader, contextName string) error {
	rules, ok := config.UploadContexts[contextName]
	if !ok {
		return fmt.Errorf("contexto de upload desconhecido: %s", contextName)
	}

	if fileHeader == nil || fileHeader.Filename == "" {
		return apperrors.NewHttpError(http.StatusBadRequest, "Nenhum arquivo enviado", nil, nil)
	}

	if rules.MaxSizeMB > 0 {
		maxSizeBytes := rules.MaxSizeMB * 1024 * 1024
		if fileHeader.Size > maxSizeBytes {
			return apperrors.NewHttpError(http.StatusBadRequest,
				fmt.Sprintf("Arquivo (%d KB) excede o limite de %d MB", fileHeader.Size/1024, rules.MaxSizeMB), nil, nil)
		}
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if !slices.Contains(rules.AllowedExtensions, ext) {
		return apperrors.NewHttpError(http.StatusBadRequest,
			fmt.Sprintf("Tipo de arquivo não permitido. Use: %s", strings.Join(rules.AllowedExtensions, ", ")), nil, nil)
	}

	return nil
}
