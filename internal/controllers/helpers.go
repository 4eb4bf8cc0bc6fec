package controllers

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/utils"

	"github.com/labstack/echo/v4"
)

// bindAndValidate lê o corpo JSON e aplica as regras de validação do DTO.
func bindAndValidate(c echo.Context, payload interface{}) error {
	if err := c.Bind(payload); err != nil {
		return apperrors.NewHttpError(http.StatusBadRequest, "Formato de dados inválido", err, nil)
	}
	return c.Validate(payload)
}

// openUpload valida o campo "file" do multipart contra as regras do contexto de upload.
func openUpload(c echo.Context, uploadContext string) (multipart.File, *multipart.FileHeader, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return nil, nil, apperrors.NewHttpError(http.StatusBadRequest, "Nenhum arquivo enviado", nil, nil)
	}
	if err := utils.ValidateFile(fileHeader, uploadContext); err != nil {
		return nil, nil, err
	}
	src, err := fileHeader.Open()
	if err != nil {
		return nil, nil, apperrors.NewHttpError(http.StatusInternalServerError, "Erro ao processar o arquivo", err, nil)
	}
	return src, fileHeader, nil
}

// sendAttachment gera o arquivo em memória e envia como download com o nome devolvido por write.
func sendAttachment(c echo.Context, contentType string, write func(w io.Writer) (string, error)) error {
	var buf bytes.Buffer
	filename, err := write(&buf)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, contentType, buf.Bytes())
}

const (
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeSQL  = "application/sql"
)
