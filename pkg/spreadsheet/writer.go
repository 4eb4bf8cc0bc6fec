package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

const DefaultSheet = "Dados"

// WriteXLSX gera uma planilha com cabeçalho em negrito e as linhas informadas.
func WriteXLSX(w io.Writer, sheet string, headers []string, rows [][]interface{}) error {
	f, err := Build(sheet, headers, rows)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Write(w)
}

func Build(sheet string, headers []string, rows [][]interface{}) (*excelize.File, error) {
	if sheet == "" {
		sheet = DefaultSheet
	}

	f := excelize.NewFile()
	defaultSheet := f.GetSheetName(0)
	if err := f.SetSheetName(defaultSheet, sheet); err != nil {
		return nil, err
	}

	header := make([]interface{}, len(headers))
	for i, h := range headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	if len(headers) > 0 {
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err == nil {
			lastCell, _ := excelize.CoordinatesToCellName(len(headers), 1)
			_ = f.SetCellStyle(sheet, "A1", lastCell, style)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		r := row
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return nil, fmt.Errorf("erro ao escrever linha %d: %w", i+2, err)
		}
	}

	return f, nil
}
