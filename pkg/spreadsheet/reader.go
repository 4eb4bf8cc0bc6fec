package spreadsheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet é uma planilha lida em memória: cabeçalhos normalizados e linhas de dados.
// Lines guarda o número de cada linha na planilha original (cabeçalho = 1).
type Sheet struct {
	Headers []string
	Rows    [][]string
	Lines   []int
}

// ReadFile lê .csv (encoding/csv) ou .xlsx (primeira aba, excelize).
func ReadFile(path string) (*Sheet, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadCSV(f)
	case ".xlsx":
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("erro ao abrir planilha: %w", err)
		}
		defer f.Close()
		return readWorkbook(f)
	}
	return nil, fmt.Errorf("formato de arquivo não suportado: %s", filepath.Ext(path))
}

func ReadXLSX(r io.Reader) (*Sheet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir planilha: %w", err)
	}
	defer f.Close()
	return readWorkbook(f)
}

func readWorkbook(f *excelize.File) (*Sheet, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("planilha sem abas")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a aba %s: %w", sheets[0], err)
	}
	return newSheet(rows)
}

func ReadCSV(r io.Reader) (*Sheet, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.Comma = detectDelimiter(data)

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("erro ao ler CSV: %w", err)
	}
	return newSheet(rows)
}

// detectDelimiter escolhe ';' quando a primeira linha o usa mais que ','.
func detectDelimiter(data []byte) rune {
	firstLine := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		firstLine = data[:i]
	}
	if bytes.Count(firstLine, []byte(";")) > bytes.Count(firstLine, []byte(",")) {
		return ';'
	}
	return ','
}

func newSheet(rows [][]string) (*Sheet, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("arquivo vazio")
	}
	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = NormalizeHeader(h)
	}

	data := make([][]string, 0, len(rows)-1)
	lines := make([]int, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		data = append(data, row)
		lines = append(lines, i+2)
	}
	return &Sheet{Headers: headers, Rows: data, Lines: lines}, nil
}

func NormalizeHeader(h string) string {
	return strings.ToLower(strings.TrimSpace(h))
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
