package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"academy-manager/internal/authz"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/coerce"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/spreadsheet"
	"academy-manager/pkg/utils"

	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

const templateSheet = "Template"

type cellKind int

const (
	cellText cellKind = iota
	cellBool
	cellDate
	cellDateTime
)

type exportColumn struct {
	header string
	column string
	kind   cellKind
}

type exportDef struct {
	permission string
	filename   string
	query      repositories.ExportQuery
	columns    []exportColumn
}

var exportDefs = map[string]exportDef{
	"devices": {
		permission: authz.ExportBasic,
		filename:   "devices_export",
		query: repositories.ExportQuery{
			Table:   "devices",
			Where:   sq.Eq{"para_emprestimo": true},
			OrderBy: []string{"tipo", "nome"},
		},
		columns: []exportColumn{
			{"Tipo", "tipo", cellText}, {"Modelo", "modelo", cellText}, {"Cor", "cor", cellText},
			{"Polegadas", "polegadas", cellText}, {"Ano", "ano", cellText}, {"Nome", "nome", cellText},
			{"Chip", "chip", cellText}, {"Memoria", "memoria", cellText}, {"NumeroSerie", "numero_serie", cellText},
			{"VersaoOS", "versao_os", cellText}, {"Status", "status", cellText},
			{"ParaEmprestimo", "para_emprestimo", cellBool}, {"Observacao", "observacao", cellText},
		},
	},
	"equipment-control": {
		permission: authz.EquipmentView,
		filename:   "equipment_control_export",
		query: repositories.ExportQuery{
			Table:   "equipment_control",
			OrderBy: []string{"data_cadastro DESC", "id DESC"},
		},
		columns: []exportColumn{
			{"TipoDevice", "tipo_device", cellText}, {"NumeroSerie", "numero_serie", cellText},
			{"Modelo", "modelo", cellText}, {"Cor", "cor", cellText}, {"Status", "status", cellText},
			{"ParaEmprestimo", "para_emprestimo", cellBool}, {"Responsavel", "responsavel", cellText},
			{"Local", "local", cellText}, {"Convenio", "convenio", cellText}, {"Observacao", "observacao", cellText},
			{"Processador", "processador", cellText}, {"Memoria", "memoria", cellText},
			{"Armazenamento", "armazenamento", cellText}, {"Tela", "tela", cellText},
			{"DataCadastro", "data_cadastro", cellDateTime},
		},
	},
	"inventory": {
		permission: authz.InventoryView,
		filename:   "inventory_export",
		query: repositories.ExportQuery{
			Table:   "inventory",
			OrderBy: []string{"data_cadastro DESC", "id DESC"},
		},
		columns: []exportColumn{
			{"Tombamento", "tombamento", cellText}, {"Equipamento", "equipamento", cellText},
			{"Carga", "carga", cellText}, {"Local", "local", cellText},
			{"Etiquetado", "etiquetado", cellBool}, {"DataCadastro", "data_cadastro", cellDateTime},
		},
	},
	"alunos": {
		permission: authz.ExportBasic,
		filename:   "alunos_export",
		query: repositories.ExportQuery{
			Table:   "alunos",
			OrderBy: []string{"nome"},
		},
		columns: []exportColumn{
			{"Nome", "nome", cellText}, {"CPF", "cpf", cellText}, {"Telefone", "telefone", cellText},
			{"Email", "email", cellText}, {"Endereco", "endereco", cellText}, {"TipoAluno", "tipo_aluno", cellText},
			{"TemAppleID", "tem_apple_id", cellBool}, {"AppleID", "apple_id", cellText},
			{"DataInicio", "data_inicio", cellDate}, {"DataCadastro", "data_cadastro", cellDateTime},
		},
	},
}

type sheetTemplate struct {
	permission string
	filename   string
	headers    []string
	rows       [][]interface{}
}

var sheetTemplates = map[string]sheetTemplate{
	"alunos": {
		permission: authz.StudentsManage,
		filename:   "template_importacao_alunos.xlsx",
		headers:    []string{"nome", "cpf", "telefone", "email", "endereço", "tipo_aluno", "tem_apple_id", "apple_id", "data_inicio"},
		rows: [][]interface{}{
			{"João Silva", "123.456.789-00", "(11) 99999-9999", "joao@email.com", "Rua A, 123 - Centro", "Foundation", "Sim", "joao@icloud.com", "2024-01-15"},
			{"Maria Santos", "987.654.321-00", "(11) 88888-8888", "maria@email.com", "Av. B, 456 - Jardim", "Foundation", "Não", "", "2024-02-01"},
			{"Pedro Oliveira", "111.222.333-44", "(11) 77777-7777", "pedro@email.com", "Travessa C, 789 - Vila", "Regular", "Sim", "pedro@icloud.com", "2024-01-20"},
		},
	},
	"devices": {
		permission: authz.DevicesManage,
		filename:   "template_importacao_devices.xlsx",
		headers:    []string{"tipo", "modelo", "numero_serie", "nome", "cor", "status", "para_emprestimo", "polegadas", "ano", "chip", "memoria", "versao_os", "observacao"},
		rows: [][]interface{}{
			{"iPad", "iPad Pro", "ABC123", "iPad Sala A", "Cinza", "Disponível", "Sim", "11", 2023, "M1", "8GB", "iPadOS 17", "Device em perfeito estado"},
			{"Macbook", "MacBook Air", "DEF456", "MacBook Professor", "Prata", "Disponível", "Sim", "13", 2022, "M2", "16GB", "macOS 14", "Teclado US"},
			{"iPhone", "iPhone 15", "GHI789", "iPhone Teste", "Preto", "Disponível", "Sim", "6.1", 2023, "A16", "6GB", "iOS 17", "Bateria com 98% de saúde"},
		},
	},
	"equipment-control": {
		permission: authz.EquipmentManage,
		filename:   "template_equipment_control.xlsx",
		headers: []string{"tipo_device", "numero_serie", "modelo", "cor", "status", "para_emprestimo", "responsavel",
			"local", "convenio", "observacao", "processador", "memoria", "armazenamento", "tela"},
		rows: [][]interface{}{
			{"iPhone", "ABC123XYZ", "iPhone 15 Pro", "Preto", "Disponível", "Sim", "João Silva", "Sala A101", "Parceria Apple", "Novo em folha", "Chip A17 Pro", "8GB", "256GB", `6.1"`},
			{"iPad", "DEF456UVW", "iPad Pro 12.9", "Prata", "Disponível", "Sim", "Maria Santos", "Laboratório B", "Convênio Educ", "Com capa protetora", "Chip M2", "16GB", "512GB", `12.9"`},
			{"MacBook Pro", "GHI789RST", "MacBook Pro M3", "Cinza-espacial", "Manutenção", "Não", "Técnico TI", "Oficina Técnica", "Manutenção", "Em conserto", "Chip M3", "32GB", "1TB", `14.2"`},
		},
	},
	"inventory": {
		permission: authz.InventoryManage,
		filename:   "template_importacao_inventory.xlsx",
		headers:    []string{"tombamento", "equipamento", "carga", "local", "etiquetado"},
		rows: [][]interface{}{
			{"INV-001", "Armário A", "50kg", "Sala 101", "Sim"},
			{"INV-002", "Apple TV Sala B", "Light", "Laboratório 2", "Não"},
			{"INV-003", "Mesa Makerspace", "Pesado", "Makerspace", "Sim"},
		},
	},
	"tipos-devices": {
		permission: authz.DeviceTypesManage,
		filename:   "template_importacao_tipos_devices.xlsx",
		headers:    []string{"nome", "categoria", "descricao", "para_emprestimo"},
		rows: [][]interface{}{
			{"iPhone 15 Pro", "Smartphone", "Smartphone flagship Apple", "Sim"},
			{"iPad Pro 12.9", "Tablet", "Tablet profissional Apple", "Sim"},
			{"MacBook Pro M3", "Notebook", "Notebook profissional Apple", "Sim"},
			{"Apple Watch Series 9", "Wearable", "Relógio inteligente Apple", "Sim"},
		},
	},
}

type ExportServiceInterface interface {
	// Export escreve a planilha em w e devolve o nome sugerido para download.
	Export(ctx context.Context, entity string, w io.Writer) (string, error)
	Template(ctx context.Context, kind string, w io.Writer) (string, error)
}

type ExportService struct {
	exportRepo repositories.ExportRepositoryInterface
	logger     *zap.Logger
	now        Clock
}

func NewExportService(exportRepo repositories.ExportRepositoryInterface, logger *zap.Logger) ExportServiceInterface {
	return &ExportService{exportRepo: exportRepo, logger: logger, now: systemClock}
}

func (s *ExportService) Export(ctx context.Context, entity string, w io.Writer) (string, error) {
	def, ok := exportDefs[entity]
	if !ok {
		return "", apperrors.NewNotFoundError("Fonte de dados não encontrada")
	}
	if _, err := authorize(ctx, s.logger, def.permission); err != nil {
		return "", err
	}

	q := def.query
	q.Columns = make([]string, len(def.columns))
	headers := make([]string, len(def.columns))
	for i, c := range def.columns {
		q.Columns[i] = c.column
		headers[i] = c.header
	}

	rows, err := s.exportRepo.Rows(ctx, q)
	if err != nil {
		return "", err
	}

	data := make([][]interface{}, 0, len(rows))
	for _, r := range rows {
		data = append(data, exportLine(r, def.columns))
	}
	if err := spreadsheet.WriteXLSX(w, spreadsheet.DefaultSheet, headers, data); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s_%s.xlsx", def.filename, s.now().Format("20060102_150405")), nil
}

func exportLine(r database.Row, columns []exportColumn) []interface{} {
	line := make([]interface{}, len(columns))
	for i, c := range columns {
		switch c.kind {
		case cellBool:
			line[i] = coerce.YesNo(r.Bool(c.column))
		case cellDate:
			line[i] = formatNullTime(r, c.column, utils.DateLayout)
		case cellDateTime:
			line[i] = formatNullTime(r, c.column, utils.DateTimeLayout)
		default:
			line[i] = r.String(c.column)
		}
	}
	return line
}

func formatNullTime(r database.Row, column, layout string) string {
	t := r.NullTime(column)
	if !t.Valid {
		return ""
	}
	return t.Time.In(time.UTC).Format(layout)
}

func (s *ExportService) Template(ctx context.Context, kind string, w io.Writer) (string, error) {
	tpl, ok := sheetTemplates[kind]
	if !ok {
		return "", apperrors.NewNotFoundError("Template não encontrado")
	}
	if _, err := authorize(ctx, s.logger, tpl.permission); err != nil {
		return "", err
	}
	if err := spreadsheet.WriteXLSX(w, templateSheet, tpl.headers, tpl.rows); err != nil {
		return "", err
	}
	return tpl.filename, nil
}
