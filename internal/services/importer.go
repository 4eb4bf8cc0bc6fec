package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"academy-manager/config"
	"academy-manager/internal/authz"
	"academy-manager/internal/dto"
	"academy-manager/internal/entities"
	"academy-manager/internal/repositories"
	"academy-manager/pkg/coerce"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/filestorage"
	"academy-manager/pkg/spreadsheet"

	"go.uber.org/zap"
)

// Entidades aceitas em /api/importar/:entidade.
const (
	ImportStudents    = "alunos"
	ImportDevices     = "devices"
	ImportEquipment   = "equipment-control"
	ImportInventory   = "inventory"
	ImportDeviceTypes = "tipos-devices"
)

var studentImportFields = []spreadsheet.Field{
	{Name: "nome", Synonyms: []string{"nome", "nome completo", "name", "aluno", "student"}, Required: true},
	{Name: "cpf", Synonyms: []string{"cpf", "documento", "document"}},
	{Name: "telefone", Synonyms: []string{"telefone", "celular", "phone", "tel", "contato"}},
	{Name: "email", Synonyms: []string{"email", "e-mail", "mail"}, Required: true},
	{Name: "endereco", Synonyms: []string{"endereço", "endereco", "address", "morada"}},
	{Name: "tipo_aluno", Synonyms: []string{"tipo_aluno", "tipo", "type", "categoria", "category"}},
	{Name: "tem_apple_id", Synonyms: []string{"tem_apple_id", "has_apple_id"}},
	{Name: "apple_id", Synonyms: []string{"apple_id", "id_apple", "appleid"}},
	{Name: "data_inicio", Synonyms: []string{"data_inicio", "data", "inicio", "start_date", "data_início"}},
}

var deviceImportFields = []spreadsheet.Field{
	{Name: "tipo", Synonyms: []string{"tipo", "type", "categoria", "category"}, Required: true},
	{Name: "numero_serie", Synonyms: []string{"numero_serie", "serial", "serial_number", "n_serie"}, Required: true},
	{Name: "modelo", Synonyms: []string{"modelo", "model", "device"}},
	{Name: "nome", Synonyms: []string{"nome", "name", "identificacao"}},
	{Name: "cor", Synonyms: []string{"cor", "color", "colour"}},
	{Name: "status", Synonyms: []string{"status", "situacao", "condition"}},
	{Name: "para_emprestimo", Synonyms: []string{"para_emprestimo", "emprestimo", "loan", "disponivel"}},
	{Name: "observacao", Synonyms: []string{"observacao", "observação", "obs", "notes", "notas"}},
	{Name: "polegadas", Synonyms: []string{"polegadas", "inches", "tamanho"}},
	{Name: "ano", Synonyms: []string{"ano", "year"}},
	{Name: "chip", Synonyms: []string{"chip", "processador", "processor"}},
	{Name: "memoria", Synonyms: []string{"memoria", "memória", "memory", "ram"}},
	{Name: "versao_os", Synonyms: []string{"versao_os", "versão_os", "os", "sistema"}},
}

var equipmentImportFields = []spreadsheet.Field{
	{Name: "tipo_device", Synonyms: []string{"tipo_device", "tipo", "device", "type"}, Required: true},
	{Name: "numero_serie", Synonyms: []string{"numero_serie", "numero serie", "serial", "n_serie"}, Required: true},
	{Name: "modelo", Synonyms: []string{"modelo", "model"}},
	{Name: "cor", Synonyms: []string{"cor", "color"}},
	{Name: "status", Synonyms: []string{"status", "situacao"}},
	{Name: "para_emprestimo", Synonyms: []string{"para_emprestimo", "emprestimo", "disponivel_emprestimo", "para_empresumo"}},
	{Name: "responsavel", Synonyms: []string{"responsavel", "responsável", "responsible"}},
	{Name: "local", Synonyms: []string{"local", "location"}},
	{Name: "convenio", Synonyms: []string{"convenio", "convênio", "partnership"}},
	{Name: "observacao", Synonyms: []string{"observacao", "observação", "obs", "notes"}},
	{Name: "processador", Synonyms: []string{"processador", "processor", "chip"}},
	{Name: "memoria", Synonyms: []string{"memoria", "memory", "ram"}},
	{Name: "armazenamento", Synonyms: []string{"armazenamento", "storage"}},
	{Name: "tela", Synonyms: []string{"tela", "screen", "display"}},
}

var inventoryImportFields = []spreadsheet.Field{
	{Name: "tombamento", Synonyms: []string{"tombamento", "patrimonio", "patrimônio"}, Required: true},
	{Name: "equipamento", Synonyms: []string{"equipamento", "descricao", "descrição", "device"}, Required: true},
	{Name: "carga", Synonyms: []string{"carga", "cargahoraria", "carga_horaria"}},
	{Name: "local", Synonyms: []string{"local", "setor", "ambiente"}},
	{Name: "etiquetado", Synonyms: []string{"etiquetado", "etiqueta", "identificado"}},
}

var deviceTypeImportFields = []spreadsheet.Field{
	{Name: "nome", Synonyms: []string{"nome", "name", "tipo"}, Required: true},
	{Name: "categoria", Synonyms: []string{"categoria", "category"}, Required: true},
	{Name: "descricao", Synonyms: []string{"descricao", "descrição", "description"}},
	{Name: "para_emprestimo", Synonyms: []string{"para_emprestimo", "emprestimo", "loan"}},
}

type ImportServiceInterface interface {
	Import(ctx context.Context, entity string, file io.Reader, filename string) (*dto.ImportResultDTO, error)
}

// rowImporter grava uma linha já mapeada dentro da transação da linha.
type rowImporter struct {
	permission string
	fields     []spreadsheet.Field
	insert     func(ctx context.Context, tx database.Querier, rec spreadsheet.Record) error
}

type ImportService struct {
	studentRepo    repositories.StudentRepositoryInterface
	deviceRepo     repositories.DeviceRepositoryInterface
	equipmentRepo  repositories.EquipmentRepositoryInterface
	inventoryRepo  repositories.InventoryRepositoryInterface
	deviceTypeRepo repositories.DeviceTypeRepositoryInterface
	sync           *DeviceSync
	txManager      repositories.TxManagerInterface
	fileStorage    filestorage.FileStorageInterface
	logger         *zap.Logger
	importers      map[string]rowImporter
}

func NewImportService(
	studentRepo repositories.StudentRepositoryInterface,
	deviceRepo repositories.DeviceRepositoryInterface,
	equipmentRepo repositories.EquipmentRepositoryInterface,
	inventoryRepo repositories.InventoryRepositoryInterface,
	deviceTypeRepo repositories.DeviceTypeRepositoryInterface,
	sync *DeviceSync,
	txManager repositories.TxManagerInterface,
	fileStorage filestorage.FileStorageInterface,
	logger *zap.Logger,
) ImportServiceInterface {
	s := &ImportService{
		studentRepo:    studentRepo,
		deviceRepo:     deviceRepo,
		equipmentRepo:  equipmentRepo,
		inventoryRepo:  inventoryRepo,
		deviceTypeRepo: deviceTypeRepo,
		sync:           sync,
		txManager:      txManager,
		fileStorage:    fileStorage,
		logger:         logger,
	}
	s.importers = map[string]rowImporter{
		ImportStudents:    {permission: authz.StudentsManage, fields: studentImportFields, insert: s.insertStudent},
		ImportDevices:     {permission: authz.DevicesManage, fields: deviceImportFields, insert: s.insertDevice},
		ImportEquipment:   {permission: authz.EquipmentManage, fields: equipmentImportFields, insert: s.insertEquipment},
		ImportInventory:   {permission: authz.InventoryManage, fields: inventoryImportFields, insert: s.insertInventoryItem},
		ImportDeviceTypes: {permission: authz.DeviceTypesManage, fields: deviceTypeImportFields, insert: s.insertDeviceType},
	}
	return s
}

// Import grava a planilha enviada, lê e insere linha a linha.
// Colunas obrigatórias ausentes recusam o arquivo inteiro; erros de linha são acumulados.
func (s *ImportService) Import(ctx context.Context, entity string, file io.Reader, filename string) (*dto.ImportResultDTO, error) {
	imp, ok := s.importers[entity]
	if !ok {
		return nil, apperrors.NewNotFoundError("Importação não disponível para %s", entity)
	}
	actor, err := authorize(ctx, s.logger, imp.permission)
	if err != nil {
		return nil, err
	}

	path, err := s.fileStorage.Save(file, filename, config.UploadContexts["import_sheet"].PathPrefix)
	if err != nil {
		return nil, apperrors.NewHttpError(http.StatusInternalServerError, "Erro ao salvar o arquivo", err, nil)
	}
	defer func() {
		if err := s.fileStorage.Delete(path); err != nil {
			s.logger.Warn("Não foi possível remover a planilha importada", zap.String("arquivo", path), zap.Error(err))
		}
	}()

	sheet, err := spreadsheet.ReadFile(s.fileStorage.FullPath(path))
	if err != nil {
		return nil, apperrors.NewInvalidInputError("%s", err.Error())
	}

	mapping, missing := spreadsheet.Resolve(sheet.Headers, imp.fields)
	if len(missing) > 0 {
		return nil, apperrors.NewHttpErrorWithDetails(http.StatusBadRequest,
			fmt.Sprintf("Colunas obrigatórias não encontradas: %s", strings.Join(missing, ", ")),
			map[string]interface{}{"colunas_faltando": missing, "colunas_encontradas": sheet.Headers})
	}

	result := &dto.ImportResultDTO{Erros: []string{}, TotalLinhas: len(sheet.Rows)}
	for i, cells := range sheet.Rows {
		rec := mapping.Record(cells)
		err := s.txManager.RunInTransaction(ctx, func(tx database.Querier) error {
			return imp.insert(ctx, tx, rec)
		})
		if err != nil {
			if errors.Is(err, apperrors.ErrDatabaseUnavailable) {
				return nil, err
			}
			result.Erros = append(result.Erros, fmt.Sprintf("Linha %d: %s", sheet.Lines[i], s.rowMessage(err)))
			continue
		}
		result.Sucessos++
	}

	s.logger.Info("Importação concluída",
		zap.String("entidade", entity),
		zap.Uint64("usuario_id", actor.ID),
		zap.Int("sucessos", result.Sucessos),
		zap.Int("erros", len(result.Erros)),
		zap.Int("total_linhas", result.TotalLinhas))
	return result, nil
}

// rowMessage só expõe mensagens de regra de negócio; o resto vai para o log.
func (s *ImportService) rowMessage(err error) string {
	var (
		invalid  *apperrors.InvalidInputError
		conflict *apperrors.ConflictError
		rule     *apperrors.BusinessRuleError
		notFound *apperrors.NotFoundError
	)
	switch {
	case errors.As(err, &invalid), errors.As(err, &conflict), errors.As(err, &rule), errors.As(err, &notFound):
		return err.Error()
	}
	if v, ok := database.AsIntegrityViolation(err); ok {
		if v.Kind == database.UniqueViolation {
			return "registro duplicado"
		}
		return "dados inconsistentes com registros existentes"
	}
	s.logger.Error("Erro ao importar linha", zap.Error(err))
	return "erro interno ao gravar a linha"
}

// flagOf: célula vazia ou coluna ausente deixam o padrão do cadastro valer.
func flagOf(rec spreadsheet.Record, field string) coerce.Flag {
	v := rec.Get(field)
	if v == "" {
		return coerce.Flag{}
	}
	return coerce.NewFlag(coerce.String(v))
}

func requireCells(rec spreadsheet.Record, fields ...string) error {
	var empty []string
	for _, f := range fields {
		if rec.Get(f) == "" {
			empty = append(empty, f)
		}
	}
	if len(empty) > 0 {
		return apperrors.NewInvalidInputError("campo(s) obrigatório(s) vazio(s): %s", strings.Join(empty, ", "))
	}
	return nil
}

func (s *ImportService) insertStudent(ctx context.Context, tx database.Querier, rec spreadsheet.Record) error {
	student, err := studentFromRecord(rec.Get)
	if err != nil {
		return err
	}
	_, err = s.studentRepo.CreateStudent(ctx, tx, student)
	return err
}

func (s *ImportService) insertDevice(ctx context.Context, tx database.Querier, rec spreadsheet.Record) error {
	if err := requireCells(rec, "tipo", "numero_serie"); err != nil {
		return err
	}
	device := deviceFromDTO(dto.CreateDeviceDTO{
		Tipo:           rec.Get("tipo"),
		Modelo:         rec.Get("modelo"),
		Cor:            rec.Get("cor"),
		Polegadas:      coerce.Text(rec.Get("polegadas")),
		Ano:            coerce.Text(rec.Get("ano")),
		Nome:           rec.Get("nome"),
		Chip:           rec.Get("chip"),
		Memoria:        rec.Get("memoria"),
		NumeroSerie:    rec.Get("numero_serie"),
		VersaoOS:       rec.Get("versao_os"),
		Status:         rec.Get("status"),
		ParaEmprestimo: flagOf(rec, "para_emprestimo"),
		Observacao:     rec.Get("observacao"),
	})
	// Device novo não tem empréstimo ativo.
	if device.Status == entities.DeviceLoaned {
		device.Status = entities.DeviceAvailable
	}
	_, err := s.deviceRepo.CreateDevice(ctx, tx, device)
	return err
}

func (s *ImportService) insertEquipment(ctx context.Context, tx database.Querier, rec spreadsheet.Record) error {
	if err := requireCells(rec, "tipo_device", "numero_serie"); err != nil {
		return err
	}
	e := equipmentFromDTO(dto.CreateEquipmentDTO{
		TipoDevice:     rec.Get("tipo_device"),
		NumeroSerie:    rec.Get("numero_serie"),
		Modelo:         rec.Get("modelo"),
		Cor:            rec.Get("cor"),
		Status:         rec.Get("status"),
		ParaEmprestimo: flagOf(rec, "para_emprestimo"),
		Responsavel:    rec.Get("responsavel"),
		Local:          rec.Get("local"),
		Convenio:       rec.Get("convenio"),
		Observacao:     rec.Get("observacao"),
		Processador:    rec.Get("processador"),
		Memoria:        rec.Get("memoria"),
		Armazenamento:  rec.Get("armazenamento"),
		Tela:           rec.Get("tela"),
	})
	if _, err := s.equipmentRepo.CreateEquipment(ctx, tx, e); err != nil {
		return err
	}
	_, err := s.sync.Apply(ctx, tx, e, "")
	return err
}

func (s *ImportService) insertInventoryItem(ctx context.Context, tx database.Querier, rec spreadsheet.Record) error {
	if err := requireCells(rec, "tombamento", "equipamento"); err != nil {
		return err
	}
	_, err := s.inventoryRepo.CreateItem(ctx, tx, inventoryFromDTO(dto.CreateInventoryDTO{
		Tombamento:  rec.Get("tombamento"),
		Equipamento: rec.Get("equipamento"),
		Carga:       rec.Get("carga"),
		Local:       rec.Get("local"),
		Etiquetado:  flagOf(rec, "etiquetado"),
	}))
	return err
}

func (s *ImportService) insertDeviceType(ctx context.Context, tx database.Querier, rec spreadsheet.Record) error {
	if err := requireCells(rec, "nome", "categoria"); err != nil {
		return err
	}
	_, err := s.deviceTypeRepo.CreateDeviceType(ctx, tx, deviceTypeFromDTO(dto.CreateDeviceTypeDTO{
		Nome:           rec.Get("nome"),
		Categoria:      rec.Get("categoria"),
		Descricao:      rec.Get("descricao"),
		ParaEmprestimo: flagOf(rec, "para_emprestimo"),
	}))
	return err
}
