package services

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"academy-manager/internal/authz"
	"academy-manager/internal/dto"
	"academy-manager/internal/repositories"
	"academy-manager/internal/schema"
	"academy-manager/pkg/database"
	apperrors "academy-manager/pkg/errors"
	"academy-manager/pkg/utils"

	"go.uber.org/zap"
)

const (
	backupTimestampLayout = "20060102_150405"
	maxRestoreErrors      = 50
)

var backupNamePattern = regexp.MustCompile(`^backup_academy_[A-Za-z0-9_-]+\.sql$`)

type BackupServiceInterface interface {
	// Dump escreve o dump completo em w e devolve o nome sugerido para download.
	Dump(ctx context.Context, w io.Writer) (string, error)
	CreateBackup(ctx context.Context) (*dto.BackupFileDTO, error)
	ListBackups(ctx context.Context) ([]dto.BackupFileDTO, error)
	BackupPath(ctx context.Context, name string) (string, error)
	DeleteBackup(ctx context.Context, name string) error
	DeleteBackups(ctx context.Context, names []string) (int, error)
	Restore(ctx context.Context, script io.Reader) (*dto.RestoreResultDTO, error)
}

type BackupService struct {
	backupRepo repositories.BackupRepositoryInterface
	backupDir  string
	logger     *zap.Logger
	now        Clock
}

func NewBackupService(backupRepo repositories.BackupRepositoryInterface, backupDir string, logger *zap.Logger) *BackupService {
	return &BackupService{backupRepo: backupRepo, backupDir: backupDir, logger: logger, now: systemClock}
}

func (s *BackupService) WithClock(clock Clock) *BackupService {
	s.now = clock
	return s
}

func (s *BackupService) Dump(ctx context.Context, w io.Writer) (string, error) {
	if _, err := authorize(ctx, s.logger, authz.SystemBackup); err != nil {
		return "", err
	}
	if err := s.writeDump(ctx, w); err != nil {
		return "", err
	}
	return fmt.Sprintf("backup_apple_academy_%s.sql", s.now().Format(backupTimestampLayout)), nil
}

// writeDump: apaga tudo dos filhos para os pais e reinsere dos pais para os filhos.
func (s *BackupService) writeDump(ctx context.Context, w io.Writer) error {
	d := s.backupRepo.Dialect()
	tables := schema.TableNames()
	out := bufio.NewWriter(w)

	fmt.Fprintf(out, "-- Backup Apple Academy\n-- Gerado em: %s\n-- Banco: %s\n\n", s.now().Format(utils.DateTimeLayout), d)
	out.WriteString(d.DumpPrologue())

	for i := len(tables) - 1; i >= 0; i-- {
		fmt.Fprintln(out, d.TruncateStatement(tables[i]))
	}
	out.WriteString("\n")

	for _, table := range tables {
		rows, err := s.backupRepo.TableRows(ctx, table)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "-- Tabela: %s (%d registros)\n", table, len(rows))
		for _, row := range rows {
			fmt.Fprintln(out, insertStatement(d, table, row))
		}
		if len(rows) > 0 {
			if reset := d.ResetSequenceStatement(table); reset != "" {
				fmt.Fprintln(out, reset)
			}
		}
		out.WriteString("\n")
	}

	out.WriteString(d.DumpEpilogue())
	return out.Flush()
}

func insertStatement(d database.Dialect, table string, row database.Row) string {
	columns := make([]string, 0, len(row))
	for col := range row {
		columns = append(columns, col)
	}
	sort.Slice(columns, func(i, j int) bool {
		if columns[i] == "id" || columns[j] == "id" {
			return columns[i] == "id"
		}
		return columns[i] < columns[j]
	})

	values := make([]string, len(columns))
	for i, col := range columns {
		values[i] = d.Literal(row[col])
	}
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s);", table, strings.Join(columns, ", "), strings.Join(values, ", "))
}

func (s *BackupService) CreateBackup(ctx context.Context) (*dto.BackupFileDTO, error) {
	actor, err := authorize(ctx, s.logger, authz.SystemBackup)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(s.backupDir, 0o755); err != nil {
		return nil, err
	}

	name := fmt.Sprintf("backup_academy_%s.sql", s.now().Format(backupTimestampLayout))
	path := filepath.Join(s.backupDir, name)
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if err := s.writeDump(ctx, f); err != nil {
		f.Close()
		_ = os.Remove(path)
		return nil, err
	}
	if err := f.Close(); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Backup criado", zap.String("arquivo", name), zap.Uint64("usuario_id", actor.ID))
	return backupFileDTO(info), nil
}

func backupFileDTO(info os.FileInfo) *dto.BackupFileDTO {
	return &dto.BackupFileDTO{
		Nome:        info.Name(),
		Tamanho:     utils.FormatSize(info.Size()),
		DataCriacao: info.ModTime().Format(utils.DateTimeLayout),
	}
}

// ListBackups devolve os backups do mais novo para o mais antigo.
func (s *BackupService) ListBackups(ctx context.Context) ([]dto.BackupFileDTO, error) {
	if _, err := authorize(ctx, s.logger, authz.SystemBackup); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(s.backupDir)
	if os.IsNotExist(err) {
		return []dto.BackupFileDTO{}, nil
	}
	if err != nil {
		return nil, err
	}

	infos := make([]os.FileInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !backupNamePattern.MatchString(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, info)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].ModTime().After(infos[j].ModTime()) })

	result := make([]dto.BackupFileDTO, 0, len(infos))
	for _, info := range infos {
		result = append(result, *backupFileDTO(info))
	}
	return result, nil
}

func (s *BackupService) resolve(name string) (string, error) {
	if strings.ContainsAny(name, `/\`) || !backupNamePattern.MatchString(name) {
		return "", apperrors.NewInvalidInputError("Nome de arquivo inválido")
	}
	path := filepath.Join(s.backupDir, name)
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return "", apperrors.NewNotFoundError("Arquivo de backup não encontrado")
		}
		return "", err
	}
	return path, nil
}

func (s *BackupService) BackupPath(ctx context.Context, name string) (string, error) {
	if _, err := authorize(ctx, s.logger, authz.SystemBackup); err != nil {
		return "", err
	}
	return s.resolve(name)
}

func (s *BackupService) DeleteBackup(ctx context.Context, name string) error {
	if _, err := authorize(ctx, s.logger, authz.SystemBackup); err != nil {
		return err
	}
	path, err := s.resolve(name)
	if err != nil {
		return err
	}
	return os.Remove(path)
}

// DeleteBackups ignora nomes inválidos ou inexistentes e devolve quantos saíram.
func (s *BackupService) DeleteBackups(ctx context.Context, names []string) (int, error) {
	if _, err := authorize(ctx, s.logger, authz.SystemBackup); err != nil {
		return 0, err
	}
	deleted := 0
	for _, name := range names {
		path, err := s.resolve(name)
		if err != nil {
			s.logger.Warn("Backup ignorado na exclusão em massa", zap.String("arquivo", name), zap.Error(err))
			continue
		}
		if err := os.Remove(path); err != nil {
			return deleted, err
		}
		deleted++
	}
	return deleted, nil
}

// Restore executa cada comando isoladamente; comandos inválidos são contados e pulados.
func (s *BackupService) Restore(ctx context.Context, script io.Reader) (*dto.RestoreResultDTO, error) {
	actor, err := authorize(ctx, s.logger, authz.SystemBackup)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(script)
	if err != nil {
		return nil, err
	}

	d := s.backupRepo.Dialect()
	result := &dto.RestoreResultDTO{Erros: []string{}}
	failed := 0
	for _, raw := range database.SplitStatements(string(data)) {
		stmt := d.NormalizeStatement(raw)
		if stmt == "" {
			continue
		}
		if err := s.backupRepo.ExecStatement(ctx, stmt); err != nil {
			if apperrors.Is(err, apperrors.ErrDatabaseUnavailable) {
				return nil, err
			}
			failed++
			if len(result.Erros) < maxRestoreErrors {
				result.Erros = append(result.Erros, fmt.Sprintf("%s: %v", abbreviate(stmt, 80), err))
			}
			continue
		}
		result.Executados++
	}

	s.logger.Info("Restauração concluída",
		zap.Uint64("usuario_id", actor.ID),
		zap.Int("executados", result.Executados),
		zap.Int("erros", failed))
	return result, nil
}

func abbreviate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if len([]rune(s)) <= n {
		return s
	}
	return string([]rune(s)[:n]) + "..."
}
