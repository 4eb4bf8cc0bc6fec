package schema

import (
	"context"
	"database/sql"
	"fmt"

	"academy-manager/pkg/database"
	"academy-manager/pkg/utils"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

// Table descreve uma tabela com DDL escrito em marcadores de dialeto ({{PK}}, {{BOOL}}...).
type Table struct {
	Name string
	DDL  string
}

// A ordem importa: backup e restore percorrem as tabelas respeitando as chaves estrangeiras.
var tables = []Table{
	{Name: "users", DDL: `CREATE TABLE IF NOT EXISTS users (
		id {{PK}},
		username VARCHAR(255) NOT NULL UNIQUE,
		password VARCHAR(255) NOT NULL,
		role VARCHAR(50) NOT NULL DEFAULT 'user',
		email VARCHAR(255),
		foto_path VARCHAR(255),
		data_criacao {{DATETIME}} DEFAULT CURRENT_TIMESTAMP
	){{ENGINE}}`},
	{Name: "alunos", DDL: `CREATE TABLE IF NOT EXISTS alunos (
		id {{PK}},
		nome VARCHAR(255) NOT NULL,
		cpf VARCHAR(14) UNIQUE,
		telefone VARCHAR(20),
		email VARCHAR(255) NOT NULL UNIQUE,
		endereco TEXT,
		tem_apple_id {{BOOL}} DEFAULT {{FALSE}},
		apple_id VARCHAR(255),
		tipo_aluno VARCHAR(50) NOT NULL DEFAULT 'Regular',
		data_inicio DATE,
		foto_path VARCHAR(255),
		data_cadastro {{DATETIME}} DEFAULT CURRENT_TIMESTAMP
	){{ENGINE}}`},
	{Name: "tipos_devices", DDL: `CREATE TABLE IF NOT EXISTS tipos_devices (
		id {{PK}},
		nome VARCHAR(255) NOT NULL UNIQUE,
		categoria VARCHAR(100),
		descricao TEXT,
		para_emprestimo {{BOOL}} DEFAULT {{TRUE}},
		data_cadastro {{DATETIME}} DEFAULT CURRENT_TIMESTAMP
	){{ENGINE}}`},
	{Name: "devices", DDL: `CREATE TABLE IF NOT EXISTS devices (
		id {{PK}},
		tipo VARCHAR(100) NOT NULL,
		modelo VARCHAR(100),
		cor VARCHAR(50),
		polegadas VARCHAR(10),
		ano VARCHAR(10),
		nome VARCHAR(255),
		chip VARCHAR(100),
		memoria VARCHAR(50),
		numero_serie VARCHAR(255) NOT NULL UNIQUE,
		versao_os VARCHAR(100),
		status VARCHAR(50) DEFAULT 'Disponível',
		para_emprestimo {{BOOL}} DEFAULT {{TRUE}},
		observacao TEXT,
		data_cadastro {{DATETIME}} DEFAULT CURRENT_TIMESTAMP
	){{ENGINE}}`},
	{Name: "equipment_control", DDL: `CREATE TABLE IF NOT EXISTS equipment_control (
		id {{PK}},
		tipo_device VARCHAR(100) NOT NULL,
		numero_serie VARCHAR(255) NOT NULL UNIQUE,
		modelo VARCHAR(100),
		cor VARCHAR(50),
		status VARCHAR(50) DEFAULT 'Disponível',
		para_emprestimo {{BOOL}} DEFAULT {{TRUE}},
		responsavel VARCHAR(255),
		local VARCHAR(255),
		convenio VARCHAR(255),
		observacao TEXT,
		processador VARCHAR(100),
		memoria VARCHAR(50),
		armazenamento VARCHAR(50),
		tela VARCHAR(50),
		data_cadastro {{DATETIME}} DEFAULT CURRENT_TIMESTAMP
	){{ENGINE}}`},
	{Name: "emprestimos", DDL: `CREATE TABLE IF NOT EXISTS emprestimos (
		id {{PK}},
		aluno_id {{FK}} NOT NULL,
		device_id {{FK}} NOT NULL,
		acessorios TEXT,
		data_retirada DATE,
		data_devolucao DATE,
		assinatura {{LONGTEXT}},
		status VARCHAR(50) DEFAULT 'Ativo',
		FOREIGN KEY (aluno_id) REFERENCES alunos (id) ON DELETE CASCADE,
		FOREIGN KEY (device_id) REFERENCES devices (id)
	){{ENGINE}}`},
	{Name: "livros", DDL: `CREATE TABLE IF NOT EXISTS livros (
		id {{PK}},
		titulo VARCHAR(255) NOT NULL,
		autor VARCHAR(255) NOT NULL,
		isbn VARCHAR(20),
		categoria VARCHAR(100),
		ano INT,
		editora VARCHAR(100),
		edicao VARCHAR(50),
		descricao TEXT,
		foto_path VARCHAR(255),
		data_cadastro {{DATETIME}} DEFAULT CURRENT_TIMESTAMP
	){{ENGINE}}`},
	{Name: "exemplares", DDL: `CREATE TABLE IF NOT EXISTS exemplares (
		id {{PK}},
		livro_id {{FK}} NOT NULL,
		codigo_barras VARCHAR(50) NOT NULL UNIQUE,
		status VARCHAR(50) DEFAULT 'Disponível',
		localizacao VARCHAR(100),
		observacao TEXT,
		data_aquisicao DATE,
		FOREIGN KEY (livro_id) REFERENCES livros (id) ON DELETE CASCADE
	){{ENGINE}}`},
	{Name: "emprestimos_livros", DDL: `CREATE TABLE IF NOT EXISTS emprestimos_livros (
		id {{PK}},
		exemplar_id {{FK}} NOT NULL,
		aluno_id {{FK}} NOT NULL,
		data_retirada {{DATETIME}} NOT NULL,
		data_previsao_devolucao {{DATETIME}} NOT NULL,
		data_devolucao_real {{DATETIME}},
		status VARCHAR(50) DEFAULT 'Ativo',
		renovacoes INT DEFAULT 0,
		observacao TEXT,
		criado_por {{FK}},
		assinatura {{LONGTEXT}},
		FOREIGN KEY (exemplar_id) REFERENCES exemplares (id),
		FOREIGN KEY (aluno_id) REFERENCES alunos (id),
		FOREIGN KEY (criado_por) REFERENCES users (id) ON DELETE SET NULL
	){{ENGINE}}`},
	{Name: "inventory", DDL: `CREATE TABLE IF NOT EXISTS inventory (
		id {{PK}},
		tombamento VARCHAR(100) NOT NULL UNIQUE,
		equipamento VARCHAR(255) NOT NULL,
		carga VARCHAR(255),
		local VARCHAR(255),
		etiquetado {{BOOL}} DEFAULT {{FALSE}},
		data_cadastro {{DATETIME}} DEFAULT CURRENT_TIMESTAMP
	){{ENGINE}}`},
	{Name: "eventos", DDL: `CREATE TABLE IF NOT EXISTS eventos (
		id {{PK}},
		titulo VARCHAR(255) NOT NULL,
		descricao TEXT,
		data_inicio {{DATETIME}} NOT NULL,
		data_fim {{DATETIME}} NOT NULL,
		local VARCHAR(255),
		cor VARCHAR(20) DEFAULT '#007bff',
		tipo VARCHAR(50),
		participantes TEXT,
		criado_por {{FK}},
		data_criacao {{DATETIME}} DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (criado_por) REFERENCES users (id) ON DELETE SET NULL
	){{ENGINE}}`},
}

// Tables devolve as tabelas na ordem de dependência.
func Tables() []Table {
	out := make([]Table, len(tables))
	copy(out, tables)
	return out
}

// TableNames devolve só os nomes, na mesma ordem de Tables.
func TableNames() []string {
	names := make([]string, 0, len(tables))
	for _, t := range tables {
		names = append(names, t.Name)
	}
	return names
}

func gooseDialect(d database.Dialect) goose.Dialect {
	switch d {
	case database.Postgres:
		return goose.DialectPostgres
	case database.SQLite:
		return goose.DialectSQLite3
	default:
		return goose.DialectMySQL
	}
}

func createTablesMigration(d database.Dialect) *goose.Migration {
	up := &goose.GoFunc{
		RunTx: func(ctx context.Context, tx *sql.Tx) error {
			for _, t := range tables {
				if _, err := tx.ExecContext(ctx, d.RenderDDL(t.DDL)); err != nil {
					return fmt.Errorf("erro ao criar tabela %s: %w", t.Name, err)
				}
			}
			return nil
		},
	}
	return goose.NewGoMigration(1, up, nil)
}

// Initialize cria as tabelas que faltam e garante o usuário admin. Pode rodar a cada inicialização.
func Initialize(ctx context.Context, db *database.DB, adminPassword string, logger *zap.Logger) error {
	provider, err := goose.NewProvider(
		gooseDialect(db.Dialect()),
		db.SQL(),
		nil,
		goose.WithGoMigrations(createTablesMigration(db.Dialect())),
		goose.WithDisableGlobalRegistry(true),
	)
	if err != nil {
		return fmt.Errorf("erro ao preparar migrações: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("erro ao aplicar migrações: %w", err)
	}
	for _, r := range results {
		logger.Info("Migração aplicada", zap.Int64("versao", r.Source.Version), zap.Duration("duracao", r.Duration))
	}

	if err := SeedAdmin(ctx, db, adminPassword); err != nil {
		return err
	}
	logger.Info("Banco de dados inicializado", zap.String("dialeto", string(db.Dialect())))
	return nil
}

// SeedAdmin insere o usuário "admin"; se ele já existe, nada acontece.
func SeedAdmin(ctx context.Context, q database.Querier, adminPassword string) error {
	if adminPassword == "" {
		adminPassword = "admin123"
	}
	hash, err := utils.HashPassword(adminPassword)
	if err != nil {
		return err
	}

	insert := q.Builder().
		Insert("users").
		Columns("username", "password", "role").
		Values("admin", hash, "admin")
	insert = q.Dialect().InsertIgnore(insert, "username")

	if _, err := q.Exec(ctx, insert); err != nil {
		return fmt.Errorf("erro ao criar usuário admin: %w", err)
	}
	return nil
}
