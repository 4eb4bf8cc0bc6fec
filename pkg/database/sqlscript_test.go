package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitStatements(t *testing.T) {
	script := `-- Backup
/*!40101 SET NAMES utf8 */;
INSERT INTO alunos (id, nome) VALUES (1, 'Ana; Maria');
# comentário
INSERT INTO alunos (id, nome) VALUES (2, 'D''Ávila'), (3, 'Bia \'B\'');
/* bloco
   com ; dentro */
UPDATE devices SET nome = "a;b" WHERE id = 1;;
`
	stmts := SplitStatements(script)
	assert.Equal(t, []string{
		"INSERT INTO alunos (id, nome) VALUES (1, 'Ana; Maria')",
		"INSERT INTO alunos (id, nome) VALUES (2, 'D''Ávila'), (3, 'Bia \\'B\\'')",
		`UPDATE devices SET nome = "a;b" WHERE id = 1`,
	}, stmts)
}

func TestSplitStatements_EmptyScript(t *testing.T) {
	assert.Empty(t, SplitStatements("  -- nada\n/* nada */\n"))
}

func TestDialect_NormalizeStatement(t *testing.T) {
	create := "CREATE TABLE `alunos` (`id` int NOT NULL AUTO_INCREMENT, `nome` varchar(255) COLLATE utf8mb4_unicode_ci, PRIMARY KEY (`id`)) ENGINE=InnoDB AUTO_INCREMENT=12 DEFAULT CHARSET=utf8mb4"

	assert.Equal(t, create, MySQL.NormalizeStatement(create))
	assert.Equal(t,
		`CREATE TABLE "alunos" ("id" SERIAL, "nome" varchar(255), PRIMARY KEY ("id"))`,
		Postgres.NormalizeStatement(create))
	assert.Equal(t,
		`CREATE TABLE "alunos" ("id" INTEGER, "nome" varchar(255), PRIMARY KEY ("id"))`,
		SQLite.NormalizeStatement(create))

	for _, d := range []Dialect{MySQL, Postgres, SQLite} {
		assert.Empty(t, d.NormalizeStatement("LOCK TABLES `alunos` WRITE"), d)
		assert.Empty(t, d.NormalizeStatement("unlock tables"), d)
	}
	assert.Equal(t, "SET FOREIGN_KEY_CHECKS=0", MySQL.NormalizeStatement("SET FOREIGN_KEY_CHECKS=0"))
	assert.Empty(t, SQLite.NormalizeStatement("SET FOREIGN_KEY_CHECKS=0"))
	assert.Empty(t, Postgres.NormalizeStatement("SET @OLD_SQL_MODE=@@SQL_MODE"))
}
