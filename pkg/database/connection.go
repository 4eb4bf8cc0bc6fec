package database

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	apperrors "academy-manager/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/glebarez/go-sqlite"
	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
)

type Config struct {
	Type            string
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	Path            string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (c Config) dsn(d Dialect) string {
	switch d {
	case Postgres:
		port := c.Port
		if port == 0 {
			port = 5432
		}
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     net.JoinHostPort(c.Host, strconv.Itoa(port)),
			Path:     "/" + c.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	case SQLite:
		path := c.Path
		if path == "" {
			path = c.Name + ".db"
		}
		return path + "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
	default:
		port := c.Port
		if port == 0 {
			port = 3306
		}
		cfg := mysql.NewConfig()
		cfg.User = c.User
		cfg.Passwd = c.Password
		cfg.Net = "tcp"
		cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(port))
		cfg.DBName = c.Name
		cfg.ParseTime = true
		// RowsAffected conta linhas encontradas, não só as alteradas.
		cfg.ClientFoundRows = true
		cfg.Loc = time.UTC
		cfg.Params = map[string]string{"charset": "utf8mb4"}
		return cfg.FormatDSN()
	}
}

// DB é o pool de conexões já associado a um dialeto.
type DB struct {
	session
	sqlDB *sql.DB
}

// Open abre o pool do banco escolhido em cfg.Type e testa a conexão.
// Qualquer falha volta como erro que satisfaz errors.Is(err, ErrDatabaseUnavailable).
func Open(ctx context.Context, cfg Config) (*DB, error) {
	dialect, err := ParseDialect(cfg.Type)
	if err != nil {
		return nil, err
	}

	sqlDB, err := sql.Open(dialect.driverName(), cfg.dsn(dialect))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDatabaseUnavailable, err)
	}

	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: %v", apperrors.ErrDatabaseUnavailable, err)
	}

	return Wrap(sqlDB, dialect), nil
}

// Wrap associa um *sql.DB já aberto a um dialeto.
func Wrap(sqlDB *sql.DB, dialect Dialect) *DB {
	return &DB{
		session: newSession(sqlDB, dialect),
		sqlDB:   sqlDB,
	}
}

func (db *DB) SQL() *sql.DB { return db.sqlDB }

func (db *DB) Close() error { return db.sqlDB.Close() }

func (db *DB) Ping(ctx context.Context) error {
	return Normalize(db.sqlDB.PingContext(ctx))
}

func (db *DB) Begin(ctx context.Context) (*Tx, error) {
	tx, err := db.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return nil, Normalize(err)
	}
	return &Tx{session: newSession(tx, db.dialect), sqlTx: tx}, nil
}

type Tx struct {
	session
	sqlTx *sql.Tx
}

func (tx *Tx) Commit() error   { return Normalize(tx.sqlTx.Commit()) }
func (tx *Tx) Rollback() error { return tx.sqlTx.Rollback() }

func newSession(r runner, dialect Dialect) session {
	return session{
		run:     r,
		dialect: dialect,
		builder: sq.StatementBuilder.PlaceholderFormat(dialect.Placeholder()),
	}
}
