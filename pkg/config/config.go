package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"academy-manager/pkg/database"

	"github.com/joho/godotenv"
)

type AuthConfig struct {
	MaxLoginAttempts int
	LockoutDuration  time.Duration
	AdminPassword    string
}

type SessionConfig struct {
	SecretKey    string
	TTL          time.Duration
	CookieSecure bool
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Type         string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	Path         string
	MaxOpenConns int
}

// Connection converte a configuração para o formato do pkg/database.
func (c DatabaseConfig) Connection() database.Config {
	return database.Config{
		Type:            c.Type,
		Host:            c.Host,
		Port:            c.Port,
		User:            c.User,
		Password:        c.Password,
		Name:            c.Name,
		Path:            c.Path,
		MaxOpenConns:    c.MaxOpenConns,
		MaxIdleConns:    c.MaxOpenConns / 2,
		ConnMaxLifetime: 5 * time.Minute,
	}
}

type RedisConfig struct {
	Address  string
	Password string
}

type StorageConfig struct {
	UploadDir string
	BackupDir string
}

type MailConfig struct {
	Server        string
	Port          int
	Username      string
	Password      string
	DefaultSender string
}

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	Auth     AuthConfig
	Storage  StorageConfig
	Mail     MailConfig
}

func New() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Aviso: arquivo .env não encontrado, usando variáveis de ambiente.")
	}

	return &Config{
		Server: ServerConfig{
			Port:           getEnv("SERVER_PORT", "8080"),
			AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:3000")),
		},
		Database: DatabaseConfig{
			Type:         getEnv("DB_TYPE", "mysql"),
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnvInt("DB_PORT", 0),
			User:         getEnv("DB_USER", "root"),
			Password:     getEnv("DB_PASSWORD", ""),
			Name:         getEnv("DB_NAME", "apple_academy"),
			Path:         getEnv("DB_PATH", "apple_academy.db"),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 10),
		},
		Redis: RedisConfig{
			Address:  getEnv("REDIS_ADDRESS", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
		},
		Session: SessionConfig{
			SecretKey:    getEnv("SESSION_SECRET_KEY", "apple-academy-dev-secret-change-me"),
			TTL:          time.Duration(getEnvInt("SESSION_TTL_HOURS", 24)) * time.Hour,
			CookieSecure: getEnvBool("COOKIE_SECURE", false),
		},
		Auth: AuthConfig{
			MaxLoginAttempts: getEnvInt("AUTH_MAX_LOGIN_ATTEMPTS", 5),
			LockoutDuration:  time.Duration(getEnvInt("AUTH_LOCKOUT_MINUTES", 15)) * time.Minute,
			AdminPassword:    getEnv("ADMIN_PASSWORD", "admin123"),
		},
		Storage: StorageConfig{
			UploadDir: getEnv("UPLOAD_DIR", "uploads"),
			BackupDir: getEnv("BACKUP_DIR", "backups"),
		},
		Mail: MailConfig{
			Server:        getEnv("MAIL_SERVER", "smtp.gmail.com"),
			Port:          getEnvInt("MAIL_PORT", 587),
			Username:      getEnv("MAIL_USERNAME", ""),
			Password:      getEnv("MAIL_PASSWORD", ""),
			DefaultSender: getEnv("MAIL_DEFAULT_SENDER", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Aviso: valor inválido para %s (%q), usando %d", key, value, fallback)
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	b, err := strconv.ParseBool(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return b
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
