package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	MemoryStorage   = "memory"   // Данные только в памяти процесса
	PostgresStorage = "postgres" // Данные в PostgreSQL

	InlineBlobs = "inline" // Содержимое версий хранится внутри предложения
	MemoryBlobs = "memory" // Содержимое версий в отдельном хранилище в памяти
	S3Blobs     = "s3"     // Содержимое версий в S3
)

// Config - структура для хранения конфигураций приложения
type Config struct {
	ServerAddress  string        `mapstructure:"SERVER_ADDRESS"`
	StorageDriver  string        `mapstructure:"STORAGE_DRIVER"`
	PostgresConn   string        `mapstructure:"POSTGRES_CONN"`
	PostgresUser   string        `mapstructure:"POSTGRES_USERNAME"`
	PostgresPass   string        `mapstructure:"POSTGRES_PASSWORD"`
	PostgresHost   string        `mapstructure:"POSTGRES_HOST"`
	PostgresPort   string        `mapstructure:"POSTGRES_PORT"`
	PostgresDB     string        `mapstructure:"POSTGRES_DATABASE"`
	MigrationURL   string        `mapstructure:"MIGRATION_URL"`
	BlobDriver     string        `mapstructure:"BLOB_DRIVER"`
	S3Bucket       string        `mapstructure:"AWS_S3_BUCKET"`
	S3Region       string        `mapstructure:"AWS_REGION"`
	S3Endpoint     string        `mapstructure:"AWS_ENDPOINT_URL"`
	RequestTimeout time.Duration `mapstructure:"REQUEST_TIMEOUT"`
	LogLevel       string        `mapstructure:"LOG_LEVEL"`
	SeedDemoData   bool          `mapstructure:"SEED_DEMO_DATA"`
}

var keys = []string{
	"SERVER_ADDRESS", "STORAGE_DRIVER",
	"POSTGRES_CONN", "POSTGRES_USERNAME", "POSTGRES_PASSWORD", "POSTGRES_HOST", "POSTGRES_PORT", "POSTGRES_DATABASE",
	"MIGRATION_URL", "BLOB_DRIVER", "AWS_S3_BUCKET", "AWS_REGION", "AWS_ENDPOINT_URL",
	"REQUEST_TIMEOUT", "LOG_LEVEL", "SEED_DEMO_DATA",
}

// LoadConfig загружает конфигурацию из файла app.env и переменных окружения.
// Файл необязателен, .env рядом с ним подгружается в окружение заранее.
func LoadConfig(path string) (cfg Config, err error) {
	if err = godotenv.Load(filepath.Join(path, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("STORAGE_DRIVER", MemoryStorage)
	v.SetDefault("MIGRATION_URL", "file://internal/db/migrations")
	v.SetDefault("BLOB_DRIVER", InlineBlobs)
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("REQUEST_TIMEOUT", 5*time.Second)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SEED_DEMO_DATA", false)
	// AutomaticEnv не видит ключи без значения по умолчанию при Unmarshal.
	for _, key := range keys {
		if err = v.BindEnv(key); err != nil {
			return
		}
	}

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}
	err = v.Unmarshal(&cfg)
	if err != nil {
		return
	}
	err = cfg.Validate()
	return
}

// DatabaseURL возвращает строку подключения: POSTGRES_CONN или собранную из отдельных полей.
func (c Config) DatabaseURL() (string, error) {
	if c.PostgresConn != "" {
		return c.PostgresConn, nil
	}
	if c.PostgresUser == "" || c.PostgresPass == "" || c.PostgresHost == "" || c.PostgresPort == "" || c.PostgresDB == "" {
		return "", errors.New("one or more database connection environment variables are missing")
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPass, c.PostgresHost, c.PostgresPort, c.PostgresDB), nil
}

// Validate проверяет согласованность выбранных драйверов.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case MemoryStorage, PostgresStorage:
	default:
		return errors.New("STORAGE_DRIVER must be memory or postgres")
	}
	switch c.BlobDriver {
	case InlineBlobs, MemoryBlobs:
	case S3Blobs:
		if c.S3Bucket == "" {
			return errors.New("AWS_S3_BUCKET is required when BLOB_DRIVER=s3")
		}
	default:
		return errors.New("BLOB_DRIVER must be inline, memory or s3")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("REQUEST_TIMEOUT must be positive")
	}
	return nil
}
