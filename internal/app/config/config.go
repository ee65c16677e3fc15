package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceHost string
	ServicePort int
	Managers    []string // email-адреса, получающие роль менеджера при входе
	Billing     BillingConfig
	JWT         JWTConfig
	Redis       RedisConfig
	Postgres    PostgresConfig
	Minio       MinioConfig
}

// BillingConfig — параметры подключения к REST API биллинга
type BillingConfig struct {
	BaseURL  string
	Timeout  time.Duration
	PageSize int // фиксированный размер страницы списков биллинга
}

type JWTConfig struct {
	Secret        string
	ExpiresIn     time.Duration
	SigningMethod jwt.SigningMethod
}

type RedisConfig struct {
	Host        string
	Password    string
	Port        int
	User        string
	DialTimeout time.Duration
	ReadTimeout time.Duration
}

type PostgresConfig struct {
	DSN string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

const (
	envRedisHost    = "REDIS_HOST"
	envRedisPort    = "REDIS_PORT"
	envRedisUser    = "REDIS_USER"
	envRedisPass    = "REDIS_PASSWORD"
	envPostgresDSN  = "POSTGRES_DSN"
	envJWTSecret    = "JWT_SECRET"
	envMinioAccess  = "MINIO_ACCESS_KEY"
	envMinioSecret  = "MINIO_SECRET_KEY"
	envBillingURL   = "BILLING_API_URL"
)

func NewConfig() (*Config, error) {
	var err error

	configName := "config"
	_ = godotenv.Load()
	if os.Getenv("CONFIG_NAME") != "" {
		configName = os.Getenv("CONFIG_NAME")
	}

	viper.SetConfigName(configName)
	viper.SetConfigType("toml")
	viper.AddConfigPath("config")
	viper.AddConfigPath(".")
	viper.WatchConfig()

	err = viper.ReadInConfig()
	if err != nil {
		return nil, err
	}

	cfg := &Config{}
	err = viper.Unmarshal(cfg)
	if err != nil {
		return nil, err
	}

	// адрес биллинга можно переопределить из env
	if os.Getenv(envBillingURL) != "" {
		cfg.Billing.BaseURL = os.Getenv(envBillingURL)
	}
	if cfg.Billing.BaseURL == "" {
		return nil, fmt.Errorf("billing base url is not configured")
	}
	if cfg.Billing.Timeout == 0 {
		cfg.Billing.Timeout = 15 * time.Second
	}
	if cfg.Billing.PageSize == 0 {
		cfg.Billing.PageSize = 10
	}

	// инициализация JWT конфигурации
	cfg.JWT = JWTConfig{
		Secret:        os.Getenv(envJWTSecret),
		ExpiresIn:     24 * time.Hour,
		SigningMethod: jwt.SigningMethodHS256,
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// инициализация Redis конфигурации из env
	cfg.Redis.Host = os.Getenv(envRedisHost)
	cfg.Redis.Port, err = strconv.Atoi(os.Getenv(envRedisPort))
	if err != nil {
		return nil, fmt.Errorf("redis port must be int value: %w", err)
	}
	cfg.Redis.Password = os.Getenv(envRedisPass)
	cfg.Redis.User = os.Getenv(envRedisUser)
	cfg.Redis.DialTimeout = 10 * time.Second
	cfg.Redis.ReadTimeout = 10 * time.Second

	cfg.Postgres.DSN = os.Getenv(envPostgresDSN)

	cfg.Minio.AccessKey = os.Getenv(envMinioAccess)
	cfg.Minio.SecretKey = os.Getenv(envMinioSecret)

	log.Info("config parsed")

	return cfg, nil
}
