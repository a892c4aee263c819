package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type (
	APP struct {
		Name           string
		Host           string
		Port           string
		Env            string
		JWTSecret      string
		StorageDriver  string
		CatalogPath    string
		EmailDomain    string
		RecentActivity int
		GaugeSchedule  string
	}
	DB struct {
		User     string
		Password string
		Name     string
		Host     string
		Port     string
		MaxConns int32
	}
	MQ struct {
		Enabled      bool
		User         string
		Password     string
		Vhost        string
		Host         string
		AmqpPort     string
		Exchange     string
		ExchangeType string
		QueueName    string
	}

	Config struct {
		App APP
		DB  DB
		MQ  MQ
	}
)

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return def
	}
	return n
}

func getEnvBool(key string, def bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return def
	}
	return b
}

// LoadEnvFile reads path into the environment if it exists. Variables
// already set win.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return godotenv.Load(path)
}

func Load() Config {
	app := APP{
		Name:           getEnv("SERVICE_NAME", "hospital-admin-api"),
		Host:           getEnv("SERVICE_HOST", ""),
		Port:           getEnv("SERVICE_PORT", "8080"),
		Env:            getEnv("SERVICE_ENV", ""),
		JWTSecret:      getEnv("SERVICE_JWT_SECRET", ""),
		StorageDriver:  strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		CatalogPath:    getEnv("CATALOG_PATH", "catalog.yaml"),
		EmailDomain:    getEnv("ACCOUNT_EMAIL_DOMAIN", "hospital.local"),
		RecentActivity: getEnvInt("STATS_RECENT_ACTIVITY", 10),
		GaugeSchedule:  getEnv("STATS_GAUGE_SCHEDULE", "@every 1m"),
	}
	db := DB{
		User:     getEnv("POSTGRES_USER", ""),
		Password: getEnv("POSTGRES_PASSWORD", ""),
		Name:     getEnv("POSTGRES_DB", ""),
		Host:     getEnv("POSTGRES_HOST", ""),
		Port:     getEnv("POSTGRES_PORT", ""),
		MaxConns: int32(getEnvInt("DB_MAX_CONNS", 0)),
	}
	mq := MQ{
		Enabled:      getEnvBool("RABBITMQ_ENABLED", true),
		User:         getEnv("RABBITMQ_USER", ""),
		Password:     getEnv("RABBITMQ_PASSWORD", ""),
		Vhost:        getEnv("RABBITMQ_VHOST", ""),
		Host:         getEnv("RABBITMQ_HOST", ""),
		AmqpPort:     getEnv("RABBITMQ_AMQP_PORT", ""),
		Exchange:     getEnv("RABBITMQ_EXCHANGE", "hospital.admin.audit"),
		ExchangeType: getEnv("RABBITMQ_EXCHANGE_TYPE", "topic"),
		QueueName:    getEnv("RABBITMQ_QUEUE_NAME", "hospital.admin.activity"),
	}

	return Config{
		App: app,
		DB:  db,
		MQ:  mq,
	}
}

// Validate checks the settings every driver needs.
func (c Config) Validate() error {
	switch c.App.StorageDriver {
	case StorageDriverPostgres, StorageDriverMemory:
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.App.StorageDriver)
	}
	if c.App.JWTSecret == "" {
		return fmt.Errorf("SERVICE_JWT_SECRET is required")
	}
	if strings.TrimSpace(strings.TrimPrefix(c.App.EmailDomain, "@")) == "" {
		return fmt.Errorf("ACCOUNT_EMAIL_DOMAIN is required")
	}
	return nil
}

func (c Config) DBDSN() (string, error) {
	if c.DB.User == "" || c.DB.Name == "" || c.DB.Host == "" || c.DB.Port == "" {
		return "", fmt.Errorf("incomplete DB config")
	}
	return fmt.Sprintf(
		"postgres://%s@%s:%s/%s",
		url.UserPassword(c.DB.User, c.DB.Password).String(),
		c.DB.Host,
		c.DB.Port,
		c.DB.Name,
	), nil
}

func (c Config) AMQPDSN() (string, error) {
	if c.MQ.User == "" || c.MQ.Host == "" || c.MQ.AmqpPort == "" {
		return "", fmt.Errorf("invalid MQ config: user, host and amqp port are required")
	}

	return fmt.Sprintf(
		"%s://%s@%s:%s/%s",
		"amqp",
		url.UserPassword(c.MQ.User, c.MQ.Password).String(),
		c.MQ.Host,
		c.MQ.AmqpPort,
		url.PathEscape(c.MQ.Vhost),
	), nil
}
