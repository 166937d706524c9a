package config

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml (BOOKING_DATABASE_HOST и т.д.)
const EnvPrefix = "BOOKING"

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig        `toml:"server" split_words:"true"`
	Database       DatabaseConfig      `toml:"database" split_words:"true"`
	Logs           LogsConfig          `toml:"logs" split_words:"true"`
	Metrics        MetricsConfig       `toml:"metrics" split_words:"true"`
	Redis          RedisConfig         `toml:"redis" split_words:"true"`
	RabbitMQ       RabbitMQConfig      `toml:"rabbitmq" split_words:"true"`
	UserService    IntegrationConfig   `toml:"user_service" split_words:"true"`
	ListingService IntegrationConfig   `toml:"listing_service" split_words:"true"`
	RateLimit      RateLimitConfig     `toml:"rate_limit" split_words:"true"`
	Notifications  NotificationsConfig `toml:"notifications" split_words:"true"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

type DatabaseConfig struct {
	Host            string `toml:"host" split_words:"true"`
	Port            int    `toml:"port" split_words:"true"`
	User            string `toml:"user" split_words:"true"`
	Password        string `toml:"password" split_words:"true"`
	DBName          string `toml:"dbname" split_words:"true"`
	SSLMode         string `toml:"sslmode" split_words:"true"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"`
	// SerializableAttempts сколько раз повторять транзакцию создания бронирования при конфликте сериализации
	SerializableAttempts int `toml:"serializable_attempts" split_words:"true"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, sslMode)
}

type LogsConfig struct {
	File  string `toml:"file" split_words:"true"`
	Level string `toml:"level" split_words:"true"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" split_words:"true"`
	Path        string `toml:"path" split_words:"true"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// RedisConfig кэш расписаний провайдеров
type RedisConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	Addr     string `toml:"addr" split_words:"true"`
	Password string `toml:"password" split_words:"true"`
	DB       int    `toml:"db" split_words:"true"`
	TTL      int    `toml:"ttl" split_words:"true"` // секунды
}

// RabbitMQConfig публикация уведомлений во внешний транспорт доставки
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled" split_words:"true"`
	URL      string `toml:"url" split_words:"true"`
	Exchange string `toml:"exchange" split_words:"true"`
}

type IntegrationConfig struct {
	URL     string `toml:"url" split_words:"true"`
	Timeout int    `toml:"timeout" split_words:"true"` // секунды
}

// RateLimitConfig ограничение частоты создания бронирований на пользователя
type RateLimitConfig struct {
	Enabled           bool `toml:"enabled" split_words:"true"`
	RequestsPerMinute int  `toml:"requests_per_minute" split_words:"true"`
	Burst             int  `toml:"burst" split_words:"true"`
}

type NotificationsConfig struct {
	Timeout int `toml:"timeout" split_words:"true"` // секунды на сохранение и публикацию
}

// Load читает config.toml, применяет переменные окружения и проверяет результат
func Load(path string) (*Config, error) {
	cfg := defaults()

	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("apply env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     10,
			WriteTimeout:    10,
			IdleTimeout:     60,
			ShutdownTimeout: 15,
		},
		Database: DatabaseConfig{
			Port:                 5432,
			SSLMode:              "disable",
			MaxOpenConns:         25,
			MaxIdleConns:         5,
			ConnMaxLifetime:      300,
			SerializableAttempts: 3,
		},
		Logs:          LogsConfig{Level: "info"},
		Metrics:       MetricsConfig{Path: "/metrics", ServiceName: "marketplace_booking"},
		Redis:         RedisConfig{TTL: 300},
		RabbitMQ:      RabbitMQConfig{Exchange: "marketplace.events"},
		RateLimit:     RateLimitConfig{RequestsPerMinute: 30, Burst: 5},
		Notifications: NotificationsConfig{Timeout: 5},
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var errs []error

	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		errs = append(errs, fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort))
	}
	if c.Database.Host == "" {
		errs = append(errs, errors.New("database.host is required"))
	}
	if c.Database.DBName == "" {
		errs = append(errs, errors.New("database.dbname is required"))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required when redis is enabled"))
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		errs = append(errs, errors.New("rabbitmq.url is required when rabbitmq is enabled"))
	}
	if c.RateLimit.Enabled && (c.RateLimit.RequestsPerMinute <= 0 || c.RateLimit.Burst <= 0) {
		errs = append(errs, errors.New("rate_limit.requests_per_minute and rate_limit.burst must be positive"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
