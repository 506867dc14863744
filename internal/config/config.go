// Package config описывает настройки сервиса и их загрузку из YAML-файла и переменных окружения.
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Окружения, влияющие на формат логов.
const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

// Config общая структура настроек.
type Config struct {
	Env                     string          `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string          `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING" env-required:"true"`
	MigrationsPath          string          `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	HTTPServer              HTTPServer      `yaml:"http_server"`
	RedisConnection         RedisConnection `yaml:"redis_connection"`
	RabbitMQ                RabbitMQ        `yaml:"rabbitmq"`
}

// HTTPServer настройки HTTP-сервера.
type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
	// LegacyErrorStatus включает ответ 500 на любую ошибку бизнес-логики.
	LegacyErrorStatus bool    `yaml:"legacy_error_status" env:"HTTP_LEGACY_ERROR_STATUS" env-default:"false"`
	RateLimitRPS      float64 `yaml:"rate_limit_rps" env-default:"50"`
	RateLimitBurst    int     `yaml:"rate_limit_burst" env-default:"100"`
}

// RedisConnection настройки подключения к Redis. Пустой Address отключает кеш.
type RedisConnection struct {
	Address     string        `yaml:"address" env:"REDIS_ADDRESS"`
	Password    string        `yaml:"password" env:"REDIS_PASSWORD"`
	User        string        `yaml:"user"`
	DB          int           `yaml:"db"`
	MaxRetries  int           `yaml:"max_retries" env-default:"3"`
	DialTimeout time.Duration `yaml:"dial_timeout" env-default:"5s"`
	Timeout     time.Duration `yaml:"timeout" env-default:"3s"`
	TTL         time.Duration `yaml:"ttl" env-default:"1h"`
}

// RabbitMQ настройки публикации событий подписки. Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env-default:"gymbo.events"`
	Retries    int           `yaml:"retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// Load читает конфиг из файла path и переменных окружения.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, path)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и завершает процесс при ошибке.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

// String возвращает конфиг без секретов, пригодный для логов.
func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"MigrationsPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"  LegacyErrorStatus: %t\n"+
			"RedisConnection:\n"+
			"  Address: %s\n"+
			"  DB: %d\n"+
			"  TTL: %s\n"+
			"RabbitMQ:\n"+
			"  Enabled: %t\n"+
			"  Exchange: %s\n",
		c.Env,
		c.MigrationsPath,
		c.HTTPServer.Address,
		c.HTTPServer.Timeout,
		c.HTTPServer.IdleTimeout,
		c.HTTPServer.LegacyErrorStatus,
		c.RedisConnection.Address,
		c.RedisConnection.DB,
		c.RedisConnection.TTL,
		c.RabbitMQ.URL != "",
		c.RabbitMQ.Exchange,
	)
}
