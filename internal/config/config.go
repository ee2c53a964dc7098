package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageMySQL  = "mysql"

	defaultConfigPath = "./config/local.yaml"
)

type Config struct {
	Env           string `yaml:"env" env:"PRODLOG_ENV" env-default:"prod"`
	Storage       string `yaml:"storage" env:"PRODLOG_STORAGE" env-default:"memory"`
	SeedDemoUsers bool   `yaml:"seed_demo_users" env:"PRODLOG_SEED_DEMO_USERS"`
	HTTPServer    `yaml:"http_server"`
	CORS          `yaml:"cors"`

	DBUser     string `yaml:"db_user" env:"PRODLOG_DB_USER"`
	DBPassword string `yaml:"db_password" env:"PRODLOG_DB_PASSWORD"`
	DBHost     string `yaml:"db_host" env:"PRODLOG_DB_HOST" env-default:"localhost"`
	DBPort     int    `yaml:"db_port" env:"PRODLOG_DB_PORT" env-default:"3306"`
	DBName     string `yaml:"db_name" env:"PRODLOG_DB_NAME"`
	ParseTime  bool   `yaml:"parse_time" env-default:"true"`

	AdminLogin string `yaml:"admin_login" env:"PRODLOG_ADMIN_LOGIN"`
	AdminPass  string `yaml:"admin_pass" env:"PRODLOG_ADMIN_PASS"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"PRODLOG_HTTP_ADDRESS" env-default:"localhost:4001"`
	Timeout     time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env:"PRODLOG_CORS_ALLOWED_ORIGINS" env-default:"http://localhost:5173"`
}

// DSN строка подключения к MySQL
func (c Config) DSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=%v",
		c.DBUser,
		c.DBPassword,
		c.DBHost,
		c.DBPort,
		c.DBName,
		c.ParseTime,
	)
}

// Load читает YAML по пути и накладывает переменные окружения
func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read config %s: %w", op, path, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &cfg, nil
}

func (c Config) validate() error {
	switch c.Storage {
	case StorageMemory:
	case StorageMySQL:
		if c.DBUser == "" || c.DBName == "" {
			return fmt.Errorf("storage %q requires db_user and db_name", c.Storage)
		}
	default:
		return fmt.Errorf("unknown storage %q", c.Storage)
	}
	return nil
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}
