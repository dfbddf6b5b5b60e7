package config

import (
	"fmt"
	"time"

	"github.com/CaboRojo/stockfolio/pkg/log"
	"github.com/ilyakaznacheev/cleanenv"
)

const (
	EnvProd = "prod"
	EnvTest = "test"
)

type Config struct {
	Env string `yaml:"env" env:"ENV" env-upd:""`

	CompaniesPath string `yaml:"companies_path" env:"COMPANIES_PATH" env-default:"companies.json"`

	HTTP HTTP `yaml:"http"`

	Postgres Postgres `yaml:"postgres"`

	AlphaVantage AlphaVantage `yaml:"alpha_vantage"`

	Auth Auth `yaml:"auth"`
}

type HTTP struct {
	Port         int           `yaml:"port" env:"HTTP_PORT" env-upd:"" env-default:"8080"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"15s"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Postgres struct {
	Database string `yaml:"database" env:"POSTGRES_DATABASE" env-upd:""`
	Host     string `yaml:"host" env:"POSTGRES_HOST" env-upd:""`
	Schema   string `yaml:"schema" env:"POSTGRES_SCHEMA" env-upd:"" env-default:"stockfolio"`
	Username string `yaml:"username" env:"POSTGRES_USER" env-upd:""`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-upd:""`
	Port     int64  `yaml:"port" env:"POSTGRES_PORT" env-upd:"" env-default:"5432"`
}

type AlphaVantage struct {
	BaseURL string        `yaml:"base_url" env:"ALPHA_VANTAGE_BASE_URL" env-default:"https://www.alphavantage.co/query"`
	APIKey  string        `yaml:"api_key" env:"ALPHA_VANTAGE_API_KEY" env-upd:""`
	Timeout time.Duration `yaml:"timeout" env:"ALPHA_VANTAGE_TIMEOUT" env-default:"10s"`
}

type Auth struct {
	JWTSecret string        `yaml:"jwt_secret" env:"JWT_SECRET_KEY" env-upd:""`
	TokenTTL  time.Duration `yaml:"token_ttl" env:"AUTH_TOKEN_TTL" env-default:"24h"`
}

func (c *Config) GetPostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Postgres.Username, c.Postgres.Password, c.Postgres.Host, c.Postgres.Port, c.Postgres.Database)
}

func GetConfig(configPath string) *Config {
	if configPath == "" {
		log.Fatal("config path is required")
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatal(err.Error())
	}

	if err := cleanenv.UpdateEnv(&cfg); err != nil {
		log.Fatal(err.Error())
	}

	return &cfg
}
