package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Port            string        `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

type GRPCConfig struct {
	// Port пустой - gRPC сервер не запускается
	Port string `mapstructure:"port"`
}

type SecurityConfig struct {
	// APIKey пустой - проверка заголовка X-API-Key отключена
	APIKey             string        `mapstructure:"api_key"`
	CORSAllowedOrigins []string      `mapstructure:"cors_allowed_origins"`
	RateLimitRequests  int           `mapstructure:"rate_limit_requests"`
	RateLimitWindow    time.Duration `mapstructure:"rate_limit_window"`
}

type DBConfig struct {
	Host          string `mapstructure:"host"`
	Port          string `mapstructure:"port"`
	User          string `mapstructure:"user"`
	Password      string `mapstructure:"password"`
	Name          string `mapstructure:"name"`
	SSLMode       string `mapstructure:"sslmode"`
	MigrationsDir string `mapstructure:"migrations_dir"`
}

type RabbitMQConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Queue    string `mapstructure:"queue"`
}

type Config struct {
	HTTP     HTTPConfig     `mapstructure:"http"`
	GRPC     GRPCConfig     `mapstructure:"grpc"`
	Security SecurityConfig `mapstructure:"security"`
	DB       DBConfig       `mapstructure:"db"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
}

// envBindings - ключ конфигурации и переменные окружения для него
var envBindings = map[string][]string{
	"http.port":                     {"HTTP_PORT", "PORT"},
	"http.shutdown_timeout":         {"HTTP_SHUTDOWN_TIMEOUT"},
	"http.max_body_bytes":           {"HTTP_MAX_BODY_BYTES"},
	"grpc.port":                     {"GRPC_PORT"},
	"security.api_key":              {"API_KEY"},
	"security.cors_allowed_origins": {"CORS_ALLOWED_ORIGINS"},
	"security.rate_limit_requests":  {"RATE_LIMIT_REQUESTS"},
	"security.rate_limit_window":    {"RATE_LIMIT_WINDOW"},
	"db.host":                       {"DB_HOST"},
	"db.port":                       {"DB_PORT"},
	"db.user":                       {"DB_USER"},
	"db.password":                   {"DB_PASSWORD"},
	"db.name":                       {"DB_NAME"},
	"db.sslmode":                    {"DB_SSLMODE"},
	"db.migrations_dir":             {"DB_MIGRATIONS_DIR"},
	"rabbitmq.host":                 {"RABBITMQ_HOST"},
	"rabbitmq.port":                 {"RABBITMQ_PORT"},
	"rabbitmq.user":                 {"RABBITMQ_USER"},
	"rabbitmq.password":             {"RABBITMQ_PASSWORD"},
	"rabbitmq.queue":                {"RABBITMQ_QUEUE"},
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.port", "5000")
	v.SetDefault("http.shutdown_timeout", 10*time.Second)
	v.SetDefault("http.max_body_bytes", 1<<20)
	v.SetDefault("grpc.port", "9090")
	v.SetDefault("security.api_key", "")
	v.SetDefault("security.cors_allowed_origins", []string{"*"})
	v.SetDefault("security.rate_limit_requests", 100)
	v.SetDefault("security.rate_limit_window", 15*time.Minute)
	v.SetDefault("db.host", "")
	v.SetDefault("db.port", "5432")
	v.SetDefault("db.user", "")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.migrations_dir", "migrations")
	v.SetDefault("rabbitmq.host", "")
	v.SetDefault("rabbitmq.port", "5672")
	v.SetDefault("rabbitmq.user", "guest")
	v.SetDefault("rabbitmq.password", "guest")
	v.SetDefault("rabbitmq.queue", "item_audit_logs")
}

// Load читает конфигурацию: значения по умолчанию, затем YAML файл
// (если path не пустой и файл существует), затем переменные окружения.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("binding env for %s: %w", key, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(*os.PathError); !ok {
				if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
					return nil, fmt.Errorf("reading config %s: %w", path, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// CORS_ALLOWED_ORIGINS приходит из окружения одной строкой через запятую
	cfg.Security.CORSAllowedOrigins = splitList(cfg.Security.CORSAllowedOrigins)

	return &cfg, nil
}

func splitList(values []string) []string {
	var out []string
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// AuditEnabled - аудит работает только если настроены и БД, и RabbitMQ
func (c *Config) AuditEnabled() bool {
	return c.DB.Host != "" && c.RabbitMQ.Host != ""
}

func (c DBConfig) URL() string {
	return fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode)
}

func (c RabbitMQConfig) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%s/",
		c.User, c.Password, c.Host, c.Port)
}
