package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config es la configuración del gateway.
type Config struct {
	Server struct {
		Port            string        `yaml:"port" env:"PORT"`
		ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT"`
		WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"`
		AllowedOrigins  string        `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"` // separados por coma
	} `yaml:"server"`

	Backend struct {
		// BaseURL vacío = backend en memoria (modo dev).
		BaseURL      string        `yaml:"base_url" env:"BACKEND_URL"`
		Timeout      time.Duration `yaml:"timeout" env:"BACKEND_TIMEOUT"`
		AllowOpaque  bool          `yaml:"allow_opaque_tokens" env:"BACKEND_ALLOW_OPAQUE_TOKENS"`
		DevToken     string        `yaml:"dev_token" env:"DEV_TOKEN"`
		DevScanLimit int           `yaml:"dev_scan_limit" env:"DEV_SCAN_LIMIT"`
	} `yaml:"backend"`

	Storage struct {
		// Driver: memory | postgres | redis | sqlite
		Driver      string        `yaml:"driver" env:"STORAGE_DRIVER"`
		PostgresDSN string        `yaml:"postgres_dsn" env:"DB_DSN"`
		RedisURL    string        `yaml:"redis_url" env:"REDIS_URL"`
		RedisTTL    time.Duration `yaml:"redis_ttl" env:"REDIS_TTL"`
		SQLitePath  string        `yaml:"sqlite_path" env:"SQLITE_PATH"`
	} `yaml:"storage"`

	Cloudinary struct {
		CloudName string `yaml:"cloud_name" env:"CLOUDINARY_CLOUD_NAME"`
		APIKey    string `yaml:"api_key" env:"CLOUDINARY_API_KEY"`
		APISecret string `yaml:"api_secret" env:"CLOUDINARY_API_SECRET"`
		Folder    string `yaml:"folder" env:"CLOUDINARY_FOLDER"`
	} `yaml:"cloudinary"`

	Geo struct {
		DefaultRadiusKm float64 `yaml:"default_radius_km" env:"GEO_DEFAULT_RADIUS_KM"`
	} `yaml:"geo"`

	Refresh struct {
		Timeout time.Duration `yaml:"timeout" env:"REFRESH_TIMEOUT"`
	} `yaml:"refresh"`

	Logging struct {
		Level  string `yaml:"level" env:"LOG_LEVEL"`
		Format string `yaml:"format" env:"LOG_FORMAT"`
	} `yaml:"logging"`
}

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverSQLite   = "sqlite"
)

// LoadConfig arma la config: defaults -> archivo YAML (si existe) -> variables de entorno.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}
	setDefaults(config)

	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			file, err := os.ReadFile(configPath)
			if err != nil {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
			if err := yaml.Unmarshal(file, config); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := processStructFields(config); err != nil {
		return nil, fmt.Errorf("failed to load from environment: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

func setDefaults(config *Config) {
	config.Server.Port = "8080"
	config.Server.ReadTimeout = 15 * time.Second
	config.Server.WriteTimeout = 60 * time.Second
	config.Server.ShutdownTimeout = 10 * time.Second
	config.Server.AllowedOrigins = "capacitor://localhost,http://localhost,http://localhost:5173"

	config.Backend.Timeout = 20 * time.Second
	config.Backend.DevToken = "dev-token"

	config.Storage.Driver = DriverMemory
	config.Storage.RedisTTL = 7 * 24 * time.Hour
	config.Storage.SQLitePath = "pet-companion.db"

	config.Cloudinary.Folder = "pet-companion"

	config.Geo.DefaultRadiusKm = 15

	config.Refresh.Timeout = 30 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "text"
}

func validateConfig(config *Config) error {
	switch config.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if config.Storage.PostgresDSN == "" {
			return fmt.Errorf("postgres storage requires DB_DSN")
		}
	case DriverRedis:
		if config.Storage.RedisURL == "" {
			return fmt.Errorf("redis storage requires REDIS_URL")
		}
	case DriverSQLite:
		if config.Storage.SQLitePath == "" {
			return fmt.Errorf("sqlite storage requires SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", config.Storage.Driver)
	}

	if config.Geo.DefaultRadiusKm <= 0 {
		return fmt.Errorf("geo default radius must be positive")
	}
	return nil
}

// CloudinaryEnabled indica si hay credenciales completas.
func (c *Config) CloudinaryEnabled() bool {
	return c.Cloudinary.CloudName != "" && c.Cloudinary.APIKey != "" && c.Cloudinary.APISecret != ""
}

// Origins devuelve la lista de orígenes permitidos para CORS.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.Server.AllowedOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// Addr devuelve la dirección de escucha (":8080").
func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Server.Port, ":")
}
