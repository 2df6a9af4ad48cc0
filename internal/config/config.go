package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port         string        `yaml:"port"`
	GinMode      string        `yaml:"gin_mode"`
	LogLevel     string        `yaml:"log_level"`
	DBDriver     string        `yaml:"db_driver"`
	DBHost       string        `yaml:"db_host"`
	DBPort       string        `yaml:"db_port"`
	DBUser       string        `yaml:"db_user"`
	DBPassword   string        `yaml:"db_password"`
	DBName       string        `yaml:"db_name"`
	DBPath       string        `yaml:"db_path"`
	JWTSecret    string        `yaml:"jwt_secret"`
	JWTTTL       time.Duration `yaml:"jwt_ttl"`
	OpenAIAPIKey string        `yaml:"openai_api_key"`
	OpenAIModel  string        `yaml:"openai_model"`
}

// Default returns the configuration used when neither a file nor the
// environment sets a value.
func Default() *Config {
	return &Config{
		Port:        "8080",
		GinMode:     "debug",
		LogLevel:    "info",
		DBDriver:    DriverMySQL,
		DBHost:      "localhost",
		DBPort:      "3306",
		DBUser:      "taskuser",
		DBPassword:  "taskpassword",
		DBName:      "task_management",
		DBPath:      "tasknest.db",
		JWTTTL:      time.Hour,
		OpenAIModel: "gpt-4o",
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path and finally environment variables. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.JWTTTL <= 0 {
		return fmt.Errorf("JWT_TTL must be positive")
	}
	switch c.DBDriver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	c.Port = getEnv("PORT", c.Port)
	c.GinMode = getEnv("GIN_MODE", c.GinMode)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.DBDriver = getEnv("DB_DRIVER", c.DBDriver)
	c.DBHost = getEnv("DB_HOST", c.DBHost)
	c.DBPort = getEnv("DB_PORT", c.DBPort)
	c.DBUser = getEnv("DB_USER", c.DBUser)
	c.DBPassword = getEnv("DB_PASSWORD", c.DBPassword)
	c.DBName = getEnv("DB_NAME", c.DBName)
	c.DBPath = getEnv("DB_PATH", c.DBPath)
	c.JWTSecret = getEnv("JWT_SECRET", c.JWTSecret)
	c.OpenAIAPIKey = getEnv("OPENAI_API_KEY", c.OpenAIAPIKey)
	c.OpenAIModel = getEnv("OPENAI_MODEL", c.OpenAIModel)

	if ttl := os.Getenv("JWT_TTL"); ttl != "" {
		d, err := time.ParseDuration(ttl)
		if err != nil {
			return fmt.Errorf("invalid JWT_TTL %q: %w", ttl, err)
		}
		c.JWTTTL = d
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
