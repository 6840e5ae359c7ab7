package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvPrefix = "MODELLOADER"

	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"

	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type (
	Config struct {
		Environment string       `mapstructure:"environment"`
		Models      ModelsConfig `mapstructure:"models"`
		DB          DBConfig     `mapstructure:"db"`
		Server      ServerConfig `mapstructure:"server"`
		Auth        AuthConfig   `mapstructure:"auth"`
	}

	ModelsConfig struct {
		Dir     string         `mapstructure:"dir"`
		Suffix  string         `mapstructure:"suffix"`
		Schema  string         `mapstructure:"schema"`
		Context map[string]any `mapstructure:"context"`
	}

	DBConfig struct {
		Driver string `mapstructure:"driver"`
		DSN    string `mapstructure:"dsn"`
	}

	ServerConfig struct {
		Host string `mapstructure:"host"`
		Port string `mapstructure:"port"`
	}

	AuthConfig struct {
		JWTSecret string `mapstructure:"jwt_secret"`
	}
)

// NewViper returns a viper instance with defaults and environment
// binding set up. Nested keys map to MODELLOADER_DB_DSN and friends.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(
		`.`, `_`,
		`-`, `_`,
	))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", EnvDevelopment)
	v.SetDefault("models.dir", "models")
	v.SetDefault("models.suffix", ".model.yaml")
	v.SetDefault("models.schema", "")
	v.SetDefault("models.context", map[string]any{})
	v.SetDefault("db.driver", DriverSQLite)
	v.SetDefault("db.dsn", "modelloader.db")
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "8080")
	v.SetDefault("auth.jwt_secret", "")
}

// Load reads the optional env file and config file, then decodes the
// merged settings. Environment variables take precedence over the file.
func Load(v *viper.Viper, configFile, envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("failed to load env file: %w", err)
		}
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigType("yaml")
		v.SetConfigName("modelloader")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	switch cfg.DB.Driver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db driver %q", cfg.DB.Driver)
	}
	if cfg.Models.Dir == "" {
		return errors.New("models.dir is required")
	}
	return nil
}

func (cfg *Config) IsProduction() bool {
	return cfg.Environment == EnvProduction
}
