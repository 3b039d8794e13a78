package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

type Config struct {
	Port    string `mapstructure:"PORT"`
	Env     string `mapstructure:"ENV"`
	AppName string `mapstructure:"APP_NAME"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	StoreDriver     string `mapstructure:"STORE_DRIVER"`
	MongoURI        string `mapstructure:"MONGO_URI"`
	MongoDatabase   string `mapstructure:"MONGO_DATABASE"`
	MongoCollection string `mapstructure:"MONGO_COLLECTION"`
	DatabaseDSN     string `mapstructure:"DB_DSN"`
	DBMaxOpenConns  int    `mapstructure:"DB_MAX_OPEN_CONNS"`

	ReadTimeout     time.Duration `mapstructure:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `mapstructure:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var keys = []string{
	"PORT", "ENV", "APP_NAME",
	"LOG_LEVEL", "LOG_FORMAT",
	"STORE_DRIVER", "MONGO_URI", "MONGO_DATABASE", "MONGO_COLLECTION",
	"DB_DSN", "DB_MAX_OPEN_CONNS",
	"READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT",
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_NAME", "patient-history")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("STORE_DRIVER", "") // auto: "" -> inferido de MONGO_URI / DB_DSN
	v.SetDefault("MONGO_DATABASE", "mediscreen")
	v.SetDefault("MONGO_COLLECTION", "histories")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("READ_TIMEOUT", "5s")
	v.SetDefault("WRITE_TIMEOUT", "10s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	// Bind explícito para que Unmarshal vea las env vars
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// .env opcional
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	cfg.StoreDriver = strings.ToLower(strings.TrimSpace(cfg.StoreDriver))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// ResolvedStoreDriver devuelve el driver efectivo. Si STORE_DRIVER no está seteado:
//   - MONGO_URI seteado → "mongo"
//   - DB_DSN seteado    → "postgres"
//   - si no             → "memory" (modo dev)
func (c *Config) ResolvedStoreDriver() string {
	if c.StoreDriver != "" {
		return c.StoreDriver
	}
	if c.MongoURI != "" {
		return DriverMongo
	}
	if c.DatabaseDSN != "" {
		return DriverPostgres
	}
	return DriverMemory
}

func (c *Config) Addr() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

func (c *Config) Validate() error {
	switch c.ResolvedStoreDriver() {
	case DriverMemory:
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI is required when STORE_DRIVER is %q", DriverMongo)
		}
		if c.MongoDatabase == "" || c.MongoCollection == "" {
			return fmt.Errorf("MONGO_DATABASE and MONGO_COLLECTION must not be empty")
		}
	case DriverPostgres:
		if c.DatabaseDSN == "" {
			return fmt.Errorf("DB_DSN is required when STORE_DRIVER is %q", DriverPostgres)
		}
	default:
		return fmt.Errorf("STORE_DRIVER must be %q, %q or %q, got %q",
			DriverMemory, DriverMongo, DriverPostgres, c.StoreDriver)
	}

	if strings.TrimSpace(c.Port) == "" {
		return fmt.Errorf("PORT must not be empty")
	}
	return nil
}
