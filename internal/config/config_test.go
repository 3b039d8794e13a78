package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("MONGO_URI", "")
	t.Setenv("DB_DSN", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.ResolvedStoreDriver() != DriverMemory {
		t.Errorf("expected memory driver, got %s", cfg.ResolvedStoreDriver())
	}
	if cfg.MongoCollection != "histories" {
		t.Errorf("expected default collection 'histories', got %s", cfg.MongoCollection)
	}
	if cfg.WriteTimeout != 10*time.Second {
		t.Errorf("expected write timeout 10s, got %s", cfg.WriteTimeout)
	}
}

func TestLoad_InfersMongoFromURI(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	t.Setenv("DB_DSN", "")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ResolvedStoreDriver() != DriverMongo {
		t.Errorf("expected mongo driver, got %s", cfg.ResolvedStoreDriver())
	}
}

func TestLoad_ExplicitDriverRequiresURI(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DB_DSN", "")
	t.Setenv("MONGO_URI", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when DB_DSN is missing")
	}
}

func TestConfig_Validate_UnknownDriver(t *testing.T) {
	c := &Config{Port: "8080", StoreDriver: "cassandra"}
	if err := c.Validate(); err == nil {
		t.Fatal("expected error for unknown driver")
	}
}

func TestConfig_Addr(t *testing.T) {
	c := &Config{Port: "9000"}
	if c.Addr() != ":9000" {
		t.Errorf("expected :9000, got %s", c.Addr())
	}
}
