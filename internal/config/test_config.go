package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// LoadTestConfig reads the TEST_DB_* variables used by integration tests.
//
// When any of them is missing the returned config has no database settings and DSN returns "",
// so tests fall back to their default connection string.
func LoadTestConfig() (*Config, error) {
	_ = godotenv.Load("./../../configs/.env")
	_ = godotenv.Load()

	cfg := &Config{Storage: StorageConfig{Driver: StorageMySQL}}

	values := make(map[string]string, 5)
	for _, key := range []string{"TEST_DB_HOST", "TEST_DB_PORT", "TEST_DB_USER", "TEST_DB_PASSWORD", "TEST_DB_NAME"} {
		value := os.Getenv(key)
		if value == "" {
			return cfg, nil
		}
		values[key] = value
	}

	port, err := strconv.Atoi(values["TEST_DB_PORT"])
	if err != nil {
		return nil, fmt.Errorf("invalid TEST_DB_PORT: %w", err)
	}

	cfg.Database = DatabaseConfig{
		Host:     values["TEST_DB_HOST"],
		Port:     port,
		User:     values["TEST_DB_USER"],
		Password: values["TEST_DB_PASSWORD"],
		DBName:   values["TEST_DB_NAME"],
	}
	return cfg, nil
}
