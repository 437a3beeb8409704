package config

import (
	"os"
	"strconv"
)

// Store driver names accepted in STORE_DRIVER.
const (
	DriverMySQL   = "mysql"
	DriverSurreal = "surrealdb"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort  string
	StoreDriver string
	MySQLDSN    string
	SurrealURL  string
	SurrealNS   string
	SurrealDB   string
	SurrealUser string
	SurrealPass string
	RedisAddr   string
	RedisDB     int
	RedisPass   string
	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:  getEnv("SERVER_PORT", "8000"),
		StoreDriver: getEnv("STORE_DRIVER", DriverMySQL),
		MySQLDSN:    getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/calendar?charset=utf8mb4&parseTime=True&loc=UTC"),
		SurrealURL:  getEnv("SURREALDB_URL", "ws://localhost:8800/rpc"),
		SurrealNS:   getEnv("SURREALDB_NS", "agenda"),
		SurrealDB:   getEnv("SURREALDB_DB", "calendar"),
		SurrealUser: getEnv("SURREALDB_USER", "root"),
		SurrealPass: getEnv("SURREALDB_PASS", "root"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:     getEnvInt("REDIS_DB", 0),
		RedisPass:   os.Getenv("REDIS_PASSWORD"),
		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
