// Package config loads runtime configuration from the environment.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all runtime settings for the service
type Config struct {
	Port         string
	ArangoURL    string
	ArangoUser   string
	ArangoPass   string
	DatabaseName string
	JWTSecret    string
	KafkaBrokers []string
	PolicyPath   string
	AdminEmail   string
	AdminPass    string
}

// GetEnvDefault is a convenience function for handling env vars
func GetEnvDefault(key, defVal string) string {
	val, ex := os.LookupEnv(key)
	if !ex {
		return defVal
	}
	return val
}

// Load reads configuration from the environment, honoring a local .env file
// when present.
func Load() Config {
	// Missing .env is fine; real deployments set env vars directly
	_ = godotenv.Load()

	dbhost := GetEnvDefault("ARANGO_HOST", "localhost")
	dbport := GetEnvDefault("ARANGO_PORT", "8529")

	cfg := Config{
		Port:         GetEnvDefault("MS_PORT", "3000"),
		ArangoURL:    GetEnvDefault("ARANGO_URL", "http://"+dbhost+":"+dbport),
		ArangoUser:   GetEnvDefault("ARANGO_USER", "root"),
		ArangoPass:   GetEnvDefault("ARANGO_PASS", "mypassword"),
		DatabaseName: GetEnvDefault("ARANGO_DB", "volunteerhub"),
		JWTSecret:    GetEnvDefault("JWT_SECRET", ""),
		PolicyPath:   GetEnvDefault("POLICY_CONFIG_PATH", ""),
		AdminEmail:   GetEnvDefault("ADMIN_EMAIL", "admin@volunteerhub.local"),
		AdminPass:    GetEnvDefault("ADMIN_PASSWORD", ""),
	}

	if brokers := GetEnvDefault("KAFKA_BROKERS", ""); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}
