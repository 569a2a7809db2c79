// Package config loads process configuration from the environment.
package config

import (
	"fmt"
	"os"
)

type Config struct {
	TableName   string // required; no fallback
	Port        string
	GinMode     string
	AWSEndpoint string // optional, points at DynamoDB Local in development
	AuthSecret  string
}

// Load reads configuration from the environment. A missing table name or auth
// secret is a startup fatal, never a per-request error: no store call is
// valid without a table, and an empty HMAC key would accept forged tokens.
func Load() (*Config, error) {
	table := os.Getenv("TASKWELL_TABLE")
	if table == "" {
		return nil, fmt.Errorf("TASKWELL_TABLE must be set")
	}
	secret := os.Getenv("TASKWELL_AUTH_SECRET")
	if secret == "" {
		return nil, fmt.Errorf("TASKWELL_AUTH_SECRET must be set")
	}
	return &Config{
		TableName:   table,
		Port:        getEnv("PORT", "8080"),
		GinMode:     getEnv("GIN_MODE", "debug"),
		AWSEndpoint: os.Getenv("AWS_ENDPOINT_URL"),
		AuthSecret:  secret,
	}, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
