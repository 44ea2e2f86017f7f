package config

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnv overrides configuration values from environment variables.
// Unparseable numeric or boolean values are ignored.
func (c *Config) ApplyEnv() {
	c.Server.Port = getEnvInt("PORT", c.Server.Port)
	c.Server.CORSOrigin = getEnvString("CORS_ORIGIN", c.Server.CORSOrigin)

	c.Auth.JWTSecret = getEnvString("JWT_SECRET", c.Auth.JWTSecret)
	c.Auth.JWTExpirationHours = getEnvInt("JWT_EXPIRATION_HOURS", c.Auth.JWTExpirationHours)

	c.Compiler.Binary = getEnvString("LATEX_COMPILER_PATH", c.Compiler.Binary)
	c.Compiler.RemoteURL = getEnvString("LATEX_REMOTE_URL", c.Compiler.RemoteURL)
	c.Compiler.DisableRemote = getEnvBool("LATEX_REMOTE_DISABLED", c.Compiler.DisableRemote)
	c.Compiler.TempDir = getEnvString("EXPORT_TEMP_DIR", c.Compiler.TempDir)

	c.Templates.Dir = getEnvString("TEMPLATES_DIR", c.Templates.Dir)

	c.Cache.RedisURL = getEnvString("REDIS_URL", c.Cache.RedisURL)
	c.Archive.GCSBucket = getEnvString("ARCHIVE_BUCKET", c.Archive.GCSBucket)
	c.Store.DatabaseURL = getEnvString("DATABASE_URL", c.Store.DatabaseURL)

	c.RateLimit.Enabled = getEnvBool("RATE_LIMIT_ENABLED", c.RateLimit.Enabled)
	if list := getEnvString("RATE_LIMIT_WHITELIST", ""); list != "" {
		c.RateLimit.Whitelist = parseList(list)
	}

	c.Log.Level = getEnvString("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnvString("LOG_FORMAT", c.Log.Format)
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// parseList splits a comma-separated list, dropping blanks.
func parseList(list string) []string {
	var result []string
	for _, item := range strings.Split(list, ",") {
		if item = strings.TrimSpace(item); item != "" {
			result = append(result, item)
		}
	}
	return result
}
