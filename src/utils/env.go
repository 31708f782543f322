package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const DEV_ENV_FILENAME = ".env.development"
const PROD_ENV_FILENAME = ".env.production"

// InitEnvironmentVariables loads the .env file matching goEnv from envDir.
// A missing file is not an error: every setting can also come from the process environment.
func InitEnvironmentVariables(envDir string, goEnv string) error {
	if os.Getenv("ENV") == "production" {
		log.Info("Running in production environment")
		return nil
	}

	envFile := filepath.Join(envDir, DEV_ENV_FILENAME)
	if goEnv == "production" {
		envFile = filepath.Join(envDir, PROD_ENV_FILENAME)
	}

	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		log.Debugf("InitEnvironmentVariables: %s not found, using process environment", envFile)
		return nil
	}

	if err := godotenv.Load(envFile); err != nil {
		return fmt.Errorf("failed to load %s file: %v", envFile, err)
	}

	return nil
}

func GetEnv(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", fmt.Errorf("$%s not set", key)
	}

	return value, nil
}

func GetEnvOrDefault(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}
