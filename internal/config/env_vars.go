package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	portEnvVar      = "PORT"
	appNameVar      = "APP_NAME"
	folderEnvVar    = "FOLDER"
	directoryVar    = "DIRECTORY_FILE"
	logLevelEnvVar  = "LOG_LEVEL"
	environmentVar  = "ENV"
	developmentName = "DEV"
)

type EnvVars struct{}

var _ EnvConfig = EnvVars{}

func (EnvVars) GetPort() string {
	port := GetEnv(portEnvVar, "8080")
	if !strings.HasPrefix(port, ":") {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (EnvVars) GetAppName() string {
	return GetEnv(appNameVar, "Training Portal")
}

func (EnvVars) GetDataFolder() string {
	return GetEnv(folderEnvVar, "./data")
}

// GetDirectoryFile is the YAML credential directory loaded at startup.
func (EnvVars) GetDirectoryFile() string {
	return GetEnv(directoryVar, "./config/directory.yaml")
}

func (EnvVars) GetLogLevel() string {
	return GetEnv(logLevelEnvVar, "info")
}

func (EnvVars) GetEnv() string {
	return GetEnv(environmentVar, developmentName)
}

// IsDev reports whether env names the development environment.
func IsDev(env string) bool {
	return env == developmentName
}

func GetEnv(envVar, defaultValue string) string {
	value := os.Getenv(envVar)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvInt(envVar string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(envVar))
	if err != nil {
		return defaultValue
	}
	return value
}

func GetEnvDuration(envVar string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(envVar))
	if err != nil || value <= 0 {
		return defaultValue
	}
	return value
}

// GetEnvDurationOrZero is like GetEnvDuration but allows zero. Unset, invalid
// and negative values all read as zero.
func GetEnvDurationOrZero(envVar string) time.Duration {
	value, err := time.ParseDuration(os.Getenv(envVar))
	if err != nil || value < 0 {
		return 0
	}
	return value
}
