package config

import "time"

type Config interface {
	EnvConfig
	StorageConfig
	SecurityConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetDataFolder() string
	GetDirectoryFile() string
	GetLogLevel() string
	GetEnv() string
}

type StorageConfig interface {
	GetSessionBackend() SessionBackend
	GetSessionSlot() string
	GetRedisAddr() string
	GetRedisPassword() string
	GetRedisDB() int
	GetRedisSessionTTL() time.Duration
	GetStoreCacheSize() int
}

type mainConfig struct {
	EnvVars
	Storage
	Security
}

func New() Config {
	return mainConfig{}
}
