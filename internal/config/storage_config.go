package config

import (
	"strings"
	"time"
)

type SessionBackend string

const (
	SessionBackendMemory SessionBackend = "memory"
	SessionBackendFile   SessionBackend = "file"
	SessionBackendRedis  SessionBackend = "redis"
)

type Storage struct{}

var _ StorageConfig = Storage{}

// GetSessionBackend falls back to file storage for unknown values.
func (Storage) GetSessionBackend() SessionBackend {
	switch b := SessionBackend(strings.ToLower(GetEnv("SESSION_BACKEND", ""))); b {
	case SessionBackendMemory, SessionBackendFile, SessionBackendRedis:
		return b
	}
	return SessionBackendFile
}

func (Storage) GetSessionSlot() string {
	return GetEnv("SESSION_SLOT", "auth-storage")
}

func (Storage) GetRedisAddr() string {
	return GetEnv("REDIS_ADDR", "localhost:6379")
}

func (Storage) GetRedisPassword() string {
	return GetEnv("REDIS_PASSWORD", "")
}

func (Storage) GetRedisDB() int {
	return GetEnvInt("REDIS_DB", 0)
}

// GetRedisSessionTTL expires slots in Redis. Zero, the default, keeps them
// until logout overwrites them.
func (Storage) GetRedisSessionTTL() time.Duration {
	return GetEnvDurationOrZero("REDIS_SESSION_TTL")
}

// GetStoreCacheSize bounds how many logged-in devices are kept in memory.
func (Storage) GetStoreCacheSize() int {
	if size := GetEnvInt("STORE_CACHE_SIZE", 10000); size > 0 {
		return size
	}
	return 10000
}
