package config

import "github.com/spf13/viper"

// Session persistence backends
const (
	SessionBackendFile   = "file"
	SessionBackendRedis  = "redis"
	SessionBackendMemory = "memory"
)

type StorageConfig interface {
	GetSessionBackend() string
	GetSessionFile() string
	GetRedisURL() string
	GetRedisKeyPrefix() string
}

type Storage struct {
	v *viper.Viper
}

var _ StorageConfig = Storage{}

func (s Storage) GetSessionBackend() string {
	switch b := s.v.GetString("session.backend"); b {
	case SessionBackendRedis, SessionBackendMemory:
		return b
	default:
		return SessionBackendFile
	}
}

func (s Storage) GetSessionFile() string {
	return s.v.GetString("session.file")
}

func (s Storage) GetRedisURL() string {
	return s.v.GetString("session.redis_url")
}

func (s Storage) GetRedisKeyPrefix() string {
	return s.v.GetString("session.redis_prefix")
}
