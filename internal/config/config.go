package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const envPrefix = "MALL"

type Config interface {
	EnvConfig
	ClientConfig
	StorageConfig
	ServerConfig
}

type EnvConfig interface {
	GetAppName() string
	GetEnv() string
	GetLogLevel() string
}

type mainConfig struct {
	EnvVars
	Client
	Storage
	Server
}

// New returns a Config populated with defaults and MALL_* environment overrides only.
func New() Config {
	c, _ := Load("")
	return c
}

// Load reads configuration from the given file (or .mallctl.yaml in the usual
// search paths when cfgFile is empty) layered over defaults and MALL_* env vars.
func Load(cfgFile string) (Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".mallctl")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/mallctl")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || cfgFile != "" {
			return mainConfig{EnvVars{v}, Client{v}, Storage{v}, Server{v}}, fmt.Errorf("reading config: %w", err)
		}
	}

	return mainConfig{
		EnvVars: EnvVars{v},
		Client:  Client{v},
		Storage: Storage{v},
		Server:  Server{v},
	}, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "Mall")
	v.SetDefault("app.env", "DEV")
	v.SetDefault("log.level", "info")

	v.SetDefault("api.base_url", "http://localhost:8080/api")
	v.SetDefault("api.timeout", "10s")
	v.SetDefault("api.tracing", false)

	v.SetDefault("session.backend", SessionBackendFile)
	v.SetDefault("session.file", filepath.Join(configDir(), "session.json"))
	v.SetDefault("session.redis_url", "redis://localhost:6379/0")
	v.SetDefault("session.redis_prefix", "mallctl:")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.secret", "your_secret_key")
	v.SetDefault("server.signing_alg", "HS256")
	v.SetDefault("server.token_ttl", "1h")
	v.SetDefault("server.seed", true)
	v.SetDefault("server.admin_user", "admin")
	v.SetDefault("server.cors_origin", "http://localhost:5173")
}

func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mallctl"
	}
	return filepath.Join(home, ".config", "mallctl")
}
