package config

import (
	"strings"

	"github.com/spf13/viper"
)

type EnvVars struct {
	v *viper.Viper
}

var _ EnvConfig = EnvVars{}

func (e EnvVars) GetAppName() string {
	return e.v.GetString("app.name")
}

func (e EnvVars) GetEnv() string {
	env := e.v.GetString("app.env")
	if env == "" {
		return "DEV"
	}
	return strings.ToUpper(env)
}

func (e EnvVars) GetLogLevel() string {
	return strings.ToLower(e.v.GetString("log.level"))
}
