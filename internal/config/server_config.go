package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerConfig interface {
	GetListenAddr() string
	GetSigningSecret() string
	GetSigningAlgorithm() string
	GetTokenTTL() time.Duration
	GetSeedData() bool
	GetAdminUsername() string
	GetAdminPassword() string
	GetAllowedOrigin() string
}

type Server struct {
	v *viper.Viper
}

var _ ServerConfig = Server{}

func (s Server) GetListenAddr() string {
	addr := s.v.GetString("server.addr")
	if addr != "" && !strings.Contains(addr, ":") {
		addr = fmt.Sprintf(":%s", addr)
	}
	return addr
}

func (s Server) GetSigningSecret() string {
	return s.v.GetString("server.secret")
}

// GetSigningAlgorithm is HS256, RS256 or ES256
func (s Server) GetSigningAlgorithm() string {
	return strings.ToUpper(s.v.GetString("server.signing_alg"))
}

func (s Server) GetTokenTTL() time.Duration {
	d := s.v.GetDuration("server.token_ttl")
	if d <= 0 {
		return time.Hour
	}
	return d
}

func (s Server) GetSeedData() bool {
	return s.v.GetBool("server.seed")
}

func (s Server) GetAdminUsername() string {
	return s.v.GetString("server.admin_user")
}

// GetAdminPassword returns the configured administrator password. Empty means
// one is generated at start-up.
func (s Server) GetAdminPassword() string {
	return s.v.GetString("server.admin_password")
}

// GetAllowedOrigin is the browser origin granted CORS access; "*" allows any
func (s Server) GetAllowedOrigin() string {
	return s.v.GetString("server.cors_origin")
}
