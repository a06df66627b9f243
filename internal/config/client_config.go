package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultRequestTimeout = 10 * time.Second

type ClientConfig interface {
	GetBaseURL() string
	GetRequestTimeout() time.Duration
	GetTracingEnabled() bool
}

type Client struct {
	v *viper.Viper
}

var _ ClientConfig = Client{}

// GetBaseURL returns the API base including its path prefix (e.g. "http://localhost:8080/api")
func (c Client) GetBaseURL() string {
	return strings.TrimRight(c.v.GetString("api.base_url"), "/")
}

func (c Client) GetRequestTimeout() time.Duration {
	d := c.v.GetDuration("api.timeout")
	if d <= 0 {
		return defaultRequestTimeout
	}
	return d
}

func (c Client) GetTracingEnabled() bool {
	return c.v.GetBool("api.tracing")
}
