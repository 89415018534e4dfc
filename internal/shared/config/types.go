package config

import (
	"fmt"
	"time"
)

type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

// GatewayConfig selects the provider environment, wire version and transport
// limits for a client session.
type GatewayConfig struct {
	Environment    string        `mapstructure:"environment"`
	APIToken       string        `mapstructure:"api_token"`
	APIVersion     string        `mapstructure:"api_version"`
	BaseURL        string        `mapstructure:"base_url"`
	TLSVerify      bool          `mapstructure:"tls_verify"`
	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
	Timeout        time.Duration `mapstructure:"timeout"`
}

// CallbackConfig controls the inbound webhook receiver.
type CallbackConfig struct {
	Path           string        `mapstructure:"path"`
	ReplayGuard    bool          `mapstructure:"replay_guard"`
	ReplayGuardTTL time.Duration `mapstructure:"replay_guard_ttl"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

func (r *RedisConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}
