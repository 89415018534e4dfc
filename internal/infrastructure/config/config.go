package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "github.com/orris-inc/momogate/internal/shared/config"
)

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Gateway  sharedConfig.GatewayConfig  `mapstructure:"gateway"`
	Callback sharedConfig.CallbackConfig `mapstructure:"callback"`
	Redis    sharedConfig.RedisConfig    `mapstructure:"redis"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml when present and overlays MOMOGATE_*
// environment variables. A missing config file is not an error; every key
// has a default. env, when set, overrides gateway.environment.
func Load(env string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("MOMOGATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("gateway.environment", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.Gateway.APIToken == "" {
		config.Gateway.APIToken = os.Getenv(TokenEnvVar(config.Gateway.Environment))
	}
	// production traffic is always verified
	if strings.EqualFold(config.Gateway.Environment, "production") {
		config.Gateway.TLSVerify = true
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Get returns the loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

// TokenEnvVar names the per-environment token variable, e.g.
// PAWAPAY_SANDBOX_API_TOKEN.
func TokenEnvVar(environment string) string {
	return "PAWAPAY_" + strings.ToUpper(strings.TrimSpace(environment)) + "_API_TOKEN"
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stderr")

	v.SetDefault("gateway.environment", "sandbox")
	v.SetDefault("gateway.api_token", "")
	v.SetDefault("gateway.api_version", "v1")
	v.SetDefault("gateway.base_url", "")
	v.SetDefault("gateway.tls_verify", true)
	v.SetDefault("gateway.connect_timeout", "10s")
	v.SetDefault("gateway.timeout", "30s")

	v.SetDefault("callback.path", "/callbacks")
	v.SetDefault("callback.replay_guard", false)
	v.SetDefault("callback.replay_guard_ttl", "24h")

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
}
