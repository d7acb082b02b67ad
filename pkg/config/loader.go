package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/app/configs")

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Allow common env vars without the APP_ prefix for container deploys
	viper.BindEnv("http.port", "HTTP_PORT", "APP_HTTP_PORT")
	viper.BindEnv("backend.base_url", "API_BASE_URL", "APP_BACKEND_BASE_URL")
	viper.BindEnv("session.secret", "SESSION_SECRET", "APP_SESSION_SECRET")
	viper.BindEnv("vault.address", "VAULT_ADDR", "APP_VAULT_ADDRESS")
	viper.BindEnv("vault.token", "VAULT_TOKEN", "APP_VAULT_TOKEN")
	viper.BindEnv("opentelemetry.jaeger.endpoint", "JAEGER_ENDPOINT")
	viper.BindEnv("app.environment", "APP_ENVIRONMENT")
	viper.BindEnv("logging.level", "LOG_LEVEL")

	viper.SetDefault("http.port", 8080)
	viper.SetDefault("backend.timeout", 30*time.Second)
	viper.SetDefault("session.ttl", 12*time.Hour)
	viper.SetDefault("session.cleanup_interval", time.Minute)
	viper.SetDefault("demo.message_delay", 800*time.Millisecond)
	viper.SetDefault("prometheus.enabled", true)
	viper.SetDefault("prometheus.path", "/metrics")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// No config file: env vars and defaults only
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
