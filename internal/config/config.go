package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config - конфигурация приложения, читается из переменных окружения
// с префиксом PLANNER_ (например PLANNER_DB_HOST)
type Config struct {
	DBHost     string `mapstructure:"db_host"`
	DBUser     string `mapstructure:"db_user"`
	DBPassword string `mapstructure:"db_password"`
	DBName     string `mapstructure:"db_name"`
	DBPort     string `mapstructure:"db_port"`

	ServerPort string `mapstructure:"server_port"`
	JWTSecret  string `mapstructure:"jwt_secret"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// Load читает конфигурацию из окружения
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("PLANNER")
	v.AutomaticEnv()

	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_name", "planner")
	v.SetDefault("server_port", "8080")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("log_format", "text")

	// AutomaticEnv не подхватывает ключи при Unmarshal, пока они не
	// зарегистрированы - биндим явно
	keys := []string{
		"db_host", "db_user", "db_password", "db_name", "db_port",
		"server_port", "jwt_secret", "log_level", "log_format",
	}
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.DBHost == "" {
		return nil, fmt.Errorf("PLANNER_DB_HOST is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("PLANNER_JWT_SECRET is not set")
	}
	return &cfg, nil
}
