package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Port               string `env:"PORT" env-default:"8080"`
	LogLevel           string `env:"LOG_LEVEL" env-default:"info"`
	SchedulerAutostart bool   `env:"SCHEDULER_AUTOSTART" env-default:"true"`
	SchedulerInterval  int    `env:"SCHEDULER_INTERVAL" env-default:"60"`

	PostgresDB       string `env:"POSTGRES_DB" env-default:"formlive"`
	PostgresUser     string `env:"POSTGRES_USER" env-default:"postgres"`
	PostgresPassword string `env:"POSTGRES_PASSWORD"`
	PostgresHost     string `env:"POSTGRES_HOST" env-default:"localhost"`
	PostgresPort     string `env:"POSTGRES_PORT" env-default:"5432"`
}

// New loads configuration from the environment, with an optional .env file.
// A missing .env is not an error.
func New() (*Config, error) {
	_ = godotenv.Load()

	var config Config
	if err := cleanenv.ReadEnv(&config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return &config, nil
}

func (c *Config) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.PostgresUser, c.PostgresPassword, c.PostgresHost, c.PostgresPort, c.PostgresDB)
}
