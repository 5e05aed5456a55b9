package config

import (
	"github.com/spf13/viper"
)

// Config holds the runtime settings of the server.
type Config struct {
	AppPort     string
	DBDriver    string
	DatabaseDSN string
	RabbitMQURL string // empty disables event publishing
	StaticDir   string
}

// SetDefaults registers the default value of every setting.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":3000")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "books.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("STATIC_DIR", "./public")
}

// Load reads the configuration from v, falling back to environment variables and defaults.
func Load(v *viper.Viper) Config {
	SetDefaults(v)
	v.AutomaticEnv()

	return Config{
		AppPort:     v.GetString("APP_PORT"),
		DBDriver:    v.GetString("DB_DRIVER"),
		DatabaseDSN: v.GetString("DATABASE_DSN"),
		RabbitMQURL: v.GetString("RABBITMQ_URL"),
		StaticDir:   v.GetString("STATIC_DIR"),
	}
}
