package config

import (
	"fmt"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		OwnerChatID int64 `mapstructure:"owner_chat_id"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Storage struct {
		Backend     string `mapstructure:"backend"` // sqlite | postgres
		SQLitePath  string `mapstructure:"sqlite_path"`
		PostgresDSN string `mapstructure:"postgres_dsn"`
	} `mapstructure:"storage"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`
}

func Load(path string) (Config, error) {
	// Local overrides (token, DSN) live in .env; absence is fine.
	_ = gotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetDefault("storage.backend", "sqlite")
	v.SetDefault("storage.sqlite_path", "torresapp.db")

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	switch c.Storage.Backend {
	case "sqlite", "postgres":
	default:
		return c, fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	return c, nil
}
