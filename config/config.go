package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Game   GameConfig   `mapstructure:"game"`
}

type ServerConfig struct {
	HTTPAddress    string `mapstructure:"http_address"`
	RPCAddress     string `mapstructure:"rpc_address"`
	MonitorAddress string `mapstructure:"monitor_address"`
	// PublicURL is the externally reachable base URL, used to build the
	// join links encoded in room QR codes.
	PublicURL string `mapstructure:"public_url"`
}

type GameConfig struct {
	StartingLives int `mapstructure:"starting_lives"`
}

// LoadConfig reads config.yaml from path, if present, and merges QUIZSERVER_*
// environment variables on top. A missing config file is not an error; the
// defaults are enough to run locally.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("QUIZSERVER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("server.http_address", ":8080")
	v.SetDefault("server.rpc_address", ":7000")
	v.SetDefault("server.monitor_address", ":9100")
	v.SetDefault("server.public_url", "http://localhost:8080")
	v.SetDefault("game.starting_lives", 3)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	return &config, nil
}
