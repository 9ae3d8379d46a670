package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"8080"`
	Game       Game   `yaml:"game"`
}

// Game holds the move-forfeit timer durations. The opening move may be
// contemplated longer; later moves get a tighter limit to keep play brisk.
type Game struct {
	FirstMoveTimeout time.Duration `yaml:"first-move-timeout" env:"GAME_FIRST_MOVE_TIMEOUT" env-default:"2m"`
	MoveTimeout      time.Duration `yaml:"move-timeout" env:"GAME_MOVE_TIMEOUT" env-default:"30s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}
