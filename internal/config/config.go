package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/rocketscienceinc/othello-backend/internal/othello"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis  `yaml:"redis"`
	Game       Game   `yaml:"game"`
	Bot        Bot    `yaml:"bot"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Game holds the board size and thresholds every new game is played with.
type Game struct {
	Width                       int `yaml:"width" env-default:"8"`
	Height                      int `yaml:"height" env-default:"8"`
	WinningSequenceLength       int `yaml:"winning-sequence-length" env-default:"5"`
	MinLengthCheckingValidMoves int `yaml:"min-length-checking-valid-moves" env-default:"3"`
}

// Bot seeds the computer players. Zero seeds from the clock.
type Bot struct {
	Seed uint64 `yaml:"seed" env:"BOT_SEED" env-default:"0"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.GameRules().Validate(); err != nil {
		return nil, fmt.Errorf("bad game section: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *Config) GameRules() othello.Rules {
	return othello.Rules{
		Width:                       that.Game.Width,
		Height:                      that.Game.Height,
		WinningSequenceLength:       that.Game.WinningSequenceLength,
		MinLengthCheckingValidMoves: that.Game.MinLengthCheckingValidMoves,
	}
}
