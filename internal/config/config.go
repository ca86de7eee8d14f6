package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string    `yaml:"log-level" env:"GOMOKU_LOG_LEVEL" env-default:"info"`
	HTTPPort   string    `yaml:"http-port" env:"GOMOKU_HTTP_PORT" env-default:"9090"`
	SocketPort string    `yaml:"socket-port" env:"GOMOKU_SOCKET_PORT" env-default:"9091"`
	WebSocket  WebSocket `yaml:"websocket"`
	Redis      Redis     `yaml:"redis"`
}

type WebSocket struct {
	WriteWait      time.Duration `yaml:"write-wait" env-default:"10s"`
	PongWait       time.Duration `yaml:"pong-wait" env-default:"60s"`
	MaxMessageSize int64         `yaml:"max-message-size" env-default:"1024"`
	SendBuffer     int           `yaml:"send-buffer" env-default:"64"`
	MaxNameLength  int           `yaml:"max-name-length" env-default:"32"`
}

// PingPeriod must stay below PongWait so the peer answers before the read deadline.
func (that *WebSocket) PingPeriod() time.Duration {
	return that.PongWait * 9 / 10
}

type Redis struct {
	Enabled     bool          `yaml:"enabled" env:"GOMOKU_REDIS_ENABLED" env-default:"false"`
	Host        string        `yaml:"host" env:"GOMOKU_REDIS_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"GOMOKU_REDIS_PORT" env-default:"6379"`
	SnapshotTTL time.Duration `yaml:"snapshot-ttl" env-default:"1h"`
	QueueSize   int           `yaml:"queue-size" env-default:"256"`
}

// MustLoad - load all configurations from the yaml file at path, environment overrides included.
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

	return config, nil
}

// GetRedisAddr returns host:port, or an empty string when the host is not set.
func (that *Redis) GetRedisAddr() string {
	if that.Host == "" {
		return ""
	}

	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
