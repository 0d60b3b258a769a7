package structures

import "time"

type Server struct {
	Host string `yaml:"host" validate:"required"`
	Port int    `yaml:"port" validate:"required|uint|min:1"`
}

type MongoConfig struct {
	URI      string        `yaml:"uri" validate:"required"`
	Database string        `yaml:"database" validate:"required"`
	Timeout  time.Duration `yaml:"timeout" validate:"required|min:1"`
}

type LoggerConfig struct {
	Level string `yaml:"level" validate:"required|in:trace,debug,info,warn,error,fatal,panic"`
	Mode  uint32 `yaml:"mode" validate:"required|uint"`
	Dir   string `yaml:"dir" validate:"required|unixPath"`
}

type AuthConfig struct {
	Secret   string        `yaml:"secret" validate:"required|minLen:16"`
	TokenTTL time.Duration `yaml:"tokenTTL" validate:"required|min:1"`
}

type CacheConfig struct {
	Enabled bool `yaml:"enabled"`
	Size    int  `yaml:"size"`
}

type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

type NatsConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

type RealtimeConfig struct {
	// StatsRefreshInterval re-broadcasts the stats snapshot to the dashboard
	// room at this interval. Zero disables the refresher.
	StatsRefreshInterval time.Duration `yaml:"statsRefreshInterval"`
	SendBuffer           int           `yaml:"sendBuffer"`
	Nats                 NatsConfig    `yaml:"nats"`
}

type SeedConfig struct {
	Enabled bool `yaml:"enabled"`
}

type Config struct {
	AppName   string
	Debug     bool
	Path      string
	WebServer Server         `yaml:"webServer"`
	Mongo     MongoConfig    `yaml:"mongo"`
	Logger    LoggerConfig   `yaml:"logger"`
	Auth      AuthConfig     `yaml:"auth"`
	Cache     CacheConfig    `yaml:"cache"`
	Metrics   MetricsConfig  `yaml:"metrics"`
	Realtime  RealtimeConfig `yaml:"realtime"`
	Seed      SeedConfig     `yaml:"seed"`
}
