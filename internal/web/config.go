package web

import (
	"github.com/tickermatch/internal/config"
)

// Config represents the web server configuration
type Config struct {
	Host string
	Port int
}

// FromEnv builds the server configuration from the environment.
func FromEnv() *Config {
	return &Config{
		Host: config.GetEnv("HOST", "0.0.0.0"),
		Port: config.GetEnvInt("PORT", 8000),
	}
}
