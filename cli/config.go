package cli

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config tunes the terminal, read from CHAT_* environment variables
type Config struct {
	HistoryFile string `envconfig:"HISTORY_FILE"`
	NoColor     bool   `envconfig:"NO_COLOR" default:"false"`
}

// LoadConfig reads the terminal configuration from the environment
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("chat", &cfg); err != nil {
		return Config{}, fmt.Errorf("cli.LoadConfig: %w", err)
	}
	return cfg, nil
}
