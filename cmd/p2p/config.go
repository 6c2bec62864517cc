package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"p2p-chat/core"
)

// ErrUsage - the command line does not match "<username> [<peer-host> <peer-port>]"
var ErrUsage = errors.New("usage error")

// Config holds the process settings read from the environment (and an optional .env file)
type Config struct {
	LogLevel      string        `env:"LOG_LEVEL,default=INFO"`
	LogFile       string        `env:"LOG_FILE"`
	ListenHost    string        `env:"LISTEN_HOST,default=0.0.0.0"`
	Transport     string        `env:"TRANSPORT,default=tcp"`
	WebSocketPath string        `env:"WEBSOCKET_PATH,default=/p2p"`
	DialTimeout   time.Duration `env:"DIAL_TIMEOUT,default=5s"`
}

// Validate checks the values go-env cannot check by itself
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	switch c.Transport {
	case "tcp", "ws":
	default:
		return fmt.Errorf("TRANSPORT must be tcp or ws, got %q", c.Transport)
	}
	if c.DialTimeout <= 0 {
		return fmt.Errorf("DIAL_TIMEOUT must be positive, got %v", c.DialTimeout)
	}
	return nil
}

// Level parses LOG_LEVEL
func (c Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}

// Args are the positional command line arguments
type Args struct {
	Username string
	PeerHost string
	PeerPort int
}

// HasPeer reports whether a seed peer was given
func (a Args) HasPeer() bool {
	return a.PeerHost != ""
}

// parseArgs accepts exactly the program name plus 1 or 3 arguments
func parseArgs(argv []string) (Args, error) {
	if len(argv) != 2 && len(argv) != 4 {
		return Args{}, fmt.Errorf("%w: expected 1 or 3 arguments, got %d", ErrUsage, len(argv)-1)
	}

	args := Args{Username: argv[1]}
	if !core.ValidUsername(args.Username) {
		return Args{}, fmt.Errorf("%w: username must be non-empty and contain no ':'", ErrUsage)
	}

	if len(argv) == 4 {
		port, err := strconv.ParseUint(argv[3], 10, 16)
		if err != nil || port == 0 {
			return Args{}, fmt.Errorf("%w: invalid peer port %q", ErrUsage, argv[3])
		}
		args.PeerHost = argv[2]
		args.PeerPort = int(port)
	}
	return args, nil
}
