package config

import (
	"os"
	"path/filepath"

	"logtap/internal/tailer"
)

const (
	defaultBind      = "127.0.0.1:8080"
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Server: Server{
			Bind: defaultBind,
		},
		Logs: Logs{
			Dir:           "/var/log/logtap",
			PageLength:    tailer.DefaultPageLength,
			MaxLineLength: tailer.DefaultMaxLineLength,
		},
		History: History{
			Enabled: true,
			Path:    defaultHistoryPath(),
		},
		Logging: Logging{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
	}
}

func defaultHistoryPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "logtap-history.db"
	}
	return filepath.Join(home, ".local", "share", "logtap", "history.db")
}
