package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Server contains HTTP listener configuration.
type Server struct {
	Bind string `toml:"bind"`
}

// Logs configures which files may be served and how they are read.
type Logs struct {
	Dir           string `toml:"dir"`
	PageLength    int    `toml:"page_length"`
	MaxLineLength int    `toml:"max_line_length"`
}

// History configures the per-request search history store.
type History struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Logging configures the service logger.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Dir    string `toml:"dir"`
}

// Config is the root configuration document.
type Config struct {
	Server  Server  `toml:"server"`
	Logs    Logs    `toml:"logs"`
	History History `toml:"history"`
	Logging Logging `toml:"logging"`
}

// DefaultConfigPath returns the expected config file location.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, ".config", "logtap", "config.toml"), nil
}

// Load reads the config file at path, or the default location when path is
// empty. A missing file is not an error; defaults apply. A .env file in the
// working directory and LOGTAP_* environment variables override file values.
// The returned string is the path that was consulted.
func Load(path string) (*Config, string, error) {
	resolved := strings.TrimSpace(path)
	if resolved == "" {
		defaultPath, err := DefaultConfigPath()
		if err != nil {
			return nil, "", err
		}
		resolved = defaultPath
	}
	resolved = expandHome(resolved)

	cfg := Default()
	data, err := os.ReadFile(resolved)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, resolved, fmt.Errorf("parse %s: %w", resolved, err)
		}
	case errors.Is(err, fs.ErrNotExist):
		// Defaults only.
	default:
		return nil, resolved, fmt.Errorf("read %s: %w", resolved, err)
	}

	_ = godotenv.Load()
	applyEnvOverrides(&cfg)
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, resolved, err
	}
	return &cfg, resolved, nil
}

// WriteSample materializes the embedded sample config at path, refusing to
// clobber an existing file.
func WriteSample(path string) error {
	path = expandHome(path)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	return os.WriteFile(path, []byte(sampleConfig), 0o644)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOGTAP_BIND"); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv("LOGTAP_LOGS_DIR"); v != "" {
		cfg.Logs.Dir = v
	}
	if v := os.Getenv("LOGTAP_PAGE_LENGTH"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Logs.PageLength = parsed
		}
	}
	if v := os.Getenv("LOGTAP_MAX_LINE_LENGTH"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Logs.MaxLineLength = parsed
		}
	}
	if v := os.Getenv("LOGTAP_HISTORY_PATH"); v != "" {
		cfg.History.Path = v
	}
	if v := os.Getenv("LOGTAP_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("LOGTAP_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}

func (c *Config) normalize() {
	c.Server.Bind = strings.TrimSpace(c.Server.Bind)
	c.Logs.Dir = expandHome(strings.TrimSpace(c.Logs.Dir))
	c.History.Path = expandHome(strings.TrimSpace(c.History.Path))
	c.Logging.Dir = expandHome(strings.TrimSpace(c.Logging.Dir))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))

	if abs, err := filepath.Abs(c.Logs.Dir); err == nil {
		c.Logs.Dir = abs
	}
}

// EnsureDirectories creates the directories logtap writes to. The logs
// directory is deliberately excluded: it is read-only input and must already
// exist.
func (c *Config) EnsureDirectories() error {
	dirs := make([]string, 0, 2)
	if c.History.Enabled && c.History.Path != "" {
		dirs = append(dirs, filepath.Dir(c.History.Path))
	}
	if c.Logging.Dir != "" {
		dirs = append(dirs, c.Logging.Dir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func expandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
