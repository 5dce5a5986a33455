package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"logtap/internal/config"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("LOGTAP_LOGS_DIR", dir)

	cfg, path, err := config.Load(filepath.Join(dir, "nope.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if path == "" {
		t.Fatal("expected resolved path")
	}
	if cfg.Server.Bind != "127.0.0.1:8080" {
		t.Fatalf("bind = %q, want default", cfg.Server.Bind)
	}
	if cfg.Logs.PageLength != 1<<20 || cfg.Logs.MaxLineLength != 1<<16 {
		t.Fatalf("tuning defaults wrong: %+v", cfg.Logs)
	}
}

func TestLoadReadsFileAndOverrides(t *testing.T) {
	dir := t.TempDir()
	logsDir := filepath.Join(dir, "logs")
	if err := os.MkdirAll(logsDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	content := strings.Join([]string{
		"[server]",
		`bind = "0.0.0.0:9999"`,
		"[logs]",
		`dir = "` + logsDir + `"`,
		"page_length = 4096",
		"max_line_length = 512",
		"[history]",
		"enabled = false",
	}, "\n")
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Bind != "0.0.0.0:9999" {
		t.Fatalf("bind = %q", cfg.Server.Bind)
	}
	if cfg.Logs.Dir != logsDir || cfg.Logs.PageLength != 4096 || cfg.Logs.MaxLineLength != 512 {
		t.Fatalf("logs section wrong: %+v", cfg.Logs)
	}
	if cfg.History.Enabled {
		t.Fatal("history should be disabled")
	}

	t.Setenv("LOGTAP_BIND", "127.0.0.1:7000")
	cfg, _, err = config.Load(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if cfg.Server.Bind != "127.0.0.1:7000" {
		t.Fatalf("env override ignored, bind = %q", cfg.Server.Bind)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	dir := t.TempDir()

	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"missing logs dir", func(c *config.Config) { c.Logs.Dir = filepath.Join(dir, "absent") }},
		{"zero page length", func(c *config.Config) { c.Logs.PageLength = 0 }},
		{"zero max line", func(c *config.Config) { c.Logs.MaxLineLength = 0 }},
		{"empty bind", func(c *config.Config) { c.Server.Bind = "" }},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"history without path", func(c *config.Config) { c.History.Enabled = true; c.History.Path = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Logs.Dir = dir
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation failure")
			}
		})
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("write sample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[logs]") {
		t.Fatal("sample config missing logs section")
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
}
