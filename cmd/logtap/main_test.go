package main

import (
	"bytes"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"logtap/internal/config"
	"logtap/internal/fixture"
	"logtap/internal/logging"
	"logtap/internal/server"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func writeConfigFile(t *testing.T, logsDir string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	content := strings.Join([]string{
		"[logs]",
		`dir = "` + logsDir + `"`,
		"[history]",
		"enabled = false",
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestFixtureCommandWritesFile(t *testing.T) {
	logsDir := t.TempDir()
	cfgPath := writeConfigFile(t, logsDir)

	out, err := runCommand(t, "--config", cfgPath, "fixture", "--name", "tiny.log", "--lines", "3")
	if err != nil {
		t.Fatalf("fixture command: %v (%s)", err, out)
	}
	data, err := os.ReadFile(filepath.Join(logsDir, "tiny.log"))
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if string(data) != "0 is even\n1 is odd\n2 is even\n" {
		t.Fatalf("fixture content = %q", data)
	}
}

func TestConfigInitCommand(t *testing.T) {
	target := filepath.Join(t.TempDir(), "config.toml")
	out, err := runCommand(t, "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v (%s)", err, out)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("sample not written: %v", err)
	}
	if _, err := runCommand(t, "config", "init", "--path", target); err == nil {
		t.Fatal("expected refusal to overwrite existing config")
	}
}

func TestTailCommandStreamsFromServer(t *testing.T) {
	logsDir := t.TempDir()
	if err := fixture.GenerateFile(filepath.Join(logsDir, "app.log"), 50); err != nil {
		t.Fatalf("fixture: %v", err)
	}

	cfg := config.Default()
	cfg.Logs.Dir = logsDir
	cfg.History.Enabled = false
	srv, err := server.New(&cfg, nil, logging.NewNop())
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	out, err := runCommand(t, "tail", "--server", ts.URL, "--file", "app.log", "--total", "2")
	if err != nil {
		t.Fatalf("tail command: %v (%s)", err, out)
	}
	if out != "49 is odd\n48 is even\n" {
		t.Fatalf("output = %q", out)
	}
}

func TestTailCommandRequiresFile(t *testing.T) {
	if _, err := runCommand(t, "tail", "--server", "127.0.0.1:1"); err == nil {
		t.Fatal("expected missing --file error")
	}
}
