package fixture_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"logtap/internal/fixture"
)

func TestGenerateExactBytes(t *testing.T) {
	var buf bytes.Buffer
	if err := fixture.Generate(&buf, 4); err != nil {
		t.Fatalf("generate: %v", err)
	}
	want := "0 is even\n1 is odd\n2 is even\n3 is odd\n"
	if buf.String() != want {
		t.Fatalf("output = %q, want %q", buf.String(), want)
	}
}

func TestGenerateZeroLines(t *testing.T) {
	var buf bytes.Buffer
	if err := fixture.Generate(&buf, 0); err != nil {
		t.Fatalf("generate: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected empty output, got %q", buf.String())
	}
}

func TestGenerateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "large.log")
	if err := fixture.GenerateFile(path, 3); err != nil {
		t.Fatalf("generate file: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read fixture: %v", err)
	}
	if string(data) != "0 is even\n1 is odd\n2 is even\n" {
		t.Fatalf("content = %q", data)
	}
}
