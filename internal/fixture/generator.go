package fixture

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Generate writes count parity lines to w.
func Generate(w io.Writer, count int64) error {
	buffered := bufio.NewWriterSize(w, 1<<16)
	for i := int64(0); i < count; i++ {
		parity := "even"
		if i%2 == 1 {
			parity = "odd"
		}
		if _, err := fmt.Fprintf(buffered, "%d is %s\n", i, parity); err != nil {
			return fmt.Errorf("write line %d: %w", i, err)
		}
	}
	return buffered.Flush()
}

// GenerateFile creates path and fills it with count parity lines.
func GenerateFile(path string, count int64) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create fixture: %w", err)
	}
	if err := Generate(file, count); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
