package helpers

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// CreateFile opens path for writing, truncating any previous content and
// creating missing parent directories.
func CreateFile(path string) (*os.File, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil && !os.IsExist(err) {
		return nil, fmt.Errorf("error creating output folder for %s: %w", path, err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("error creating file %s: %w", path, err)
	}
	return f, nil
}

// WriteLines writes each line followed by a newline, overwriting path.
func WriteLines(path string, lines []string) error {
	f, err := CreateFile(path)
	if err != nil {
		return err
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			f.Close()
			return fmt.Errorf("error writing %s: %w", path, err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("error writing %s: %w", path, err)
	}
	return f.Close()
}
