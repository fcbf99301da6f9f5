package helpers

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "urls.txt")

	require.NoError(t, WriteLines(path, []string{"a", "b"}))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "a\nb\n", string(got))

	// overwrite, not append
	require.NoError(t, WriteLines(path, []string{"c"}))
	got, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "c\n", string(got))
}

func TestWriteLinesEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.txt")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0o644))

	require.NoError(t, WriteLines(path, nil))
	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestStatusOutput(t *testing.T) {
	var buf bytes.Buffer
	old := Output
	Output = &buf
	t.Cleanup(func() { Output = old })

	noColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = noColor })

	Status("Repository: %s/%s", "o", "r")
	Warn("careful")
	Success("Wrote %d URLs", 2)

	assert.Equal(t, "[-] Repository: o/r\n[!] careful\n[+] Wrote 2 URLs\n", buf.String())

	var errBuf bytes.Buffer
	Fail(&errBuf, "%v", "boom")
	assert.Equal(t, "[x] boom\n", errBuf.String())
}

func TestFormatBytes(t *testing.T) {
	assert.Equal(t, "512 B", FormatBytes(512))
	assert.Equal(t, "1.5 KB", FormatBytes(1536))
	assert.Equal(t, "2.0 MB", FormatBytes(2*1024*1024))
}

func BenchmarkWriteLines(b *testing.B) {
	path := filepath.Join(b.TempDir(), "urls.txt")
	lines := make([]string, 1000)
	for i := range lines {
		lines[i] = "https://raw.githubusercontent.com/o/r/main/docs/resources/a.md"
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = WriteLines(path, lines)
	}
}
