package helpers

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	statusColor  = color.New(color.FgCyan)
	warnColor    = color.New(color.FgYellow)
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// Output is where status lines go. Tests swap it for a buffer.
var Output io.Writer = os.Stdout

// Status prints a "[-]" progress line.
func Status(format string, args ...any) {
	statusColor.Fprint(Output, "[-] ")
	fmt.Fprintf(Output, format+"\n", args...)
}

func Warn(format string, args ...any) {
	warnColor.Fprintf(Output, "[!] "+format+"\n", args...)
}

func Success(format string, args ...any) {
	successColor.Fprintf(Output, "[+] "+format+"\n", args...)
}

// Fail writes a diagnostic to w.
func Fail(w io.Writer, format string, args ...any) {
	errorColor.Fprintf(w, "[x] "+format+"\n", args...)
}

func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
