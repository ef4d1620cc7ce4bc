package printer

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

func init() {
	// Users can disable colors with the NO_COLOR environment variable
	if os.Getenv("NO_COLOR") != "" {
		color.NoColor = true
	}
}

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
)

// Success writes a success message in green with a checkmark prefix
func Success(w io.Writer, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "✓") {
		msg = "✓ " + msg
	}
	green.Fprint(w, msg)
}

// Warning writes a warning message in yellow with a warning emoji prefix
func Warning(w io.Writer, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	if !strings.HasPrefix(msg, "⚠️") {
		msg = "⚠️  " + msg
	}
	yellow.Fprint(w, msg)
}

// Error writes a titled error with an explanation to w and returns a plain
// error suitable for returning from a cobra command.
func Error(w io.Writer, title string, err error) error {
	red.Fprintf(w, "%s\n", title)
	fmt.Fprintf(w, "%v\n", err)
	return fmt.Errorf("%s: %w", title, err)
}
