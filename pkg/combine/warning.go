package combine

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Warner reports skipped files on the error stream.
type Warner struct {
	out   io.Writer
	alert *color.Color
	bold  *color.Color
}

// NewWarner returns a Warner writing to out, styled when colorize is set.
func NewWarner(out io.Writer, colorize bool) *Warner {
	alert := color.New(color.Bold, color.FgRed)
	bold := color.New(color.Bold)
	if colorize {
		// fatih/color decides from stdout, which is usually piped here.
		alert.EnableColor()
		bold.EnableColor()
	} else {
		alert.DisableColor()
		bold.DisableColor()
	}
	return &Warner{out: out, alert: alert, bold: bold}
}

// Skip writes one line naming a file that was left out of the document.
func (w *Warner) Skip(relPath string, reason error) error {
	var line string
	if errors.Is(reason, ErrInvalidUTF8) {
		line = w.alert.Sprint("UTF-8 decode error: skip ") + w.bold.Sprint(relPath)
	} else {
		line = w.alert.Sprint("read error: skip ") + w.bold.Sprint(relPath) + ": " + cause(reason)
	}
	_, err := fmt.Fprintln(w.out, line)
	return err
}

// cause strips the absolute path an *fs.PathError carries.
func cause(err error) string {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err.Error()
	}
	return err.Error()
}

// ColorEnabled reports whether w is a terminal that should receive styled
// output. NO_COLOR (https://no-color.org) always disables styling.
func ColorEnabled(w io.Writer) bool {
	// NewWarner forces EnableColor, which bypasses fatih/color's own NO_COLOR check.
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
