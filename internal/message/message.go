package message

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/tidalsec/entradump/version"
)

var (
	quiet     bool
	noColor   bool
	mutex     sync.RWMutex
	outWriter io.Writer = os.Stdout

	infoColor    = color.New(color.FgCyan)
	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	bannerColor  = color.New(color.FgHiMagenta, color.Bold)
)

const asciiBanner = `
▗▄▄▄▖▗▖  ▗▖▗▄▄▄▖▗▄▄▖  ▗▄▖ ▗▄▄▄ ▗▖ ▗▖▗▖  ▗▖▗▄▄▖
▐▌   ▐▛▚▖▐▌  █  ▐▌ ▐▌▐▌ ▐▌▐▌  █▐▌ ▐▌▐▛▚▞▜▌▐▌ ▐▌
▐▛▀▀▘▐▌ ▝▜▌  █  ▐▛▀▚▖▐▛▀▜▌▐▌  █▐▌ ▐▌▐▌  ▐▌▐▛▀▘
▐▙▄▄▖▐▌  ▐▌  █  ▐▌ ▐▌▐▌ ▐▌▐▙▄▄▀▝▚▄▞▘▐▌  ▐▌▐▌
`

// SetQuiet suppresses informational and success messages.
func SetQuiet(q bool) {
	mutex.Lock()
	defer mutex.Unlock()
	quiet = q
}

// SetNoColor disables colored output, also for the color package globally.
func SetNoColor(nc bool) {
	mutex.Lock()
	defer mutex.Unlock()
	noColor = nc
	color.NoColor = nc
}

// SetOutput changes the output writer (useful for testing).
func SetOutput(w io.Writer) {
	mutex.Lock()
	defer mutex.Unlock()
	outWriter = w
}

func printf(c *color.Color, prefix, format string, args ...interface{}) {
	mutex.RLock()
	defer mutex.RUnlock()

	msg := fmt.Sprintf(format, args...)
	if noColor {
		fmt.Fprintf(outWriter, "%s %s\n", prefix, msg)
	} else {
		c.Fprintf(outWriter, "%s %s\n", prefix, msg)
	}
}

// Info prints an informational message unless quiet mode is enabled.
func Info(format string, args ...interface{}) {
	if quiet {
		return
	}
	printf(infoColor, "[*]", format, args...)
}

// Success prints a success message unless quiet mode is enabled.
func Success(format string, args ...interface{}) {
	if quiet {
		return
	}
	printf(successColor, "[+]", format, args...)
}

// Warning prints a warning message.
func Warning(format string, args ...interface{}) {
	printf(warningColor, "[!]", format, args...)
}

// Error prints an error message.
func Error(format string, args ...interface{}) {
	printf(errorColor, "[-]", format, args...)
}

// Prints the banner
func Banner() {
	if quiet {
		return
	}

	mutex.RLock()
	defer mutex.RUnlock()

	if noColor {
		fmt.Fprint(outWriter, asciiBanner, version.AbbreviatedVersion(), "\n")
	} else {
		bannerColor.Fprint(outWriter, asciiBanner, version.AbbreviatedVersion(), "\n")
	}
}
