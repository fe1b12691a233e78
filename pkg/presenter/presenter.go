// Package presenter provides consistent user-facing CLI output with color
// support and a quiet mode. Log output goes through pkg/logger; this
// package is only for messages the user is meant to read.
package presenter

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
)

var (
	mu     sync.Mutex
	out    io.Writer = os.Stdout
	errOut io.Writer = os.Stderr
	quiet  bool

	successColor = color.New(color.FgGreen)
	warningColor = color.New(color.FgYellow)
	errorColor   = color.New(color.FgRed)
	sectionColor = color.New(color.Bold)
)

// SetQuiet suppresses everything except errors.
func SetQuiet(q bool) {
	mu.Lock()
	defer mu.Unlock()
	quiet = q
}

// SetOutput redirects normal output, for tests.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	out = w
}

// Success prints a green confirmation line.
func Success(message string) {
	printLine(successColor, "✓ "+message)
}

// Warning prints a yellow warning line.
func Warning(message string) {
	printLine(warningColor, "⚠ "+message)
}

// Info prints a plain informational line.
func Info(message string) {
	printLine(nil, message)
}

// Section prints a bold section header.
func Section(title string) {
	printLine(sectionColor, "\n"+title)
}

// Error prints a red error line with optional context. Errors ignore
// quiet mode.
func Error(err error, context string) {
	mu.Lock()
	defer mu.Unlock()
	if context != "" {
		errorColor.Fprintf(errOut, "Error: %s: %v\n", context, err)
		return
	}
	errorColor.Fprintf(errOut, "Error: %v\n", err)
}

func printLine(c *color.Color, message string) {
	mu.Lock()
	defer mu.Unlock()
	if quiet {
		return
	}
	if c != nil {
		c.Fprintln(out, message)
		return
	}
	fmt.Fprintln(out, message)
}
