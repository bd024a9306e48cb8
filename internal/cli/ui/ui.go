// Package ui renders the human-facing result lines the generator prints
// alongside its structured log output.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Printer writes colored status lines. NoColor disables ANSI codes for
// non-terminal output.
type Printer struct {
	writer  io.Writer
	noColor bool
}

// NewPrinter creates a printer writing to w.
func NewPrinter(w io.Writer, noColor bool) *Printer {
	return &Printer{writer: w, noColor: noColor}
}

func (p *Printer) sprintf(c *color.Color, format string, args ...interface{}) string {
	if p.noColor {
		return fmt.Sprintf(format, args...)
	}
	return c.Sprintf(format, args...)
}

// Successf prints a green checkmarked line.
func (p *Printer) Successf(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, "✅ "+p.sprintf(color.New(color.FgGreen), format, args...))
}

// Warnf prints a yellow warning line. Warnings never change the exit status.
func (p *Printer) Warnf(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, "⚠ "+p.sprintf(color.New(color.FgYellow), format, args...))
}

// Errorf prints a red error line.
func (p *Printer) Errorf(format string, args ...interface{}) {
	fmt.Fprintln(p.writer, "❌ "+p.sprintf(color.New(color.FgRed, color.Bold), format, args...))
}

// Infof prints a plain line.
func (p *Printer) Infof(format string, args ...interface{}) {
	fmt.Fprintf(p.writer, format+"\n", args...)
}
