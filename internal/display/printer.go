// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package display renders terminal output: colored status lines and
// borderless listing tables. Nothing here touches the scraped data; it only
// formats what the extraction and export layers produced.
package display

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// ColorMode selects how color output is decided.
type ColorMode int

const (
	// ColorAuto enables colors unless the environment opts out.
	ColorAuto ColorMode = iota
	// ColorAlways forces colors on.
	ColorAlways
	// ColorNever forces colors off.
	ColorNever
)

// ParseColorMode parses a --color flag value.
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors decides color use from the mode and environment. Auto honors
// the NO_COLOR convention and dumb terminals.
func ResolveColors(mode ColorMode) bool {
	switch mode {
	case ColorAlways:
		return true
	case ColorNever:
		return false
	default:
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false
		}
		if os.Getenv("TERM") == "dumb" {
			return false
		}
		return true
	}
}

// PrinterOptions configures a Printer.
type PrinterOptions struct {
	Mode  ColorMode
	Quiet bool
}

// Printer writes status lines to the terminal. Quiet mode suppresses
// everything except errors.
type Printer struct {
	out       io.Writer
	errOut    io.Writer
	useColors bool
	quiet     bool
}

// NewPrinter builds a Printer writing to out and errOut.
func NewPrinter(out, errOut io.Writer, opts PrinterOptions) *Printer {
	return &Printer{
		out:       out,
		errOut:    errOut,
		useColors: ResolveColors(opts.Mode),
		quiet:     opts.Quiet,
	}
}

// Quiet reports whether the printer suppresses non-error output.
func (p *Printer) Quiet() bool {
	return p.quiet
}

// ProgressWriter returns the writer extraction progress lines should go to:
// the printer's output stream, or a discard writer in quiet mode.
func (p *Printer) ProgressWriter() io.Writer {
	if p.quiet {
		return io.Discard
	}
	return p.out
}

// Info prints an informational line.
func (p *Printer) Info(format string, args ...any) {
	if p.quiet {
		return
	}
	if p.useColors {
		color.New(color.FgCyan).Fprintf(p.out, format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, format+"\n", args...)
	}
}

// Success prints a success line.
func (p *Printer) Success(format string, args ...any) {
	if p.quiet {
		return
	}
	if p.useColors {
		color.New(color.FgGreen).Fprintf(p.out, "✓ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.out, "[OK] "+format+"\n", args...)
	}
}

// Warning prints a warning line to the error stream.
func (p *Printer) Warning(format string, args ...any) {
	if p.quiet {
		return
	}
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.errOut, "⚠ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.errOut, "[WARN] "+format+"\n", args...)
	}
}

// Error prints an error line to the error stream. Not suppressed by quiet
// mode.
func (p *Printer) Error(format string, args ...any) {
	if p.useColors {
		color.New(color.FgRed).Fprintf(p.errOut, "✗ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.errOut, "[ERROR] "+format+"\n", args...)
	}
}

// Print prints a plain line.
func (p *Printer) Print(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

// Header prints a section header.
func (p *Printer) Header(title string) {
	if p.quiet {
		return
	}
	if p.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
	} else {
		fmt.Fprintf(p.out, "\n%s\n", title)
	}
}
