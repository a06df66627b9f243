// Package output formats mallctl's terminal output
package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/jrsteele09/go-mall-client/mallmodel"
)

// ColorMode represents color output mode
type ColorMode int

const (
	// ColorAuto enables colors unless NO_COLOR is set or the terminal is dumb
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

// ParseColorMode parses a --color flag value
func ParseColorMode(s string) (ColorMode, error) {
	switch s {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	default:
		return ColorAuto, fmt.Errorf("invalid color mode %q: must be auto, always, or never", s)
	}
}

// ResolveColors determines whether to use colors based on mode and environment
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
		return os.Getenv("TERM") != "dumb"
	}
}

// Printer handles formatted output to the terminal
type Printer struct {
	out       io.Writer
	err       io.Writer
	useColors bool
	quiet     bool
}

// NewPrinter writes to out and err. Quiet suppresses everything but errors.
func NewPrinter(out, err io.Writer, useColors, quiet bool) *Printer {
	return &Printer{out: out, err: err, useColors: useColors, quiet: quiet}
}

func (p *Printer) Out() io.Writer {
	return p.out
}

func (p *Printer) IsQuiet() bool {
	return p.quiet
}

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

func (p *Printer) Warning(format string, args ...any) {
	if p.quiet {
		return
	}
	if p.useColors {
		color.New(color.FgYellow).Fprintf(p.err, "⚠ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[WARN] "+format+"\n", args...)
	}
}

// Error is printed even in quiet mode
func (p *Printer) Error(format string, args ...any) {
	if p.useColors {
		color.New(color.FgRed).Fprintf(p.err, "✗ "+format+"\n", args...)
	} else {
		fmt.Fprintf(p.err, "[ERROR] "+format+"\n", args...)
	}
}

func (p *Printer) Print(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Header(title string) {
	if p.quiet {
		return
	}
	if p.useColors {
		color.New(color.FgWhite, color.Bold).Fprintf(p.out, "\n%s\n", title)
		color.New(color.FgWhite).Fprintf(p.out, "%s\n", strings.Repeat("─", len([]rune(title))))
	} else {
		fmt.Fprintf(p.out, "\n%s\n%s\n", title, strings.Repeat("-", len([]rune(title))))
	}
}

// StatusBadge renders an order status for a table cell
func (p *Printer) StatusBadge(status mallmodel.OrderStatus) string {
	if !p.useColors {
		return fmt.Sprintf("[%s]", status)
	}

	switch status {
	case mallmodel.OrderDelivered:
		return color.GreenString("● %s", status)
	case mallmodel.OrderPaid, mallmodel.OrderShipped:
		return color.CyanString("● %s", status)
	case mallmodel.OrderPending:
		return color.YellowString("● %s", status)
	case mallmodel.OrderCancelled:
		return color.RedString("● %s", status)
	default:
		return color.WhiteString("○ %s", status)
	}
}

// StockBadge flags products that are sold out or below the cart quantity
func (p *Printer) StockBadge(stock, wanted int) string {
	text := fmt.Sprintf("%d", stock)
	switch {
	case stock == 0:
		text = "sold out"
	case wanted > stock:
		text = fmt.Sprintf("%d (short)", stock)
	default:
		return text
	}
	if p.useColors {
		return color.RedString(text)
	}
	return text
}

func (p *Printer) Bold(text string) string {
	if p.useColors {
		return color.New(color.Bold).Sprint(text)
	}
	return text
}

func (p *Printer) Dim(text string) string {
	if p.useColors {
		return color.New(color.Faint).Sprint(text)
	}
	return text
}

// Money formats an amount with two decimals
func Money(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}
