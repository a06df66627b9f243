package output

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
)

// Exit codes returned by mallctl
const (
	ExitSuccess      = 0
	ExitGeneral      = 1
	ExitUsageError   = 2
	ExitAuthRequired = 3
	ExitForbidden    = 4
	ExitConfigError  = 5
	ExitServerError  = 6
)

// CLIError is a structured error with user-facing context
type CLIError struct {
	Summary    string
	Detail     string
	Suggestion string
	ExitCode   int
	Err        error
}

func (e *CLIError) Error() string {
	return e.Summary
}

func (e *CLIError) Unwrap() error {
	return e.Err
}

// ExitCodeOf returns the exit code carried by err, ExitGeneral otherwise
func ExitCodeOf(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var cliErr *CLIError
	if errors.As(err, &cliErr) && cliErr.ExitCode != 0 {
		return cliErr.ExitCode
	}
	return ExitGeneral
}

// FormatError prints a structured error message to stderr
func (p *Printer) FormatError(err error) {
	var e *CLIError
	if !errors.As(err, &e) {
		e = &CLIError{Summary: err.Error()}
	}

	if p.useColors {
		color.New(color.FgRed, color.Bold).Fprintf(p.err, "Error: %s\n", e.Summary)
		if e.Detail != "" {
			fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
		}
		if e.Suggestion != "" {
			color.New(color.FgCyan).Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
		}
		return
	}
	fmt.Fprintf(p.err, "[ERROR] %s\n", e.Summary)
	if e.Detail != "" {
		fmt.Fprintf(p.err, "  Cause: %s\n", e.Detail)
	}
	if e.Suggestion != "" {
		fmt.Fprintf(p.err, "  Suggestion: %s\n", e.Suggestion)
	}
}
