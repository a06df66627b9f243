package output

import (
	"bytes"
	"errors"
	"fmt"
	"testing"

	"github.com/jrsteele09/go-mall-client/mallmodel"
	"github.com/stretchr/testify/require"
)

func TestParseColorMode(t *testing.T) {
	tests := []struct {
		input string
		want  ColorMode
	}{
		{"", ColorAuto},
		{"auto", ColorAuto},
		{"always", ColorAlways},
		{"never", ColorNever},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseColorMode(tt.input)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	_, err := ParseColorMode("rainbow")
	require.Error(t, err)
}

func TestResolveColors(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	require.True(t, ResolveColors(ColorAlways))
	require.False(t, ResolveColors(ColorAuto))
	require.False(t, ResolveColors(ColorNever))
}

func TestPrinter_PlainOutput(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false, false)

	p.Success("added %d item", 1)
	p.Info("hello")
	p.Warning("careful")
	p.Error("broken")

	require.Equal(t, "[OK] added 1 item\nhello\n", out.String())
	require.Equal(t, "[WARN] careful\n[ERROR] broken\n", errOut.String())
}

func TestPrinter_QuietKeepsErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut, false, true)

	p.Print("x")
	p.Header("Title")
	p.Warning("w")
	p.Error("e")

	require.Empty(t, out.String())
	require.Equal(t, "[ERROR] e\n", errOut.String())
}

func TestStatusBadge(t *testing.T) {
	p := NewPrinter(&bytes.Buffer{}, &bytes.Buffer{}, false, false)
	require.Equal(t, "[SHIPPED]", p.StatusBadge(mallmodel.OrderShipped))
	require.Equal(t, "sold out", p.StockBadge(0, 1))
	require.Equal(t, "2 (short)", p.StockBadge(2, 3))
	require.Equal(t, "5", p.StockBadge(5, 3))
}

func TestTable_Render(t *testing.T) {
	var out bytes.Buffer
	p := NewPrinter(&out, &bytes.Buffer{}, false, false)

	table := p.NewTable("id", "name")
	table.AddRow("1", "Wireless Mouse")
	require.Equal(t, 1, table.Len())
	require.NoError(t, table.Render())
	require.Contains(t, out.String(), "Wireless Mouse")
}

func TestFormatErrorAndExitCode(t *testing.T) {
	var errOut bytes.Buffer
	p := NewPrinter(&bytes.Buffer{}, &errOut, false, false)

	cliErr := &CLIError{Summary: "login required", Suggestion: "run mallctl login", ExitCode: ExitAuthRequired}
	p.FormatError(cliErr)
	require.Equal(t, "[ERROR] login required\n  Suggestion: run mallctl login\n", errOut.String())

	require.Equal(t, ExitAuthRequired, ExitCodeOf(fmt.Errorf("wrapped: %w", cliErr)))
	require.Equal(t, ExitGeneral, ExitCodeOf(errors.New("plain")))
	require.Equal(t, ExitSuccess, ExitCodeOf(nil))
}
