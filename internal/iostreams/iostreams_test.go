package iostreams

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestStreams_NoColor(t *testing.T) {
	ios, _, _, _ := Test()
	assert.False(t, ios.IsOutputTTY())
	assert.False(t, ios.ColorEnabled())
}

func TestSetColorEnabled(t *testing.T) {
	ios, _, _, _ := Test()
	ios.SetColorEnabled(true)
	assert.True(t, ios.ColorEnabled())
	ios.SetColorEnabled(false)
	assert.False(t, ios.ColorEnabled())
}

func TestStatusLines(t *testing.T) {
	ios, _, out, errOut := Test()

	ios.Info("Downloading new %s ...", "phpDocumentor.phar")
	ios.Success("File downloaded")
	ios.Warning("delegated tool exited with status %d", 2)
	ios.Failure("Please, don't use root")

	assert.Equal(t, "Downloading new phpDocumentor.phar ...\n[ok] File downloaded\n\n", out.String())
	assert.Equal(t, "[warn] delegated tool exited with status 2\n[error] Please, don't use root\n", errOut.String())
}

func TestColorScheme_Disabled(t *testing.T) {
	cs := NewColorScheme(false)
	assert.Equal(t, "plain", cs.Blue("plain"))
	assert.Equal(t, "plain", cs.Red("plain"))
	assert.Equal(t, "[ok]", cs.SuccessIcon())
	assert.Equal(t, "[warn]", cs.WarningIcon())
	assert.Equal(t, "[error]", cs.FailureIcon())
}

func TestColorScheme_EnabledKeepsText(t *testing.T) {
	cs := NewColorScheme(true)
	assert.Contains(t, cs.Green("done"), "done")
	assert.True(t, cs.Enabled())
}

func TestTablePrinter_Plain(t *testing.T) {
	ios, _, out, _ := Test()

	tp := ios.NewTablePrinter("PATH", "SIZE")
	tp.AddRow("phpDocumentor.phar", "12")
	tp.AddRow("composer.phar")
	require.NoError(t, tp.Render())

	assert.Equal(t, "PATH                SIZE\nphpDocumentor.phar  12\ncomposer.phar       \n", out.String())
}

func TestTablePrinter_StyledAlignsByVisibleWidth(t *testing.T) {
	ios, _, out, _ := Test()
	ios.SetColorEnabled(true)

	tp := ios.NewTablePrinter("A", "B")
	tp.AddRow("long-value", "x")
	require.NoError(t, tp.Render())

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[1], "long-value  x"))
}
