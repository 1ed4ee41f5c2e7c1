package cli

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/deckroute/internal/adapters/driving/mcp"
)

func withVersion(t *testing.T, v string) {
	t.Helper()
	original := version
	version = v
	t.Cleanup(func() { version = original })
}

func TestVersionCmd(t *testing.T) {
	withVersion(t, "1.2.3")

	stdout, _, err := executeCommand(t, "version")

	require.NoError(t, err)
	assert.Contains(t, stdout, "deckroute version 1.2.3")
	assert.Contains(t, stdout, "mcp server: "+mcp.Version)
	assert.Contains(t, stdout, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestVersionCmd_Short(t *testing.T) {
	withVersion(t, "1.2.3")

	stdout, _, err := executeCommand(t, "version", "--short")

	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", stdout)
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	_, _, err := executeCommand(t, "version", "extra")
	assert.Error(t, err)
}

func TestSetVersion_IgnoresEmpty(t *testing.T) {
	withVersion(t, "dev")

	SetVersion("")
	assert.Equal(t, "dev", version)

	SetVersion("2.0.0")
	assert.Equal(t, "2.0.0", version)
}
