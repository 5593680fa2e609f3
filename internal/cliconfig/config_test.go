package cliconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brindlecode/langident/internal/cliconfig"
)

func TestLoadDefaults(t *testing.T) {
	// Changes the process working directory, so this test cannot run in
	// parallel with its siblings.
	dir := t.TempDir()

	cwd, err := os.Getwd()
	require.NoError(t, err)

	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { require.NoError(t, os.Chdir(cwd)) })

	cfg, err := cliconfig.Load("")
	require.NoError(t, err)
	assert.Equal(t, cliconfig.OutputBare, cfg.Output.Mode)
	assert.False(t, cfg.Output.NoColor)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "langbreakdown.yaml")
	doc := "output:\n  mode: verbose\n  no_color: true\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg, err := cliconfig.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cliconfig.OutputVerbose, cfg.Output.Mode)
	assert.True(t, cfg.Output.NoColor)
}

func TestLoadRejectsInvalidOutputMode(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "langbreakdown.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output:\n  mode: loud\n"), 0o600))

	_, err := cliconfig.Load(path)
	require.ErrorIs(t, err, cliconfig.ErrInvalidOutput)
}
