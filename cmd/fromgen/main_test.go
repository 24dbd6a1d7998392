package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_MalformedShapesFailBeforeWriting(t *testing.T) {
	code := run([]string{"-output", "rejected_gen.go", "fromgen/examples/badshapes"})
	assert.Equal(t, 1, code)

	// Diagnostics must abort the run before any output is produced.
	_, err := os.Stat(filepath.Join("..", "..", "examples", "badshapes", "rejected_gen.go"))
	assert.True(t, os.IsNotExist(err), "no file may be written for a package with errors")
}

func TestRun_DryRunSucceeds(t *testing.T) {
	code := run([]string{"-dry-run", "fromgen/examples/scalars"})
	assert.Equal(t, 0, code)
}

func TestRun_UnreadableConfigFails(t *testing.T) {
	code := run([]string{"-config", filepath.Join(t.TempDir(), "nope.yaml")})
	assert.Equal(t, 1, code)
}

func TestLoadConfig_DefaultsWithoutFile(t *testing.T) {
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "fromgen_gen.go", cfg.Output)
	assert.Equal(t, []string{"./..."}, cfg.Packages)
}
