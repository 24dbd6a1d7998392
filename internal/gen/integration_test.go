package gen

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fromgen/internal/analyze"
)

// Loads the example packages through the real analyzer and generates from
// the resulting model, covering the whole pipeline short of writing files.
func TestPipeline_ExamplePackages(t *testing.T) {
	analyzer := analyze.NewAnalyzer()
	pkgs, diags, err := analyzer.LoadPackages(
		"fromgen/examples/faults",
		"fromgen/examples/scalars",
	)
	require.NoError(t, err)
	require.False(t, diags.HasErrors(), "%v", diags.Error())
	require.Len(t, pkgs, 2)

	files, err := NewGenerator(DefaultGeneratorConfig()).Generate(pkgs)
	require.NoError(t, err)
	require.Len(t, files, 2)

	byPkg := make(map[string]string, len(files))
	for _, f := range files {
		assert.Equal(t, "fromgen_gen.go", f.Filename)
		assert.NotEmpty(t, f.Dir)
		byPkg[f.Dir] = string(f.Content)
	}

	var faults, scalars string
	for dir, content := range byPkg {
		switch {
		case strings.HasSuffix(dir, "examples/faults"):
			faults = content
		case strings.HasSuffix(dir, "examples/scalars"):
			scalars = content
		}
	}

	require.NotEmpty(t, faults)
	require.NotEmpty(t, scalars)

	assert.Contains(t, faults, "func FaultFromPathError(v *fs.PathError) Fault {")
	assert.Contains(t, faults, "func FaultFromNumError(v *strconv.NumError) Fault {")
	assert.Contains(t, faults, "func FaultFromOpError(v *net.OpError) Fault {")

	assert.Contains(t, scalars, "func ScalarFromInt(v int) Scalar {")
	assert.Contains(t, scalars, "func ScalarFromFloat64(v float64) Scalar {")
	assert.Contains(t, scalars, "func ScalarFromString(v string) Scalar {")
	assert.NotContains(t, scalars, "import")
}
