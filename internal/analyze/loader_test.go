package analyze

import (
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fromgen/internal/diagnostic"
)

func TestAnalyzer_LoadPackages_Faults(t *testing.T) {
	analyzer := NewAnalyzer()
	pkgs, diags, err := analyzer.LoadPackages("fromgen/examples/faults")
	require.NoError(t, err)
	require.False(t, diags.HasErrors())
	require.Len(t, pkgs, 1)

	pkg := pkgs[0]
	assert.Equal(t, "fromgen/examples/faults", pkg.Path)
	assert.Equal(t, "faults", pkg.Name)
	assert.NotEmpty(t, pkg.Dir)

	require.Len(t, pkg.Unions, 1)
	u := pkg.Unions[0]
	assert.Equal(t, "Fault", u.Name)
	assert.Equal(t, "isFault", u.MarkerName)

	// Variants keep declaration order.
	require.Len(t, u.Variants, 3)
	assert.Equal(t, "IOFault", u.Variants[0].Name)
	assert.Equal(t, "ParseFault", u.Variants[1].Name)
	assert.Equal(t, "NetFault", u.Variants[2].Name)

	first := u.Variants[0]
	assert.Equal(t, KindPointer, first.Payload.Kind)
	assert.Equal(t, TypeID{PkgPath: "io/fs", Name: "PathError"}, first.Payload.ID)
	assert.Equal(t, "fs", first.Payload.PkgName)
	assert.Equal(t, "PathError", first.FieldName)
	assert.Equal(t, "FaultFromPathError", first.ConstructorName(u.Name))
}

func TestAnalyzer_LoadPackages_Scalars(t *testing.T) {
	analyzer := NewAnalyzer()
	pkgs, diags, err := analyzer.LoadPackages("fromgen/examples/scalars")
	require.NoError(t, err)
	require.False(t, diags.HasErrors())
	require.Len(t, pkgs, 1)

	require.Len(t, pkgs[0].Unions, 1)
	u := pkgs[0].Unions[0]
	require.Len(t, u.Variants, 3)

	v := u.Variants[0]
	assert.Equal(t, "IntScalar", v.Name)
	assert.Equal(t, KindBasic, v.Payload.Kind)
	assert.Equal(t, TypeID{Name: "int"}, v.Payload.ID)
	assert.Equal(t, "int", v.FieldName)
	assert.Equal(t, "ScalarFromInt", v.ConstructorName(u.Name))

	assert.Equal(t, "ScalarFromFloat64", u.Variants[1].ConstructorName(u.Name))
	assert.Equal(t, "ScalarFromString", u.Variants[2].ConstructorName(u.Name))
}

func TestAnalyzer_LoadPackages_BadShapes(t *testing.T) {
	analyzer := NewAnalyzer()
	pkgs, diags, err := analyzer.LoadPackages("fromgen/examples/badshapes")
	require.NoError(t, err)
	require.Len(t, pkgs, 1)

	// Rejected declarations leave no model behind.
	assert.Empty(t, pkgs[0].Unions)

	require.True(t, diags.HasErrors())

	codes := make(map[string]int)
	for _, e := range diags.Errors {
		codes[e.Code]++
	}

	assert.Equal(t, 1, codes[diagnostic.CodeUnitVariant], "Empty variant")
	assert.Equal(t, 1, codes[diagnostic.CodeMultiPayload], "Pair variant")
	assert.Equal(t, 1, codes[diagnostic.CodeNamedPayload], "Labeled variant")
	assert.Equal(t, 1, codes[diagnostic.CodeNotAStruct], "Other variant")
	assert.Equal(t, 1, codes[diagnostic.CodeDupPayload], "Second variant")
	assert.Equal(t, 1, codes[diagnostic.CodeBadMarker], "Loud union")
	assert.Equal(t, 1, codes[diagnostic.CodeBadPayload], "BoxHolder variant")
	assert.Equal(t, 1, codes[diagnostic.CodeNotAUnion], "Lone declaration")
}

func TestAnalyzer_InstantiatedGenericPayloadRejected(t *testing.T) {
	analyzer := NewAnalyzer()
	_, diags, err := analyzer.LoadPackages("fromgen/examples/badshapes")
	require.NoError(t, err)

	var bad *diagnostic.Diagnostic
	for i := range diags.Errors {
		if diags.Errors[i].Code == diagnostic.CodeBadPayload {
			bad = &diags.Errors[i]
			break
		}
	}

	require.NotNil(t, bad)
	assert.Equal(t, "Wrapped", bad.Union)
	assert.Equal(t, "BoxHolder", bad.Variant)
	assert.Contains(t, bad.Message, "Box[int]")
}

func TestAnalyzer_BadShapeDiagnosticNamesVariant(t *testing.T) {
	analyzer := NewAnalyzer()
	_, diags, err := analyzer.LoadPackages("fromgen/examples/badshapes")
	require.NoError(t, err)

	var unit *diagnostic.Diagnostic
	for i := range diags.Errors {
		if diags.Errors[i].Code == diagnostic.CodeUnitVariant {
			unit = &diags.Errors[i]
			break
		}
	}

	require.NotNil(t, unit)
	assert.Equal(t, "Broken", unit.Union)
	assert.Equal(t, "Empty", unit.Variant)
	assert.NotEmpty(t, unit.Pos)
}

func TestHasDirective(t *testing.T) {
	assert.False(t, hasDirective(nil))

	exact := &ast.CommentGroup{List: []*ast.Comment{{Text: "//fromgen:wrap"}}}
	assert.True(t, hasDirective(exact))

	spaced := &ast.CommentGroup{List: []*ast.Comment{{Text: "// fromgen:wrap"}}}
	assert.False(t, hasDirective(spaced))

	mixed := &ast.CommentGroup{List: []*ast.Comment{
		{Text: "// Fault is a union."},
		{Text: "//fromgen:wrap"},
	}}
	assert.True(t, hasDirective(mixed))
}

func TestTypeID_String(t *testing.T) {
	id := TypeID{PkgPath: "io/fs", Name: "PathError"}
	assert.Equal(t, "io/fs.PathError", id.String())

	// Empty package path
	idNoPkg := TypeID{Name: "int"}
	assert.Equal(t, "int", idNoPkg.String())
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "KindBasic", KindBasic.String())
	assert.Equal(t, "KindNamed", KindNamed.String())
	assert.Equal(t, "KindPointer", KindPointer.String())
	assert.Equal(t, "KindUnknown", KindUnknown.String())
}

func TestPayload_Key(t *testing.T) {
	named := &Payload{ID: TypeID{PkgPath: "io/fs", Name: "PathError"}, Kind: KindNamed}
	assert.Equal(t, "io/fs.PathError", named.Key())

	ptr := &Payload{ID: TypeID{PkgPath: "io/fs", Name: "PathError"}, Kind: KindPointer}
	assert.Equal(t, "*io/fs.PathError", ptr.Key())

	basic := &Payload{ID: TypeID{Name: "string"}, Kind: KindBasic}
	assert.Equal(t, "string", basic.Key())
}
