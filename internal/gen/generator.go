package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"sort"
	"text/template"

	"fromgen/internal/analyze"
	"fromgen/internal/common"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// OutputName is the file name generated into each package.
	OutputName string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		OutputName: "fromgen_gen.go",
	}
}

// Generator generates Go code from scanned union declarations.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the package directory the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "fromgen_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate produces one file per package that declares at least one union.
// The same input always yields byte-identical output: unions and variants
// keep declaration order, imports are sorted.
func (g *Generator) Generate(pkgs []*analyze.Package) ([]GeneratedFile, error) {
	var files []GeneratedFile

	for _, pkg := range pkgs {
		if common.IsEmpty(pkg.Unions) {
			continue
		}

		file, err := g.generatePackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", pkg.Path, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// generatePackage generates the constructor file for a single package.
func (g *Generator) generatePackage(pkg *analyze.Package) (*GeneratedFile, error) {
	data := g.buildTemplateData(pkg)

	var buf bytes.Buffer
	if err := ctorTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		// Best-effort: write unformatted code to a sidecar file to aid debugging.
		if pkg.Dir != "" {
			_ = writeDebugUnformatted(pkg.Dir, g.config.OutputName, buf.Bytes())
		}

		// Return unformatted code for debugging
		return &GeneratedFile{
			Dir:      pkg.Dir,
			Filename: g.config.OutputName,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w (unformatted code returned)", err)
	}

	return &GeneratedFile{
		Dir:      pkg.Dir,
		Filename: g.config.OutputName,
		Content:  formatted,
	}, nil
}

// templateData holds all data needed for the constructor template.
type templateData struct {
	PackageName string
	Imports     []importSpec
	Unions      []unionData
}

// importSpec represents an import statement.
type importSpec struct {
	Alias string // set only when the package name differs from the path base
	Path  string
}

type unionData struct {
	Name     string
	Variants []variantData
}

type variantData struct {
	TypeName    string // variant struct name
	MarkerName  string // sealed-union marker method
	CtorName    string // generated constructor name
	PayloadType string // payload type as referenced from the generated file
	FieldName   string // embedded field name used in the composite literal
}

// buildTemplateData constructs the template data for one package.
func (g *Generator) buildTemplateData(pkg *analyze.Package) *templateData {
	data := &templateData{
		PackageName: pkg.Name,
	}

	imports := make(map[string]importSpec)

	for _, u := range pkg.Unions {
		ud := unionData{Name: u.Name}

		for i := range u.Variants {
			v := &u.Variants[i]

			ud.Variants = append(ud.Variants, variantData{
				TypeName:    v.Name,
				MarkerName:  u.MarkerName,
				CtorName:    v.ConstructorName(u.Name),
				PayloadType: g.payloadTypeString(pkg, v.Payload, imports),
				FieldName:   v.FieldName,
			})
		}

		data.Unions = append(data.Unions, ud)
	}

	// Convert imports map to sorted slice
	for _, imp := range imports {
		data.Imports = append(data.Imports, imp)
	}

	sort.Slice(data.Imports, func(i, j int) bool {
		return data.Imports[i].Path < data.Imports[j].Path
	})

	return data
}

// payloadTypeString renders a payload type reference, recording the import
// it needs. Types from the package being generated into are not qualified.
func (g *Generator) payloadTypeString(
	pkg *analyze.Package,
	p *analyze.Payload,
	imports map[string]importSpec,
) string {
	name := p.ID.Name

	if p.ID.PkgPath != "" && p.ID.PkgPath != pkg.Path {
		addImport(imports, p.ID.PkgPath, p.PkgName)
		name = qualifier(p) + "." + name
	}

	if p.Kind == analyze.KindPointer {
		return "*" + name
	}

	return name
}

// qualifier returns the identifier the payload's package is referenced by.
func qualifier(p *analyze.Payload) string {
	if p.PkgName != "" {
		return p.PkgName
	}

	return common.PkgAlias(p.ID.PkgPath)
}

// addImport records an import, aliased only when the package name differs
// from the last path element.
func addImport(imports map[string]importSpec, pkgPath, pkgName string) {
	if pkgPath == "" {
		return
	}

	spec := importSpec{Path: pkgPath}
	if pkgName != "" && pkgName != common.PkgAlias(pkgPath) {
		spec.Alias = pkgName
	}

	imports[pkgPath] = spec
}

// Template for the constructor file

var ctorTemplate = template.Must(template.New("fromgen").Parse(`// Code generated by fromgen. DO NOT EDIT.

package {{.PackageName}}

{{if .Imports}}
import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{end}}
{{range $u := .Unions}}{{range $v := $u.Variants}}
func ({{$v.TypeName}}) {{$v.MarkerName}}() {}

// {{$v.CtorName}} returns a {{$u.Name}} wrapping v in {{$v.TypeName}}.
func {{$v.CtorName}}(v {{$v.PayloadType}}) {{$u.Name}} {
	return {{$v.TypeName}}{ {{$v.FieldName}}: v}
}
{{end}}{{end}}`))
