package analyze

import (
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"fromgen/internal/common"
	"fromgen/internal/diagnostic"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Analyzer loads Go packages and extracts annotated union declarations.
type Analyzer struct {
	diags diagnostic.Diagnostics
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// LoadPackages loads the specified packages and extracts annotated unions.
// Patterns are standard Go package patterns (e.g., "./...", "fromgen/examples/faults").
// Shape problems in annotated declarations are reported through the returned
// Diagnostics; the error covers load and type-check failures only.
func (a *Analyzer) LoadPackages(patterns ...string) ([]*Package, *diagnostic.Diagnostics, error) {
	cfg := &packages.Config{
		Mode: LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load packages: %w", err)
	}

	// Check for package errors
	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			errs = append(errs, e)
		}
	}
	if !common.IsEmpty(errs) {
		return nil, nil, fmt.Errorf("package errors: %v", errs)
	}

	var out []*Package
	for _, pkg := range pkgs {
		out = append(out, a.scanPackage(pkg))
	}

	return out, &a.diags, nil
}

// Diagnostics returns the diagnostics accumulated so far.
func (a *Analyzer) Diagnostics() *diagnostic.Diagnostics {
	return &a.diags
}

// scanPackage walks a loaded package's declarations looking for the directive.
func (a *Analyzer) scanPackage(pkg *packages.Package) *Package {
	p := &Package{
		Path: pkg.PkgPath,
		Name: pkg.Name,
	}

	if first, ok := common.First(pkg.GoFiles); ok {
		p.Dir = filepath.Dir(first)
	}

	for _, file := range pkg.Syntax {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if !hasDirective(d.Doc) {
					continue
				}

				if u := a.extractUnion(pkg, d); u != nil {
					p.Unions = append(p.Unions, u)
				}

			case *ast.FuncDecl:
				if hasDirective(d.Doc) {
					a.diags.AddError(diagnostic.CodeNotAUnion,
						"directive applies to type declarations only",
						d.Name.Name, "", a.pos(pkg, d.Pos()))
				}
			}
		}
	}

	return p
}

// extractUnion builds the union model from an annotated declaration.
// Returns nil if the declaration is malformed; problems are reported as
// diagnostics and no partial model is kept.
func (a *Analyzer) extractUnion(pkg *packages.Package, d *ast.GenDecl) *Union {
	pos := a.pos(pkg, d.Pos())

	if d.Tok != token.TYPE || !d.Lparen.IsValid() || !common.IsMultiple(d.Specs) {
		a.diags.AddError(diagnostic.CodeNotAUnion,
			"directive must be applied to a grouped type declaration holding a union interface and at least one variant",
			"", "", pos)

		return nil
	}

	head := d.Specs[0].(*ast.TypeSpec)
	unionName := head.Name.Name

	iface, ok := a.lookupUnderlying(pkg, head).(*types.Interface)
	if !ok {
		a.diags.AddError(diagnostic.CodeNotAUnion,
			"first type in an annotated block must be the union interface",
			unionName, "", a.pos(pkg, head.Pos()))

		return nil
	}

	marker, ok := a.markerMethod(pkg, unionName, head, iface)
	if !ok {
		return nil
	}

	u := &Union{
		Name:       unionName,
		MarkerName: marker,
		Pos:        pos,
	}

	before := len(a.diags.Errors)

	for _, spec := range d.Specs[1:] {
		ts := spec.(*ast.TypeSpec)
		if v := a.extractVariant(pkg, unionName, ts); v != nil {
			u.Variants = append(u.Variants, *v)
		}
	}

	a.validateUnion(u)

	// An annotated declaration is all-or-nothing: any malformed variant
	// invalidates the whole union rather than shrinking its output.
	if len(a.diags.Errors) > before {
		return nil
	}

	return u
}

// markerMethod checks the sealed-union shape of the interface: exactly one
// unexported method with no parameters and no results.
func (a *Analyzer) markerMethod(
	pkg *packages.Package,
	unionName string,
	head *ast.TypeSpec,
	iface *types.Interface,
) (string, bool) {
	pos := a.pos(pkg, head.Pos())

	if iface.NumEmbeddeds() != 0 || iface.NumExplicitMethods() != 1 {
		a.diags.AddError(diagnostic.CodeBadMarker,
			"union interface must declare exactly one marker method and embed nothing",
			unionName, "", pos)

		return "", false
	}

	m := iface.ExplicitMethod(0)
	if m.Exported() {
		a.diags.AddError(diagnostic.CodeBadMarker,
			fmt.Sprintf("marker method %s must be unexported", m.Name()),
			unionName, "", pos)

		return "", false
	}

	sig := m.Type().(*types.Signature)
	if sig.Params().Len() != 0 || sig.Results().Len() != 0 {
		a.diags.AddError(diagnostic.CodeBadMarker,
			fmt.Sprintf("marker method %s must take no parameters and return nothing", m.Name()),
			unionName, "", pos)

		return "", false
	}

	return m.Name(), true
}

// extractVariant checks one variant spec and builds its model.
func (a *Analyzer) extractVariant(pkg *packages.Package, unionName string, ts *ast.TypeSpec) *Variant {
	name := ts.Name.Name
	pos := a.pos(pkg, ts.Pos())

	st, ok := a.lookupUnderlying(pkg, ts).(*types.Struct)
	if !ok {
		a.diags.AddError(diagnostic.CodeNotAStruct,
			"variant must be a struct type",
			unionName, name, pos)

		return nil
	}

	switch {
	case st.NumFields() == 0:
		a.diags.AddError(diagnostic.CodeUnitVariant,
			"variant has no payload; exactly one embedded field is required",
			unionName, name, pos)

		return nil

	case st.NumFields() > 1:
		a.diags.AddError(diagnostic.CodeMultiPayload,
			fmt.Sprintf("variant has %d fields; exactly one embedded field is required", st.NumFields()),
			unionName, name, pos)

		return nil
	}

	field := st.Field(0)
	if !field.Anonymous() {
		a.diags.AddError(diagnostic.CodeNamedPayload,
			fmt.Sprintf("payload field %s is named; the payload must be embedded", field.Name()),
			unionName, name, pos)

		return nil
	}

	payload := analyzePayload(field.Type())
	if payload.Kind == KindUnknown {
		a.diags.AddError(diagnostic.CodeBadPayload,
			fmt.Sprintf("unsupported payload type %s", field.Type()),
			unionName, name, pos)

		return nil
	}

	return &Variant{
		Name:      name,
		FieldName: field.Name(),
		Payload:   payload,
		Pos:       pos,
	}
}

// analyzePayload classifies the embedded field's type.
func analyzePayload(t types.Type) *Payload {
	p := &Payload{GoType: t}

	switch tt := t.(type) {
	case *types.Pointer:
		p.Kind = KindPointer
		fillBase(p, tt.Elem())

	case *types.Named, *types.Basic:
		p.Kind = KindNamed
		fillBase(p, t)

	default:
		p.Kind = KindUnknown
	}

	return p
}

// fillBase records the identity of the base (pointee) type. Predeclared
// types such as string or error carry no package path.
func fillBase(p *Payload, t types.Type) {
	switch tt := t.(type) {
	case *types.Named:
		// Instantiated generics would need their type arguments rendered;
		// the bare name does not typecheck. Reject instead of guessing.
		if tt.TypeArgs().Len() > 0 {
			p.Kind = KindUnknown

			return
		}

		obj := tt.Obj()
		p.ID.Name = obj.Name()

		if obj.Pkg() != nil {
			p.ID.PkgPath = obj.Pkg().Path()
			p.PkgName = obj.Pkg().Name()
		} else if p.Kind == KindNamed {
			// Predeclared named type, e.g. error.
			p.Kind = KindBasic
		}

	case *types.Basic:
		p.ID.Name = tt.Name()

		if p.Kind == KindNamed {
			p.Kind = KindBasic
		}

	default:
		p.Kind = KindUnknown
	}
}

// lookupUnderlying resolves a type spec to the underlying go/types type.
func (a *Analyzer) lookupUnderlying(pkg *packages.Package, ts *ast.TypeSpec) types.Type {
	obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
	if !ok {
		return nil
	}

	return obj.Type().Underlying()
}

// pos renders a token position as "file:line:col".
func (a *Analyzer) pos(pkg *packages.Package, p token.Pos) string {
	return pkg.Fset.Position(p).String()
}

// hasDirective reports whether the doc comment carries the fromgen directive.
func hasDirective(doc *ast.CommentGroup) bool {
	if doc == nil {
		return false
	}

	for _, c := range doc.List {
		if c.Text == Directive {
			return true
		}
	}

	return false
}
