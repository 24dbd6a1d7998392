package analyze

import (
	"go/types"

	"github.com/iancoleman/strcase"
)

// Directive marks a grouped type declaration for constructor generation.
// It takes no parameters; behavior is identical for every annotated block.
const Directive = "//fromgen:wrap"

// TypeID uniquely identifies a named type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "io/fs"; empty for predeclared types
	Name    string // e.g., "PathError"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

//go:generate go tool stringer -type=Kind -output=kind_string.go

// Kind represents the kind of a payload type reference.
type Kind int

const (
	KindUnknown Kind = iota
	KindBasic        // predeclared types: int, string, error, ...
	KindNamed        // defined (named) types
	KindPointer      // pointer to a named or predeclared type
)

// Payload describes a variant's single unnamed payload type.
type Payload struct {
	ID      TypeID     // identity of the base type (the pointee for pointers)
	PkgName string     // package name of the base type, used for import aliasing
	Kind    Kind       // kind of the payload reference
	GoType  types.Type // the original go/types.Type
}

// Key returns a stable identity string used for duplicate detection,
// e.g. "*io/fs.PathError" or "string".
func (p *Payload) Key() string {
	if p.Kind == KindPointer {
		return "*" + p.ID.String()
	}

	return p.ID.String()
}

// BaseName returns the base type name constructor names are derived from.
func (p *Payload) BaseName() string {
	return p.ID.Name
}

// Variant is one alternative case of a union, wrapping exactly one payload.
type Variant struct {
	Name      string   // variant struct name, e.g. "IOFault"
	FieldName string   // implicit name of the embedded payload field, e.g. "PathError"
	Payload   *Payload // the wrapped type
	Pos       string   // source position of the variant type spec
}

// ConstructorName returns the generated constructor name for this variant
// within the given union, e.g. "FaultFromPathError". The name is derived
// from the payload type, not the variant, so that each payload type keys
// exactly one conversion.
func (v *Variant) ConstructorName(unionName string) string {
	return unionName + "From" + strcase.ToCamel(v.Payload.BaseName())
}

// Union is an annotated sealed-interface declaration plus its variants,
// in declaration order.
type Union struct {
	Name       string    // union interface name, e.g. "Fault"
	MarkerName string    // unexported niladic method sealing the union
	Variants   []Variant // ordered as declared
	Pos        string    // source position of the annotated declaration
}

// Package describes one scanned Go package and its annotated declarations.
type Package struct {
	Path   string   // import path
	Name   string   // package name
	Dir    string   // directory holding the package sources
	Unions []*Union // annotated declarations in source order
}
