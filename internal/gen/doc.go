// Package gen provides deterministic Go code generation for union
// conversion constructors.
//
// Generation approach uses text/template + go/format for readable output.
//
// For every variant of an annotated union it emits, in declaration order:
//   - a marker-method implementation sealing the variant into the union
//   - a constructor wrapping a payload value in the variant
//
// All output for one package lands in a single generated file.
package gen
