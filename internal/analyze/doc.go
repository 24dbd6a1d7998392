// Package analyze provides package loading and union declaration extraction.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find
// type declarations annotated with the fromgen directive and to build a
// canonical in-memory model of each union and its variants.
//
// Key types:
//   - TypeID: package import path + type name
//   - Payload: a variant's single unnamed payload type
//   - Variant: variant name plus its payload
//   - Union: union name, marker method, and ordered variants
package analyze
