// Package diagnostic collects structured problems found while scanning
// annotated declarations.
//
// Every failure the tool can report is a generation-time diagnostic, not a
// runtime error: a malformed union shape fails the run before any file is
// written. Each Diagnostic carries a stable code, the union and variant it
// relates to, and the source position of the offending declaration.
package diagnostic
