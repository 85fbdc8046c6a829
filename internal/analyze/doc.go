// Package analyze loads Go packages and resolves dyncast declarations
// against the type checker.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to find
// annotated type declarations, resolve every view name to an interface and
// check that the pointer to the concrete type implements it.
//
// Key types:
//   - TypeID: package import path + type name
//   - TypeDecl: one declared concrete type with its resolved views
//   - Package: the declarations found in one loaded package
package analyze
