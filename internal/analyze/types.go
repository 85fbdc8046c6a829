package analyze

import (
	"go/types"

	"dyncast-generator/internal/common"
	"dyncast-generator/internal/directive"
	"dyncast-generator/view"
)

// TypeID uniquely identifies a type by its package path and name.
type TypeID struct {
	PkgPath string // e.g., "dyncast-generator/examples/shapes"
	Name    string // e.g., "Square"
}

// String returns a human-readable representation of the TypeID.
func (t TypeID) String() string {
	if t.PkgPath == "" {
		return t.Name
	}

	return t.PkgPath + "." + t.Name
}

// TypeKind is the kind of the underlying type of a declared concrete type.
type TypeKind int

const (
	TypeKindUnknown TypeKind = iota
	TypeKindBasic            // type Celsius float64
	TypeKindStruct           // struct type
	TypeKindSlice            // slice or array
	TypeKindMap              // map type
	TypeKindFunc             // func type
	TypeKindChan             // channel type
	TypeKindPointer          // pointer type
)

// String returns a human-readable representation of the TypeKind.
func (k TypeKind) String() string {
	switch k {
	case TypeKindBasic:
		return "basic"
	case TypeKindStruct:
		return "struct"
	case TypeKindSlice:
		return "slice"
	case TypeKindMap:
		return "map"
	case TypeKindFunc:
		return "func"
	case TypeKindChan:
		return "chan"
	case TypeKindPointer:
		return "pointer"
	default:
		return common.UnknownStr
	}
}

func kindOf(t types.Type) TypeKind {
	switch t.Underlying().(type) {
	case *types.Basic:
		return TypeKindBasic
	case *types.Struct:
		return TypeKindStruct
	case *types.Slice, *types.Array:
		return TypeKindSlice
	case *types.Map:
		return TypeKindMap
	case *types.Signature:
		return TypeKindFunc
	case *types.Chan:
		return TypeKindChan
	case *types.Pointer:
		return TypeKindPointer
	default:
		return TypeKindUnknown
	}
}

// ViewInfo is one declared interface, resolved.
type ViewInfo struct {
	// Name is the view as written in the declaration ("io.Writer").
	Name string
	// ID identifies the interface; PkgPath is empty for predeclared ones.
	ID TypeID
	// Type is the named interface type.
	Type *types.Named
}

// TypeDecl is one declared concrete type with its resolved views.
type TypeDecl struct {
	ID    TypeID
	Kind  TypeKind
	Named *types.Named
	Decl  directive.Decl
	Views []ViewInfo
}

// Markers returns the declared marker set.
func (d *TypeDecl) Markers() view.MarkerSet {
	return d.Decl.Markers
}

// Package holds the declarations found in one loaded package.
type Package struct {
	Path  string // Import path
	Name  string // Package name
	Dir   string // Directory of the package sources
	Types *types.Package
	Decls []*TypeDecl
	// Names are the package-level identifiers outside the generated file.
	Names []string
}

// Result is the outcome of analyzing a set of packages.
type Result struct {
	Packages []*Package
}

// Decls returns every declaration across all packages.
func (r *Result) Decls() []*TypeDecl {
	var out []*TypeDecl
	for _, p := range r.Packages {
		out = append(out, p.Decls...)
	}

	return out
}

// Package returns the package with the given import path, or nil.
func (r *Result) Package(path string) *Package {
	for _, p := range r.Packages {
		if p.Path == path {
			return p
		}
	}

	return nil
}
