package plan

import (
	"strings"

	"dyncast-generator/internal/analyze"
	"dyncast-generator/internal/common"
	"dyncast-generator/view"
)

// CastablePkg and CastableName identify the generic capability interface.
const (
	CastablePkg  = "dyncast-generator/dyncast"
	CastableName = "Castable"
)

// ViewKind tells which kind of type a view targets.
type ViewKind int

const (
	ViewConcrete  ViewKind = iota // the declared type itself
	ViewBase                      // any
	ViewCastable                  // dyncast.Castable
	ViewInterface                 // a declared interface
)

func (k ViewKind) String() string {
	switch k {
	case ViewConcrete:
		return "concrete"
	case ViewBase:
		return "base"
	case ViewCastable:
		return "castable"
	case ViewInterface:
		return "interface"
	default:
		return common.UnknownStr
	}
}

// View is one element of a view set.
type View struct {
	Kind ViewKind
	// Interface is set for ViewInterface.
	Interface *analyze.ViewInfo
	Markers   view.MarkerSet
}

// Target names the viewed type the way a reader would write it.
func (v View) Target(concrete string) string {
	switch v.Kind {
	case ViewConcrete:
		return "*" + concrete
	case ViewBase:
		return "any"
	case ViewCastable:
		return "dyncast." + CastableName
	default:
		return v.Interface.Name
	}
}

// Label renders the view as "io.Writer+transfer+concurrent".
func (v View) Label(concrete string) string {
	var sb strings.Builder

	sb.WriteString(v.Target(concrete))
	for _, m := range v.Markers.Markers() {
		sb.WriteString("+")
		sb.WriteString(m.Name())
	}

	return sb.String()
}

// TypePlan is the generation plan of one declared type.
type TypePlan struct {
	Decl  *analyze.TypeDecl
	Views []View
	// SharedAtomic is set when the markers include transfer and concurrent;
	// only then can the type be cast through atomically shared handles.
	SharedAtomic bool
}

// Name returns the declared type name.
func (t *TypePlan) Name() string {
	return t.Decl.ID.Name
}

// Interfaces returns the distinct declared interfaces, in order.
func (t *TypePlan) Interfaces() []*analyze.ViewInfo {
	var out []*analyze.ViewInfo
	for _, v := range t.Views {
		if v.Kind == ViewInterface && v.Markers == view.None {
			out = append(out, v.Interface)
		}
	}

	return out
}

// PackagePlan groups the plans of the types declared in one package.
type PackagePlan struct {
	Path  string
	Name  string
	Dir   string
	Types []*TypePlan
	// Names are package-level identifiers generated names must avoid.
	Names []string
}

// Plan is the complete generation plan.
type Plan struct {
	Packages []*PackagePlan
}

// ViewCount returns the total number of views across all types.
func (p *Plan) ViewCount() int {
	n := 0
	for _, pkg := range p.Packages {
		for _, t := range pkg.Types {
			n += len(t.Views)
		}
	}

	return n
}
