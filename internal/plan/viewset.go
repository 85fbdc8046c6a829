package plan

import (
	"dyncast-generator/internal/analyze"
	"dyncast-generator/view"
)

// ViewSetSize is the number of views of a type declaring n distinct
// interfaces and m markers.
func ViewSetSize(n, m int) int {
	return 1 + (n+2)*(1<<m)
}

// BuildViewSet computes the view set of one declaration. Interfaces that
// resolve to the same type, or to a base view, are listed once.
func BuildViewSet(decl *analyze.TypeDecl) []View {
	subsets := decl.Markers().Subsets()

	bases := []View{{Kind: ViewBase}, {Kind: ViewCastable}}
	seen := map[analyze.TypeID]bool{
		{PkgPath: CastablePkg, Name: CastableName}: true,
	}

	for i := range decl.Views {
		v := &decl.Views[i]
		if seen[v.ID] {
			continue
		}

		seen[v.ID] = true
		bases = append(bases, View{Kind: ViewInterface, Interface: v})
	}

	out := make([]View, 0, 1+len(bases)*len(subsets))
	out = append(out, View{Kind: ViewConcrete, Markers: view.None})

	for _, base := range bases {
		for _, ms := range subsets {
			base.Markers = ms
			out = append(out, base)
		}
	}

	return out
}

// Build plans every declaration of an analysis result. Packages without
// declarations are omitted.
func Build(result *analyze.Result) *Plan {
	p := &Plan{}

	for _, pkg := range result.Packages {
		if len(pkg.Decls) == 0 {
			continue
		}

		pp := &PackagePlan{Path: pkg.Path, Name: pkg.Name, Dir: pkg.Dir, Names: pkg.Names}
		for _, decl := range pkg.Decls {
			pp.Types = append(pp.Types, &TypePlan{
				Decl:         decl,
				Views:        BuildViewSet(decl),
				SharedAtomic: decl.Markers().Contains(view.SharedAtomic),
			})
		}

		p.Packages = append(p.Packages, pp)
	}

	return p
}
