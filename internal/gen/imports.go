package gen

import (
	"slices"
	"strings"

	"dyncast-generator/internal/analyze"
	"dyncast-generator/internal/common"
	"dyncast-generator/internal/plan"
)

// Runtime packages referenced by every generated file.
const (
	dyncastPath = plan.CastablePkg
	ownPath     = "dyncast-generator/own"
	viewPath    = "dyncast-generator/view"
)

type importSpec struct {
	Alias string
	Path  string
}

// importer assigns a qualifier to every package a generated file refers to.
type importer struct {
	self     string
	byPath   map[string]string // path -> qualifier
	pkgNames map[string]string // path -> declared package name
	names    map[string]struct{}
}

// newImporter creates an importer for the package self. Qualifiers avoid the
// package-level names in scope.
func newImporter(self string, scope []string) *importer {
	im := &importer{
		self:     self,
		byPath:   map[string]string{},
		pkgNames: map[string]string{},
		names:    map[string]struct{}{},
	}

	for _, name := range scope {
		im.names[name] = struct{}{}
	}

	for _, p := range []string{dyncastPath, ownPath, viewPath} {
		im.qualifier(p, common.PkgAlias(p))
	}

	return im
}

// qualifier returns the name to prefix identifiers of pkgPath with, or ""
// for the generated package itself and predeclared identifiers.
func (im *importer) qualifier(pkgPath, pkgName string) string {
	if pkgPath == "" || pkgPath == im.self {
		return ""
	}

	if q, ok := im.byPath[pkgPath]; ok {
		return q
	}

	if pkgName == "" {
		pkgName = common.PkgAlias(pkgPath)
	}

	q := newStem(pkgName, im.names).Claim()
	im.byPath[pkgPath] = q
	im.pkgNames[pkgPath] = pkgName

	return q
}

// qualify renders a resolved view's type name for the generated file.
func (im *importer) qualify(v *analyze.ViewInfo) string {
	pkgName := ""
	if v.Type != nil && v.Type.Obj().Pkg() != nil {
		pkgName = v.Type.Obj().Pkg().Name()
	}

	if q := im.qualifier(v.ID.PkgPath, pkgName); q != "" {
		return q + "." + v.ID.Name
	}

	return v.ID.Name
}

// taken returns the qualifiers in use, for collision checks on other names.
func (im *importer) taken() map[string]struct{} {
	out := make(map[string]struct{}, len(im.names))
	for n := range im.names {
		out[n] = struct{}{}
	}

	return out
}

// specs returns the imports sorted by path, aliased where the qualifier
// differs from the package name.
func (im *importer) specs() []importSpec {
	out := make([]importSpec, 0, len(im.byPath))

	for path, q := range im.byPath {
		spec := importSpec{Path: path}
		if q != im.pkgNames[path] {
			spec.Alias = q
		}

		out = append(out, spec)
	}

	slices.SortFunc(out, func(a, b importSpec) int { return strings.Compare(a.Path, b.Path) })

	return out
}
