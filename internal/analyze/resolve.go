package analyze

import (
	"fmt"
	"go/ast"
	"go/types"
	"path"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"dyncast-generator/internal/diagnostic"
	"dyncast-generator/internal/directive"
	"dyncast-generator/internal/match"
)

// resolve checks a declaration against the type checker. It returns nil
// and records diagnostics when the declaration cannot be generated.
func (a *Analyzer) resolve(
	pkg *packages.Package,
	file *ast.File,
	decl directive.Decl,
	diags *diagnostic.Diagnostics,
) *TypeDecl {
	obj, _ := pkg.Types.Scope().Lookup(decl.TypeName).(*types.TypeName)
	if obj == nil {
		diags.AddError(diagnostic.CodeTypeNotFound,
			fmt.Sprintf("no type %s in package %s", decl.TypeName, pkg.PkgPath), decl.TypeName, decl.Pos)

		return nil
	}

	named, ok := obj.Type().(*types.Named)
	if !ok || obj.IsAlias() {
		diags.AddError(diagnostic.CodeNotNamedType,
			"only defined (non-alias) types can be declared", decl.TypeName, decl.Pos)

		return nil
	}

	if types.IsInterface(named) {
		diags.AddError(diagnostic.CodeNotNamedType,
			"an interface cannot be a concrete type", decl.TypeName, decl.Pos)

		return nil
	}

	if named.TypeParams().Len() > 0 {
		diags.AddError(diagnostic.CodeGenericUnsupported,
			"generic types cannot be declared; declare a non-generic wrapper instead", decl.TypeName, decl.Pos)

		return nil
	}

	td := &TypeDecl{
		ID:    TypeID{PkgPath: pkg.PkgPath, Name: decl.TypeName},
		Kind:  kindOf(named),
		Named: named,
		Decl:  decl,
	}

	ptr := types.NewPointer(named)
	failed := false

	for _, name := range decl.Views {
		v, ok := a.resolveView(pkg, file, name, decl, diags)
		if !ok {
			failed = true
			continue
		}

		iface := v.Type.Underlying().(*types.Interface)
		if !types.Implements(ptr, iface) {
			msg := fmt.Sprintf("*%s does not implement %s", decl.TypeName, name)
			if m, wrongType := types.MissingMethod(ptr, iface, true); m != nil {
				if wrongType {
					msg += fmt.Sprintf(" (wrong type for method %s)", m.Name())
				} else {
					msg += fmt.Sprintf(" (missing method %s)", m.Name())
				}
			}

			diags.AddError(diagnostic.CodeViewNotImplemented, msg, decl.TypeName, decl.Pos)

			failed = true

			continue
		}

		td.Views = append(td.Views, v)
	}

	if failed {
		return nil
	}

	return td
}

// resolveView finds the named interface a view name refers to.
func (a *Analyzer) resolveView(
	pkg *packages.Package,
	file *ast.File,
	name string,
	decl directive.Decl,
	diags *diagnostic.Diagnostics,
) (ViewInfo, bool) {
	var obj types.Object

	qual, local, qualified := strings.Cut(name, ".")
	if qualified {
		imported := importedPackage(pkg.Types, file, qual)
		if imported == nil {
			diags.AddError(diagnostic.CodeViewNotFound,
				fmt.Sprintf("view %s: package %s is not imported", name, qual), decl.TypeName, decl.Pos)

			return ViewInfo{}, false
		}

		obj = imported.Scope().Lookup(local)
		if obj != nil && !obj.Exported() {
			obj = nil
		}

		if obj == nil {
			diags.AddError(diagnostic.CodeViewNotFound,
				fmt.Sprintf("view %s: no exported %s in %s", name, local, imported.Path()),
				decl.TypeName, decl.Pos, suggestTypes(imported.Scope(), local, true)...)

			return ViewInfo{}, false
		}
	} else {
		_, obj = pkg.Types.Scope().LookupParent(name, 0)
		if obj == nil {
			diags.AddError(diagnostic.CodeViewNotFound,
				fmt.Sprintf("view %s is not defined", name),
				decl.TypeName, decl.Pos, suggestTypes(pkg.Types.Scope(), name, false)...)

			return ViewInfo{}, false
		}
	}

	tn, ok := obj.(*types.TypeName)
	if !ok {
		diags.AddError(diagnostic.CodeViewNotInterface,
			fmt.Sprintf("view %s is a %s, not a type", name, objectKind(obj)), decl.TypeName, decl.Pos)

		return ViewInfo{}, false
	}

	named, ok := types.Unalias(tn.Type()).(*types.Named)
	if !ok || !types.IsInterface(named) {
		diags.AddError(diagnostic.CodeViewNotInterface,
			fmt.Sprintf("view %s is not an interface", name), decl.TypeName, decl.Pos)

		return ViewInfo{}, false
	}

	if named.TypeParams().Len() > 0 {
		diags.AddError(diagnostic.CodeGenericUnsupported,
			fmt.Sprintf("view %s is a generic interface", name), decl.TypeName, decl.Pos)

		return ViewInfo{}, false
	}

	if isConstraint(named) {
		diags.AddError(diagnostic.CodeViewNotInterface,
			fmt.Sprintf("view %s is a type constraint, not an interface", name), decl.TypeName, decl.Pos)

		return ViewInfo{}, false
	}

	id := TypeID{Name: named.Obj().Name()}
	if p := named.Obj().Pkg(); p != nil {
		id.PkgPath = p.Path()
	}

	return ViewInfo{Name: name, ID: id, Type: named}, true
}

// importedPackage finds the package a qualifier refers to: first through
// the declaring file's imports (honoring renames), then through any import
// of the package.
func importedPackage(pkg *types.Package, file *ast.File, qual string) *types.Package {
	byPath := map[string]*types.Package{}
	for _, imp := range pkg.Imports() {
		byPath[imp.Path()] = imp
	}

	if file != nil {
		for _, spec := range file.Imports {
			p, err := strconv.Unquote(spec.Path.Value)
			if err != nil {
				continue
			}

			imp := byPath[p]
			if imp == nil {
				continue
			}

			name := imp.Name()
			if spec.Name != nil {
				name = spec.Name.Name
			}

			if name == qual {
				return imp
			}
		}
	}

	for _, imp := range pkg.Imports() {
		if imp.Name() == qual || path.Base(imp.Path()) == qual {
			return imp
		}
	}

	return nil
}

func isConstraint(named *types.Named) bool {
	iface, ok := named.Underlying().(*types.Interface)
	return ok && !iface.IsMethodSet()
}

func objectKind(obj types.Object) string {
	switch obj.(type) {
	case *types.Var:
		return "variable"
	case *types.Const:
		return "constant"
	case *types.Func:
		return "function"
	case *types.PkgName:
		return "package"
	default:
		return "object"
	}
}

// suggestTypes proposes interface names in scope close to name.
func suggestTypes(scope *types.Scope, name string, exportedOnly bool) []string {
	var known []string

	for _, n := range scope.Names() {
		tn, ok := scope.Lookup(n).(*types.TypeName)
		if !ok || (exportedOnly && !tn.Exported()) || !types.IsInterface(tn.Type()) {
			continue
		}

		known = append(known, n)
	}

	return match.Suggest(name, known, 2)
}
