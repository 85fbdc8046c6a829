package analyze

import (
	"context"
	"fmt"
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tliron/commonlog"
	"golang.org/x/tools/go/packages"

	"dyncast-generator/internal/diagnostic"
	"dyncast-generator/internal/directive"
)

var log = commonlog.GetLogger("dyncast.analyze")

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedCompiledGoFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Options configures an Analyzer.
type Options struct {
	// Dir is the directory patterns are resolved from; empty means the
	// working directory.
	Dir string
	// Tags are build tags passed to the build system.
	Tags []string
	// Comments enables //dyncast comment directives.
	Comments bool
	// Decls are declarations read from a yaml file. A declaration names a
	// type either by its bare name or as "import/path.Name".
	Decls []directive.Raw
	// Output is the generated file name. Type errors reported inside it are
	// ignored, since it may be stale.
	Output string
}

// Analyzer loads Go packages and resolves the dyncast declarations in them.
type Analyzer struct {
	opts Options
	fset *token.FileSet
}

// NewAnalyzer creates a new Analyzer.
func NewAnalyzer(opts Options) *Analyzer {
	return &Analyzer{opts: opts, fset: token.NewFileSet()}
}

// Load loads the packages matching patterns and resolves their declarations.
// Configuration problems are returned as diagnostics; the error is reserved
// for packages that cannot be loaded at all.
func (a *Analyzer) Load(ctx context.Context, patterns ...string) (*Result, diagnostic.Diagnostics, error) {
	var diags diagnostic.Diagnostics

	cfg := &packages.Config{
		Context: ctx,
		Mode:    LoadMode,
		Dir:     a.opts.Dir,
		Fset:    a.fset,
	}
	if len(a.opts.Tags) > 0 {
		cfg.BuildFlags = []string{"-tags=" + strings.Join(a.opts.Tags, ",")}
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, diags, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error
	for _, pkg := range pkgs {
		for _, e := range pkg.Errors {
			if a.inOutput(e.Pos) {
				log.Debugf("ignoring error in generated file: %s", e)
				continue
			}

			errs = append(errs, e)
		}
	}

	if len(errs) > 0 {
		return nil, diags, fmt.Errorf("package errors: %v", errs)
	}

	result := &Result{}
	matched := make([]bool, len(a.opts.Decls))

	for _, pkg := range pkgs {
		p, d := a.processPackage(pkg, matched)
		diags.Merge(d)

		log.Debugf("package %s: %d declared types", p.Path, len(p.Decls))
		result.Packages = append(result.Packages, p)
	}

	for i, raw := range a.opts.Decls {
		if !matched[i] {
			diags.AddError(diagnostic.CodeTypeNotFound,
				"no loaded package defines this type", raw.TypeName, raw.Pos)
		}
	}

	slices.SortFunc(result.Packages, func(x, y *Package) int { return strings.Compare(x.Path, y.Path) })

	return result, diags, nil
}

// inOutput reports whether an error position lies in the generated file.
func (a *Analyzer) inOutput(pos string) bool {
	if a.opts.Output == "" || pos == "" {
		return false
	}

	file, _, _ := strings.Cut(pos, ":")

	return filepath.Base(file) == a.opts.Output
}

// processPackage collects and resolves the declarations of one package.
// matched records which file declarations found their type here.
func (a *Analyzer) processPackage(pkg *packages.Package, matched []bool) (*Package, diagnostic.Diagnostics) {
	var diags diagnostic.Diagnostics

	p := &Package{
		Path:  pkg.PkgPath,
		Name:  pkg.Name,
		Types: pkg.Types,
	}

	if len(pkg.GoFiles) > 0 {
		p.Dir = filepath.Dir(pkg.GoFiles[0])
	}

	p.Names = a.scopeNames(pkg.Types)

	fileOf := map[string]*ast.File{}
	var comments []directive.Raw

	for _, f := range pkg.Syntax {
		name := filepath.Base(a.fset.Position(f.Package).Filename)
		if name == a.opts.Output {
			continue
		}

		for _, spec := range typeSpecs(f) {
			fileOf[spec.Name.Name] = f

			if !a.opts.Comments {
				continue
			}

			if raw, ok := directive.ParseComments(spec.Name.Name, spec.doc, a.position); ok {
				comments = append(comments, raw)
			}
		}
	}

	var fromFile []directive.Raw

	for i, raw := range a.opts.Decls {
		name, ok := a.localName(pkg, raw.TypeName)
		if !ok {
			continue
		}

		matched[i] = true
		raw.TypeName = name
		fromFile = append(fromFile, raw)
	}

	decls, d := directive.Merge(comments, fromFile)
	diags.Merge(d)

	for _, decl := range decls {
		td := a.resolve(pkg, fileOf[decl.TypeName], decl, &diags)
		if td != nil {
			p.Decls = append(p.Decls, td)
		}
	}

	slices.SortFunc(p.Decls, func(x, y *TypeDecl) int { return strings.Compare(x.ID.Name, y.ID.Name) })

	return p, diags
}

// scopeNames lists the package-level identifiers, leaving out the ones the
// generated file declares.
func (a *Analyzer) scopeNames(pkg *types.Package) []string {
	if pkg == nil {
		return nil
	}

	scope := pkg.Scope()

	var names []string
	for _, name := range scope.Names() {
		pos := a.fset.Position(scope.Lookup(name).Pos())
		if a.opts.Output != "" && filepath.Base(pos.Filename) == a.opts.Output {
			continue
		}

		names = append(names, name)
	}

	return names
}

// localName maps a file declaration's type name to a name in pkg's scope.
func (a *Analyzer) localName(pkg *packages.Package, typeName string) (string, bool) {
	name := typeName
	if i := strings.LastIndex(typeName, "."); i >= 0 {
		if typeName[:i] != pkg.PkgPath {
			return "", false
		}

		name = typeName[i+1:]
	}

	if pkg.Types == nil || pkg.Types.Scope().Lookup(name) == nil {
		return "", false
	}

	return name, true
}

func (a *Analyzer) position(pos token.Pos) string {
	p := a.fset.Position(pos)
	if !p.IsValid() {
		return ""
	}

	return fmt.Sprintf("%s:%d", filepath.Base(p.Filename), p.Line)
}

type docSpec struct {
	*ast.TypeSpec
	doc *ast.CommentGroup
}

// typeSpecs lists the type specs of a file with the doc comment that
// applies to each: the spec's own, or the declaration's for an ungrouped
// "type X ..." declaration.
func typeSpecs(f *ast.File) []docSpec {
	var out []docSpec

	for _, d := range f.Decls {
		gd, ok := d.(*ast.GenDecl)
		if !ok || gd.Tok != token.TYPE {
			continue
		}

		for _, s := range gd.Specs {
			ts := s.(*ast.TypeSpec)

			doc := ts.Doc
			if doc == nil && !gd.Lparen.IsValid() {
				doc = gd.Doc
			}

			out = append(out, docSpec{TypeSpec: ts, doc: doc})
		}
	}

	return out
}
