package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"text/template"
	"unicode"

	"github.com/tliron/commonlog"

	"dyncast-generator/internal/plan"
	"dyncast-generator/view"
)

var log = commonlog.GetLogger("dyncast.gen")

// Header is the first line of every generated file.
const Header = "// Code generated by dyncast-generator. DO NOT EDIT."

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Filename is the name of the file generated in each package.
	Filename string
	// GenerateComments enables doc comments on generated methods.
	GenerateComments bool
	// DebugUnformatted writes source that fails to format to a
	// .unformatted.go sidecar next to the intended output.
	DebugUnformatted bool
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Filename:         "dyncast_gen.go",
		GenerateComments: true,
		DebugUnformatted: true,
	}
}

// Generator generates Go code from a plan.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.Filename == "" {
		config.Filename = DefaultGeneratorConfig().Filename
	}

	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Dir is the directory of the package the file belongs to.
	Dir string
	// Filename is the name of the file (e.g., "dyncast_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// Generate generates one file per planned package.
func (g *Generator) Generate(p *plan.Plan) ([]GeneratedFile, error) {
	files := make([]GeneratedFile, 0, len(p.Packages))

	for _, pkg := range p.Packages {
		file, err := g.GeneratePackage(pkg)
		if err != nil {
			return nil, fmt.Errorf("generating %s: %w", pkg.Path, err)
		}

		files = append(files, *file)
	}

	return files, nil
}

// GeneratePackage generates the file of one package.
func (g *Generator) GeneratePackage(pkg *plan.PackagePlan) (*GeneratedFile, error) {
	data := g.buildFileData(pkg)

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing template: %w", err)
	}

	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		if g.config.DebugUnformatted && pkg.Dir != "" {
			if derr := writeDebugUnformatted(pkg.Dir, g.config.Filename, buf.Bytes()); derr != nil {
				log.Warningf("writing unformatted sidecar: %s", derr)
			}
		}

		return &GeneratedFile{
			Dir:      pkg.Dir,
			Filename: g.config.Filename,
			Content:  buf.Bytes(),
		}, fmt.Errorf("formatting code: %w", err)
	}

	log.Debugf("generated %s: %d types", pkg.Path, len(pkg.Types))

	return &GeneratedFile{
		Dir:      pkg.Dir,
		Filename: g.config.Filename,
		Content:  formatted,
	}, nil
}

// fileData holds all data needed for the file template.
type fileData struct {
	PackageName string
	Comments    bool
	Imports     []importSpec
	Types       []typeData

	// Qualifiers of the runtime packages.
	Dyncast string
	Own     string
	View    string
}

// typeData holds the data of one declared type.
type typeData struct {
	Name         string
	Recv         string
	Table        string
	Assertions   []string
	Rows         []string
	Markers      string
	SharedAtomic bool
}

func (g *Generator) buildFileData(pkg *plan.PackagePlan) *fileData {
	im := newImporter(pkg.Path, pkg.Names)

	data := &fileData{
		PackageName: pkg.Name,
		Comments:    g.config.GenerateComments,
		Dyncast:     im.byPath[dyncastPath],
		Own:         im.byPath[ownPath],
		View:        im.byPath[viewPath],
	}

	// Qualify every interface first so receivers avoid import names.
	for _, t := range pkg.Types {
		for _, iface := range t.Interfaces() {
			im.qualify(iface)
		}
	}

	// Table names avoid every package-level name and each other.
	tables := im.taken()
	for _, t := range pkg.Types {
		table := newStem("dyncastViews"+exportedName(t.Name()), tables).Claim()
		data.Types = append(data.Types, buildTypeData(t, table, im))
	}

	data.Imports = im.specs()

	return data
}

func buildTypeData(t *plan.TypePlan, table string, im *importer) typeData {
	name := t.Name()
	ptr := "*" + name
	dc := im.byPath[dyncastPath]
	vq := im.byPath[viewPath]

	td := typeData{
		Name:         name,
		Recv:         receiverName(name, im.taken()),
		Table:        table,
		Assertions:   []string{dc + ".Castable"},
		Markers:      t.Decl.Markers().String(),
		SharedAtomic: t.SharedAtomic,
	}

	for _, iface := range t.Interfaces() {
		td.Assertions = append(td.Assertions, im.qualify(iface))
	}

	for _, v := range t.Views {
		var target string

		switch v.Kind {
		case plan.ViewConcrete:
			td.Rows = append(td.Rows, fmt.Sprintf("%s.Self[%s]()", dc, ptr))
			continue
		case plan.ViewBase:
			target = "any"
		case plan.ViewCastable:
			target = dc + ".Castable"
		case plan.ViewInterface:
			target = im.qualify(v.Interface)
		}

		td.Rows = append(td.Rows, fmt.Sprintf("%s.View[%s, %s](%s)", dc, ptr, target, markerExpr(vq, v.Markers)))
	}

	return td
}

// markerExpr renders a marker set as an expression of the view package,
// imported as q.
func markerExpr(q string, ms view.MarkerSet) string {
	if ms == view.None {
		return q + ".None"
	}

	parts := make([]string, 0, ms.Len())
	for _, m := range ms.Markers() {
		parts = append(parts, q+"."+m.String())
	}

	return q + ".Set(" + strings.Join(parts, ", ") + ")"
}

// reservedParams are parameter names used by the generated methods.
var reservedParams = []string{"src", "to"}

func receiverName(typeName string, taken map[string]struct{}) string {
	for _, p := range reservedParams {
		taken[p] = struct{}{}
	}

	first := []rune(typeName)[0]
	candidate := string(unicode.ToLower(first))
	if candidate == "_" || !unicode.IsLetter(first) {
		candidate = "x"
	}

	return newStem(candidate, taken).Claim()
}

func exportedName(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])

	return string(r)
}

var fileTemplate = template.Must(template.New("dyncast").Parse(Header + `

package {{.PackageName}}

import (
{{range .Imports}}	{{if .Alias}}{{.Alias}} {{end}}"{{.Path}}"
{{end}})
{{range .Types}}
var (
{{- $name := .Name}}
{{range .Assertions}}	_ {{.}} = (*{{$name}})(nil)
{{end}})

{{if $.Comments}}// {{.Table}} lists every view of {{.Name}} (markers: {{.Markers}}).
{{end}}var {{.Table}} = {{$.Dyncast}}.NewTable(
{{range .Rows}}	{{.}},
{{end}})

{{if $.Comments}}// CanCast reports whether {{.Name}} can be viewed as to.
{{end}}func ({{.Recv}} *{{.Name}}) CanCast(to {{$.View}}.ID) bool {
	return {{.Table}}.Contains(to)
}

{{if $.Comments}}// CastableViews lists every view {{.Name}} can be cast to.
{{end}}func ({{.Recv}} *{{.Name}}) CastableViews() []{{$.View}}.ID {
	return {{.Table}}.Views()
}

func ({{.Recv}} *{{.Name}}) DispatchRef(to {{$.View}}.ID) *{{$.Dyncast}}.RefResult {
	return {{.Table}}.Ref({{.Recv}}, to)
}

func ({{.Recv}} *{{.Name}}) DispatchMut(to {{$.View}}.ID) *{{$.Dyncast}}.MutResult {
	return {{.Table}}.Mut({{.Recv}}, to)
}

func ({{.Recv}} *{{.Name}}) DispatchBox(src *{{$.Own}}.Box[any], to {{$.View}}.ID) *{{$.Dyncast}}.BoxResult {
	return {{.Table}}.Box(src, to)
}

func ({{.Recv}} *{{.Name}}) DispatchRc(src *{{$.Own}}.Rc[any], to {{$.View}}.ID) *{{$.Dyncast}}.RcResult {
	return {{.Table}}.Rc(src, to)
}
{{if .SharedAtomic}}
func ({{.Recv}} *{{.Name}}) DispatchArc(src *{{$.Own}}.Arc[any], to {{$.View}}.ID) *{{$.Dyncast}}.ArcResult {
	return {{.Table}}.Arc(src, to)
}
{{else}}
{{if $.Comments}}// DispatchArc returns nil: {{.Name}} does not declare both transfer and concurrent.
{{end}}func ({{.Recv}} *{{.Name}}) DispatchArc(*{{$.Own}}.Arc[any], {{$.View}}.ID) *{{$.Dyncast}}.ArcResult {
	return nil
}
{{end}}{{end}}`))
