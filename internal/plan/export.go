package plan

import (
	"io"

	"github.com/davecgh/go-spew/spew"
	"gopkg.in/yaml.v3"
)

// Report is the human-reviewable form of a plan.
type Report struct {
	Version  string          `yaml:"version"`
	Packages []PackageReport `yaml:"packages"`
}

// PackageReport lists the planned types of one package.
type PackageReport struct {
	Path  string       `yaml:"path"`
	Types []TypeReport `yaml:"types"`
}

// TypeReport describes the view set of one type.
type TypeReport struct {
	Type         string   `yaml:"type"`
	Kind         string   `yaml:"kind"`
	Source       string   `yaml:"source"`
	Pos          string   `yaml:"pos,omitempty"`
	Interfaces   []string `yaml:"interfaces"`
	Markers      []string `yaml:"markers"`
	SharedAtomic bool     `yaml:"shared_atomic"`
	Views        []string `yaml:"views"`
}

// ExportReport converts a plan into its report form.
func ExportReport(p *Plan) *Report {
	r := &Report{Version: "1", Packages: []PackageReport{}}

	for _, pkg := range p.Packages {
		pr := PackageReport{Path: pkg.Path, Types: []TypeReport{}}

		for _, t := range pkg.Types {
			tr := TypeReport{
				Type:         t.Name(),
				Kind:         t.Decl.Kind.String(),
				Source:       t.Decl.Decl.Source.String(),
				Pos:          t.Decl.Decl.Pos,
				Interfaces:   []string{},
				Markers:      []string{},
				SharedAtomic: t.SharedAtomic,
				Views:        make([]string, 0, len(t.Views)),
			}

			for _, iface := range t.Interfaces() {
				tr.Interfaces = append(tr.Interfaces, iface.ID.String())
			}

			for _, m := range t.Decl.Markers().Markers() {
				tr.Markers = append(tr.Markers, m.Name())
			}

			for _, v := range t.Views {
				tr.Views = append(tr.Views, v.Label(t.Name()))
			}

			pr.Types = append(pr.Types, tr)
		}

		r.Packages = append(r.Packages, pr)
	}

	return r
}

// ExportYAML renders the plan report as YAML.
func ExportYAML(p *Plan) ([]byte, error) {
	return yaml.Marshal(ExportReport(p))
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

// Dump writes a spew dump of the plan report to w.
func Dump(w io.Writer, p *Plan) {
	dumpConfig.Fdump(w, ExportReport(p))
}
