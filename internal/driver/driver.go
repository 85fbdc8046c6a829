// Package driver runs the generator pipeline: settings, declarations,
// analysis, planning, emission.
package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/tliron/commonlog"
	"golang.org/x/sync/errgroup"

	"dyncast-generator/internal/analyze"
	"dyncast-generator/internal/config"
	"dyncast-generator/internal/diagnostic"
	"dyncast-generator/internal/directive"
	"dyncast-generator/internal/gen"
	"dyncast-generator/internal/plan"
)

var log = commonlog.GetLogger("dyncast.driver")

// ErrInvalid is returned when declarations have configuration errors.
var ErrInvalid = errors.New("invalid declarations")

// ErrStale is returned in check mode when a generated file is out of date.
var ErrStale = errors.New("generated files are out of date")

// Options configures one run. Zero values fall back to the settings file.
type Options struct {
	// Dir is the directory the run starts from; empty means the working
	// directory.
	Dir string
	// Patterns are package patterns; empty means the configured ones.
	Patterns []string
	// ConfigPath is an explicit settings file; empty means search upwards
	// from Dir for dyncast.toml.
	ConfigPath string
	// DeclPath is a yaml declaration file.
	DeclPath string
	// Output is the generated file name.
	Output string
	// OutputDir, when set, receives every generated file instead of the
	// package directories.
	OutputDir string
	// ReportPath receives a yaml report of the plan.
	ReportPath string
	// Dump, when set, receives a dump of the plan.
	Dump io.Writer
	// Check validates and compares without writing.
	Check bool
}

// Summary describes what a run did.
type Summary struct {
	Config      *config.Config
	Plan        *plan.Plan
	Diagnostics diagnostic.Diagnostics
	Written     []string
	Stale       []string
}

// LoadConfig resolves the settings a run with opts would use.
func LoadConfig(opts Options) (*config.Config, error) {
	if opts.ConfigPath != "" {
		return config.Load(opts.ConfigPath)
	}

	dir := opts.Dir
	if dir == "" {
		dir = "."
	}

	return config.FindAndLoad(dir)
}

// Run executes the pipeline.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	s := &Summary{Config: cfg}

	output := firstNonEmpty(opts.Output, cfg.Generate.Output)
	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = cfg.Generate.Packages
	}

	var decls []directive.Raw

	if path := firstNonEmpty(opts.DeclPath, cfg.Path(cfg.Generate.Decl)); path != "" {
		decls, err = directive.LoadFile(path)
		if err != nil {
			return nil, err
		}

		log.Infof("loaded %d declarations from %s", len(decls), path)
	}

	dir := firstNonEmpty(opts.Dir, cfg.Dir)

	result, diags, err := analyzeAll(ctx, patterns, analyze.Options{
		Dir:      dir,
		Tags:     cfg.Generate.Tags,
		Comments: true,
		Decls:    decls,
		Output:   output,
	})
	if err != nil {
		return nil, err
	}

	s.Diagnostics = diags
	if diags.HasErrors() {
		return s, ErrInvalid
	}

	s.Plan = plan.Build(result)
	log.Infof("planned %d packages, %d views", len(s.Plan.Packages), s.Plan.ViewCount())

	if opts.ReportPath != "" {
		if err := writeReport(opts.ReportPath, s.Plan); err != nil {
			return s, err
		}
	}

	if opts.Dump != nil {
		plan.Dump(opts.Dump, s.Plan)
	}

	files, err := gen.NewGenerator(gen.GeneratorConfig{
		Filename:         output,
		GenerateComments: cfg.Generate.Comments,
		DebugUnformatted: !opts.Check,
	}).Generate(s.Plan)
	if err != nil {
		return s, err
	}

	if opts.Check {
		s.Stale = staleFiles(files, opts.OutputDir)
		if len(s.Stale) > 0 {
			return s, ErrStale
		}

		return s, nil
	}

	if err := guardHandWritten(files, opts.OutputDir); err != nil {
		return s, err
	}

	if err := gen.WriteFiles(files, opts.OutputDir); err != nil {
		return s, err
	}

	for _, f := range files {
		s.Written = append(s.Written, target(f, opts.OutputDir))
	}

	return s, nil
}

// analyzeAll loads each pattern concurrently and merges the results.
// Declaration-file entries are matched across all patterns.
func analyzeAll(ctx context.Context, patterns []string, opts analyze.Options) (*analyze.Result, diagnostic.Diagnostics, error) {
	var (
		mu     sync.Mutex
		diags  diagnostic.Diagnostics
		result = &analyze.Result{}
		seen   = map[string]bool{}
	)

	fileDecls := opts.Decls
	opts.Decls = nil

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for _, pattern := range patterns {
		g.Go(func() error {
			o := opts
			o.Decls = fileDecls

			r, d, err := analyze.NewAnalyzer(o).Load(ctx, pattern)
			if err != nil {
				return fmt.Errorf("%s: %w", pattern, err)
			}

			mu.Lock()
			defer mu.Unlock()

			for _, p := range r.Packages {
				if seen[p.Path] {
					continue
				}

				seen[p.Path] = true
				result.Packages = append(result.Packages, p)
			}

			diags.Merge(d)

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, diags, err
	}

	slices.SortFunc(result.Packages, func(a, b *analyze.Package) int { return strings.Compare(a.Path, b.Path) })

	return result, reconcile(diags, len(patterns)), nil
}

// reconcile drops diagnostics repeated by overlapping patterns. A
// type_not_found error survives only when every pattern reported it, since a
// declaration file entry need only match one of them.
func reconcile(diags diagnostic.Diagnostics, patterns int) diagnostic.Diagnostics {
	counts := map[string]int{}
	for _, e := range diags.Errors {
		if e.Code == diagnostic.CodeTypeNotFound {
			counts[e.String()]++
		}
	}

	out := diagnostic.Diagnostics{
		Warnings: unique(diags.Warnings),
		Infos:    unique(diags.Infos),
	}

	for _, e := range unique(diags.Errors) {
		if e.Code == diagnostic.CodeTypeNotFound && counts[e.String()] < patterns {
			continue
		}

		out.Errors = append(out.Errors, e)
	}

	return out
}

func unique(ds []diagnostic.Diagnostic) []diagnostic.Diagnostic {
	seen := map[string]bool{}

	var out []diagnostic.Diagnostic
	for _, d := range ds {
		key := d.String()
		if seen[key] {
			continue
		}

		seen[key] = true
		out = append(out, d)
	}

	return out
}

func writeReport(path string, p *plan.Plan) error {
	data, err := plan.ExportYAML(p)
	if err != nil {
		return fmt.Errorf("rendering report: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing report %s: %w", path, err)
	}

	log.Infof("wrote report %s", path)

	return nil
}

func target(f gen.GeneratedFile, outputDir string) string {
	dir := f.Dir
	if outputDir != "" {
		dir = outputDir
	}

	return filepath.Join(dir, f.Filename)
}

func staleFiles(files []gen.GeneratedFile, outputDir string) []string {
	var stale []string

	for _, f := range files {
		path := target(f, outputDir)

		old, err := os.ReadFile(path)
		if err != nil || !bytes.Equal(old, f.Content) {
			stale = append(stale, path)
		}
	}

	return stale
}

// guardHandWritten refuses to overwrite files that lack the generated header.
func guardHandWritten(files []gen.GeneratedFile, outputDir string) error {
	for _, f := range files {
		path := target(f, outputDir)

		ok, err := gen.IsGenerated(path)
		if errors.Is(err, os.ErrNotExist) {
			continue
		}

		if err != nil {
			return err
		}

		if !ok {
			return fmt.Errorf("refusing to overwrite %s: not a generated file", path)
		}
	}

	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}

	return ""
}
