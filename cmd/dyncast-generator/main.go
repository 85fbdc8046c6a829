// Command dyncast-generator emits the Castable implementation for every type
// declared with a //dyncast directive or listed in a declaration file.
//
//	dyncast-generator [flags] [packages]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"strings"

	"github.com/tliron/commonlog"

	"dyncast-generator/internal/driver"

	_ "github.com/tliron/commonlog/simple"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes one generator invocation and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("dyncast-generator", flag.ContinueOnError)
	fs.SetOutput(stderr)

	out := fs.String("out", "", "Generated file name (default dyncast_gen.go)")
	decl := fs.String("decl", "", "YAML declaration file")
	configPath := fs.String("config", "", "Settings file (default: search for dyncast.toml)")
	report := fs.String("report", "", "Write a YAML report of the planned views")
	dump := fs.Bool("dump", false, "Dump the plan to stdout")
	verbosity := fs.Int("v", 0, "Log verbosity")
	check := fs.Bool("check", false, "Validate and compare without writing")
	dir := fs.String("dir", "", "Directory to resolve packages from")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: %s [flags] [packages]\n\n", fs.Name())
		fmt.Fprintf(stderr, "Generates DynCast view tables and dispatch methods.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}

	opts := driver.Options{
		Dir:        *dir,
		Patterns:   fs.Args(),
		ConfigPath: *configPath,
		DeclPath:   *decl,
		Output:     *out,
		ReportPath: *report,
		Check:      *check,
	}
	if *dump {
		opts.Dump = stdout
	}

	cfg, err := driver.LoadConfig(opts)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	v := max(*verbosity, cfg.Log.Verbosity)
	var logPath *string
	if cfg.Log.File != "" {
		p := cfg.Path(cfg.Log.File)
		logPath = &p
	}
	commonlog.Configure(v, logPath)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s, err := driver.Run(ctx, opts)
	if s != nil {
		for _, d := range s.Diagnostics.All() {
			fmt.Fprintf(stderr, "%s: %s\n", d.Severity, d)
		}
	}

	switch {
	case errors.Is(err, driver.ErrStale):
		for _, path := range s.Stale {
			fmt.Fprintf(stderr, "stale: %s\n", path)
		}
		return 1
	case errors.Is(err, driver.ErrInvalid):
		codes := s.Diagnostics.Codes()
		slices.Sort(codes)
		fmt.Fprintf(stderr, "%d error(s): %s\n", len(codes), strings.Join(slices.Compact(codes), ", "))
		return 1
	case err != nil:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	for _, path := range s.Written {
		fmt.Fprintln(stdout, path)
	}

	return 0
}
