// Package config handles dyncast.toml project settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// FileName is the settings file looked up from the working directory.
const FileName = "dyncast.toml"

// Config represents a dyncast.toml file.
type Config struct {
	Generate Generate `toml:"generate"`
	Log      Log      `toml:"log"`

	// Dir is the directory containing the settings file (set at load time).
	Dir string `toml:"-"`
}

// Generate configures the generator.
type Generate struct {
	// Output is the name of the generated file in each package.
	Output string `toml:"output"`
	// Packages are go/packages patterns, relative to Dir.
	Packages []string `toml:"packages"`
	// Decl is an optional yaml declaration file, relative to Dir.
	Decl string `toml:"decl"`
	// Comments controls doc comments on generated methods.
	Comments bool `toml:"comments"`
	// Tags are build tags passed to the package loader.
	Tags []string `toml:"tags"`
}

// Log configures commonlog.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the settings used when no dyncast.toml exists.
func Default() *Config {
	return &Config{
		Generate: Generate{
			Output:   "dyncast_gen.go",
			Packages: []string{"."},
			Comments: true,
		},
	}
}

// Load parses a settings file. Omitted keys keep their defaults.
func Load(path string) (*Config, error) {
	c := Default()

	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}

	c.Dir, err = filepath.Abs(filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", path, err)
	}

	return c, nil
}

// FindAndLoad walks up from startDir to find a dyncast.toml file and loads
// it. It returns the defaults, rooted at startDir, when none is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for cur := dir; ; {
		path := filepath.Join(cur, FileName)
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}

		parent := filepath.Dir(cur)
		if parent == cur {
			break
		}

		cur = parent
	}

	c := Default()
	c.Dir = dir

	return c, nil
}

// Path resolves a settings-relative path.
func (c *Config) Path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(c.Dir, p)
}
