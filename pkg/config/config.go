package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

// FileName is the config file looked up from the processed path upwards.
const FileName = "pyimports.toml"

// DefaultPackagePrefix is the dotted prefix of the internal packages.
const DefaultPackagePrefix = "twitter.pants"

// DefaultHeader replaces whatever comment lines a file starts with.
var DefaultHeader = []string{
	"# Copyright Pants, Inc. See LICENSE file for license details.",
}

// DefaultFutureImports replaces any from __future__ import in a file.
var DefaultFutureImports = []string{
	`from __future__ import nested_scopes, generators, division, absolute_import, with_statement, \`,
	`                       print_function, unicode_literals`,
}

// Config holds the settings of one run.
type Config struct {
	PackagePrefix string   `toml:"package_prefix"`
	SourceRoot    string   `toml:"source_root"`
	Header        []string `toml:"header"`
	FutureImports []string `toml:"future_imports"`
	ExtraStdLibs  []string `toml:"extra_std_libs"`
	Extensions    []string `toml:"extensions"`

	// Path of the file the values were read from, empty for defaults.
	Path string `toml:"-"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		PackagePrefix: DefaultPackagePrefix,
		Header:        append([]string(nil), DefaultHeader...),
		FutureImports: append([]string(nil), DefaultFutureImports...),
	}
}

// Find walks from startDir up to the filesystem root looking for FileName.
func Find(fs afero.Fs, startDir string) (string, bool, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, FileName)
		if _, err := fs.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// Load reads path on top of the defaults. Keys missing from the file keep
// their default value. A relative source_root is resolved against the
// directory holding the file.
func Load(fs afero.Fs, path string) (Config, error) {
	cfg := Default()
	content, err := afero.ReadFile(fs, path)
	if err != nil {
		return Config{}, err
	}
	meta, err := toml.Decode(string(content), &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if cfg.SourceRoot != "" && !filepath.IsAbs(cfg.SourceRoot) {
		cfg.SourceRoot = filepath.Join(filepath.Dir(path), cfg.SourceRoot)
	}
	cfg.Path = path
	return cfg, nil
}

// Discover loads the config file nearest to target, or the defaults when
// there is none. target may be a file or a directory.
func Discover(fs afero.Fs, target string) (Config, error) {
	startDir := target
	if info, err := fs.Stat(target); err == nil && !info.IsDir() {
		startDir = filepath.Dir(target)
	}
	path, ok, err := Find(fs, startDir)
	if err != nil {
		return Config{}, err
	}
	if !ok {
		return Default(), nil
	}
	return Load(fs, path)
}

// Validate checks that the canonical header and pragma read back as such, so
// that rewriting a rewritten file changes nothing.
func (c Config) Validate() error {
	for _, line := range c.Header {
		if line != "" && !strings.HasPrefix(line, "#") {
			return fmt.Errorf("header line %q is not a comment", line)
		}
	}
	if len(c.FutureImports) > 0 && !strings.HasPrefix(c.FutureImports[0], "from __future__ import ") {
		return fmt.Errorf("future_imports must start with %q", "from __future__ import ")
	}
	if strings.HasPrefix(c.PackagePrefix, ".") || strings.HasSuffix(c.PackagePrefix, ".") {
		return fmt.Errorf("package prefix %q must not start or end with a dot", c.PackagePrefix)
	}
	return nil
}
