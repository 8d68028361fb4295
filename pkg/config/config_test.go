package config

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	req := require.New(t)
	cfg := Default()
	req.Equal("twitter.pants", cfg.PackagePrefix)
	req.Equal(DefaultHeader, cfg.Header)
	req.Equal(DefaultFutureImports, cfg.FutureImports)
	req.Empty(cfg.SourceRoot)
	req.Empty(cfg.Path)

	// Callers may modify the returned slices freely.
	cfg.Header[0] = "# changed"
	req.NotEqual("# changed", DefaultHeader[0])
}

func TestFind(t *testing.T) {
	req := require.New(t)
	fs := afero.NewMemMapFs()
	req.NoError(afero.WriteFile(fs, "/repo/pyimports.toml", []byte(""), 0o644))
	req.NoError(fs.MkdirAll("/repo/src/python/a", 0o755))
	req.NoError(fs.MkdirAll("/other", 0o755))

	path, ok, err := Find(fs, "/repo/src/python/a")
	req.NoError(err)
	req.True(ok)
	req.Equal("/repo/pyimports.toml", path)

	_, ok, err = Find(fs, "/other")
	req.NoError(err)
	req.False(ok)
}

func TestLoad(t *testing.T) {
	req := require.New(t)
	fs := afero.NewMemMapFs()
	content := `
package_prefix = "acme.tools"
source_root = "src/python"
header = ["# Copyright Acme.", "# All rights reserved."]
extra_std_libs = ["typing"]
extensions = [".py"]
`
	req.NoError(afero.WriteFile(fs, "/repo/pyimports.toml", []byte(content), 0o644))

	cfg, err := Load(fs, "/repo/pyimports.toml")
	req.NoError(err)
	req.Equal("acme.tools", cfg.PackagePrefix)
	req.Equal("/repo/src/python", cfg.SourceRoot)
	req.Equal([]string{"# Copyright Acme.", "# All rights reserved."}, cfg.Header)
	req.Equal(DefaultFutureImports, cfg.FutureImports, "missing keys keep their defaults")
	req.Equal([]string{"typing"}, cfg.ExtraStdLibs)
	req.Equal([]string{".py"}, cfg.Extensions)
	req.Equal("/repo/pyimports.toml", cfg.Path)
}

func TestLoad_errors(t *testing.T) {
	req := require.New(t)
	fs := afero.NewMemMapFs()
	req.NoError(afero.WriteFile(fs, "/bad.toml", []byte("package_prefix = "), 0o644))
	req.NoError(afero.WriteFile(fs, "/unknown.toml", []byte(`prefix = "x"`), 0o644))

	_, err := Load(fs, "/bad.toml")
	req.ErrorContains(err, "failed to parse TOML")

	_, err = Load(fs, "/unknown.toml")
	req.ErrorContains(err, `unknown key "prefix"`)

	_, err = Load(fs, "/missing.toml")
	req.Error(err)
}

func TestDiscover(t *testing.T) {
	req := require.New(t)
	fs := afero.NewMemMapFs()
	req.NoError(afero.WriteFile(fs, "/repo/pyimports.toml", []byte(`package_prefix = "acme"`), 0o644))
	req.NoError(afero.WriteFile(fs, "/repo/src/a.py", []byte("x = 1\n"), 0o644))
	req.NoError(afero.WriteFile(fs, "/elsewhere/b.py", []byte("x = 1\n"), 0o644))

	cfg, err := Discover(fs, "/repo/src/a.py")
	req.NoError(err)
	req.Equal("acme", cfg.PackagePrefix)

	cfg, err = Discover(fs, "/repo/src")
	req.NoError(err)
	req.Equal("acme", cfg.PackagePrefix)

	cfg, err = Discover(fs, "/elsewhere/b.py")
	req.NoError(err)
	req.Equal(Default(), cfg)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"defaults", func(*Config) {}, ""},
		{"blank header line", func(c *Config) { c.Header = []string{"# a", "", "# b"} }, ""},
		{"no future imports", func(c *Config) { c.FutureImports = nil }, ""},
		{"code in header", func(c *Config) { c.Header = []string{"import os"} }, "is not a comment"},
		{"bad future block", func(c *Config) { c.FutureImports = []string{"import __future__"} }, "future_imports must start"},
		{"dotted prefix", func(c *Config) { c.PackagePrefix = "twitter.pants." }, "must not start or end with a dot"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := require.New(t)
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				req.NoError(err)
				return
			}
			req.ErrorContains(err, tt.wantErr)
		})
	}
}
