package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// HasExtension reports whether filename ends in one of exts. An empty exts
// matches every file.
func HasExtension(filename string, exts []string) bool {
	if len(exts) == 0 {
		return true
	}
	ext := filepath.Ext(filename)
	for _, want := range exts {
		if want == "" {
			continue
		}
		if !strings.HasPrefix(want, ".") {
			want = "." + want
		}
		if ext == want {
			return true
		}
	}
	return false
}

// FindSourceFiles returns the files to process under root. A regular file is
// returned as is. A directory is listed once and every entry is visited in
// turn, directories recursively. Only files found while walking are filtered
// by exts. Symlinks are followed without cycle detection.
func FindSourceFiles(fs afero.Fs, root string, exts []string) ([]string, error) {
	info, err := fs.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{root}, nil
	}

	var files []string
	var walk func(dir string) error
	walk = func(dir string) error {
		entries, err := afero.ReadDir(fs, dir)
		if err != nil {
			return fmt.Errorf("%s: %w", dir, err)
		}
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())
			info, err := fs.Stat(path)
			if err != nil {
				return err
			}
			if info.IsDir() {
				if err := walk(path); err != nil {
					return err
				}
				continue
			}
			if info.Mode().IsRegular() && HasExtension(path, exts) {
				files = append(files, path)
			}
		}
		return nil
	}

	if err := walk(root); err != nil {
		return nil, err
	}
	return files, nil
}

// IsDirectory checks if the given path is a directory
func IsDirectory(fs afero.Fs, path string) (bool, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// AtomicWriteFile replaces path with data. The content goes to a temporary
// sibling first and is renamed over path, so readers see either the old or
// the new file. The original file mode is kept.
func AtomicWriteFile(fs afero.Fs, path string, data []byte) (err error) {
	mode := os.FileMode(0o644)
	if info, statErr := fs.Stat(path); statErr == nil {
		mode = info.Mode().Perm()
	} else if !os.IsNotExist(statErr) {
		return statErr
	}

	tmp, err := afero.TempFile(fs, filepath.Dir(path), "."+filepath.Base(path)+".pig-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = fs.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	if err = fs.Chmod(tmpName, mode); err != nil {
		return err
	}
	return fs.Rename(tmpName, path)
}
