// Package discover enumerates a bundle's source files and build
// descriptors. It stands in for the host runtime that would normally
// supply change events: a one-shot build treats everything it finds as
// modified.
package discover

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/bundlekit/cli/internal/core"
	"github.com/bundlekit/cli/internal/errors"
	"github.com/bundlekit/cli/internal/resolve"
)

// Bundle resolves dir into a Bundle, deriving the bundle name from the
// directory base name and the build directory from buildDirName.
func Bundle(dir, buildDirName string) (*core.Bundle, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving bundle path: %w", err)
	}

	info, err := os.Stat(absDir)
	if err != nil {
		return nil, errors.NewNotFoundError("bundle directory not found", absDir,
			"pass the path to an existing bundle directory")
	}
	if !info.IsDir() {
		return nil, errors.NewValidationError("bundle path is not a directory", absDir,
			"point bundlekit at the bundle's root directory")
	}

	return &core.Bundle{
		Name:     filepath.Base(absDir),
		Dir:      absDir,
		BuildDir: filepath.Join(absDir, buildDirName),
	}, nil
}

// Files walks the bundle directory and returns its .js files and its
// build descriptors as two path lists. The build output directory and
// dot-directories are skipped, as is the bundle's own generated
// meta-module.
func Files(bundle *core.Bundle) (modules, descriptors []string, err error) {
	err = filepath.WalkDir(bundle.Dir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if path == bundle.BuildDir || (d.Name() != "." && d.Name()[0] == '.' && path != bundle.Dir) {
				return filepath.SkipDir
			}
			return nil
		}

		switch {
		case d.Name() == resolve.DescriptorName:
			descriptors = append(descriptors, path)
		case filepath.Ext(path) == ".js" && d.Name() != bundle.MetaModuleFile():
			modules = append(modules, path)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walking bundle %s: %w", bundle.Dir, err)
	}
	return modules, descriptors, nil
}
