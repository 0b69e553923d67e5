package hcl

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// findAllHCLFiles walks all given paths and returns a flat, de-duplicated
// list of .hcl files. Files inside a directory are returned in lexical order.
func findAllHCLFiles(paths []string) ([]string, error) {
	var allFiles []string
	seen := make(map[string]struct{})
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		allFiles = append(allFiles, p)
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("error accessing path %s: %w", path, err)
		}

		if !info.IsDir() {
			add(filepath.Clean(path))
			continue
		}

		var found []string
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(p) == ".hcl" {
				found = append(found, p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("error walking directory %s: %w", path, err)
		}
		sort.Strings(found)
		for _, p := range found {
			add(p)
		}
	}

	if len(allFiles) == 0 {
		return nil, fmt.Errorf("no .hcl files found in %v", paths)
	}
	return allFiles, nil
}
