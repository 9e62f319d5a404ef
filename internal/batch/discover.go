// Package batch applies conversion jobs across directory trees: a best-effort
// recursive walk and a destructive rebuild of train/valid/test dataset splits.
package batch

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// DefaultExts is the extension allowlist used when none is given.
var DefaultExts = []string{"jpg", "jpeg", "png", "bmp", "tif", "tiff"}

// NormalizeExts lower-cases extensions and gives each a leading dot.
// Blank entries are dropped and duplicates removed; the result is sorted.
func NormalizeExts(exts []string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, e := range exts {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || e == "." {
			continue
		}
		if !strings.HasPrefix(e, ".") {
			e = "." + e
		}
		if !seen[e] {
			seen[e] = true
			out = append(out, e)
		}
	}
	sort.Strings(out)
	return out
}

// checkDir returns *DirectoryNotFoundError unless path is an existing directory.
func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &DirectoryNotFoundError{Path: path, Err: err}
	}
	if !info.IsDir() {
		return &DirectoryNotFoundError{Path: path}
	}
	return nil
}

// Discover returns every regular file under root whose extension, compared
// case-insensitively, is in exts. Paths are returned in lexical walk order.
func Discover(root string, exts []string) ([]string, error) {
	if err := checkDir(root); err != nil {
		return nil, err
	}

	allowed := make(map[string]bool)
	for _, e := range NormalizeExts(exts) {
		allowed[e] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !allowed[strings.ToLower(suffix(d.Name()))] {
			return nil
		}
		if !isRegular(path, d) {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// suffix returns the extension of a file name. A leading dot starts a hidden
// name, not an extension, so ".png" has none.
func suffix(name string) string {
	i := strings.LastIndexByte(name, '.')
	if i <= 0 || i == len(name)-1 {
		return ""
	}
	return name[i:]
}

// isRegular follows symlinks so linked images are picked up like plain files.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
