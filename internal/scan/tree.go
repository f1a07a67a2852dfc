package scan

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// RenderTree renders the retained directory structure as indented lines, one
// per directory and file. It re-walks the repository with the same ignore set
// as the scanner, so the set of files shown always matches the file listing.
func RenderTree(root string, ignore *IgnoreSet) (string, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		depth := 0
		if rel != "." {
			depth = strings.Count(rel, "/") + 1
		}
		if d.IsDir() {
			if rel != "." && ignore.SkipDir(d.Name()) {
				return fs.SkipDir
			}
			b.WriteString(strings.Repeat("    ", depth))
			b.WriteString(d.Name())
			b.WriteString("/\n")
			return nil
		}
		if ignore.SkipFile(rel) {
			return nil
		}
		b.WriteString(strings.Repeat("    ", depth))
		b.WriteString(d.Name())
		b.WriteString("\n")
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}
