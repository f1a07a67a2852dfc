package scan

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// IgnoreSet holds the scanner's exclusion rules. The same set must be applied
// by every consumer that traverses the repository (file listing, language
// stats, directory tree), otherwise their outputs diverge.
type IgnoreSet struct {
	dirNames     map[string]struct{}
	fileNames    map[string]struct{}
	filePatterns []string
}

// NewIgnoreSet builds an IgnoreSet from directory names and file rules.
// File rules containing glob characters are matched with doublestar against
// the repository-relative path; plain entries match the base file name.
func NewIgnoreSet(dirs, files []string) *IgnoreSet {
	s := &IgnoreSet{
		dirNames:  make(map[string]struct{}, len(dirs)),
		fileNames: make(map[string]struct{}, len(files)),
	}
	for _, d := range dirs {
		s.dirNames[d] = struct{}{}
	}
	for _, f := range files {
		if containsGlob(f) {
			s.filePatterns = append(s.filePatterns, f)
			continue
		}
		s.fileNames[f] = struct{}{}
	}
	return s
}

// SkipDir reports whether a directory with the given name is excluded from
// descent. The check runs before descending, so excluded subtrees are never
// walked.
func (s *IgnoreSet) SkipDir(name string) bool {
	_, ok := s.dirNames[name]
	return ok
}

// SkipFile reports whether the file at the given repository-relative path is
// excluded from listing, stats and the rendered tree.
func (s *IgnoreSet) SkipFile(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	if _, ok := s.fileNames[path.Base(relPath)]; ok {
		return true
	}
	for _, p := range s.filePatterns {
		if ok, err := doublestar.Match(p, relPath); err == nil && ok {
			return true
		}
	}
	return false
}

func containsGlob(pattern string) bool {
	return strings.ContainsAny(pattern, "*?[{")
}
