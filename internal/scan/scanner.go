package scan

import (
	"bytes"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// File is one scanned file descriptor. Analysis is written at most once by
// the analyzer after scanning; every other field is set by the scanner and
// immutable afterwards.
type File struct {
	Path       string // repository-relative, slash-separated
	Extension  string // lowercase, with leading dot
	Language   string
	Content    string
	HasContent bool   // false when the file was unreadable or binary
	Analysis   string // empty until the analyzer runs
}

// Commit is the last-commit snapshot. All fields are empty when the
// repository has no usable history.
type Commit struct {
	Hash    string
	Message string
	Author  string
	Date    string
}

// Metadata is the aggregate snapshot of one repository at scan time.
type Metadata struct {
	Name          string
	RemoteURL     string
	LastCommit    Commit
	LanguageStats map[string]int
	Files         []File
}

// Languages returns the distinct classified languages present in the stats,
// sorted by descending file count.
func (m *Metadata) Languages() []string {
	out := make([]string, 0, len(m.LanguageStats))
	for lang := range m.LanguageStats {
		out = append(out, lang)
	}
	sort.Slice(out, func(i, j int) bool {
		if m.LanguageStats[out[i]] != m.LanguageStats[out[j]] {
			return m.LanguageStats[out[i]] > m.LanguageStats[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// Scanner walks a source tree and produces repository metadata.
type Scanner struct {
	root   string
	table  Table
	ignore *IgnoreSet
}

// NewScanner builds a scanner for the given root directory. The
// classification table and ignore set are injected so traversal behavior is
// fully determined by the caller.
func NewScanner(root string, table Table, ignore *IgnoreSet) *Scanner {
	return &Scanner{root: root, table: table, ignore: ignore}
}

// Scan traverses the root and returns the repository snapshot. Only a failure
// to read the tree itself is an error; a single unreadable file never aborts
// the scan.
func (s *Scanner) Scan() (*Metadata, error) {
	if info, err := os.Stat(s.root); err != nil {
		return nil, fmt.Errorf("repository root: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("repository root is not a directory: %s", s.root)
	}

	files, err := s.listFiles()
	if err != nil {
		return nil, fmt.Errorf("scan repository: %w", err)
	}

	// Stats are re-derived in a separate pass over the same ignore rules so
	// the tally always matches the file listing.
	stats, err := s.languageStats()
	if err != nil {
		return nil, fmt.Errorf("language stats: %w", err)
	}

	commit, remote := ReadGitInfo(s.root)
	return &Metadata{
		Name:          RepoName(remote, s.root),
		RemoteURL:     remote,
		LastCommit:    commit,
		LanguageStats: stats,
		Files:         files,
	}, nil
}

func (s *Scanner) listFiles() ([]File, error) {
	var files []File
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != s.root && s.ignore.SkipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if s.ignore.SkipFile(rel) {
			return nil
		}
		content, ok := readContent(p)
		files = append(files, File{
			Path:       rel,
			Extension:  Ext(d.Name()),
			Language:   s.table.Classify(d.Name()),
			Content:    content,
			HasContent: ok,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// languageStats walks the tree a second time with the identical ignore rules
// and counts retained files per classified language.
func (s *Scanner) languageStats() (map[string]int, error) {
	stats := make(map[string]int)
	err := filepath.WalkDir(s.root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != s.root && s.ignore.SkipDir(d.Name()) {
				return fs.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(s.root, p)
		if err != nil {
			return err
		}
		if s.ignore.SkipFile(filepath.ToSlash(rel)) {
			return nil
		}
		stats[s.table.Classify(d.Name())]++
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// readContent reads and decodes a file as UTF-8, falling back to Latin-1 for
// byte sequences that are not valid UTF-8. Binary files and read errors yield
// no content; the descriptor is still emitted by the caller.
func readContent(path string) (string, bool) {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Printf("scan: read %s: %v", path, err)
		return "", false
	}
	if bytes.IndexByte(b, 0) >= 0 {
		// NUL bytes mean binary content; nothing to analyze.
		return "", false
	}
	if utf8.Valid(b) {
		return string(b), true
	}
	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(b)
	if err != nil {
		log.Printf("scan: decode %s as latin-1: %v", path, err)
		return "", false
	}
	return string(decoded), true
}
