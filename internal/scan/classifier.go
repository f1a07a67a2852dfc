package scan

import (
	"path/filepath"
	"sort"
	"strings"
)

// Unknown is the language label returned for unrecognized extensions.
const Unknown = "Unknown"

// Table maps lowercase file extensions (including the leading dot) to
// language labels. It is built once and passed to the scanner; the lookup
// itself is a total function with no failure mode.
type Table map[string]string

// DefaultTable returns the built-in extension classification table.
func DefaultTable() Table {
	return Table{
		".py":         "Python",
		".js":         "JavaScript",
		".ts":         "TypeScript",
		".java":       "Java",
		".kt":         "Kotlin",
		".go":         "Go",
		".rs":         "Rust",
		".rb":         "Ruby",
		".php":        "PHP",
		".sh":         "Bash",
		".md":         "Markdown",
		".html":       "HTML",
		".css":        "CSS",
		".scss":       "SASS",
		".json":       "JSON",
		".yml":        "YAML",
		".yaml":       "YAML",
		".toml":       "TOML",
		".dockerfile": "Docker",
		".sql":        "SQL",
		".c":          "C",
		".cpp":        "C++",
		".h":          "C/C++ Header",
		".hpp":        "C++ Header",
		".cs":         "C#",
		".swift":      "Swift",
		".r":          "R",
		".pl":         "Perl",
		".lua":        "Lua",
		".vue":        "Vue.js",
		".jsx":        "React JSX",
		".tsx":        "React TSX",
	}
}

// Classify returns the language label for the given file name, or Unknown
// when the extension has no entry in the table.
func (t Table) Classify(name string) string {
	if lang, ok := t[Ext(name)]; ok {
		return lang
	}
	return Unknown
}

// Ext returns the lowercase extension of name, including the leading dot.
func Ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}

// Languages returns the distinct language labels in the table, sorted.
func (t Table) Languages() []string {
	seen := make(map[string]struct{}, len(t))
	out := make([]string, 0, len(t))
	for _, lang := range t {
		if _, ok := seen[lang]; ok {
			continue
		}
		seen[lang] = struct{}{}
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// Extensions returns the table's extensions, sorted.
func (t Table) Extensions() []string {
	out := make([]string, 0, len(t))
	for ext := range t {
		out = append(out, ext)
	}
	sort.Strings(out)
	return out
}
