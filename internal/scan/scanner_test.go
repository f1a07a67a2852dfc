package scan

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixtureRepo(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"a.py":                 "print('hello')\n",
		"b.json":               "{\"k\": 1}\n",
		"LICENSE":              "MIT\n",
		"README.md":            "old readme\n",
		"sub/c.go":             "package sub\n",
		"node_modules/x.js":    "ignored\n",
		".git/config":          "[core]\n",
		"docs/notes.unknownxt": "free text\n",
	}
	for p, content := range files {
		full := filepath.Join(root, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(full, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return root
}

func defaultFixtureScanner(root string) *Scanner {
	ignore := NewIgnoreSet(
		[]string{".git", "node_modules"},
		[]string{"README.md"},
	)
	return NewScanner(root, DefaultTable(), ignore)
}

func TestScanListsRetainedFiles(t *testing.T) {
	root := writeFixtureRepo(t)
	meta, err := defaultFixtureScanner(root).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	got := make(map[string]File, len(meta.Files))
	for _, f := range meta.Files {
		got[f.Path] = f
	}
	for _, want := range []string{"a.py", "b.json", "LICENSE", "sub/c.go", "docs/notes.unknownxt"} {
		if _, ok := got[want]; !ok {
			t.Errorf("expected %s in listing, files: %v", want, keys(got))
		}
	}
	for _, excluded := range []string{"README.md", "node_modules/x.js", ".git/config"} {
		if _, ok := got[excluded]; ok {
			t.Errorf("%s must be excluded from listing", excluded)
		}
	}

	if got["a.py"].Language != "Python" || got["a.py"].Extension != ".py" {
		t.Errorf("a.py misclassified: %+v", got["a.py"])
	}
	if got["LICENSE"].Language != Unknown {
		t.Errorf("LICENSE should classify as Unknown, got %s", got["LICENSE"].Language)
	}
	if !got["a.py"].HasContent || got["a.py"].Content != "print('hello')\n" {
		t.Errorf("a.py content not read: %+v", got["a.py"])
	}
}

func TestScanIgnoreSetConsistency(t *testing.T) {
	root := writeFixtureRepo(t)
	scanner := defaultFixtureScanner(root)
	meta, err := scanner.Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}

	// Stats tally must equal the listing grouped by classified language.
	fromListing := make(map[string]int)
	for _, f := range meta.Files {
		fromListing[f.Language]++
	}
	if len(fromListing) != len(meta.LanguageStats) {
		t.Fatalf("stats diverge from listing: %v vs %v", meta.LanguageStats, fromListing)
	}
	for lang, n := range fromListing {
		if meta.LanguageStats[lang] != n {
			t.Errorf("stats[%s] = %d, want %d", lang, meta.LanguageStats[lang], n)
		}
	}

	// The rendered tree must show exactly the files the listing retained.
	tree, err := RenderTree(root, NewIgnoreSet([]string{".git", "node_modules"}, []string{"README.md"}))
	if err != nil {
		t.Fatalf("RenderTree: %v", err)
	}
	for _, f := range meta.Files {
		base := f.Path[strings.LastIndex(f.Path, "/")+1:]
		if !strings.Contains(tree, base) {
			t.Errorf("tree missing %s:\n%s", f.Path, tree)
		}
	}
	for _, excluded := range []string{"README.md", "x.js", "config"} {
		if strings.Contains(tree, excluded) {
			t.Errorf("tree must not list %s:\n%s", excluded, tree)
		}
	}
	if !strings.Contains(tree, "sub/") {
		t.Errorf("tree should render retained directories:\n%s", tree)
	}
}

func TestScanLatin1Fallback(t *testing.T) {
	root := t.TempDir()
	// 0xE9 is é in Latin-1 and invalid as a standalone UTF-8 byte.
	if err := os.WriteFile(filepath.Join(root, "legacy.py"), []byte{'c', 'a', 'f', 0xE9}, 0o644); err != nil {
		t.Fatal(err)
	}
	meta, err := NewScanner(root, DefaultTable(), NewIgnoreSet(nil, nil)).Scan()
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(meta.Files) != 1 {
		t.Fatalf("expected one file, got %d", len(meta.Files))
	}
	f := meta.Files[0]
	if !f.HasContent || f.Content != "café" {
		t.Fatalf("latin-1 fallback failed: %+v", f)
	}
}

func TestScanBinaryFileFailSoft(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "blob.py"), []byte{0x00, 0x01, 0x02}, 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "ok.py"), []byte("x = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	meta, err := NewScanner(root, DefaultTable(), NewIgnoreSet(nil, nil)).Scan()
	if err != nil {
		t.Fatalf("an unreadable file must never abort the scan: %v", err)
	}
	if len(meta.Files) != 2 {
		t.Fatalf("unreadable files must still be emitted, got %d descriptors", len(meta.Files))
	}
	for _, f := range meta.Files {
		switch f.Path {
		case "blob.py":
			if f.HasContent {
				t.Errorf("binary file should have no content")
			}
		case "ok.py":
			if !f.HasContent {
				t.Errorf("readable file lost its content")
			}
		}
	}
}

func TestScanMissingRoot(t *testing.T) {
	_, err := NewScanner(filepath.Join(t.TempDir(), "nope"), DefaultTable(), NewIgnoreSet(nil, nil)).Scan()
	if err == nil {
		t.Fatal("expected error for missing root")
	}
}

func TestIgnoreSetGlobPatterns(t *testing.T) {
	s := NewIgnoreSet(nil, []string{"**/*.lock", "secret.txt"})
	if !s.SkipFile("deps/Cargo.lock") {
		t.Error("glob pattern should match nested path")
	}
	if !s.SkipFile("sub/dir/secret.txt") {
		t.Error("plain name should match by base name")
	}
	if s.SkipFile("main.go") {
		t.Error("main.go should not be skipped")
	}
}

func TestReadGitInfoDegradesOutsideRepo(t *testing.T) {
	root := t.TempDir()
	commit, remote := ReadGitInfo(root)
	if commit != (Commit{}) {
		t.Errorf("expected zero commit outside a repository, got %+v", commit)
	}
	if remote != "" {
		t.Errorf("expected empty remote, got %q", remote)
	}
}

func TestRepoName(t *testing.T) {
	if got := RepoName("https://github.com/user/myrepo.git", "/tmp/x"); got != "myrepo" {
		t.Errorf("RepoName from https remote = %q", got)
	}
	if got := RepoName("git@github.com:user/other.git", "/tmp/x"); got != "other" {
		t.Errorf("RepoName from scp remote = %q", got)
	}
	if got := RepoName("", "/tmp/localproj"); got != "localproj" {
		t.Errorf("RepoName fallback = %q", got)
	}
}

func TestGitHubRepo(t *testing.T) {
	user, repo, ok := GitHubRepo("https://github.com/someone/project.git")
	if !ok || user != "someone" || repo != "project" {
		t.Fatalf("GitHubRepo = %q/%q ok=%v", user, repo, ok)
	}
	if _, _, ok := GitHubRepo("https://gitlab.com/a/b.git"); ok {
		t.Fatal("non-GitHub remote must not match")
	}
}

func keys(m map[string]File) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
