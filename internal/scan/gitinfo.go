package scan

import (
	"log"
	"net/url"
	"os/exec"
	"path"
	"path/filepath"
	"strings"
)

// ReadGitInfo returns last-commit metadata and the origin remote URL for the
// repository at root. Documentation generation must proceed for freshly
// initialized or detached working copies, so both degrade to zero values
// instead of failing.
func ReadGitInfo(root string) (Commit, string) {
	var commit Commit
	out, err := exec.Command("git", "-C", root, "log", "-1", "--format=%H%x1f%s%x1f%an <%ae>%x1f%ci").Output()
	if err != nil {
		log.Printf("scan: git history unavailable at %s: %v", root, err)
	} else {
		parts := strings.Split(strings.TrimSpace(string(out)), "\x1f")
		if len(parts) == 4 {
			commit = Commit{Hash: parts[0], Message: parts[1], Author: parts[2], Date: parts[3]}
		}
	}

	remote := ""
	out, err = exec.Command("git", "-C", root, "remote", "get-url", "origin").Output()
	if err != nil {
		log.Printf("scan: git remote unavailable at %s: %v", root, err)
	} else {
		remote = strings.TrimSpace(string(out))
	}
	return commit, remote
}

// RepoName derives a repository name from the remote URL, falling back to the
// base name of the local root when no remote is configured.
func RepoName(remoteURL, root string) string {
	if remoteURL != "" {
		if name := nameFromRemote(remoteURL); name != "" {
			return name
		}
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return filepath.Base(root)
	}
	return filepath.Base(abs)
}

func nameFromRemote(remote string) string {
	p := remote
	if u, err := url.Parse(remote); err == nil && u.Path != "" {
		p = u.Path
	} else if i := strings.LastIndex(remote, ":"); i >= 0 {
		// scp-like syntax: git@host:user/repo.git
		p = remote[i+1:]
	}
	name := path.Base(strings.TrimSuffix(strings.TrimSuffix(p, "/"), ".git"))
	if name == "." || name == "/" {
		return ""
	}
	return name
}

// GitHubRepo extracts the user and repository segments from a github.com
// remote URL. ok is false for non-GitHub remotes.
func GitHubRepo(remote string) (user, repo string, ok bool) {
	if !strings.Contains(remote, "github.com") {
		return "", "", false
	}
	p := remote
	if u, err := url.Parse(remote); err == nil && u.Path != "" {
		p = u.Path
	} else if i := strings.LastIndex(remote, ":"); i >= 0 {
		p = remote[i+1:]
	}
	segs := make([]string, 0, 2)
	for _, s := range strings.Split(p, "/") {
		if s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) < 2 {
		return "", "", false
	}
	user = segs[len(segs)-2]
	repo = strings.TrimSuffix(segs[len(segs)-1], ".git")
	return user, repo, user != "" && repo != ""
}
