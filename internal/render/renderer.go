package render

import (
	"fmt"
	"strings"

	"github.com/4elobrek9/repodoc-cli/internal/scan"
	"github.com/4elobrek9/repodoc-cli/internal/synth"
)

// Renderer merges synthesized sections, computed repository metadata and
// static template text into the final document.
type Renderer struct {
	root   string
	ignore *scan.IgnoreSet
}

// NewRenderer builds a renderer. The ignore set must be the same one the
// scanner used, so the rendered tree matches the file listing.
func NewRenderer(root string, ignore *scan.IgnoreSet) *Renderer {
	return &Renderer{root: root, ignore: ignore}
}

// Render produces the README text. Every deferred placeholder is resolved by
// exactly one deterministic path; the returned document never contains an
// unresolved token.
func (r *Renderer) Render(sections synth.Sections, meta *scan.Metadata) (string, error) {
	doc := r.buildTemplate(sections, meta)

	tree, err := scan.RenderTree(r.root, r.ignore)
	if err != nil {
		return "", fmt.Errorf("render project structure: %w", err)
	}
	doc = strings.Replace(doc, tokenStructure, "```\n"+tree+"```", 1)
	doc = strings.Replace(doc, tokenContributing, contributingBoilerplate, 1)
	doc = strings.Replace(doc, tokenLicense, licenseSentence(meta), 1)

	for _, token := range deferredTokens {
		if strings.Contains(doc, token) {
			return "", fmt.Errorf("unresolved template token %s", token)
		}
	}
	return doc, nil
}

func (r *Renderer) buildTemplate(sections synth.Sections, meta *scan.Metadata) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", meta.Name)
	if icons := languageIcons(meta); icons != "" {
		b.WriteString("<p>\n" + icons + "\n</p>\n")
	}
	if user, repo, ok := scan.GitHubRepo(meta.RemoteURL); ok {
		fmt.Fprintf(&b, "\n![GitHub repo size](https://img.shields.io/github/repo-size/%s/%s)\n", user, repo)
		fmt.Fprintf(&b, "![GitHub last commit](https://img.shields.io/github/last-commit/%s/%s)\n", user, repo)
		fmt.Fprintf(&b, "![GitHub top language](https://img.shields.io/github/languages/top/%s/%s)\n", user, repo)
	}

	fmt.Fprintf(&b, "\n%s\n", sections.ProjectDescription)

	b.WriteString(`
## Table of Contents

- [Overview](#overview)
- [Features](#features)
- [Tech Stack](#tech-stack)
- [Installation](#installation)
- [Usage](#usage)
- [Project Structure](#project-structure)
- [Contributing](#contributing)
- [License](#license)
`)

	fmt.Fprintf(&b, "\n## Overview\n%s\n", sections.Overview)
	fmt.Fprintf(&b, "\n## Features\n%s\n", sections.Features)
	fmt.Fprintf(&b, "\n## Tech Stack\n%s\n", sections.Technologies)
	fmt.Fprintf(&b, "\n## Installation\n%s\n", sections.Installation)
	fmt.Fprintf(&b, "\n## Usage\n%s\n", sections.UsageExamples)
	fmt.Fprintf(&b, "\n## Project Structure\n%s\n%s\n", sections.StructureDescription, tokenStructure)
	fmt.Fprintf(&b, "\n## Contributing\n%s\n", tokenContributing)
	fmt.Fprintf(&b, "\n## License\n%s\n", tokenLicense)

	b.WriteString("\n---\n\nThanks for reading! Hopefully this repository is useful to you.\n")
	return b.String()
}

// licenseSentence resolves the license placeholder. Exactly one of the two
// branches fires: the "found" variant when a case-insensitive "license" file
// was scanned, otherwise the default sentence.
func licenseSentence(meta *scan.Metadata) string {
	for _, f := range meta.Files {
		if strings.EqualFold(f.Path, "license") {
			if meta.RemoteURL != "" {
				return fmt.Sprintf("This project is licensed under the terms described in [`%s`](%s/blob/main/%s).",
					f.Path, strings.TrimSuffix(meta.RemoteURL, ".git"), f.Path)
			}
			return fmt.Sprintf("This project is licensed under the terms described in [`%s`](%s).", f.Path, f.Path)
		}
	}
	return defaultLicenseSentence
}

func languageIcons(meta *scan.Metadata) string {
	var icons []string
	for _, lang := range meta.Languages() {
		if url, ok := deviconMap[lang]; ok {
			icons = append(icons, fmt.Sprintf(`<img src="%s" title="%s" alt="%s" width="40" height="40"/>`, url, lang, lang))
		}
	}
	return strings.Join(icons, " ")
}
