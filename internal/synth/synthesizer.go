package synth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/4elobrek9/repodoc-cli/internal/ai"
	"github.com/4elobrek9/repodoc-cli/internal/analyze"
	"github.com/4elobrek9/repodoc-cli/internal/scan"
)

// Synthesizer turns aggregated per-file analyses and repository metadata into
// named README sections via a single schema-constrained model call.
type Synthesizer struct {
	client ai.Generator
	model  string
}

func NewSynthesizer(client ai.Generator, model string) *Synthesizer {
	return &Synthesizer{client: client, model: model}
}

// Synthesize builds the aggregate prompt, requests a JSON object conforming
// to the section schema, and parses the result. Failure is fully absorbed: a
// failed call or an unparseable response yields the complete fallback object,
// never an error and never a partial result.
func (s *Synthesizer) Synthesize(ctx context.Context, meta *scan.Metadata) Sections {
	resp, err := s.client.Generate(ctx, ai.GenerateRequest{
		Model:  s.model,
		Prompt: buildPrompt(meta),
		Format: "json",
		Schema: responseSchema(),
	})
	if err != nil {
		log.Printf("synth: section generation failed: %v", err)
		return FallbackSections()
	}
	sections, err := parseSections(resp.Text)
	if err != nil {
		log.Printf("synth: %v; raw response: %s", err, truncate(resp.Text, 2048))
		return FallbackSections()
	}
	return sections
}

// parseSections decodes the model output strictly: unknown fields, missing
// fields and trailing data all invalidate the whole object.
func parseSections(raw string) (Sections, error) {
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.DisallowUnknownFields()
	var out Sections
	if err := dec.Decode(&out); err != nil {
		return Sections{}, fmt.Errorf("decode sections: %w", err)
	}
	if dec.More() {
		return Sections{}, fmt.Errorf("decode sections: trailing data after object")
	}
	if !out.complete() {
		return Sections{}, fmt.Errorf("decode sections: missing required fields")
	}
	return out, nil
}

func buildPrompt(meta *scan.Metadata) string {
	var b bytes.Buffer
	b.WriteString(`You are an experienced team lead and the principal architect of this project. Your task is to generate the content for the sections of a README.
Generate a JSON object that strictly conforms to the provided schema.
Be as useful and informative as possible, as if you were explaining the project to a new team member.
Avoid any phrasing that could hint the text was machine-generated. Write naturally, like a person.

Project information:
`)
	fmt.Fprintf(&b, "Repository name: %s\n", meta.Name)
	fmt.Fprintf(&b, "Repository URL: %s\n", meta.RemoteURL)
	fmt.Fprintf(&b, "Main languages (by file count): %s\n", languagesLine(meta))
	fmt.Fprintf(&b, "Last commit:\n    Message: %s\n    Author: %s\n    Date: %s\n",
		orUnknown(meta.LastCommit.Message), orUnknown(meta.LastCommit.Author), orUnknown(meta.LastCommit.Date))
	b.WriteString("\nKey file analyses (use this information to write the sections):\n")
	b.WriteString(formatFileAnalyses(meta.Files))
	b.WriteString("\n---\nGenerate the JSON object with the README section content, following the provided schema.\n")
	return b.String()
}

// formatFileAnalyses concatenates the per-file analyses, each tagged with its
// path and language. Failure placeholders are filtered out by exact match.
func formatFileAnalyses(files []scan.File) string {
	var parts []string
	for _, f := range files {
		if f.Analysis == "" || f.Analysis == analyze.FailurePlaceholder {
			continue
		}
		parts = append(parts, fmt.Sprintf("### File: `%s`\nLanguage: %s\n\n%s\n", f.Path, f.Language, f.Analysis))
	}
	if len(parts) == 0 {
		return "No file analyses are available."
	}
	return strings.Join(parts, "\n")
}

func languagesLine(meta *scan.Metadata) string {
	langs := meta.Languages()
	if len(langs) == 0 {
		return "not determined"
	}
	return strings.Join(langs, ", ")
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "...(truncated)"
}
