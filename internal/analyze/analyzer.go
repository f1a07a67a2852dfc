package analyze

import (
	"context"
	"log"

	"github.com/4elobrek9/repodoc-cli/internal/ai"
	"github.com/4elobrek9/repodoc-cli/internal/scan"
)

// FailurePlaceholder is stored as the analysis when no chunk of a file could
// be analyzed. Downstream aggregation filters it out by exact match, so the
// string must stay fixed.
const FailurePlaceholder = "File analysis could not be generated."

// skipLanguages are plain data/markup formats that rarely contain a "purpose"
// worth summarizing; analyzing them would waste model calls.
var skipLanguages = map[string]struct{}{
	scan.Unknown: {},
	"JSON":       {},
	"YAML":       {},
	"TOML":       {},
	"Markdown":   {},
}

// Analyzer produces a per-file analysis by chunking file content and sending
// each chunk through the model client.
type Analyzer struct {
	client    ai.Generator
	model     string
	chunkSize int
}

// NewAnalyzer builds an analyzer. chunkSize <= 0 selects DefaultChunkSize.
func NewAnalyzer(client ai.Generator, model string, chunkSize int) *Analyzer {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Analyzer{client: client, model: model, chunkSize: chunkSize}
}

// AnalyzeAll runs AnalyzeFile over every descriptor, strictly sequentially.
func (a *Analyzer) AnalyzeAll(ctx context.Context, files []scan.File) {
	for i := range files {
		a.AnalyzeFile(ctx, &files[i])
	}
}

// ShouldSkip reports whether a file is excluded from analysis: either its
// content could not be read or its language is a low-value format.
func ShouldSkip(f *scan.File) bool {
	if !f.HasContent || f.Content == "" {
		return true
	}
	_, skip := skipLanguages[f.Language]
	return skip
}

// AnalyzeFile populates f.Analysis. Files without content and low-value
// formats are skipped, leaving the analysis absent. A chunk whose model call
// fails is dropped from the aggregate; only when every chunk fails is the
// fixed failure placeholder stored.
func (a *Analyzer) AnalyzeFile(ctx context.Context, f *scan.File) {
	if ShouldSkip(f) {
		return
	}

	chunks := ChunkContent(f.Content, a.chunkSize)
	results := make([]string, 0, len(chunks))
	for i, chunk := range chunks {
		resp, err := a.client.Generate(ctx, ai.GenerateRequest{
			Model:  a.model,
			Prompt: chunkPrompt(f.Path, f.Language, chunk),
		})
		if err != nil {
			log.Printf("analyze: %s chunk %d/%d failed: %v", f.Path, i+1, len(chunks), err)
			continue
		}
		if resp.Text == "" {
			log.Printf("analyze: %s chunk %d/%d returned no text", f.Path, i+1, len(chunks))
			continue
		}
		results = append(results, resp.Text)
	}

	switch len(results) {
	case 0:
		f.Analysis = FailurePlaceholder
	case 1:
		f.Analysis = results[0]
	default:
		resp, err := a.client.Generate(ctx, ai.GenerateRequest{
			Model:  a.model,
			Prompt: consolidationPrompt(results),
		})
		if err != nil || resp.Text == "" {
			if err != nil {
				log.Printf("analyze: consolidation for %s failed: %v", f.Path, err)
			}
			f.Analysis = FailurePlaceholder
			return
		}
		f.Analysis = resp.Text
	}
}
