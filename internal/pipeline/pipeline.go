package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/4elobrek9/repodoc-cli/internal/ai"
	"github.com/4elobrek9/repodoc-cli/internal/analyze"
	"github.com/4elobrek9/repodoc-cli/internal/config"
	"github.com/4elobrek9/repodoc-cli/internal/render"
	"github.com/4elobrek9/repodoc-cli/internal/scan"
	"github.com/4elobrek9/repodoc-cli/internal/synth"
	"github.com/google/uuid"
)

// Options configures a documentation run.
type Options struct {
	// Root is the repository directory to document.
	Root string
	// Client talks to the model backend.
	Client ai.Generator
	// Model is the model name passed on every request.
	Model string
	// ChunkSize is the per-request content slice size in bytes.
	// Zero means analyze.DefaultChunkSize.
	ChunkSize int
	// Table overrides the extension classification table. Nil means the
	// built-in table.
	Table scan.Table
	// Ignore overrides the ignore set. Nil means the default dir and file
	// ignore lists.
	Ignore *scan.IgnoreSet
}

// Result is the outcome of a completed run.
type Result struct {
	RunID    string
	Document string
	Metadata *scan.Metadata
	Sections synth.Sections
}

// Run executes the whole pipeline: scan the tree, analyze each file,
// synthesize the README sections, and render the final document.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Root == "" {
		return nil, errors.New("repository root is required")
	}
	if opts.Client == nil {
		return nil, errors.New("model client is required")
	}
	if opts.Model == "" {
		return nil, errors.New("model name is required")
	}
	table := opts.Table
	if table == nil {
		table = scan.DefaultTable()
	}
	ignore := opts.Ignore
	if ignore == nil {
		ignore = scan.NewIgnoreSet(config.DefaultIgnoreDirs(), config.DefaultIgnoreFiles())
	}

	meta, err := scan.NewScanner(opts.Root, table, ignore).Scan()
	if err != nil {
		return nil, fmt.Errorf("scan repository: %w", err)
	}

	analyzer := analyze.NewAnalyzer(opts.Client, opts.Model, opts.ChunkSize)
	analyzer.AnalyzeAll(ctx, meta.Files)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sections := synth.NewSynthesizer(opts.Client, opts.Model).Synthesize(ctx, meta)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc, err := render.NewRenderer(opts.Root, ignore).Render(sections, meta)
	if err != nil {
		return nil, fmt.Errorf("render document: %w", err)
	}

	return &Result{
		RunID:    uuid.NewString(),
		Document: doc,
		Metadata: meta,
		Sections: sections,
	}, nil
}

// Handle tracks a run executing in the background.
type Handle struct {
	done chan struct{}
	res  *Result
	err  error
}

// Start kicks off Run in a goroutine. The returned handle's Done channel
// closes when the run finishes, successfully or not.
func Start(ctx context.Context, opts Options) *Handle {
	h := &Handle{done: make(chan struct{})}
	go func() {
		defer close(h.done)
		h.res, h.err = Run(ctx, opts)
	}()
	return h
}

// Done reports completion. Receives unblock once the run has finished.
func (h *Handle) Done() <-chan struct{} { return h.done }

// Wait blocks until the run finishes and returns its outcome.
func (h *Handle) Wait() (*Result, error) {
	<-h.done
	return h.res, h.err
}
