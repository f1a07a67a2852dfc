package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/4elobrek9/repodoc-cli/internal/ai"
	"github.com/4elobrek9/repodoc-cli/internal/analyze"
	cfgpkg "github.com/4elobrek9/repodoc-cli/internal/config"
	"github.com/4elobrek9/repodoc-cli/internal/pipeline"
	"github.com/4elobrek9/repodoc-cli/internal/report"
	"github.com/4elobrek9/repodoc-cli/internal/scan"
	"github.com/4elobrek9/repodoc-cli/internal/ui"
	"github.com/4elobrek9/repodoc-cli/internal/utils"
	"github.com/spf13/cobra"
)

var (
	genOutputPath string
	genReportPath string
	genChunkSize  int
	genDryRun     bool
	genQuiet      bool
)

// largePromptTokens triggers a warning before the model calls start.
const largePromptTokens = 100000

var generateCmd = &cobra.Command{
	Use:   "generate [path]",
	Short: "Scan a repository and generate its README",
	Example: `  repodoc generate
  repodoc generate ./myrepo --model llama3
  repodoc generate ./myrepo --dry-run
  repodoc generate ./myrepo --output README.md --report run.json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := requireConfig()
		if err != nil {
			return err
		}

		root := "."
		if len(args) == 1 {
			root = args[0]
		}
		root, err = filepath.Abs(root)
		if err != nil {
			return fmt.Errorf("resolve path: %w", err)
		}

		chunkSize := c.ChunkSize
		if cmd.Flags().Changed("chunk-size") && genChunkSize > 0 {
			chunkSize = genChunkSize
		}
		ignore := scan.NewIgnoreSet(c.IgnoreDirs, c.IgnoreFiles)

		if genDryRun {
			return dryRun(root, ignore, chunkSize)
		}

		client := buildClient(c)
		rep := report.New(c.Model)

		if !genQuiet {
			fmt.Printf("⚙ Generating documentation for %s with model=%s ...\n", root, c.Model)
		}
		h := pipeline.Start(cmd.Context(), pipeline.Options{
			Root:      root,
			Client:    client,
			Model:     c.Model,
			ChunkSize: chunkSize,
			Ignore:    ignore,
		})
		if !genQuiet {
			ui.Spin("Talking to the model", h.Done())
		}
		res, err := h.Wait()
		if err != nil {
			return describeRunError(err, c)
		}

		outPath := genOutputPath
		if outPath == "" {
			outPath = c.Output
		}
		if outPath == "" {
			outPath = "README_FOR_" + sanitizeName(res.Metadata.Name) + ".md"
		}
		if err := utils.SafeWriteFile(outPath, []byte(res.Document)); err != nil {
			return fmt.Errorf("write document: %w", err)
		}
		if !genQuiet {
			fmt.Printf("✓ Documentation written to %s\n", outPath)
			printLanguageSummary(res.Metadata)
		}

		if genReportPath != "" {
			rep.Finish(res.Metadata, res.Sections)
			if err := rep.Save(genReportPath); err != nil {
				return fmt.Errorf("write report: %w", err)
			}
			if !genQuiet {
				fmt.Printf("✓ Report written to %s (run %s)\n", genReportPath, rep.RunID)
			}
		}
		return nil
	},
}

// dryRun performs the scan and prints what a real run would send to the
// model, without making any model calls.
func dryRun(root string, ignore *scan.IgnoreSet, chunkSize int) error {
	meta, err := scan.NewScanner(root, scan.DefaultTable(), ignore).Scan()
	if err != nil {
		return fmt.Errorf("scan repository: %w", err)
	}

	fmt.Printf("Repository: %s\n", meta.Name)
	if meta.RemoteURL != "" {
		fmt.Printf("Remote: %s\n", meta.RemoteURL)
	}
	printLanguageSummary(meta)

	totalTokens := 0
	calls := 0
	for i := range meta.Files {
		f := &meta.Files[i]
		if analyze.ShouldSkip(f) {
			fmt.Printf("  - %s (%s): skipped\n", f.Path, f.Language)
			continue
		}
		chunks := len(analyze.ChunkContent(f.Content, chunkSize))
		fileCalls := chunks
		if chunks > 1 {
			fileCalls++ // consolidation call
		}
		calls += fileCalls
		totalTokens += utils.CountTokens(f.Content)
		fmt.Printf("  - %s (%s): %d chunk(s), %d model call(s)\n", f.Path, f.Language, chunks, fileCalls)
	}
	calls++ // section synthesis call
	fmt.Printf("Planned model calls: %d (including section synthesis)\n", calls)
	if totalTokens > largePromptTokens {
		fmt.Printf("⚠ Warning: very large input (≈%d tokens). Consider tightening ignore rules.\n", totalTokens)
	} else {
		fmt.Printf("Estimated input size: ≈%d tokens\n", totalTokens)
	}
	return nil
}

// describeRunError maps client error classes onto actionable hints.
func describeRunError(err error, c *cfgpkg.Global) error {
	var (
		unreach *ai.UnreachableError
		nfErr   *ai.ModelNotFoundError
		brErr   *ai.BadRequestError
		sErr    *ai.ServerError
	)
	switch {
	case errors.As(err, &unreach):
		return fmt.Errorf("Ollama not reachable at %s. Ensure Ollama is running (see https://ollama.com) and host is correct. You can set REPODOC_OLLAMA_HOST or config 'ollama_host'. Detail: %w", unreach.Host, err)
	case errors.As(err, &nfErr):
		return fmt.Errorf("local model not available (%s). Install it with 'ollama pull %s' or choose another model: %w", c.Model, c.Model, err)
	case errors.As(err, &brErr):
		return fmt.Errorf("request invalid. Try a smaller --chunk-size: %w", err)
	case errors.As(err, &sErr):
		return fmt.Errorf("Ollama reported a server error. Please retry: %w", err)
	default:
		return err
	}
}

func printLanguageSummary(meta *scan.Metadata) {
	langs := meta.Languages()
	if len(langs) == 0 {
		return
	}
	parts := make([]string, 0, len(langs))
	for _, l := range langs {
		parts = append(parts, fmt.Sprintf("%s=%d", l, meta.LanguageStats[l]))
	}
	fmt.Printf("Languages: %s\n", strings.Join(parts, ", "))
}

// sanitizeName keeps the output file name portable across filesystems.
func sanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '_' || r == '-':
			return r
		default:
			return '_'
		}
	}, name)
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringVarP(&genOutputPath, "output", "o", "", "output path (default README_FOR_<repo>.md)")
	generateCmd.Flags().StringVar(&genReportPath, "report", "", "optional path to write a JSON run report")
	generateCmd.Flags().IntVar(&genChunkSize, "chunk-size", 0, "content chunk size in bytes (overrides config)")
	generateCmd.Flags().BoolVar(&genDryRun, "dry-run", false, "scan and plan model calls without contacting the model")
	generateCmd.Flags().BoolVar(&genQuiet, "quiet", false, "suppress non-essential output")
}
