package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/aspecta/internal/model"
	"github.com/ppiankov/aspecta/internal/pipeline"
	"github.com/ppiankov/aspecta/internal/predict"
	"github.com/ppiankov/aspecta/internal/worker"
)

var (
	concurrency  int
	outputDir    string
	batchTimeout time.Duration
	textTimeout  time.Duration
	batchLabeled bool
)

// batchCmd represents the batch command
var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Extract aspects from many texts in parallel",
	Long: `Batch extracts aspects from many texts concurrently:
- Read file paths or URLs from the input file (one per line, # comments)
- Or, with --labeled, read every document of a token<TAB>label file
- Process texts in parallel with a configurable worker count
- Record per-text failures and keep going

Example:
  aspecta batch sources.txt
  aspecta batch sources.txt --concurrency 8 --output-dir ./aspects --format json
  aspecta batch predictions.tsv --labeled --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)

	// Concurrency flags
	batchCmd.Flags().IntVar(&concurrency, "concurrency", 0, "number of concurrent workers (default: concurrency.workers)")
	batchCmd.Flags().StringVar(&outputDir, "output-dir", "", "write one result file per text into this directory")
	batchCmd.Flags().DurationVar(&batchTimeout, "timeout", 10*time.Minute, "total timeout for batch processing")
	batchCmd.Flags().DurationVar(&textTimeout, "text-timeout", time.Minute, "timeout for individual texts")

	// Input flags
	batchCmd.Flags().BoolVar(&batchLabeled, "labeled", false, "treat the input as a token<TAB>label file")
	batchCmd.Flags().BoolVar(&noNormalize, "no-normalize", false, "keep mentions as written (no parser or lexicon needed)")
	batchCmd.Flags().BoolVar(&ignoreRobots, "ignore-robots", false, "fetch URLs even when robots.txt disallows them")
}

func runBatch(cmd *cobra.Command, args []string) error {
	file := args[0]

	cfg, err := effectiveConfig()
	if err != nil {
		return err
	}
	if noNormalize {
		cfg.Normalize = false
	}
	if ignoreRobots {
		cfg.HTTP.IgnoreRobots = true
	}
	if concurrency > 0 {
		cfg.Concurrency.Workers = concurrency
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), batchTimeout)
	defer cancel()

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Aspecta Batch Processing\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Input file:   %s\n", file)
	fmt.Fprintf(os.Stderr, "  Workers:      %d\n", cfg.Concurrency.Workers)
	fmt.Fprintf(os.Stderr, "  Predictor:    %s\n", cfg.Predictor.Provider)
	fmt.Fprintf(os.Stderr, "  Normalize:    %v\n", cfg.Normalize)
	if outputDir != "" {
		fmt.Fprintf(os.Stderr, "  Output dir:   %s\n", outputDir)
	}
	fmt.Fprintf(os.Stderr, "  Timeout:      %v\n", batchTimeout)
	fmt.Fprintf(os.Stderr, "\n")

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	// Create pipeline
	var opts []pipeline.Option
	if batchLabeled {
		opts = append(opts, pipeline.LabeledOnly())
	}
	p, err := pipeline.NewPipeline(cfg, logger, opts...)
	if err != nil {
		return err
	}

	processor := worker.NewBatchProcessor(p, cfg.Concurrency.Workers, textTimeout)

	var results []*worker.ExtractResult
	if batchLabeled {
		fmt.Fprintf(os.Stderr, "⚙️  Reading labeled documents...\n")
		docs, err := predict.LoadLabeled(file)
		if err != nil {
			return fmt.Errorf("read labeled input: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Loaded %d documents\n", len(docs))
		results = processor.ProcessLabeled(ctx, filepath.Base(file), docs)
	} else {
		fmt.Fprintf(os.Stderr, "⚙️  Reading sources from file...\n")
		results, err = processor.ProcessFile(ctx, file)
		if err != nil {
			return fmt.Errorf("process file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "✓ Loaded %d sources\n", len(results))
	}
	fmt.Fprintf(os.Stderr, "\n")

	// Process results
	successCount := 0
	failureCount := 0
	var rendered []*model.Result

	for _, result := range results {
		if result.Error != nil {
			failureCount++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, result.Error)
			continue
		}

		successCount++
		fmt.Fprintf(os.Stderr, "✓ %s (%d mentions, %v)\n", result.Source, result.Result.Aspects.Count(), result.Duration.Round(time.Millisecond))

		if outputDir == "" {
			rendered = append(rendered, result.Result)
			continue
		}

		path := filepath.Join(outputDir, sanitizeFilename(result.Source)+extensionFor(cfg.Output.Format))
		if err := writeResult(path, result.Result, cfg.Output.Format); err != nil {
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", result.Source, err)
		}
	}

	if len(rendered) > 0 {
		if err := pipeline.RenderAll(cmd.OutOrStdout(), rendered, cfg.Output.Format); err != nil {
			return fmt.Errorf("render failed: %w", err)
		}
	}

	// Summary
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "  Batch Complete\n")
	fmt.Fprintf(os.Stderr, "═══════════════════════════════════════════════════════════\n")
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  Total:     %d texts\n", len(results))
	fmt.Fprintf(os.Stderr, "  Success:   %d\n", successCount)
	fmt.Fprintf(os.Stderr, "  Failures:  %d\n", failureCount)
	if outputDir != "" {
		fmt.Fprintf(os.Stderr, "  Output:    %s\n", outputDir)
	}
	fmt.Fprintf(os.Stderr, "\n")

	return nil
}

func writeResult(path string, result *model.Result, format string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", path, closeErr)
		}
	}()

	return pipeline.Render(f, result, format)
}

// extensionFor returns the file extension of an output format
func extensionFor(format string) string {
	switch strings.ToLower(format) {
	case pipeline.FormatMarkdown, "md":
		return ".md"
	case pipeline.FormatJSON:
		return ".json"
	case pipeline.FormatYAML, "yml":
		return ".yaml"
	default:
		return ".txt"
	}
}

var filenameReplacer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	"\"", "_",
	"<", "_",
	">", "_",
	"|", "_",
	"#", "_",
	" ", "-",
)

// sanitizeFilename turns a source name into a file name
func sanitizeFilename(s string) string {
	s = strings.TrimPrefix(s, "https://")
	s = strings.TrimPrefix(s, "http://")
	s = strings.Trim(filenameReplacer.Replace(s), "._")

	// Limit length
	if r := []rune(s); len(r) > 100 {
		s = string(r[:100])
	}
	if s == "" {
		s = "result"
	}

	return s
}
