package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ppiankov/aspecta/internal/model"
	"github.com/ppiankov/aspecta/internal/pipeline"
	"github.com/ppiankov/aspecta/internal/predict"
)

var (
	inputFile      string
	inputURL       string
	labeledFile    string
	outputPath     string
	noNormalize    bool
	ignoreRobots   bool
	extractTimeout time.Duration
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [text]",
	Short: "Extract aspect mentions from one text",
	Long: `Extract labels the tokens of a text, decodes the labels into aspect
mentions and post-processes every mention.

The text is read from the arguments, a file, a URL or standard input.
With --labeled the labels come from a token<TAB>label file and no
labeler is called.

Example:
  aspecta extract "Предложен метод оценки теплового воздействия лесных пожаров."
  aspecta extract --file abstract.txt --format json
  aspecta extract --url https://example.org/paper.html --provider openai --model gpt-4o-mini
  aspecta extract --labeled predictions.tsv --no-normalize`,
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	// Input flags
	extractCmd.Flags().StringVarP(&inputFile, "file", "f", "", "read the text from a file (- for stdin)")
	extractCmd.Flags().StringVar(&inputURL, "url", "", "fetch the text from a web page")
	extractCmd.Flags().StringVar(&labeledFile, "labeled", "", "read pre-labeled tokens (token<TAB>label) instead of calling the labeler")

	// Processing flags
	extractCmd.Flags().BoolVar(&noNormalize, "no-normalize", false, "keep mentions as written (no parser or lexicon needed)")
	extractCmd.Flags().BoolVar(&ignoreRobots, "ignore-robots", false, "fetch URLs even when robots.txt disallows them")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 2*time.Minute, "overall extraction timeout")

	// Output flags
	extractCmd.Flags().StringVar(&outputPath, "output", "", "write the result to a file instead of stdout")
}

func runExtract(cmd *cobra.Command, args []string) error {
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

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithTimeout(cmd.Context(), extractTimeout)
	defer cancel()

	if verbose {
		fmt.Fprintf(os.Stderr, "Predictor: %s\n", cfg.Predictor.Provider)
		fmt.Fprintf(os.Stderr, "Normalize: %v\n", cfg.Normalize)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		fmt.Fprintln(os.Stderr)
	}

	// Create pipeline
	var opts []pipeline.Option
	if labeledFile != "" {
		opts = append(opts, pipeline.LabeledOnly())
	}
	p, err := pipeline.NewPipeline(cfg, logger, opts...)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "⚙️  Extracting aspects...\n")
	}

	var results []*model.Result
	switch {
	case labeledFile != "":
		docs, err := predict.LoadLabeled(labeledFile)
		if err != nil {
			return fmt.Errorf("read labeled input: %w", err)
		}
		for i, doc := range docs {
			result, err := p.ExtractLabeled(ctx, fmt.Sprintf("%s#doc-%d", labeledFile, i+1), doc)
			if err != nil {
				return fmt.Errorf("extract failed: %w", err)
			}
			results = append(results, result)
		}

	default:
		src, text, err := resolveInput(args)
		if err != nil {
			return err
		}

		var result *model.Result
		if src == "" {
			result, err = p.ExtractText(ctx, "text", text)
		} else {
			result, err = p.ExtractSource(ctx, src)
		}
		if err != nil {
			return fmt.Errorf("extract failed: %w", err)
		}
		results = append(results, result)
	}

	if verbose {
		mentions := 0
		for _, r := range results {
			mentions += r.Aspects.Count()
		}
		fmt.Fprintf(os.Stderr, "✓ Extracted %d mentions from %d text(s)\n", mentions, len(results))
		fmt.Fprintln(os.Stderr)
	}

	// Render outputs
	var out io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	if err := pipeline.RenderAll(out, results, cfg.Output.Format); err != nil {
		return fmt.Errorf("render failed: %w", err)
	}

	if outputPath != "" && verbose {
		fmt.Fprintf(os.Stderr, "✓ Wrote %s\n", outputPath)
	}

	return nil
}

// resolveInput returns either a source to load or inline text. Without
// any input flag or argument, piped standard input is used.
func resolveInput(args []string) (src, text string, err error) {
	switch {
	case inputFile != "" && inputURL != "":
		return "", "", fmt.Errorf("use either --file or --url, not both")
	case inputFile != "":
		return inputFile, "", nil
	case inputURL != "":
		return inputURL, "", nil
	case len(args) > 0:
		return "", strings.Join(args, " "), nil
	}

	stat, err := os.Stdin.Stat()
	if err == nil && stat.Mode()&os.ModeCharDevice == 0 {
		return "-", "", nil
	}
	return "", "", fmt.Errorf("no input: pass text, --file, --url or --labeled")
}
