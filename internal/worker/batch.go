package worker

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/ppiankov/aspecta/internal/model"
)

// Extractor extracts aspects from one input
type Extractor interface {
	ExtractSource(ctx context.Context, src string) (*model.Result, error)
	ExtractLabeled(ctx context.Context, src string, labeled []model.LabeledToken) (*model.Result, error)
}

// ExtractJob extracts aspects from a source or from pre-labeled tokens
type ExtractJob struct {
	Source    string
	Labeled   []model.LabeledToken // Set for labeled input
	Extractor Extractor
	Timeout   time.Duration
}

// Execute runs the extraction
func (j *ExtractJob) Execute(ctx context.Context) Result {
	if j.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, j.Timeout)
		defer cancel()
	}

	start := time.Now()

	var (
		result *model.Result
		err    error
	)
	if j.Labeled != nil {
		result, err = j.Extractor.ExtractLabeled(ctx, j.Source, j.Labeled)
	} else {
		result, err = j.Extractor.ExtractSource(ctx, j.Source)
	}

	return &ExtractResult{
		Source:   j.Source,
		Result:   result,
		Error:    err,
		Duration: time.Since(start),
	}
}

// ExtractResult is the outcome of one extraction job
type ExtractResult struct {
	Source   string
	Result   *model.Result
	Error    error
	Duration time.Duration
}

// GetError returns the error from the extraction
func (r *ExtractResult) GetError() error {
	return r.Error
}

// BatchProcessor extracts aspects from many inputs concurrently
type BatchProcessor struct {
	extractor   Extractor
	concurrency int
	timeout     time.Duration
}

// NewBatchProcessor creates a batch processor. A zero timeout leaves jobs
// unbounded.
func NewBatchProcessor(extractor Extractor, concurrency int, timeout time.Duration) *BatchProcessor {
	return &BatchProcessor{
		extractor:   extractor,
		concurrency: concurrency,
		timeout:     timeout,
	}
}

// ProcessSources extracts aspects from files and URLs. Results keep the
// order of sources; a failed source carries its error.
func (b *BatchProcessor) ProcessSources(ctx context.Context, sources []string) []*ExtractResult {
	jobs := make([]Job, len(sources))
	for i, src := range sources {
		jobs[i] = &ExtractJob{
			Source:    src,
			Extractor: b.extractor,
			Timeout:   b.timeout,
		}
	}
	return b.run(ctx, jobs)
}

// ProcessLabeled extracts aspects from labeled documents. Sources are
// named after their position ("doc-1", "doc-2", ...) under name.
func (b *BatchProcessor) ProcessLabeled(ctx context.Context, name string, docs [][]model.LabeledToken) []*ExtractResult {
	jobs := make([]Job, len(docs))
	for i, doc := range docs {
		jobs[i] = &ExtractJob{
			Source:    fmt.Sprintf("%s#doc-%d", name, i+1),
			Labeled:   doc,
			Extractor: b.extractor,
			Timeout:   b.timeout,
		}
	}
	return b.run(ctx, jobs)
}

func (b *BatchProcessor) run(ctx context.Context, jobs []Job) []*ExtractResult {
	if len(jobs) == 0 {
		return []*ExtractResult{}
	}

	pool := NewPool(ctx, b.concurrency)
	pool.Start()

	for _, job := range jobs {
		pool.Submit(job)
	}

	results := pool.Wait()

	out := make([]*ExtractResult, len(results))
	for i, result := range results {
		out[i] = result.(*ExtractResult)
	}
	return out
}

// ProcessFile reads sources from a file and processes them concurrently
func (b *BatchProcessor) ProcessFile(ctx context.Context, filePath string) ([]*ExtractResult, error) {
	sources, err := ReadSourcesFromFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read sources: %w", err)
	}

	return b.ProcessSources(ctx, sources), nil
}

// ReadSourcesFromFile reads file paths or URLs, one per line. Blank lines
// and # comments are skipped and duplicates dropped.
func ReadSourcesFromFile(filePath string) ([]string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer func() { _ = file.Close() }()

	var sources []string
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if !seen[line] {
			seen[line] = true
			sources = append(sources, line)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return sources, nil
}
