// Package crawler discovers llms.txt documentation files, extracts the links
// listed in their Resources and Documentation sections and checks that each
// link is reachable, using a bounded pool over files and an independent
// bounded pool over the links of each file.
package crawler

import (
	"context"
	"fmt"
	"os"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lukemcguire/llmscheck/result"
)

// DefaultLinkConcurrency caps simultaneous checks for a single file.
const DefaultLinkConcurrency = 5

// Config holds crawler configuration.
type Config struct {
	Root            string        // Directory to scan
	FileConcurrency int           // Files processed at once (default 2x CPUs)
	LinkConcurrency int           // Links checked at once per file (default 5)
	RequestTimeout  time.Duration // Per-request timeout (default 15s)
	RateLimit       float64       // Requests per second per host, 0 = unlimited
	UserAgent       string        // User-Agent header
	MaxRedirects    int           // Redirects followed before failing (default 10)
}

// DefaultConfig returns a Config with the default resource bounds.
func DefaultConfig(root string) Config {
	return Config{
		Root:            root,
		FileConcurrency: 2 * runtime.NumCPU(),
		LinkConcurrency: DefaultLinkConcurrency,
		RequestTimeout:  DefaultRequestTimeout,
		UserAgent:       DefaultUserAgent,
		MaxRedirects:    DefaultMaxRedirects,
	}
}

// Crawler coordinates discovery, extraction and validation across files.
type Crawler struct {
	cfg        Config
	validator  *Validator
	readFile   func(string) ([]byte, error)
	progressCh chan<- CrawlEvent

	checked    atomic.Int64
	failed     atomic.Int64
	filesTotal atomic.Int64
	filesDone  atomic.Int64
}

type fileResult struct {
	file     string
	outcomes []result.Outcome
}

// New creates a Crawler with the given configuration.
// The progressCh parameter is optional; pass nil to disable progress events.
// Run closes progressCh when it returns.
func New(cfg Config, progressCh chan<- CrawlEvent) *Crawler {
	defaults := DefaultConfig(cfg.Root)
	if cfg.Root == "" {
		cfg.Root = "."
	}
	if cfg.FileConcurrency <= 0 {
		cfg.FileConcurrency = defaults.FileConcurrency
	}
	if cfg.LinkConcurrency <= 0 {
		cfg.LinkConcurrency = defaults.LinkConcurrency
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaults.RequestTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaults.UserAgent
	}
	if cfg.MaxRedirects <= 0 {
		cfg.MaxRedirects = defaults.MaxRedirects
	}

	validator := NewValidator(
		WithRequestTimeout(cfg.RequestTimeout),
		WithUserAgent(cfg.UserAgent),
		WithMaxRedirects(cfg.MaxRedirects),
		WithHostLimiter(NewHostLimiter(cfg.RateLimit)),
	)

	return &Crawler{
		cfg:        cfg,
		validator:  validator,
		readFile:   os.ReadFile,
		progressCh: progressCh,
	}
}

// Config returns the effective configuration after defaults were applied.
func (c *Crawler) Config() Config {
	return c.cfg
}

// Run discovers documentation files under the configured root, checks every
// extracted link and returns the aggregated report. The only error returned
// is a discovery failure of the root itself; everything else is recorded as
// an outcome in the report.
func (c *Crawler) Run(ctx context.Context) (*result.Report, error) {
	if c.progressCh != nil {
		defer close(c.progressCh)
	}
	start := time.Now()

	files, skipped, err := Discover(c.cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("discover documentation files: %w", err)
	}
	c.filesTotal.Store(int64(len(files)))

	for _, dir := range skipped {
		c.emit(ctx, CrawlEvent{Kind: EventDirSkipped, File: dir.Path, Err: dir.Err})
	}

	results := make(chan fileResult, c.cfg.FileConcurrency)

	go func() {
		var group errgroup.Group
		group.SetLimit(c.cfg.FileConcurrency)
		for _, file := range files {
			group.Go(func() error {
				results <- fileResult{file: file, outcomes: c.checkFile(ctx, file)}
				return nil
			})
		}
		_ = group.Wait()
		close(results)
	}()

	// Single reader: per-file outcome lists arrive complete and are merged here.
	var outcomes []result.Outcome
	for res := range results {
		outcomes = append(outcomes, res.outcomes...)
		done := c.filesDone.Add(1)
		c.emit(ctx, c.event(CrawlEvent{Kind: EventFileDone, File: res.file, FilesDone: int(done)}))
	}

	return result.NewReport(len(files), outcomes, time.Since(start)), nil
}

// checkFile reads one file, extracts its links and validates them with at
// most LinkConcurrency checks in flight. A file that cannot be processed
// yields a single file_error failure instead of disappearing from the report.
func (c *Crawler) checkFile(ctx context.Context, file string) (outcomes []result.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcomes = []result.Outcome{result.FileFailure(file, fmt.Sprintf("unexpected error: %v", r))}
			c.failed.Add(1)
		}
	}()

	content, err := c.readFile(file)
	if err != nil {
		c.failed.Add(1)
		return []result.Outcome{result.FileFailure(file, fmt.Sprintf("read file: %v", err))}
	}

	links := ExtractLinks(string(content))
	c.emit(ctx, c.event(CrawlEvent{Kind: EventFileStarted, File: file, Links: len(links)}))

	outcomes = make([]result.Outcome, len(links))
	var group errgroup.Group
	group.SetLimit(c.cfg.LinkConcurrency)
	for i, link := range links {
		group.Go(func() error {
			outcomes[i] = c.validate(ctx, link, file)
			c.checked.Add(1)
			if outcomes[i].IsFailure() {
				c.failed.Add(1)
			}
			c.emit(ctx, c.event(CrawlEvent{Kind: EventLinkChecked, File: file, Outcome: outcomes[i]}))
			return nil
		})
	}
	_ = group.Wait()

	return outcomes
}

// validate wraps Validator.Validate so a panic fails only the link at hand.
func (c *Crawler) validate(ctx context.Context, link, file string) (outcome result.Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = result.Failure(link, file, fmt.Sprintf("unexpected error: %v", r), result.CategoryUnknown, 0)
		}
	}()
	return c.validator.Validate(ctx, link, file)
}

// event fills in the running counters.
func (c *Crawler) event(evt CrawlEvent) CrawlEvent {
	evt.Checked = int(c.checked.Load())
	evt.Failed = int(c.failed.Load())
	evt.FilesTotal = int(c.filesTotal.Load())
	if evt.FilesDone == 0 {
		evt.FilesDone = int(c.filesDone.Load())
	}
	return evt
}

// emit sends evt unless progress is disabled or ctx is done.
func (c *Crawler) emit(ctx context.Context, evt CrawlEvent) {
	if c.progressCh == nil {
		return
	}
	select {
	case c.progressCh <- evt:
	case <-ctx.Done():
	}
}
