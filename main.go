// Package main provides the llmscheck CLI entrypoint.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"slices"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"

	"github.com/lukemcguire/llmscheck/crawler"
	"github.com/lukemcguire/llmscheck/result"
	"github.com/lukemcguire/llmscheck/tui"
)

var (
	// ErrFailures is returned by Main.Run when at least one link failed.
	ErrFailures = errors.New("link check failed")

	// ErrInterrupted is returned when the user quits the interactive view.
	ErrInterrupted = errors.New("interrupted")
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	err := NewMain().Run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}

// reportError prints err unless the report or the interactive view already
// told the user why the run ended.
func reportError(w io.Writer, err error) {
	if errors.Is(err, ErrFailures) || errors.Is(err, ErrInterrupted) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Root            string        `arg:"" optional:"" default:"." help:"Directory to scan for llms.txt files"`
	FileConcurrency int           `help:"Files processed concurrently (default: twice the CPU count)"`
	LinkConcurrency int           `default:"5" help:"Links checked concurrently per file"`
	Timeout         time.Duration `short:"t" default:"15s" help:"Timeout of each HEAD or GET request"`
	RateLimit       float64       `default:"0" help:"Requests per second per host (0 = unlimited)"`
	UserAgent       string        `help:"User-Agent header sent with each request"`
	Format          string        `short:"f" enum:"text,json,csv" default:"text" help:"Report format (text, json, csv)"`
	Plain           bool          `help:"Log progress lines instead of the interactive view"`
	Verbose         bool          `short:"v" help:"Log per-file completion as well"`
}

// Main represents the program.
type Main struct {
	// IsTerminal decides whether the interactive view can be used on w.
	IsTerminal func(w io.Writer) bool
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{IsTerminal: isTerminal}
}

// Run parses args, checks every link and writes the report to stdout.
// It returns ErrFailures when the report contains failures.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("llmscheck"),
		kong.Description("Check that links in the Resources and Documentation sections of llms.txt files are reachable"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("create parser: %w", err)
	}

	if slices.Contains(args, "--help") || slices.Contains(args, "-h") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg := crawler.Config{
		Root:            cli.Root,
		FileConcurrency: cli.FileConcurrency,
		LinkConcurrency: cli.LinkConcurrency,
		RequestTimeout:  cli.Timeout,
		RateLimit:       cli.RateLimit,
		UserAgent:       cli.UserAgent,
	}

	var report *result.Report
	if cli.Format == "text" && !cli.Plain && m.IsTerminal != nil && m.IsTerminal(stdout) {
		report, err = m.runInteractive(ctx, cfg, stdout)
	} else {
		report, err = m.runPlain(ctx, cfg, cli, stdout, stderr)
	}
	if err != nil {
		return err
	}

	if report.HasFailures() {
		return ErrFailures
	}
	return nil
}

// runInteractive drives the run through the Bubble Tea view. The final view
// is the summary, so nothing else is written to stdout.
func (m *Main) runInteractive(ctx context.Context, cfg crawler.Config, stdout io.Writer) (*result.Report, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	progressCh := make(chan crawler.CrawlEvent, 100)
	model := tui.NewModel(ctx, cancel, crawler.New(cfg, progressCh), progressCh)

	finalModel, err := tea.NewProgram(model, tea.WithOutput(stdout)).Run()
	if err != nil {
		return nil, fmt.Errorf("run interactive view: %w", err)
	}

	final, ok := finalModel.(tui.Model)
	if !ok {
		return nil, fmt.Errorf("unexpected model type %T", finalModel)
	}
	if final.Quitting() {
		return nil, ErrInterrupted
	}
	if final.Err() != nil {
		return nil, final.Err()
	}
	return final.Report(), nil
}

// runPlain logs progress to stderr and writes the report in the requested
// format to stdout.
func (m *Main) runPlain(ctx context.Context, cfg crawler.Config, cli *CLI, stdout, stderr io.Writer) (*result.Report, error) {
	level := log.InfoLevel
	if cli.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(stderr, log.Options{
		Prefix: "llmscheck",
		Level:  level,
	})

	progressCh := make(chan crawler.CrawlEvent, 100)
	logDone := make(chan struct{})
	go func() {
		defer close(logDone)
		logProgress(logger, progressCh)
	}()

	report, err := crawler.New(cfg, progressCh).Run(ctx)
	<-logDone
	if err != nil {
		return nil, err
	}

	switch cli.Format {
	case "json":
		err = result.WriteJSON(stdout, report.Failures())
	case "csv":
		err = result.WriteCSV(stdout, report.Failures())
	default:
		result.PrintReport(stdout, report)
	}
	if err != nil {
		return nil, err
	}
	return report, nil
}

// logProgress turns crawler events into log lines until the channel closes.
func logProgress(logger *log.Logger, events <-chan crawler.CrawlEvent) {
	for evt := range events {
		switch evt.Kind {
		case crawler.EventDirSkipped:
			logger.Warn("skipping unreadable directory", "path", evt.File, "err", evt.Err)
		case crawler.EventFileStarted:
			logger.Info("checking file", "file", evt.File, "links", evt.Links)
		case crawler.EventLinkChecked:
			outcome := evt.Outcome
			switch outcome.Status {
			case result.StatusSuccess:
				logger.Info("ok", "url", outcome.URL, "status", outcome.StatusCode)
			case result.StatusSkipped:
				logger.Info("skipped", "url", outcome.URL, "reason", outcome.Reason)
			default:
				logger.Error("failed", "url", outcome.URL, "file", outcome.File, "reason", outcome.Reason)
			}
		case crawler.EventFileDone:
			logger.Debug("file done", "file", evt.File, "files", fmt.Sprintf("%d/%d", evt.FilesDone, evt.FilesTotal))
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
