package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/hdrmap"
	"github.com/fwojciec/hdrmap/crawl"
	"github.com/fwojciec/hdrmap/fs"
	"github.com/fwojciec/hdrmap/goquery"
	hdrhttp "github.com/fwojciec/hdrmap/http"
	hdrslog "github.com/fwojciec/hdrmap/slog"
	"github.com/fwojciec/hdrmap/sqlite"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Fetcher overrides the HTTP fetcher. Set before calling Run().
	Fetcher hdrmap.Fetcher

	// SQLite database, open for the sqlite output format and stored runs.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("hdrmap"),
		kong.Description("Build a header to identifier map from the cppreference symbol index"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	switch cmd, _, _ := strings.Cut(kongCtx.Command(), " "); cmd {
	case "runs":
		if err := m.openStore(cli.Runs.DB, deps); err != nil {
			return err
		}
		defer m.Close()
		return cli.Runs.Run(deps)
	case "show":
		if err := m.openStore(cli.Show.DB, deps); err != nil {
			return err
		}
		defer m.Close()
		return cli.Show.Run(deps)
	}

	c := &cli.Crawl
	match, err := hdrmap.ParseMatchPolicy(c.Match)
	if err != nil {
		return err
	}
	if c.Output == "" {
		c.Output = DefaultOutput(c.Format)
	}

	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = hdrhttp.NewFetcher(
			hdrhttp.WithTimeout(c.Timeout),
			hdrhttp.WithMaxConnsPerHost(c.Concurrency),
		)
	}
	defer fetcher.Close()

	duplicates := hdrmap.DuplicateLastWins
	if c.KeepDuplicates {
		duplicates = hdrmap.DuplicateKeepAll
	}

	deps.Crawler = &crawl.Crawler{
		IndexURL:    c.IndexURL,
		Fetcher:     hdrslog.NewLoggingFetcher(fetcher, logger),
		Index:       goquery.NewIndexParser(),
		Extractor:   goquery.NewPageExtractor(goquery.WithMatchPolicy(match)),
		Duplicates:  duplicates,
		Concurrency: c.Concurrency,
		Retry: &crawl.RetryPolicy{
			Delay:       c.RetryDelay,
			MaxAttempts: c.MaxAttempts,
		},
		RetryLog: hdrslog.NewRetryLogger(logger),
	}

	var emitter hdrmap.Emitter
	switch c.Format {
	case FormatSQLite:
		if err := m.openStore(c.Output, deps); err != nil {
			return err
		}
		defer m.Close()
		emitter = deps.Store
	default:
		emitter = fs.NewJSONEmitter(c.Output)
	}
	deps.Emitter = hdrslog.NewLoggingEmitter(emitter, logger)

	return c.Run(deps)
}

// openStore opens the SQLite database at path and wires it into deps.
func (m *Main) openStore(path string, deps *Dependencies) error {
	m.DB = sqlite.NewDB(path)
	if err := m.DB.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	deps.Store = sqlite.NewEmitter(m.DB)
	return nil
}
