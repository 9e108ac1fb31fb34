package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/hdrmap"
	"github.com/fwojciec/hdrmap/crawl"
	"github.com/fwojciec/hdrmap/sqlite"
)

// Output formats.
const (
	FormatJSON   = "json"
	FormatSQLite = "sqlite"
)

// DefaultOutput returns the output path used when none is given.
func DefaultOutput(format string) string {
	if format == FormatSQLite {
		return "symbol_map.db"
	}
	return "symbol_map.json"
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Logger  *slog.Logger
	Crawler *crawl.Crawler
	Emitter hdrmap.Emitter
	Store   *sqlite.Emitter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl CrawlCmd `cmd:"" default:"withargs" help:"Crawl the symbol index and write the header map (default)"`
	Runs  RunsCmd  `cmd:"" help:"List crawl runs stored in a SQLite database"`
	Show  ShowCmd  `cmd:"" help:"Print the header map of a stored run"`
}

// CrawlCmd is the "crawl" command.
type CrawlCmd struct {
	IndexURL       string        `name:"index-url" default:"https://en.cppreference.com/w/cpp/symbol_index" help:"Symbol index page to crawl"`
	Output         string        `short:"o" help:"Output file (default symbol_map.json, or symbol_map.db for sqlite)"`
	Format         string        `enum:"json,sqlite" default:"json" help:"Output format (json, sqlite)"`
	Concurrency    int           `short:"c" default:"16" help:"Concurrent fetch limit"`
	RetryDelay     time.Duration `name:"retry-delay" default:"1s" help:"Delay between fetch attempts"`
	MaxAttempts    int           `name:"max-attempts" default:"0" help:"Fetch attempts per page (0 retries forever)"`
	Timeout        time.Duration `short:"t" default:"30s" help:"Fetch timeout per page"`
	Match          string        `enum:"any,all" default:"any" help:"Keep headings when any or all names are namespaced (any, all)"`
	KeepDuplicates bool          `name:"keep-duplicates" help:"Keep every page an identifier links to in the index"`
	Progress       bool          `help:"Show a progress bar on stderr"`
	Verbose        bool          `short:"v" help:"Log every fetch and page outcome"`
}

// RunsCmd is the "runs" command.
type RunsCmd struct {
	DB    string `name:"db" default:"symbol_map.db" help:"Database written by --format sqlite"`
	Limit int    `short:"n" default:"20" help:"Maximum runs to list (0 lists all)"`
}

// ShowCmd is the "show" command.
type ShowCmd struct {
	RunID string `arg:"" name:"run-id" help:"Run to print"`
	DB    string `name:"db" default:"symbol_map.db" help:"Database written by --format sqlite"`
	Pages bool   `help:"List page outcomes instead of the header map"`
}
