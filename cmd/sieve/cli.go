package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/sieve"
	"github.com/fwojciec/sieve/crawl"
	sieveprom "github.com/fwojciec/sieve/prometheus"
	"github.com/prometheus/client_golang/prometheus"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Config    sieve.Config
	Tokenizer *crawl.Tokenizer
	Fetcher   sieve.Fetcher
	Processor sieve.PageProcessor
	Metrics   *sieveprom.Metrics
	Registry  *prometheus.Registry
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config      string        `help:"YAML configuration file (default: .sieve.yaml in the working or home directory)"`
	DB          string        `help:"SQLite database path (default: $SIEVE_DB or ~/.sieve/sieve.db)"`
	Store       string        `enum:"sqlite,file,redis,memory" default:"sqlite" help:"Corpus and seen-set backend (${enum})"`
	RedisAddr   string        `name:"redis-addr" env:"SIEVE_REDIS_ADDR" default:"localhost:6379" help:"Redis server address"`
	RedisPrefix string        `name:"redis-prefix" default:"sieve:" help:"Prefix for Redis keys"`
	Timeout     time.Duration `default:"10s" help:"HTTP request timeout"`
	Verbose     bool          `short:"v" help:"Log every page decision"`

	Process ProcessCmd `cmd:"" help:"Fetch one page and print the links worth visiting"`
	Crawl   CrawlCmd   `cmd:"" help:"Crawl from seed URLs, one page at a time"`
	Tokens  TokensCmd  `cmd:"" help:"Print the token frequencies of a text file"`
}

// ProcessCmd is the "process" subcommand.
type ProcessCmd struct {
	URL string `arg:"" help:"Page URL"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seeds       []string `arg:"" help:"Seed URLs"`
	MaxPages    int      `short:"n" default:"0" help:"Stop after fetching this many pages (0 for no limit)"`
	MetricsAddr string   `name:"metrics-addr" help:"Serve Prometheus metrics on this address while crawling"`
}

// TokensCmd is the "tokens" subcommand.
type TokensCmd struct {
	File string `arg:"" type:"existingfile" help:"Text file to tokenize"`
	Top  int    `default:"0" help:"Print only the most frequent tokens (0 for all)"`
}
