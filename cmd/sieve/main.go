package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/sieve"
	"github.com/fwojciec/sieve/crawl"
	"github.com/fwojciec/sieve/fs"
	"github.com/fwojciec/sieve/goquery"
	sievehttp "github.com/fwojciec/sieve/http"
	"github.com/fwojciec/sieve/inmem"
	sieveprom "github.com/fwojciec/sieve/prometheus"
	"github.com/fwojciec/sieve/redis"
	sieveslog "github.com/fwojciec/sieve/slog"
	"github.com/fwojciec/sieve/sqlite"
	sieveyaml "github.com/fwojciec/sieve/yaml"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Fetcher replaces the HTTP fetcher when set.
	Fetcher sieve.Fetcher

	// Registry collects pipeline metrics.
	Registry *prometheus.Registry

	closers []io.Closer
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:   defaultDBPath(),
		Registry: prometheus.NewRegistry(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	var first error
	for i := len(m.closers) - 1; i >= 0; i-- {
		if err := m.closers[i].Close(); err != nil && first == nil {
			first = err
		}
	}
	m.closers = nil
	return first
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("sieve"),
		kong.Description("Focused-crawler content filter."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'sieve --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd = strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose {
		level = slog.LevelInfo
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	cfg, err := loadConfig(cli.Config)
	if err != nil {
		fmt.Fprintf(stderr, "error: %s\n", sieve.ErrorMessage(err))
		return err
	}
	deps.Config = cfg
	deps.Tokenizer = crawl.NewTokenizer(cfg.StopWords, cfg.BlockLimit)

	if cmd == "tokens" {
		return kongCtx.Run(deps)
	}

	if cli.DB != "" {
		m.DBPath = cli.DB
	}
	defer m.Close()

	corpus, seen, opts, err := m.openStores(ctx, cli, logger, stderr)
	if err != nil {
		return err
	}

	pipeline, err := crawl.NewPipeline(cfg, goquery.NewExtractor(), corpus, seen, logger, opts...)
	if err != nil {
		return err
	}
	deps.Metrics = sieveprom.NewMetrics(m.Registry)
	deps.Registry = m.Registry
	deps.Processor = sieveslog.NewLoggingProcessor(
		sieveprom.NewProcessor(pipeline, deps.Metrics),
		logger,
	)

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = sievehttp.NewFetcher(sievehttp.WithTimeout(cli.Timeout))
	}
	deps.Fetcher = sieveslog.NewLoggingFetcher(crawl.NewRetryFetcher(fetcher, logger), logger)

	return kongCtx.Run(deps)
}

// openStores builds the corpus and seen stores selected by --store, and the
// detector options a shared backend needs.
func (m *Main) openStores(ctx context.Context, cli *CLI, logger *slog.Logger, stderr io.Writer) (sieve.CorpusStore, sieve.SeenStore, []crawl.DetectorOption, error) {
	switch cli.Store {
	case "memory":
		return inmem.NewCorpusStore(), inmem.NewSeenStore(), nil, nil

	case "file":
		dir := filepath.Dir(m.DBPath)
		return fs.NewCorpusFile(filepath.Join(dir, "corpus.json"), logger),
			fs.NewSeenFile(filepath.Join(dir, "seen.txt"), logger),
			nil, nil

	case "redis":
		client := redis.NewClient(cli.RedisAddr, cli.RedisPrefix)
		if err := client.Ping(ctx); err != nil {
			client.Close()
			fmt.Fprintf(stderr, "Hint: Set SIEVE_REDIS_ADDR or --redis-addr to the Redis server\n")
			return nil, nil, nil, fmt.Errorf("failed to connect to redis at %q: %w", cli.RedisAddr, err)
		}
		m.closers = append(m.closers, client)
		lock := redis.NewLock(client, "corpus:lock", redis.DefaultLockTTL)
		return redis.NewCorpusStore(client, logger), redis.NewSeenStore(client),
			[]crawl.DetectorOption{crawl.WithLocker(lock)}, nil

	default:
		db := sqlite.NewDB(m.DBPath)
		movedTo, err := db.OpenOrRecover()
		if err != nil {
			fmt.Fprintf(stderr, "Hint: Set SIEVE_DB to use a different database path\n")
			return nil, nil, nil, fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		if movedTo != "" {
			logger.Warn("database unreadable, starting empty", "path", m.DBPath, "moved_to", movedTo)
		}
		m.closers = append(m.closers, db)
		return sqlite.NewCorpusStore(db), sqlite.NewSeenStore(db), nil, nil
	}
}

// loadConfig returns the defaults overlaid with the configuration file, if
// any. An explicitly named file must exist.
func loadConfig(path string) (sieve.Config, error) {
	found := sieveyaml.FindConfigFile(path)
	if found == "" {
		if path != "" {
			return sieve.Config{}, sieve.Errorf(sieve.ENOTFOUND, "configuration file %q not found", path)
		}
		return sieve.DefaultConfig(), nil
	}
	return sieveyaml.LoadConfig(found)
}

func defaultDBPath() string {
	if path := os.Getenv("SIEVE_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "sieve.db"
	}
	dir := filepath.Join(home, ".sieve")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "sieve.db")
}
