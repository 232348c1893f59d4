package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/alecthomas/kong"

	"homescout"
	"homescout/crawl"
	"homescout/fs"
	hsgoquery "homescout/goquery"
	hshttp "homescout/http"
	"homescout/rod"
	hsslog "homescout/slog"
	"homescout/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Location    string        `short:"l" default:"NY" help:"Region to search, e.g. \"Austin, TX\""`
	Type        string        `short:"t" default:"buy" enum:"buy,rent" help:"Listing type"`
	Results     int           `short:"n" default:"20" help:"Number of listings wanted"`
	MaxPages    int           `short:"p" default:"5" help:"Maximum result pages to visit"`
	StartURL    string        `help:"Absolute URL of the first result page (overrides location/type)"`
	Out         string        `short:"o" default:"listings.ndjson" help:"Output NDJSON path"`
	DB          string        `help:"Also store listings in a SQLite database at this path"`
	Browser     bool          `short:"b" help:"Fetch with a headless browser instead of plain HTTP"`
	Concurrency int           `short:"c" default:"2" help:"Concurrent page fetch limit"`
	Rate        float64       `default:"0.5" help:"Max requests per second per host"`
	Timeout     time.Duration `default:"30s" help:"Fetch timeout per page"`
	Verbose     bool          `short:"v" help:"Log per-page progress"`
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("homescout"),
		kong.Description("Crawl a property-search site into a listings dataset"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	logLevel := slog.LevelWarn
	if cli.Verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))

	// Fetcher: plain HTTP by default, browser automation on request.
	var fetcher homescout.Fetcher
	if cli.Browser {
		rodFetcher, err := rod.NewFetcher()
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		fetcher = rodFetcher
	} else {
		fetcher = hshttp.NewFetcher(hshttp.WithTimeout(cli.Timeout))
	}
	if cli.Verbose {
		fetcher = hsslog.NewLoggingFetcher(fetcher, logger)
	}
	defer fetcher.Close()

	// Writers: NDJSON dataset, plus SQLite when requested.
	ndjson, err := fs.NewWriter(cli.Out)
	if err != nil {
		return fmt.Errorf("failed to open output: %w", err)
	}
	var writer homescout.ListingWriter = ndjson

	var db *sqlite.DB
	if cli.DB != "" {
		db = sqlite.NewDB(cli.DB)
		if err := db.Open(); err != nil {
			_ = ndjson.Abort()
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		writer = NewTeeWriter(ndjson, sqlite.NewListingService(db))
	}
	if cli.Verbose {
		writer = hsslog.NewLoggingWriter(writer, logger)
	}

	crawler := &crawl.Crawler{
		Fetcher:     fetcher,
		Extractor:   hsgoquery.NewExtractor(),
		Paginator:   hsgoquery.NewPaginator(),
		Writer:      writer,
		Limiter:     crawl.NewHostLimiter(cli.Rate),
		Logger:      logger,
		Concurrency: cli.Concurrency,
	}

	search := homescout.Search{
		StartURL:      cli.StartURL,
		Location:      cli.Location,
		Type:          homescout.ListingType(cli.Type),
		ResultsWanted: cli.Results,
		MaxPages:      cli.MaxPages,
	}

	result, runErr := crawler.Run(ctx, search)

	// Partial results are retained regardless of how the run ended.
	if err := writer.Close(); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to finalize output: %w", err)
	}

	fmt.Fprintf(stdout, "Saved %d listings from %d pages to %s\n", result.Saved, result.Pages, cli.Out)
	if result.Failed > 0 {
		fmt.Fprintf(stdout, "Abandoned %d pages (%d blocked)\n", result.Failed, result.Blocked)
	}

	return runErr
}
