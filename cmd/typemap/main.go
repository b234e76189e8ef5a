package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/typemap"
	"github.com/fwojciec/typemap/build"
	"github.com/fwojciec/typemap/fs"
	"github.com/fwojciec/typemap/goquery"
	tmslog "github.com/fwojciec/typemap/slog"
	"github.com/fwojciec/typemap/sqlite"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// SQLite database backing the extraction cache, when enabled.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main.
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
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("typemap"),
		kong.Description("Extract JavaScript type notations from WinRT reference documentation."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		err := fmt.Errorf("no command specified. Run 'typemap --help' to see available commands")
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.NewBuilder = func(c *ParseCmd) (*build.Builder, error) {
		return m.newBuilder(deps.Logger, deps.Stderr, c)
	}
	defer m.Close()

	return kongCtx.Run(deps)
}

// newBuilder constructs the corpus pass for the parse command, opening the
// extraction cache when one is configured.
func (m *Main) newBuilder(logger *slog.Logger, stderr io.Writer, c *ParseCmd) (*build.Builder, error) {
	corpus, err := fs.NewCorpus(c.Corpus, c.IgnoreFile)
	if err != nil {
		return nil, err
	}

	parser := goquery.NewParser()
	parser.Language = c.Language
	parser.Category = c.Category

	b := &build.Builder{
		Corpus: corpus,
		Parser: tmslog.NewLoggingDocumentParser(parser, logger),
	}

	if c.CacheDB == "" {
		return b, nil
	}
	if err := os.MkdirAll(filepath.Dir(c.CacheDB), 0755); err != nil {
		return nil, err
	}
	m.DB = sqlite.NewDB(c.CacheDB)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set TYPEMAP_CACHE_DB to use a different cache path, or to an empty value to disable caching\n")
		return nil, fmt.Errorf("failed to open cache at %q: %w", c.CacheDB, err)
	}
	b.Cache = tmslog.NewLoggingExtractionCache(
		sqlite.NewExtractionCache(m.DB, parser.Fingerprint()), logger)
	return b, nil
}

// errorMessage returns the message shown to the user for err. Application
// errors show their message; anything else is shown in full.
func errorMessage(err error) string {
	if typemap.ErrorCode(err) == typemap.EINTERNAL {
		return err.Error()
	}
	return typemap.ErrorMessage(err)
}
