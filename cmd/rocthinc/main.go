package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"github.com/rocthinc/rocthinc"
	"github.com/rocthinc/rocthinc/export"
	"github.com/rocthinc/rocthinc/goquery"
	"github.com/rocthinc/rocthinc/htmltomarkdown"
	rochttp "github.com/rocthinc/rocthinc/http"
	"github.com/rocthinc/rocthinc/rod"
	rocslog "github.com/rocthinc/rocthinc/slog"
	"github.com/rocthinc/rocthinc/zip"
)

func main() {
	ctx := context.Background()

	m := NewMain()
	defer m.Close()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Browser shared by every rendered fetch. Launched lazily on first use.
	Browser *rod.Manager

	// Exporter wired by Run. Exposed for end-to-end testing.
	Exporter rocthinc.Exporter
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		Browser: rod.NewManager(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.Browser != nil {
		return m.Browser.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	logger := slog.New(slog.NewTextHandler(stderr, nil))

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Logger: logger,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("rocthinc"),
		kong.Description("Export web pages and AI chat transcripts as Markdown and LaTeX archives."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'rocthinc --help' to see available commands")
	}
	if cmd := args[0]; cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.Exporter = m.buildExporter(logger, cli.Serve.RPS)
	deps.Exporter = m.Exporter

	return kongCtx.Run(deps)
}

// buildExporter wires the full pipeline: direct and rendered fetchers with
// wall-based fallback, the extraction chain, both renderers, and the zip
// packager.
func (m *Main) buildExporter(logger *slog.Logger, rps float64) rocthinc.Exporter {
	if rps <= 0 {
		rps = defaultRPS
	}
	wall := rocthinc.NewWallPolicy()

	direct := rochttp.NewFetcher(
		rochttp.WithHostLimiter(rochttp.NewHostLimiter(rps)),
	)
	rendered := rod.NewFetcher(m.Browser)
	chat := rod.NewFetcher(m.Browser, rod.WithWaitSelector(rocthinc.RoleSelector))

	fetcher := rocslog.NewLoggingFetcher(
		export.NewFallbackFetcher(direct, rendered, chat, wall),
		logger,
	)

	chain := rocthinc.NewChain(
		rocslog.NewLoggingExtractor("dom", goquery.NewDOMScanner(
			goquery.WithConverter(htmltomarkdown.NewConverter()),
		), logger),
		rocslog.NewLoggingExtractor("structured", goquery.NewNextDataExtractor(), logger),
		rocslog.NewLoggingExtractor("pagetext", goquery.NewPageTextExtractor(), logger),
	)

	return export.NewService(export.Config{
		Fetcher:   fetcher,
		Wall:      wall,
		Extractor: chain,
		Renderers: []rocthinc.Renderer{
			rocthinc.NewMarkdownRenderer(),
			rocthinc.NewLaTeXRenderer(),
		},
		Packager: zip.NewPackager(),
		Logger:   logger,
	})
}

// defaultRPS is the per-host direct fetch rate used when no flag overrides it.
const defaultRPS = 2.0
