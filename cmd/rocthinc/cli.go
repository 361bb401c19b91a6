package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/rocthinc/rocthinc"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	Exporter rocthinc.Exporter
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Serve  ServeCmd  `cmd:"" help:"Run the export HTTP server"`
	Export ExportCmd `cmd:"" help:"Export a single URL to a zip archive"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr string  `default:":8080" env:"ROCTHINC_ADDR" help:"Listen address"`
	RPS  float64 `default:"2" env:"ROCTHINC_RPS" help:"Per-host direct fetch rate limit"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	URL     string   `arg:"" help:"Page or share-link URL to export"`
	Formats []string `short:"f" name:"format" help:"Output formats: md, tex, pdf (repeatable, default md and tex)"`
	Out     string   `short:"o" default:"conversation_export.zip" help:"Output archive path"`
}
