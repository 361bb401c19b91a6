package slog

import (
	"log/slog"
	"time"

	"github.com/rocthinc/rocthinc"
)

// Ensure LoggingExtractor implements rocthinc.Extractor.
var _ rocthinc.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with logging of hits and misses.
type LoggingExtractor struct {
	name   string
	next   rocthinc.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor. The name identifies
// the wrapped strategy in log output.
func NewLoggingExtractor(name string, next rocthinc.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{name: name, next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the result.
func (e *LoggingExtractor) Extract(html, url string, platform rocthinc.Platform) (*rocthinc.Conversation, error) {
	begin := time.Now()
	conv, err := e.next.Extract(html, url, platform)
	switch {
	case err != nil:
		e.logger.Error("extract",
			"strategy", e.name,
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	case conv == nil:
		e.logger.Debug("extract miss",
			"strategy", e.name,
			"url", url,
			"duration", time.Since(begin),
		)
	default:
		e.logger.Info("extract",
			"strategy", e.name,
			"url", url,
			"messages", len(conv.Messages),
			"duration", time.Since(begin),
		)
	}
	return conv, err
}
