// Package export implements the end-to-end export pipeline: fetch a URL,
// extract its conversation, render the requested formats, and pack them
// into a downloadable archive.
package export

import (
	"context"
	"log/slog"
	"net/url"

	"github.com/rocthinc/rocthinc"
)

// Ensure Service implements rocthinc.Exporter.
var _ rocthinc.Exporter = (*Service)(nil)

// Service orchestrates the pipeline. Fetching goes through a fallback
// fetcher that escalates from direct HTTP to a rendering browser, so by the
// time extraction runs the HTML is as complete as the source allows.
type Service struct {
	fetcher   rocthinc.Fetcher
	wall      *rocthinc.WallPolicy
	extractor rocthinc.Extractor
	renderers map[rocthinc.Format]rocthinc.Renderer
	packager  rocthinc.Packager
	logger    *slog.Logger
}

// Config carries the collaborators a Service needs. All fields except
// Logger are required.
type Config struct {
	Fetcher   rocthinc.Fetcher
	Wall      *rocthinc.WallPolicy
	Extractor rocthinc.Extractor
	Renderers []rocthinc.Renderer
	Packager  rocthinc.Packager
	Logger    *slog.Logger
}

// NewService creates a Service from its collaborators.
func NewService(cfg Config) *Service {
	renderers := make(map[rocthinc.Format]rocthinc.Renderer, len(cfg.Renderers))
	for _, r := range cfg.Renderers {
		renderers[r.Format()] = r
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		fetcher:   cfg.Fetcher,
		wall:      cfg.Wall,
		extractor: cfg.Extractor,
		renderers: renderers,
		packager:  cfg.Packager,
		logger:    logger,
	}
}

// Export runs the full pipeline for one URL.
func (s *Service) Export(ctx context.Context, rawURL string, formats []rocthinc.Format) (*rocthinc.Archive, error) {
	if err := validateURL(rawURL); err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		formats = rocthinc.DefaultFormats
	}

	platform := rocthinc.Classify(rawURL)
	s.logger.Info("export started", "url", rawURL, "platform", platform, "formats", formats)

	html, err := s.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if s.wall.Detect(html, platform) {
		return nil, rocthinc.Errorf(rocthinc.EINTERSTITIAL,
			"the page at %s appears to be behind a login or app interstitial; open the conversation in a browser and export a public share link instead", rawURL)
	}

	conv, err := s.extractor.Extract(html, rawURL, platform)
	if err != nil {
		return nil, err
	}

	entries, err := s.render(conv, formats)
	if err != nil {
		return nil, err
	}

	data, err := s.packager.Pack(entries)
	if err != nil {
		return nil, err
	}

	s.logger.Info("export finished", "url", rawURL, "messages", len(conv.Messages), "bytes", len(data))
	return &rocthinc.Archive{Filename: rocthinc.ArchiveFilename, Data: data}, nil
}

// render produces one archive entry per requested format, in request order.
func (s *Service) render(conv *rocthinc.Conversation, formats []rocthinc.Format) ([]rocthinc.Entry, error) {
	entries := make([]rocthinc.Entry, 0, len(formats))
	for _, f := range formats {
		if f == rocthinc.FormatPDF {
			entries = append(entries, rocthinc.Entry{
				Name: f.Filename(),
				Data: []byte(rocthinc.PDFPlaceholder),
			})
			continue
		}
		renderer, ok := s.renderers[f]
		if !ok {
			return nil, rocthinc.Errorf(rocthinc.EINTERNAL, "no renderer registered for format %q", f)
		}
		doc, err := renderer.Render(conv)
		if err != nil {
			return nil, err
		}
		entries = append(entries, rocthinc.Entry{Name: f.Filename(), Data: []byte(doc)})
	}
	return entries, nil
}

// validateURL accepts absolute http and https URLs only.
func validateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rocthinc.Errorf(rocthinc.EINVALID, "invalid URL %q", rawURL)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return rocthinc.Errorf(rocthinc.EINVALID, "URL must be absolute http or https, got %q", rawURL)
	}
	return nil
}
