package main_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocthinc/rocthinc"
	main "github.com/rocthinc/rocthinc/cmd/rocthinc"
	"github.com/rocthinc/rocthinc/mock"
)

func testDeps(exporter rocthinc.Exporter, stdout, stderr io.Writer) *main.Dependencies {
	return &main.Dependencies{
		Ctx:      context.Background(),
		Stdout:   stdout,
		Stderr:   stderr,
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		Exporter: exporter,
	}
}

func TestExportCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("writes archive to output path", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		var gotFormats []rocthinc.Format
		exporter := &mock.Exporter{
			ExportFn: func(ctx context.Context, url string, formats []rocthinc.Format) (*rocthinc.Archive, error) {
				gotURL = url
				gotFormats = formats
				return &rocthinc.Archive{Filename: rocthinc.ArchiveFilename, Data: []byte("zipdata")}, nil
			},
		}

		out := filepath.Join(t.TempDir(), "export.zip")
		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		cmd := &main.ExportCmd{
			URL:     "https://chatgpt.com/share/abc",
			Formats: []string{"md"},
			Out:     out,
		}
		err := cmd.Run(testDeps(exporter, stdout, stderr))

		require.NoError(t, err)
		assert.Equal(t, "https://chatgpt.com/share/abc", gotURL)
		assert.Equal(t, []rocthinc.Format{rocthinc.FormatMarkdown}, gotFormats)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, "zipdata", string(data))
		assert.Contains(t, stdout.String(), "Wrote")
		assert.Empty(t, stderr.String())
	})

	t.Run("empty formats fall back to defaults", func(t *testing.T) {
		t.Parallel()

		var gotFormats []rocthinc.Format
		exporter := &mock.Exporter{
			ExportFn: func(ctx context.Context, url string, formats []rocthinc.Format) (*rocthinc.Archive, error) {
				gotFormats = formats
				return &rocthinc.Archive{Filename: rocthinc.ArchiveFilename, Data: []byte("zipdata")}, nil
			},
		}

		cmd := &main.ExportCmd{
			URL: "https://example.com/page",
			Out: filepath.Join(t.TempDir(), "export.zip"),
		}
		err := cmd.Run(testDeps(exporter, &bytes.Buffer{}, &bytes.Buffer{}))

		require.NoError(t, err)
		assert.Equal(t, rocthinc.DefaultFormats, gotFormats)
	})

	t.Run("reports export error on stderr", func(t *testing.T) {
		t.Parallel()

		exporter := &mock.Exporter{
			ExportFn: func(ctx context.Context, url string, formats []rocthinc.Format) (*rocthinc.Archive, error) {
				return nil, rocthinc.Errorf(rocthinc.EINTERSTITIAL, "the page appears to be behind a login")
			},
		}

		stderr := &bytes.Buffer{}
		cmd := &main.ExportCmd{
			URL: "https://example.com/private",
			Out: filepath.Join(t.TempDir(), "export.zip"),
		}
		err := cmd.Run(testDeps(exporter, &bytes.Buffer{}, stderr))

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "behind a login")
	})
}
