package slog_test

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocthinc/rocthinc"
	"github.com/rocthinc/rocthinc/mock"
	rocslog "github.com/rocthinc/rocthinc/slog"
)

func TestLoggingExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("logs hit with message count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html, url string, platform rocthinc.Platform) (*rocthinc.Conversation, error) {
				return rocthinc.NewConversation(string(platform), url, []rocthinc.Message{
					{Speaker: rocthinc.SpeakerUser, Content: "Hello"},
					{Speaker: rocthinc.SpeakerAssistant, Content: "Hi there"},
				}), nil
			},
		}

		extractor := rocslog.NewLoggingExtractor("dom", inner, logger)
		conv, err := extractor.Extract("<html></html>", "https://chatgpt.com/share/abc", rocthinc.PlatformChatGPT)

		require.NoError(t, err)
		require.NotNil(t, conv)
		output := buf.String()
		assert.Contains(t, output, "extract")
		assert.Contains(t, output, "strategy=dom")
		assert.Contains(t, output, "messages=2")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs miss at debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		inner := &mock.Extractor{
			ExtractFn: func(html, url string, platform rocthinc.Platform) (*rocthinc.Conversation, error) {
				return nil, nil
			},
		}

		extractor := rocslog.NewLoggingExtractor("structured", inner, logger)
		conv, err := extractor.Extract("<html></html>", "https://example.com", rocthinc.PlatformGeneric)

		require.NoError(t, err)
		assert.Nil(t, conv)
		output := buf.String()
		assert.Contains(t, output, "extract miss")
		assert.Contains(t, output, "strategy=structured")
	})

	t.Run("logs error on failure", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.Extractor{
			ExtractFn: func(html, url string, platform rocthinc.Platform) (*rocthinc.Conversation, error) {
				return nil, errors.New("parse failure")
			},
		}

		extractor := rocslog.NewLoggingExtractor("dom", inner, logger)
		_, err := extractor.Extract("<html></html>", "https://example.com", rocthinc.PlatformGeneric)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "err=\"parse failure\"")
	})
}
