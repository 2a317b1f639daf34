package logx

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLoggerTagsService(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&Config{Service: "profile-concierge"}, &buf)

	logger.Info().Msg("hello")

	var event map[string]any
	if err := json.Unmarshal(buf.Bytes(), &event); err != nil {
		t.Fatalf("log line is not json: %v", err)
	}
	if event["service"] != "profile-concierge" {
		t.Fatalf("unexpected service field: %v", event["service"])
	}
	if event["message"] != "hello" {
		t.Fatalf("unexpected message: %v", event["message"])
	}
}

func TestNewLoggerLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := newLogger(&Config{}, &buf)

	logger.Debug().Msg("hidden")
	if buf.Len() != 0 {
		t.Fatalf("debug event logged at info level: %s", buf.String())
	}

	buf.Reset()
	logger = newLogger(&Config{Debug: true}, &buf)
	logger.Debug().Msg("visible")
	if buf.Len() == 0 {
		t.Fatal("debug event dropped with Debug enabled")
	}
}
