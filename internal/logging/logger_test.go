// Recipix - Recipe Discovery and Social Engagement Backend
// Copyright 2026 Zumar I. (ItsZumar)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/ItsZumar/Recipix-sub000

package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"info", zerolog.InfoLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"error", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"disabled", zerolog.Disabled},
		{"bogus", zerolog.InfoLevel},
		{"", zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInitJSONOutput(t *testing.T) {
	// Not parallel: reconfigures the global logger.
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("recipe_id", "abc-123").Msg("recipe indexed")

	output := buf.String()
	if !strings.Contains(output, `"message":"recipe indexed"`) {
		t.Errorf("expected JSON message field, got %q", output)
	}
	if !strings.Contains(output, `"recipe_id":"abc-123"`) {
		t.Errorf("expected recipe_id field, got %q", output)
	}
	if !strings.Contains(output, `"level":"info"`) {
		t.Errorf("expected level field, got %q", output)
	}
}

func TestInitLevelFiltering(t *testing.T) {
	// Not parallel: reconfigures the global logger.
	var buf bytes.Buffer
	Init(Config{Level: "warn", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Debug().Msg("suppressed debug")
	Info().Msg("suppressed info")
	Warn().Msg("visible warning")

	output := buf.String()
	if strings.Contains(output, "suppressed") {
		t.Errorf("expected debug and info events to be filtered, got %q", output)
	}
	if !strings.Contains(output, "visible warning") {
		t.Errorf("expected warn event to pass, got %q", output)
	}
}

func TestWithChildLogger(t *testing.T) {
	// Not parallel: reconfigures the global logger.
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	child := With().Str("component", "ratings").Logger()
	child.Info().Msg("aggregate updated")

	output := buf.String()
	if !strings.Contains(output, `"component":"ratings"`) {
		t.Errorf("expected component field from child logger, got %q", output)
	}
}

func TestSetLogger(t *testing.T) {
	// Not parallel: replaces the global logger.
	var buf bytes.Buffer
	SetLogger(NewTestLogger(&buf))
	defer Init(DefaultConfig())

	Info().Msg("replaced logger")

	if !strings.Contains(buf.String(), "replaced logger") {
		t.Errorf("expected output through replaced logger, got %q", buf.String())
	}
}
