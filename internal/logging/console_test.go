package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/Rudull/baby-project-manager/internal/project"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"fatal", log.FatalLevel},
		{"chatty", log.InfoLevel},
	}
	for _, tt := range tests {
		if got := ParseLogLevel(tt.input); got != tt.want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestParseLogFormatter(t *testing.T) {
	tests := []struct {
		input string
		want  log.Formatter
	}{
		{"json", log.JSONFormatter},
		{"logfmt", log.LogfmtFormatter},
		{"text", log.TextFormatter},
		{"", log.TextFormatter},
	}
	for _, tt := range tests {
		if got := ParseLogFormatter(tt.input); got != tt.want {
			t.Errorf("ParseLogFormatter(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestLogChange(t *testing.T) {
	tests := []struct {
		name      string
		change    project.Change
		wantLevel string
		wantMsg   string
	}{
		{
			name:      "applied",
			change:    project.Change{Op: project.OpDuplicate, Actual: 2, Detail: `duplicated "A"`, Applied: true},
			wantLevel: "INFO",
			wantMsg:   `duplicated "A"`,
		},
		{
			name:      "boundary no-op",
			change:    project.Change{Op: project.OpMove, Actual: 0},
			wantLevel: "DEBU",
			wantMsg:   "Nothing to change",
		},
		{
			name:      "ignored edit",
			change:    project.Change{Op: project.OpEdit, Field: project.FieldDuration, Ignored: errors.New("invalid duration")},
			wantLevel: "WARN",
			wantMsg:   "Edit ignored",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			opts := DefaultConsoleOptions()
			opts.Level = log.DebugLevel
			logger := NewConsole(&buf, opts)

			LogChange(logger, tt.change)

			out := buf.String()
			if !strings.Contains(out, tt.wantLevel) {
				t.Errorf("expected level %s in %q", tt.wantLevel, out)
			}
			if !strings.Contains(out, tt.wantMsg) {
				t.Errorf("expected message %q in %q", tt.wantMsg, out)
			}
		})
	}
}

func TestNewConsoleFromConfig(t *testing.T) {
	var buf bytes.Buffer
	logger := NewConsoleFromConfig(&buf, "warn", "json", false, false)
	logger.Info("hidden")
	logger.Warn("shown", "row", 3)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info message logged at warn level: %q", out)
	}
	if !strings.Contains(out, `"msg":"shown"`) || !strings.Contains(out, `"row":3`) {
		t.Errorf("expected JSON output, got %q", out)
	}
}
