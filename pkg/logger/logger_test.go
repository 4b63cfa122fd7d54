package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" DEBUG ": slog.LevelDebug,
		"warn":    slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLogLevel(in); got != want {
			t.Errorf("ParseLogLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	if ParseFormat("TEXT") != FormatText {
		t.Fatal("expected text format")
	}
	if ParseFormat("") != FormatJSON || ParseFormat("xml") != FormatJSON {
		t.Fatal("expected json fallback")
	}
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "exmenu", "v1.2.3", "info", FormatJSON)

	log.Debug("hidden")
	log.Info("menu built", "pages", 2)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected 1 line, got %d: %s", len(lines), buf.String())
	}

	var rec map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &rec); err != nil {
		t.Fatalf("failed to decode log line: %v", err)
	}
	if rec["module"] != "exmenu" || rec["version"] != "v1.2.3" || rec["msg"] != "menu built" {
		t.Fatalf("unexpected record %v", rec)
	}
	if _, ok := rec["source"]; ok {
		t.Fatal("expected no source above debug level")
	}
}

func TestNewText(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, "exmenu", "dev", "debug", FormatText)

	log.Debug("page compiled", "controls", 8)

	out := buf.String()
	for _, want := range []string{"level=DEBUG", "msg=\"page compiled\"", "controls=8", "module=exmenu", "source="} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in %q", want, out)
		}
	}
}
