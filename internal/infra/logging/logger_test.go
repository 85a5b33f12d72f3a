package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// useBuffer routes the global logger into a buffer for the test.
func useBuffer(t *testing.T, level zerolog.Level) *bytes.Buffer {
	t.Helper()
	prev := current()
	t.Cleanup(func() { SetLoggerForTest(prev) })

	var buf bytes.Buffer
	SetLoggerForTest(zerolog.New(&buf).Level(level))
	return &buf
}

func decodeLines(t *testing.T, data []byte) []map[string]any {
	t.Helper()
	var lines []map[string]any
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		if len(bytes.TrimSpace(sc.Bytes())) == 0 {
			continue
		}
		var m map[string]any
		if err := json.Unmarshal(sc.Bytes(), &m); err != nil {
			t.Fatalf("log line is not JSON: %q: %v", sc.Text(), err)
		}
		lines = append(lines, m)
	}
	return lines
}

func TestInitLogger_WritesJSONLinesToFile(t *testing.T) {
	prev := current()
	t.Cleanup(func() { SetLoggerForTest(prev) })

	logFile := filepath.Join(t.TempDir(), "cardrender.log")
	InitLogger(logFile, 1, 1, 1, false, "warn")

	Info("not written", "template", "eid")
	Warn("font fallback", "template", "eid", "cards", 2)

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	lines := decodeLines(t, data)
	if len(lines) != 1 {
		t.Fatalf("expected one line above the warn level, got %d: %q", len(lines), data)
	}
	got := lines[0]
	if got["level"] != "warn" || got["message"] != "font fallback" {
		t.Errorf("unexpected level/message: %v", got)
	}
	if got["template"] != "eid" || got["cards"] != float64(2) {
		t.Errorf("fields not written: %v", got)
	}
	if _, ok := got["time"]; !ok {
		t.Errorf("expected a timestamp: %v", got)
	}
}

func TestInitLogger_UnknownLevelIsInfo(t *testing.T) {
	prev := current()
	t.Cleanup(func() { SetLoggerForTest(prev) })

	InitLogger("", 0, 0, 0, false, "loud")
	if lvl := current().GetLevel(); lvl != zerolog.InfoLevel {
		t.Fatalf("expected info level, got %s", lvl)
	}
}

func TestSetLogLevel(t *testing.T) {
	buf := useBuffer(t, zerolog.DebugLevel)

	SetLogLevel("error")
	Warn("dropped")
	Error("kept")

	lines := decodeLines(t, buf.Bytes())
	if len(lines) != 1 || lines[0]["message"] != "kept" {
		t.Fatalf("expected only the error line, got %q", buf.String())
	}

	SetLogLevel("")
	if lvl := current().GetLevel(); lvl != zerolog.InfoLevel {
		t.Fatalf("empty level should reset to info, got %s", lvl)
	}
}

func TestFields(t *testing.T) {
	tests := []struct {
		name   string
		kv     []any
		want   map[string]any
		absent []string
	}{
		{
			name: "pairs keep their types",
			kv:   []any{"names", 3, "cached", true, "template", "eid"},
			want: map[string]any{"names": float64(3), "cached": true, "template": "eid"},
		},
		{
			name: "error values are strings",
			kv:   []any{"error", errors.New("template missing")},
			want: map[string]any{"error": "template missing"},
		},
		{
			name: "odd trailing value goes under extra",
			kv:   []any{"template", "eid", "dangling"},
			want: map[string]any{"template": "eid", "extra": "dangling"},
		},
		{
			name:   "non-string key drops its pair",
			kv:     []any{42, "lost", "name", "Ali"},
			want:   map[string]any{"name": "Ali"},
			absent: []string{"42", "lost"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			buf := useBuffer(t, zerolog.InfoLevel)
			Info("card", tc.kv...)

			lines := decodeLines(t, buf.Bytes())
			if len(lines) != 1 {
				t.Fatalf("expected one line, got %q", buf.String())
			}
			for k, v := range tc.want {
				if lines[0][k] != v {
					t.Errorf("field %q = %v, want %v", k, lines[0][k], v)
				}
			}
			for _, k := range tc.absent {
				if _, ok := lines[0][k]; ok {
					t.Errorf("field %q should be absent: %v", k, lines[0])
				}
			}
		})
	}
}

func TestDebugSuppressedAtInfo(t *testing.T) {
	buf := useBuffer(t, zerolog.InfoLevel)

	Debug("hidden", "odd")

	if buf.Len() != 0 {
		t.Fatalf("expected no output at info level, got %q", buf.String())
	}
}
