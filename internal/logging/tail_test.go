package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeLines(t *testing.T, path string, n int) {
	t.Helper()
	var b strings.Builder
	for i := 1; i <= n; i++ {
		b.WriteString("line")
		b.WriteByte(byte('0' + i%10))
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestFindLatestLog(t *testing.T) {
	t.Run("missing directory", func(t *testing.T) {
		got, err := FindLatestLog(filepath.Join(t.TempDir(), "missing"))
		if err != nil || got != "" {
			t.Errorf("got %q, %v", got, err)
		}
	})

	t.Run("picks newest day and ignores other files", func(t *testing.T) {
		dir := t.TempDir()
		for _, name := range []string{"20240101.jsonl", "20240315.jsonl", "20240202.jsonl", "notes.txt"} {
			if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
				t.Fatal(err)
			}
		}
		if err := os.Mkdir(filepath.Join(dir, "20991231.jsonl"), 0755); err != nil {
			t.Fatal(err)
		}
		got, err := FindLatestLog(dir)
		if err != nil {
			t.Fatal(err)
		}
		if filepath.Base(got) != "20240315.jsonl" {
			t.Errorf("got %q", got)
		}
	})
}

func TestTailLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	writeLines(t, path, 5)

	tests := []struct {
		name string
		n    int
		want string
	}{
		{"all lines", 0, "line1\nline2\nline3\nline4\nline5\n"},
		{"last two", 2, "line4\nline5\n"},
		{"more than available", 10, "line1\nline2\nline3\nline4\nline5\n"},
		{"exactly all", 5, "line1\nline2\nline3\nline4\nline5\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := TailLog(context.Background(), &buf, path, tt.n, false); err != nil {
				t.Fatalf("TailLog: %v", err)
			}
			if buf.String() != tt.want {
				t.Errorf("got %q, want %q", buf.String(), tt.want)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		var buf bytes.Buffer
		if err := TailLog(context.Background(), &buf, filepath.Join(t.TempDir(), "nope"), 1, false); err == nil {
			t.Error("expected error")
		}
	})
}

func TestTailLogLargeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "big.jsonl")
	line := strings.Repeat("x", 999) + "\n"
	content := strings.Repeat(line, 20) + "last\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := TailLog(context.Background(), &buf, path, 2, false); err != nil {
		t.Fatal(err)
	}
	if buf.String() != line+"last\n" {
		t.Errorf("unexpected tail of %d bytes", buf.Len())
	}
}

func TestTailLogFollow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.jsonl")
	writeLines(t, path, 1)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	go func() {
		time.Sleep(50 * time.Millisecond)
		f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return
		}
		f.WriteString("appended\n")
		f.Close()
	}()

	var buf bytes.Buffer
	if err := TailLog(ctx, &buf, path, 0, true); err != nil {
		t.Fatalf("TailLog: %v", err)
	}
	if buf.String() != "line1\nappended\n" {
		t.Errorf("got %q", buf.String())
	}
}
