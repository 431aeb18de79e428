package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestDefaultLoggerRoutesByLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	l := NewWriterLogger(&stdout, &stderr)

	l.Debug("hidden")
	l.Info("loaded", Fields{"bins": 50})
	l.Warn("careful")
	l.Error(errors.New("boom"), "write failed", Fields{"path": "exp_table.h"})

	if strings.Contains(stdout.String(), "hidden") {
		t.Errorf("debug line printed at info level: %q", stdout.String())
	}
	if got, want := stdout.String(), "[INFO] loaded map[bins:50]\n"; got != want {
		t.Errorf("stdout = %q, want %q", got, want)
	}
	wantErr := "[WARN] careful\n[ERROR] write failed: boom map[path:exp_table.h]\n"
	if got := stderr.String(); got != wantErr {
		t.Errorf("stderr = %q, want %q", got, wantErr)
	}
}

func TestWithFieldsMergesAndKeepsParent(t *testing.T) {
	var stdout bytes.Buffer
	l := NewWriterLogger(&stdout, &stdout)
	l.SetLevel(DebugLevel)

	child := l.WithFields(Fields{"component": "loader"})
	child.Debug("scan", Fields{"line": 3})
	l.Debug("plain")

	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2: %q", len(lines), stdout.String())
	}
	if lines[0] != "[DEBUG] scan map[component:loader line:3]" {
		t.Errorf("child line = %q", lines[0])
	}
	if lines[1] != "[DEBUG] plain" {
		t.Errorf("parent line = %q", lines[1])
	}
}

func TestFatalExits(t *testing.T) {
	var stderr bytes.Buffer
	l := NewWriterLogger(&stderr, &stderr)
	code := -1
	l.exit = func(c int) { code = c }

	l.Fatal(errors.New("gone"), "cannot continue")

	if code != 1 {
		t.Errorf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "[FATAL] cannot continue: gone") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestColorsWrapErrorLines(t *testing.T) {
	var stderr bytes.Buffer
	l := NewWriterLogger(&stderr, &stderr)
	l.SetColors(true)

	l.Error(nil, "red")

	if got := stderr.String(); !strings.HasPrefix(got, ColorRed) || !strings.Contains(got, ColorReset) {
		t.Errorf("error line not colored: %q", got)
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    Level
		wantErr bool
	}{
		{"debug", DebugLevel, false},
		{"INFO", InfoLevel, false},
		{"", InfoLevel, false},
		{"warning", WarnLevel, false},
		{"error", ErrorLevel, false},
		{"verbose", InfoLevel, true},
	}
	for _, tt := range tests {
		got, err := ParseLevel(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseLevel(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestSetGlobalLoggerNil(t *testing.T) {
	prev := GetGlobalLogger()
	defer SetGlobalLogger(prev)

	SetGlobalLogger(nil)
	if _, ok := GetGlobalLogger().(*NoOpLogger); !ok {
		t.Errorf("nil logger should install NoOpLogger, got %T", GetGlobalLogger())
	}
	GetGlobalLogger().Info("dropped")
}
