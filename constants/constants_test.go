package constants

import (
	"errors"
	"io/fs"
	"path/filepath"
	"strings"
	"testing"
)

var firmwareNames = Names{
	SampleCount: "NUM_SAMPLES",
	FreqBins:    "FREQ_BINS",
	FreqStart:   "FREQ_START",
	FreqEnd:     "FREQ_END",
}

func allNames() []string {
	return []string{firmwareNames.SampleCount, firmwareNames.FreqBins, firmwareNames.FreqStart, firmwareNames.FreqEnd}
}

func TestParseDefinition(t *testing.T) {
	tests := []struct {
		line      string
		name, val string
		ok        bool
	}{
		{"#define NUM_SAMPLES 30    // comment", "NUM_SAMPLES", "30", true},
		{"\t#define  FREQ_END\t0.4", "FREQ_END", "0.4", true},
		{"#define MODEL_ORDER ((int)(NUM_SAMPLES / log(2*NUM_SAMPLES) + 0.5))", "MODEL_ORDER", "((int)(NUM_SAMPLES", true},
		{"#define MAX(a, b) ((a) > (b) ? (a) : (b))", "", "", false},
		{"#define _CONSTANTS_H", "", "", false},
		{"// #define NUM_SAMPLES 40", "", "", false},
		{"#ifndef NUM_SAMPLES", "", "", false},
		{"", "", "", false},
	}
	for _, tt := range tests {
		name, val, ok := ParseDefinition(tt.line)
		if ok != tt.ok || name != tt.name || val != tt.val {
			t.Errorf("ParseDefinition(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.line, name, val, ok, tt.name, tt.val, tt.ok)
		}
	}
}

func TestReadHeaderFirmwareConstants(t *testing.T) {
	h, err := ReadHeader(filepath.Join("testdata", "Constants.h"), allNames()...)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}

	set, err := Load(h, h, firmwareNames)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := Set{SampleCount: 30, FreqBins: 50, FreqStart: 0.04, FreqEnd: 0.4}
	if set != want {
		t.Errorf("Load = %+v, want %+v", set, want)
	}

	def, _ := h.Lookup("NUM_SAMPLES")
	if def.Line != 15 || !strings.HasSuffix(def.Where(), "Constants.h:15") {
		t.Errorf("NUM_SAMPLES located at %s", def.Where())
	}
}

func TestReadHeaderMissingFile(t *testing.T) {
	_, err := ReadHeader(filepath.Join(t.TempDir(), "BoundedQueue.hpp"), "NUM_SAMPLES")

	var srcErr *SourceUnavailableError
	if !errors.As(err, &srcErr) {
		t.Fatalf("err = %v, want *SourceUnavailableError", err)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err should wrap fs.ErrNotExist: %v", err)
	}
}

func TestScanHeaderRedefinition(t *testing.T) {
	src := "#define FREQ_BINS 50\n#define FREQ_BINS 50\n"
	if _, err := ScanHeader("same.h", strings.NewReader(src), "FREQ_BINS"); err != nil {
		t.Errorf("identical redefinition rejected: %v", err)
	}

	src = "#define FREQ_BINS 50\n#define FREQ_BINS 64\n"
	_, err := ScanHeader("conflict.h", strings.NewReader(src), "FREQ_BINS")
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *ConfigurationError", err)
	}
	if !strings.Contains(err.Error(), "conflict.h:2") {
		t.Errorf("error does not locate the redefinition: %v", err)
	}

	// unrelated names may be redefined freely
	src = "#define LED 1\n#define LED 2\n#define FREQ_BINS 8\n"
	if _, err := ScanHeader("other.h", strings.NewReader(src), "FREQ_BINS"); err != nil {
		t.Errorf("unrelated redefinition rejected: %v", err)
	}
}

func TestLoadOnlyQueueSourceYieldsSampleCount(t *testing.T) {
	queue := Static{"FREQ_BINS": "4", "FREQ_START": "0.0", "FREQ_END": "0.5"}
	grid := Static{"NUM_SAMPLES": "1024", "FREQ_BINS": "4", "FREQ_START": "0.0", "FREQ_END": "0.5"}

	_, err := Load(queue, grid, firmwareNames)
	if err == nil || !strings.Contains(err.Error(), "NUM_SAMPLES is not defined in static") {
		t.Errorf("err = %v, want NUM_SAMPLES missing from queue source", err)
	}
}

func TestLoadMissingFreqEnd(t *testing.T) {
	h, err := ReadHeader(filepath.Join("testdata", "MEM.h"), allNames()...)
	if err != nil {
		t.Fatalf("ReadHeader: %v", err)
	}

	_, err = Load(Static{"NUM_SAMPLES": "30"}, h, firmwareNames)

	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *ConfigurationError", err)
	}
	if len(cfgErr.Problems) != 1 || !strings.Contains(cfgErr.Problems[0], "FREQ_END is not defined") {
		t.Errorf("problems = %q", cfgErr.Problems)
	}
}

func TestLoadReportsEveryProblem(t *testing.T) {
	queue := Static{"NUM_SAMPLES": "0"}
	grid := Static{"FREQ_BINS": "fifty", "FREQ_START": "nan"}

	_, err := Load(queue, grid, firmwareNames)
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("err = %v, want *ConfigurationError", err)
	}
	if len(cfgErr.Problems) != 4 {
		t.Fatalf("got %d problems, want 4: %q", len(cfgErr.Problems), cfgErr.Problems)
	}
	for _, want := range []string{"FREQ_BINS", "FREQ_START", "FREQ_END is not defined", "NUM_SAMPLES must be positive"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestLoadZeroStartIsDefined(t *testing.T) {
	set, err := Load(Static{"NUM_SAMPLES": "8"}, Static{
		"FREQ_BINS":  "2",
		"FREQ_START": "0.0",
		"FREQ_END":   "0.25",
	}, firmwareNames)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if set.FreqStart != 0 || set.FreqEnd != 0.25 || set.SampleCount != 8 || set.FreqBins != 2 {
		t.Errorf("set = %+v", set)
	}
}

func TestLiteralSuffixes(t *testing.T) {
	ints := map[string]int{"30": 30, "30u": 30, "0x1E": 30, "30UL": 30, "036": 30}
	for lit, want := range ints {
		var got optional[int]
		if err := parseInt(lit, &got); err != nil || got.value != want || !got.known {
			t.Errorf("parseInt(%q) = %+v, %v; want %d", lit, got, err, want)
		}
	}

	reals := map[string]float64{"0.04": 0.04, "0.04f": 0.04, "4e-2F": 0.04, "0": 0, "-0.5": -0.5}
	for lit, want := range reals {
		var got optional[float64]
		if err := parseReal(lit, &got); err != nil || got.value != want || !got.known {
			t.Errorf("parseReal(%q) = %+v, %v; want %v", lit, got, err, want)
		}
	}

	for _, bad := range []string{"inf", "1.0.0", "FREQ_START"} {
		var got optional[float64]
		if err := parseReal(bad, &got); err == nil || got.known {
			t.Errorf("parseReal(%q) accepted", bad)
		}
	}
}
