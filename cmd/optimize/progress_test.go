package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/starfield/config"
)

func TestProgressKeepsBest(t *testing.T) {
	pv := NewParamVector(config.Defaults())
	path := filepath.Join(t.TempDir(), "log.csv")
	prog, err := newProgress(path, pv, 3)
	if err != nil {
		t.Fatal(err)
	}

	good := pv.DefaultVector()
	worse := pv.Clamp(make([]float64, pv.Dim()))
	prog.Record(worse, 0.8, 1.2)
	prog.Record(good, 0.1, 2.4)
	prog.Record(worse, 0.5, 1.9)
	if err := prog.Close(); err != nil {
		t.Fatal(err)
	}

	if prog.Evals() != 3 || prog.BestFitness() != 0.1 {
		t.Errorf("expected 3 evals with best 0.1, got %d and %f", prog.Evals(), prog.BestFitness())
	}
	for i, v := range prog.Best() {
		if v != good[i] {
			t.Errorf("%s: best %f, want %f", pv.Specs[i].Name, v, good[i])
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header plus 3 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "eval,fitness,lifetime,params") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[2], "base_speed_min=") {
		t.Errorf("expected named params in row, got %q", lines[2])
	}
}
